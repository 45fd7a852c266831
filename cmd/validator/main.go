package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rignaneseleo/groups-for-nomads/internal/config"
	"github.com/rignaneseleo/groups-for-nomads/internal/logger"
	"github.com/rignaneseleo/groups-for-nomads/internal/schema"
	"github.com/rignaneseleo/groups-for-nomads/internal/validation"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

const (
	exitOK         = 0
	exitUsage      = 2
	exitSchema     = 3
	exitParse      = 4
	exitInvalid    = 5
	exitUnexpected = 6
)

func main() {
	// Load environment variables from .env file when present
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

func run(args []string, fs afero.Fs, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "unexpected error: %v\n", r)
			code = exitUnexpected
		}
	}()

	flags := config.ValidatorFlags("validator")
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() > 1 {
		fmt.Fprintln(stderr, "usage: validator [flags] [data-file]")
		return exitUsage
	}

	cfg, err := config.Load(fs, flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	format, err := validation.ParseFormat(cfg.OutputFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	level := cfg.LogLevel
	if cfg.Quiet {
		level = "error"
	}
	log := logger.New(stderr, level, cfg.LogFormat).WithComponent("validator")

	s, err := schema.Open(fs, cfg.SchemaPath,
		filepath.Join(filepath.Dir(cfg.DataFile), schema.FileName),
		schema.FileName,
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitSchema
	}
	log.WithField("schema", s.Path).Debug("Schema loaded")

	v := validation.NewValidator(s, validation.Options{FailFast: cfg.FailFast})
	report, err := v.ValidateFile(fs, cfg.DataFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitParse
	}

	if report.Valid() {
		log.WithField("entries", report.Records).Info("Validation passed")
		if cfg.Quiet && format != validation.FormatJSON {
			return exitOK
		}
		if err := report.Write(stdout, format); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUnexpected
		}
		return exitOK
	}

	out := stdout
	if format == validation.FormatText {
		out = stderr
	}
	if err := report.Write(out, format); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUnexpected
	}
	log.WithField("errors", len(report.Violations)).Warn("Validation failed")

	if report.Unparsable() {
		return exitParse
	}
	return exitInvalid
}
