package main

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/rignaneseleo/groups-for-nomads/internal/config"
	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/geography"
	"github.com/rignaneseleo/groups-for-nomads/internal/logger"
	"github.com/rignaneseleo/groups-for-nomads/internal/render"
	"github.com/rignaneseleo/groups-for-nomads/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	exitOK         = 0
	exitUsage      = 2
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

	flags := config.RendererFlags("renderer")
	flags.SetOutput(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() > 1 {
		fmt.Fprintln(stderr, "usage: renderer [flags] [data-file]")
		return exitUsage
	}

	cfg, err := config.Load(fs, flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if storage.SamePath(cfg.DataFile, cfg.OutputFile) {
		fmt.Fprintf(stderr, "output %s would overwrite the data file\n", cfg.OutputFile)
		return exitUsage
	}

	level := cfg.LogLevel
	if cfg.Quiet {
		level = "error"
	}
	log := logger.New(stderr, level, cfg.LogFormat).WithComponent("renderer")

	geo, err := loadGeography(fs, cfg.GeographyFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	r := render.NewRenderer(geo, render.Options{IconsDir: cfg.IconsDir, Logger: log})
	stats, err := r.RenderFile(fs, cfg.DataFile, cfg.OutputFile)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s: %v\n", cfg.DataFile, apperrors.KindOf(err), err)
		return exitCode(err)
	}

	log.WithField("output", cfg.OutputFile).Info("Directory generated")
	if !cfg.Quiet {
		fmt.Fprintf(stdout, "%s: %d entries rendered into %s (%d placements)\n",
			cfg.DataFile, stats.Entries, cfg.OutputFile, stats.Placements)
	}
	return exitOK
}

func loadGeography(fs afero.Fs, path string) (*geography.Table, error) {
	if path == "" {
		return geography.Default()
	}
	return geography.Load(fs, path)
}

func exitCode(err error) int {
	var pathErr *iofs.PathError
	var typeErr *yaml.TypeError
	switch {
	case apperrors.IsParse(err), apperrors.IsShape(err), errors.As(err, &pathErr):
		return exitParse
	case apperrors.IsUnknownLocation(err), apperrors.IsInvalidEnum(err), errors.As(err, &typeErr):
		return exitInvalid
	}
	return exitUnexpected
}
