package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration shared by the validator and renderer binaries
type Config struct {
	DataFile      string `mapstructure:"DATA_FILE" validate:"required"`
	OutputFile    string `mapstructure:"OUTPUT_FILE" validate:"required"`
	SchemaPath    string `mapstructure:"SCHEMA_PATH"`
	GeographyFile string `mapstructure:"GEOGRAPHY_FILE"`
	IconsDir      string `mapstructure:"ICONS_DIR"`

	// Validator report
	OutputFormat string `mapstructure:"OUTPUT_FORMAT" validate:"oneof=text json gha"`
	FailFast     bool   `mapstructure:"FAIL_FAST"`
	Quiet        bool   `mapstructure:"QUIET"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"oneof=json text"`
}

// flag name -> configuration key
var flagKeys = map[string]string{
	"schema":     "SCHEMA_PATH",
	"format":     "OUTPUT_FORMAT",
	"fail-fast":  "FAIL_FAST",
	"quiet":      "QUIET",
	"output":     "OUTPUT_FILE",
	"geography":  "GEOGRAPHY_FILE",
	"icons-dir":  "ICONS_DIR",
	"log-level":  "LOG_LEVEL",
	"log-format": "LOG_FORMAT",
}

// ValidatorFlags declares the command line of the validator binary
func ValidatorFlags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("schema", "", "schema-definition file (default: schema.json next to the data file, then the embedded copy)")
	flags.StringP("format", "f", "text", "report format: text, json or gha")
	flags.Bool("fail-fast", false, "stop at the first violation")
	flags.BoolP("quiet", "q", false, "print nothing when the file is valid")
	addLogFlags(flags)
	return flags
}

// RendererFlags declares the command line of the renderer binary
func RendererFlags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.StringP("output", "o", "directory.md", "generated document")
	flags.String("geography", "", "geography display table (default: embedded table)")
	flags.String("icons-dir", "icons", "icon directory referenced by the document")
	flags.BoolP("quiet", "q", false, "print nothing on success")
	addLogFlags(flags)
	return flags
}

func addLogFlags(flags *pflag.FlagSet) {
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: json or text")
}

// Load reads configuration from defaults, an optional config.yaml, environment
// variables and finally the parsed flags. The first positional argument, when
// present, names the data file.
func Load(fs afero.Fs, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if arg := flags.Arg(0); arg != "" {
			v.Set("DATA_FILE", arg)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATA_FILE", "directory.yaml")
	v.SetDefault("OUTPUT_FILE", "directory.md")
	v.SetDefault("SCHEMA_PATH", "")
	v.SetDefault("GEOGRAPHY_FILE", "")
	v.SetDefault("ICONS_DIR", "icons")

	v.SetDefault("OUTPUT_FORMAT", "text")
	v.SetDefault("FAIL_FAST", false)
	v.SetDefault("QUIET", false)

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "text")
}
