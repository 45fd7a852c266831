package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(afero.NewMemMapFs(), nil)
	require.NoError(t, err)

	assert.Equal(t, "directory.yaml", cfg.DataFile)
	assert.Equal(t, "directory.md", cfg.OutputFile)
	assert.Equal(t, "", cfg.SchemaPath)
	assert.Equal(t, "icons", cfg.IconsDir)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.False(t, cfg.FailFast)
	assert.False(t, cfg.Quiet)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_ValidatorFlags(t *testing.T) {
	flags := ValidatorFlags("validator")
	require.NoError(t, flags.Parse([]string{"--format", "json", "--fail-fast", "-q", "--schema", "s.json", "data/groups.yaml"}))

	cfg, err := Load(afero.NewMemMapFs(), flags)
	require.NoError(t, err)

	assert.Equal(t, "data/groups.yaml", cfg.DataFile)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.FailFast)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "s.json", cfg.SchemaPath)
}

func TestLoad_RendererFlags(t *testing.T) {
	flags := RendererFlags("renderer")
	require.NoError(t, flags.Parse([]string{"-o", "out/README.md", "--icons-dir", "assets", "--geography", "geo.yaml"}))

	cfg, err := Load(afero.NewMemMapFs(), flags)
	require.NoError(t, err)

	assert.Equal(t, "directory.yaml", cfg.DataFile)
	assert.Equal(t, "out/README.md", cfg.OutputFile)
	assert.Equal(t, "assets", cfg.IconsDir)
	assert.Equal(t, "geo.yaml", cfg.GeographyFile)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("DATA_FILE", "env.yaml")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	assert.Equal(t, "env.yaml", cfg.DataFile)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "gha")
	flags := ValidatorFlags("validator")
	require.NoError(t, flags.Parse([]string{"--format", "json"}))

	cfg, err := Load(afero.NewMemMapFs(), flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoad_ConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	content := "DATA_FILE: from-file.yaml\nICONS_DIR: img\n"
	require.NoError(t, afero.WriteFile(fs, filepath.Join(wd, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-file.yaml", cfg.DataFile)
	assert.Equal(t, "img", cfg.IconsDir)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown format", func(t *testing.T) {
		flags := ValidatorFlags("validator")
		require.NoError(t, flags.Parse([]string{"--format", "xml"}))

		_, err := Load(afero.NewMemMapFs(), flags)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")

		_, err := Load(afero.NewMemMapFs(), nil)
		assert.Error(t, err)
	})

	t.Run("empty output", func(t *testing.T) {
		flags := RendererFlags("renderer")
		require.NoError(t, flags.Parse([]string{"--output", ""}))

		_, err := Load(afero.NewMemMapFs(), flags)
		assert.Error(t, err)
	})
}
