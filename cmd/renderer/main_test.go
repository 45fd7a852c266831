package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rignaneseleo/groups-for-nomads/internal/schema"
	"github.com/rignaneseleo/groups-for-nomads/internal/validation"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validData = `groups:
  - name: Test Nomads
    platform: telegram
    url: https://t.me/test
    locations:
      - continent: Europe
        country_id: FR
`

func runRenderer(t *testing.T, fs afero.Fs, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, fs, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func withData(t *testing.T, data string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "directory.yaml", []byte(data), 0o644))
	return fs
}

func TestRun_RendersDocument(t *testing.T) {
	fs := withData(t, validData)

	code, stdout, stderr := runRenderer(t, fs)

	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "directory.yaml: 1 entries rendered into directory.md (1 placements)\n", stdout)

	out, err := afero.ReadFile(fs, "directory.md")
	require.NoError(t, err)
	assert.Contains(t, string(out), "## France 🇫🇷 <a name=\"france\"></a>")
	assert.Contains(t, string(out), "- ![Telegram](icons/telegram.svg) [Test Nomads](https://t.me/test)")
}

func TestRun_OutputAndIcons(t *testing.T) {
	fs := withData(t, validData)
	require.NoError(t, fs.MkdirAll("site", 0o755))

	code, stdout, _ := runRenderer(t, fs, "-q", "-o", "site/README.md", "--icons-dir", "../icons", "directory.yaml")

	require.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	out, err := afero.ReadFile(fs, "site/README.md")
	require.NoError(t, err)
	assert.Contains(t, string(out), "![Telegram](../icons/telegram.svg)")
}

func TestRun_Deterministic(t *testing.T) {
	fs := withData(t, validData)

	require.Equal(t, exitOK, run(nil, fs, &bytes.Buffer{}, &bytes.Buffer{}))
	first, err := afero.ReadFile(fs, "directory.md")
	require.NoError(t, err)

	require.Equal(t, exitOK, run(nil, fs, &bytes.Buffer{}, &bytes.Buffer{}))
	second, err := afero.ReadFile(fs, "directory.md")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_UnknownLocation(t *testing.T) {
	fs := withData(t, strings.Replace(validData, "country_id: FR", "country_id: ZZ", 1))
	require.NoError(t, afero.WriteFile(fs, "directory.md", []byte("previous"), 0o644))

	code, _, stderr := runRenderer(t, fs)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "UnknownLocationError")
	out, err := afero.ReadFile(fs, "directory.md")
	require.NoError(t, err)
	assert.Equal(t, "previous", string(out))
}

func TestRun_CountryOutsideItsContinent(t *testing.T) {
	data := strings.Replace(validData, "continent: Europe", "continent: Asia", 1)

	s, err := schema.Embedded()
	require.NoError(t, err)
	report := validation.NewValidator(s, validation.Options{}).Validate([]byte(data))
	require.True(t, report.Valid())

	fs := withData(t, data)
	require.NoError(t, afero.WriteFile(fs, "directory.md", []byte("previous"), 0o644))

	code, _, stderr := runRenderer(t, fs)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "UnknownLocationError")
	out, err := afero.ReadFile(fs, "directory.md")
	require.NoError(t, err)
	assert.Equal(t, "previous", string(out))
}

func TestRun_InvalidPlatform(t *testing.T) {
	fs := withData(t, strings.Replace(validData, "platform: telegram", "platform: snapchat", 1))

	code, _, stderr := runRenderer(t, fs)

	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "InvalidEnumError")
}

func TestRun_ParseAndReadErrors(t *testing.T) {
	code, _, _ := runRenderer(t, withData(t, "groups: [\n"))
	assert.Equal(t, exitParse, code)

	code, _, _ = runRenderer(t, withData(t, "just text\n"))
	assert.Equal(t, exitParse, code)

	code, _, _ = runRenderer(t, withData(t, strings.Replace(validData, "    platform:", "    name: Again\n    platform:", 1)))
	assert.Equal(t, exitParse, code)

	code, _, _ = runRenderer(t, afero.NewMemMapFs())
	assert.Equal(t, exitParse, code)
}

func TestRun_Usage(t *testing.T) {
	fs := withData(t, validData)

	code, _, _ := runRenderer(t, fs, "-o", "directory.yaml")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runRenderer(t, fs, "a.yaml", "b.yaml")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runRenderer(t, fs, "--geography", "missing.yaml")
	assert.Equal(t, exitUsage, code)
}
