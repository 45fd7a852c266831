package directory

import (
	"testing"

	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bareList = `
- name: Test Nomads
  platform: telegram
  url: https://t.me/test
  locations:
    - continent: Europe
      country_id: FR
`

const wrapped = `
version: "1.0"
groups:
  - name: Test Nomads
    platform: telegram
    url: https://t.me/test
    locations:
      - continent: Europe
        country_id: FR
  - name: Lisbon Nomads
    platform: whatsapp
    url: https://chat.whatsapp.com/abc
    locations:
      - continent: Europe
        country_id: PT
        city: Lisbon
`

func TestParse(t *testing.T) {
	t.Run("bare sequence", func(t *testing.T) {
		doc, err := Parse([]byte(bareList))
		require.NoError(t, err)
		assert.Equal(t, "$", doc.Prefix)
		assert.Equal(t, 1, doc.Len())
		assert.Equal(t, "$[0]", doc.RecordPath(0))
	})

	t.Run("wrapped groups", func(t *testing.T) {
		doc, err := Parse([]byte(wrapped))
		require.NoError(t, err)
		assert.Equal(t, "$.groups", doc.Prefix)
		assert.Equal(t, "1.0", doc.Version)
		assert.Equal(t, 2, doc.Len())
		assert.Equal(t, "$.groups[1]", doc.RecordPath(1))
		assert.Equal(t, 10, doc.Record(1).Line)
	})

	t.Run("empty groups", func(t *testing.T) {
		doc, err := Parse([]byte("version: \"1.0\"\ngroups:\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Len())
		entries, err := doc.Entries()
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("malformed yaml is a parse error with a line", func(t *testing.T) {
		_, err := Parse([]byte("- name: [unclosed list\n"))
		require.Error(t, err)
		assert.True(t, apperrors.IsParse(err))
		var pe *apperrors.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Greater(t, pe.Line, 0)
	})

	t.Run("repeated key is a parse error at the second key", func(t *testing.T) {
		src := "- name: A\n  name: B\n  platform: telegram\n"
		_, err := Parse([]byte(src))
		require.Error(t, err)
		var pe *apperrors.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 2, pe.Line)
		assert.Equal(t, 3, pe.Column)
		assert.Contains(t, pe.Message, `"name" already defined at line 1`)
	})

	t.Run("repeated key in a nested location", func(t *testing.T) {
		src := "- locations:\n    - continent: Europe\n      continent: Asia\n"
		_, err := Parse([]byte(src))
		require.Error(t, err)
		assert.True(t, apperrors.IsParse(err))
	})

	t.Run("merge keys are not repeats", func(t *testing.T) {
		src := "- &base\n  name: A\n- <<: *base\n  <<: *base\n  platform: telegram\n"
		_, err := Parse([]byte(src))
		assert.NoError(t, err)
	})

	t.Run("wrong shapes", func(t *testing.T) {
		testCases := []struct {
			name string
			src  string
		}{
			{"empty document", ""},
			{"scalar", "hello\n"},
			{"mapping without groups", "name: Test\n"},
			{"groups is a mapping", "groups:\n  name: Test\n"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := Parse([]byte(tc.src))
				require.Error(t, err)
				assert.True(t, apperrors.IsShape(err), err.Error())
			})
		}
	})
}

func TestDecode(t *testing.T) {
	t.Run("entries keep file order", func(t *testing.T) {
		entries, err := Decode([]byte(wrapped))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Test Nomads", entries[0].Name)
		assert.Equal(t, models.PlatformWhatsApp, entries[1].Platform)
		assert.Equal(t, "Lisbon", entries[1].Locations[0].City)
	})

	t.Run("unknown platform fails closed", func(t *testing.T) {
		src := "- name: X\n  platform: snapchat\n  url: https://x.example\n  locations: [{continent: Europe}]\n"
		_, err := Decode([]byte(src))
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidEnum(err))
		assert.Contains(t, err.Error(), "$[0]")
	})
}

func TestReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "directory.yaml", []byte(bareList), 0o644))

	entries, err := ReadFile(fs, "directory.yaml")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = ReadFile(fs, "missing.yaml")
	assert.Error(t, err)
}
