package schema

import (
	"strings"
	"testing"

	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	s, err := Embedded()
	require.NoError(t, err)
	assert.Equal(t, EmbeddedPath, s.Path)

	t.Run("valid entry", func(t *testing.T) {
		res, err := s.Validate(map[string]interface{}{
			"name":     "Test Nomads",
			"platform": "telegram",
			"url":      "https://t.me/test",
			"locations": []interface{}{
				map[string]interface{}{"continent": "Europe", "country_id": "FR"},
			},
		})
		require.NoError(t, err)
		assert.True(t, res.Valid(), res.Errors())
	})

	t.Run("schema-only constraints", func(t *testing.T) {
		res, err := s.Validate(map[string]interface{}{
			"name":      "Test Nomads",
			"platform":  "telegram",
			"url":       "https://t.me/test",
			"locations": []interface{}{map[string]interface{}{"continent": "Europe"}},
			"website":   "https://example.com",
		})
		require.NoError(t, err)
		require.False(t, res.Valid())
		assert.Equal(t, "additional_property_not_allowed", res.Errors()[0].Type())
	})
}

func TestParse(t *testing.T) {
	t.Run("invalid JSON", func(t *testing.T) {
		_, err := Parse("broken.json", []byte(`{"type":`))
		require.Error(t, err)
		assert.True(t, apperrors.IsSchema(err))
	})

	t.Run("platform enum drift", func(t *testing.T) {
		drifted := strings.Replace(string(embedded), `"wechat", "other"`, `"wechat", "other", "snapchat"`, 1)
		require.NotEqual(t, string(embedded), drifted)
		_, err := Parse("drifted.json", []byte(drifted))
		require.Error(t, err)
		assert.True(t, apperrors.IsSchema(err))
		assert.Contains(t, err.Error(), "platform enum")
	})

	t.Run("continent enum drift", func(t *testing.T) {
		drifted := strings.Replace(string(embedded), `"Oceania", `, ``, 1)
		require.NotEqual(t, string(embedded), drifted)
		_, err := Parse("drifted.json", []byte(drifted))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "continent enum")
	})
}

func TestOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/schema.json", embedded, 0o644))

	t.Run("explicit path", func(t *testing.T) {
		s, err := Open(fs, "data/schema.json")
		require.NoError(t, err)
		assert.Equal(t, "data/schema.json", s.Path)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Open(fs, "missing/schema.json", "data/schema.json")
		require.Error(t, err)
		assert.True(t, apperrors.IsSchema(err))
	})

	t.Run("first existing candidate", func(t *testing.T) {
		s, err := Open(fs, "", "elsewhere/schema.json", "data/schema.json")
		require.NoError(t, err)
		assert.Equal(t, "data/schema.json", s.Path)
	})

	t.Run("embedded fallback", func(t *testing.T) {
		s, err := Open(fs, "", "elsewhere/schema.json")
		require.NoError(t, err)
		assert.Equal(t, EmbeddedPath, s.Path)
	})
}
