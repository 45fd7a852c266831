package geography

import (
	"testing"

	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	t.Run("lists every continent", func(t *testing.T) {
		assert.ElementsMatch(t, models.Continents(), table.Continents())
	})

	t.Run("fixed continent order", func(t *testing.T) {
		asia, err := table.ContinentRank(models.ContinentAsia)
		require.NoError(t, err)
		europe, err := table.ContinentRank(models.ContinentEurope)
		require.NoError(t, err)
		assert.Less(t, asia, europe)
	})

	t.Run("country lookup", func(t *testing.T) {
		fr, err := table.Country(models.ContinentEurope, "FR")
		require.NoError(t, err)
		assert.Equal(t, "France", fr.Name)
		assert.Equal(t, "🇫🇷", fr.Flag())

		th, err := table.Country(models.ContinentAsia, "TH")
		require.NoError(t, err)
		assert.Equal(t, "Thailand", th.Name)
	})

	t.Run("country listed under two continents", func(t *testing.T) {
		asia, err := table.Country(models.ContinentAsia, "RU")
		require.NoError(t, err)
		europe, err := table.Country(models.ContinentEurope, "RU")
		require.NoError(t, err)
		assert.Equal(t, asia.Name, europe.Name)
	})

	t.Run("lookups fail closed", func(t *testing.T) {
		_, err := table.Country(models.ContinentEurope, "TH")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnknownLocation(err))

		_, err = table.Country(models.ContinentEurope, "ZZ")
		assert.True(t, apperrors.IsUnknownLocation(err))

		_, err = table.ContinentRank(models.Continent("Atlantis"))
		assert.True(t, apperrors.IsUnknownLocation(err))
	})

	t.Run("countries keep file order", func(t *testing.T) {
		countries := table.Countries(models.ContinentCentralAmerica)
		require.NotEmpty(t, countries)
		for i, c := range countries {
			assert.Equal(t, i, c.Order)
		}
		assert.Equal(t, "Belize", countries[0].Name)
	})
}

func TestParse(t *testing.T) {
	full := func(extra string) string {
		out := "continents:\n"
		for _, c := range models.Continents() {
			out += "  - name: " + string(c) + "\n    countries: []\n"
		}
		return out + extra
	}

	t.Run("minimal table", func(t *testing.T) {
		table, err := Parse([]byte(full("")))
		require.NoError(t, err)
		assert.Len(t, table.Continents(), 8)
		assert.Empty(t, table.Countries(models.ContinentAfrica))
	})

	t.Run("missing continent", func(t *testing.T) {
		_, err := Parse([]byte("continents:\n  - name: Europe\n    countries: []\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is missing")
	})

	t.Run("duplicate continent", func(t *testing.T) {
		_, err := Parse([]byte(full("  - name: Europe\n    countries: []\n")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listed twice")
	})

	t.Run("unknown continent", func(t *testing.T) {
		_, err := Parse([]byte(full("  - name: Atlantis\n    countries: []\n")))
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidEnum(err))
	})

	t.Run("invalid country id", func(t *testing.T) {
		src := "continents:\n  - name: Europe\n    countries:\n      - {id: fra, name: France}\n"
		_, err := Parse([]byte(src))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid country id")
	})
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "geo.yaml", defaultTable, 0o644))

	table, err := Load(fs, "geo.yaml")
	require.NoError(t, err)
	assert.Len(t, table.Continents(), len(models.Continents()))

	_, err = Load(fs, "nope.yaml")
	assert.Error(t, err)
}

func TestFlag(t *testing.T) {
	assert.Equal(t, "🇹🇭", Flag("TH"))
	assert.Equal(t, "🇦🇶", Flag("AQ"))
	assert.Equal(t, "", Flag("th"))
	assert.Equal(t, "", Flag("THA"))
}
