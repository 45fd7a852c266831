// Package geography holds the hand-maintained display table that orders and
// names continents and countries in the rendered directory.
package geography

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed geography.yaml
var defaultTable []byte

var countryIDRe = regexp.MustCompile(`^[A-Z]{2}$`)

// Country is one row of the table
type Country struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Order int    `yaml:"-"` // position inside its continent
}

// Flag returns the flag emoji of the country
func (c Country) Flag() string {
	return Flag(c.ID)
}

type continentData struct {
	Name      models.Continent `yaml:"name"`
	Countries []Country        `yaml:"countries"`
}

type tableFile struct {
	Continents []continentData `yaml:"continents"`
}

// Table is the ordered continent and country mapping. It is read-only after
// Parse returns and safe for concurrent use.
type Table struct {
	continents []continentData
	rank       map[models.Continent]int
	countries  map[models.Continent]map[string]Country
}

// Parse builds a Table from its YAML representation. Every continent of the
// closed set must be listed exactly once.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse geography table: %w", err)
	}

	t := &Table{
		continents: f.Continents,
		rank:       make(map[models.Continent]int, len(f.Continents)),
		countries:  make(map[models.Continent]map[string]Country, len(f.Continents)),
	}
	for i := range t.continents {
		c := &t.continents[i]
		if _, dup := t.rank[c.Name]; dup {
			return nil, fmt.Errorf("geography table: continent %q listed twice", c.Name)
		}
		t.rank[c.Name] = i

		byID := make(map[string]Country, len(c.Countries))
		for j := range c.Countries {
			country := &c.Countries[j]
			if !countryIDRe.MatchString(country.ID) {
				return nil, fmt.Errorf("geography table: %s: invalid country id %q", c.Name, country.ID)
			}
			if strings.TrimSpace(country.Name) == "" {
				return nil, fmt.Errorf("geography table: %s: country %s has no name", c.Name, country.ID)
			}
			if _, dup := byID[country.ID]; dup {
				return nil, fmt.Errorf("geography table: %s: country %s listed twice", c.Name, country.ID)
			}
			country.Order = j
			byID[country.ID] = *country
		}
		t.countries[c.Name] = byID
	}

	for _, c := range models.Continents() {
		if _, ok := t.rank[c]; !ok {
			return nil, fmt.Errorf("geography table: continent %q is missing", c)
		}
	}
	return t, nil
}

// Load reads a table from a file
func Load(fs afero.Fs, path string) (*Table, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read geography table: %w", err)
	}
	return Parse(data)
}

var defaultOnce = sync.OnceValues(func() (*Table, error) {
	return Parse(defaultTable)
})

// Default returns the table compiled into the binary
func Default() (*Table, error) {
	return defaultOnce()
}

// Continents returns the continents in display order
func (t *Table) Continents() []models.Continent {
	out := make([]models.Continent, 0, len(t.continents))
	for _, c := range t.continents {
		out = append(out, c.Name)
	}
	return out
}

// Countries returns the countries of a continent in display order
func (t *Table) Countries(continent models.Continent) []Country {
	i, ok := t.rank[continent]
	if !ok {
		return nil
	}
	return append([]Country(nil), t.continents[i].Countries...)
}

// ContinentRank returns the display position of a continent
func (t *Table) ContinentRank(continent models.Continent) (int, error) {
	i, ok := t.rank[continent]
	if !ok {
		return 0, &apperrors.UnknownLocationError{Continent: string(continent), Message: "continent not in geography table"}
	}
	return i, nil
}

// Country looks up a country under a continent. There is no fallback label:
// a code the table does not list under that continent is an error.
func (t *Table) Country(continent models.Continent, countryID string) (Country, error) {
	byID, ok := t.countries[continent]
	if !ok {
		return Country{}, &apperrors.UnknownLocationError{Continent: string(continent), CountryID: countryID, Message: "continent not in geography table"}
	}
	c, ok := byID[countryID]
	if !ok {
		return Country{}, &apperrors.UnknownLocationError{Continent: string(continent), CountryID: countryID, Message: "country not listed under this continent"}
	}
	return c, nil
}

// Flag converts an ISO 3166-1 alpha-2 code into its regional indicator pair
func Flag(countryID string) string {
	if !countryIDRe.MatchString(countryID) {
		return ""
	}
	var b strings.Builder
	for _, r := range countryID {
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}
