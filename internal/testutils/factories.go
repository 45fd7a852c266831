package testutils

import (
	"strings"

	"github.com/rignaneseleo/groups-for-nomads/internal/models"

	"gopkg.in/yaml.v3"
)

// EntryFactory provides methods to create test Entry data
type EntryFactory struct{}

// NewEntryFactory creates a new EntryFactory
func NewEntryFactory() *EntryFactory {
	return &EntryFactory{}
}

// Create creates a test Entry with default values
func (f *EntryFactory) Create() models.Entry {
	return models.Entry{
		Name:     "Test Nomads",
		Platform: models.PlatformTelegram,
		URL:      "https://t.me/test",
		Locations: []models.Location{
			{Continent: models.ContinentEurope, CountryID: "FR"},
		},
	}
}

// WithName sets a custom name and a matching url
func (f *EntryFactory) WithName(name string) models.Entry {
	e := f.Create()
	e.Name = name
	e.URL = "https://t.me/" + strings.ToLower(strings.ReplaceAll(name, " ", ""))
	return e
}

// WithLocations sets a custom name and locations
func (f *EntryFactory) WithLocations(name string, locs ...models.Location) models.Entry {
	e := f.WithName(name)
	e.Locations = locs
	return e
}

// In returns a location under continent, optionally narrowed to a country and city
func In(continent models.Continent, countryID, city string) models.Location {
	return models.Location{Continent: continent, CountryID: countryID, City: city}
}

// DataFile encodes entries in the wrapped data file layout
func DataFile(entries ...models.Entry) []byte {
	out, err := yaml.Marshal(models.DirectoryFile{Version: "1.0", Groups: entries})
	if err != nil {
		panic(err)
	}
	return out
}
