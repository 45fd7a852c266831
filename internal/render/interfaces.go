package render

import (
	"github.com/rignaneseleo/groups-for-nomads/internal/geography"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/geography_mocks.go -package=mocks

// Geography is the display table the renderer places locations in.
// *geography.Table implements it.
type Geography interface {
	ContinentRank(continent models.Continent) (int, error)
	Country(continent models.Continent, countryID string) (geography.Country, error)
}

var _ Geography = (*geography.Table)(nil)
