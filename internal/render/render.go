// Package render produces the directory document from the data file entries,
// grouped continent > country > city.
package render

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/rignaneseleo/groups-for-nomads/internal/directory"
	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/geography"
	"github.com/rignaneseleo/groups-for-nomads/internal/logger"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"
	"github.com/rignaneseleo/groups-for-nomads/internal/storage"

	"github.com/spf13/afero"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Marker opens every generated document
const Marker = "<!-- This file is generated. Do not edit it by hand. -->"

// DefaultIconsDir is where platform icons live relative to the document
const DefaultIconsDir = "icons"

// Options tune the rendered output
type Options struct {
	IconsDir string
	Logger   *logger.Logger
}

// Stats summarizes one rendered document
type Stats struct {
	Entries    int
	Placements int
	Continents int
	Countries  int
	Cities     int
	Bytes      int
}

// Renderer builds directory documents. It is safe for concurrent use as long
// as the Geography is.
type Renderer struct {
	geo  Geography
	opts Options
	log  *logger.Logger
}

// NewRenderer creates a new Renderer
func NewRenderer(geo Geography, opts Options) *Renderer {
	if opts.IconsDir == "" {
		opts.IconsDir = DefaultIconsDir
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Renderer{geo: geo, opts: opts, log: log}
}

// item is one entry under one bucket. Locations of the same entry that share
// the bucket contribute their regions to the same item.
type item struct {
	entry   *models.Entry
	regions []string
}

func (it *item) addRegion(region string) {
	region = oneLine(region)
	if region == "" {
		return
	}
	for _, r := range it.regions {
		if r == region {
			return
		}
	}
	it.regions = append(it.regions, region)
}

type cityBucket struct {
	name  string
	items []*item
}

type countryBucket struct {
	country geography.Country
	anchor  string
	items   []*item
	cities  map[string]*cityBucket
}

type continentBucket struct {
	continent models.Continent
	rank      int
	anchor    string
	items     []*item
	countries map[string]*countryBucket
}

// Render builds the document for entries. Any entry that cannot be placed in
// the geography table fails the whole run.
func (r *Renderer) Render(entries []models.Entry) ([]byte, error) {
	out, _, err := r.render(entries)
	return out, err
}

// RenderFile reads the data file at input and writes the document to output
// atomically. The output path may not be the input path.
func (r *Renderer) RenderFile(fs afero.Fs, input, output string) (*Stats, error) {
	if storage.SamePath(input, output) {
		return nil, fmt.Errorf("output %s would overwrite the data file", output)
	}

	entries, err := directory.ReadFile(fs, input)
	if err != nil {
		return nil, err
	}

	out, stats, err := r.render(entries)
	if err != nil {
		return nil, err
	}
	if err := storage.WriteFileAtomic(fs, output, out, 0o644); err != nil {
		return nil, err
	}

	r.log.WithFields(map[string]interface{}{
		"input":      input,
		"output":     output,
		"entries":    stats.Entries,
		"placements": stats.Placements,
		"bytes":      stats.Bytes,
	}).Debug("Directory rendered")
	return stats, nil
}

func (r *Renderer) render(entries []models.Entry) ([]byte, *Stats, error) {
	continents, stats, err := r.bucket(entries)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(Marker + "\n\n# Index\n\n")
	for _, c := range continents {
		fmt.Fprintf(&buf, "### [%s](#%s)\n", c.continent, c.anchor)
		for _, cb := range sortedCountries(c) {
			fmt.Fprintf(&buf, "- [%s %s](#%s)\n", cb.country.Flag(), cb.country.Name, cb.anchor)
		}
		buf.WriteString("\n")
	}
	buf.WriteString("------\n\n")

	coll := collate.New(language.English)
	for _, c := range continents {
		fmt.Fprintf(&buf, "# %s <a name=\"%s\"></a>\n\n", c.continent, c.anchor)
		r.writeItems(&buf, c.items)
		for _, cb := range sortedCountries(c) {
			fmt.Fprintf(&buf, "## %s %s <a name=\"%s\"></a>\n\n", cb.country.Name, cb.country.Flag(), cb.anchor)
			r.writeItems(&buf, cb.items)
			for _, city := range sortedCities(coll, cb) {
				fmt.Fprintf(&buf, "### %s\n\n", escapeText(city.name))
				r.writeItems(&buf, city.items)
			}
		}
	}

	out := append(bytes.TrimRight(buf.Bytes(), "\n"), '\n')
	stats.Bytes = len(out)
	return out, stats, nil
}

// bucket places every (entry, location) pair and returns the continents in
// display order
func (r *Renderer) bucket(entries []models.Entry) ([]*continentBucket, *Stats, error) {
	stats := &Stats{Entries: len(entries)}
	byContinent := make(map[models.Continent]*continentBucket)
	seen := make(map[string]*item)

	for i := range entries {
		e := &entries[i]
		if !e.Platform.IsValid() {
			return nil, nil, fmt.Errorf("entry %d (%q): %w", i, e.Name,
				apperrors.NewInvalidEnumError("platform", string(e.Platform), models.PlatformNames()))
		}
		if len(e.Locations) == 0 {
			return nil, nil, fmt.Errorf("entry %d (%q): %w", i, e.Name,
				&apperrors.UnknownLocationError{Entry: e.Name, Message: "entry has no locations"})
		}

		for _, loc := range e.Locations {
			key := fmt.Sprintf("%d|%s|%s|%s", i, loc.Continent, loc.CountryID, loc.City)
			if it, ok := seen[key]; ok {
				it.addRegion(loc.Region)
				continue
			}

			it, err := r.place(byContinent, e, loc)
			if err != nil {
				return nil, nil, fmt.Errorf("entry %d (%q): %w", i, e.Name, err)
			}
			it.addRegion(loc.Region)
			seen[key] = it
			stats.Placements++
		}
	}

	continents := make([]*continentBucket, 0, len(byContinent))
	for _, c := range byContinent {
		continents = append(continents, c)
	}
	sort.Slice(continents, func(i, j int) bool {
		return continents[i].rank < continents[j].rank
	})

	names := newAnchors()
	for _, c := range continents {
		c.anchor = names.claim("continent-"+slugify(string(c.continent)), "")
	}
	for _, c := range continents {
		for _, cb := range sortedCountries(c) {
			base := slugify(cb.country.Name)
			if base == "" {
				base = strings.ToLower(cb.country.ID)
			}
			cb.anchor = names.claim(base, base+"-"+slugify(string(c.continent)))
			stats.Countries++
			stats.Cities += len(cb.cities)
		}
	}
	stats.Continents = len(continents)
	return continents, stats, nil
}

func (r *Renderer) place(byContinent map[models.Continent]*continentBucket, e *models.Entry, loc models.Location) (*item, error) {
	rank, err := r.geo.ContinentRank(loc.Continent)
	if err != nil {
		return nil, err
	}
	c, ok := byContinent[loc.Continent]
	if !ok {
		c = &continentBucket{continent: loc.Continent, rank: rank, countries: make(map[string]*countryBucket)}
		byContinent[loc.Continent] = c
	}

	it := &item{entry: e}
	if loc.CountryID == "" {
		if loc.City != "" {
			return nil, &apperrors.UnknownLocationError{Entry: e.Name, Continent: string(loc.Continent),
				Message: fmt.Sprintf("city %q has no country", loc.City)}
		}
		c.items = append(c.items, it)
		return it, nil
	}

	country, err := r.geo.Country(loc.Continent, loc.CountryID)
	if err != nil {
		return nil, err
	}
	cb, ok := c.countries[loc.CountryID]
	if !ok {
		cb = &countryBucket{country: country, cities: make(map[string]*cityBucket)}
		c.countries[loc.CountryID] = cb
	}
	if loc.City == "" {
		cb.items = append(cb.items, it)
		return it, nil
	}

	city, ok := cb.cities[loc.City]
	if !ok {
		city = &cityBucket{name: loc.City}
		cb.cities[loc.City] = city
	}
	city.items = append(city.items, it)
	return it, nil
}

func sortedCountries(c *continentBucket) []*countryBucket {
	out := make([]*countryBucket, 0, len(c.countries))
	for _, cb := range c.countries {
		out = append(out, cb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].country.Order != out[j].country.Order {
			return out[i].country.Order < out[j].country.Order
		}
		return out[i].country.ID < out[j].country.ID
	})
	return out
}

func sortedCities(coll *collate.Collator, cb *countryBucket) []*cityBucket {
	out := make([]*cityBucket, 0, len(cb.cities))
	for _, city := range cb.cities {
		out = append(out, city)
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := coll.CompareString(out[i].name, out[j].name); cmp != 0 {
			return cmp < 0
		}
		return out[i].name < out[j].name
	})
	return out
}

func (r *Renderer) writeItems(buf *bytes.Buffer, items []*item) {
	if len(items) == 0 {
		return
	}
	for _, it := range items {
		buf.WriteString(r.formatItem(it))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
}

// formatItem renders one list line:
// - ![Telegram](icons/telegram.svg) [Name](url) (EN) (Region, Region) (Commercial) `tag`
func (r *Renderer) formatItem(it *item) string {
	e := it.entry
	var b strings.Builder
	fmt.Fprintf(&b, "- ![%s](%s) [%s](%s)",
		e.Platform.Label(), path.Join(r.opts.IconsDir, e.Platform.Icon()), escapeText(e.Name), escapeURL(e.URL))
	if e.LanguageID != "" {
		fmt.Fprintf(&b, " (%s)", strings.ToUpper(e.LanguageID))
	}
	if len(it.regions) > 0 {
		regions := make([]string, len(it.regions))
		for i, region := range it.regions {
			regions[i] = escapeText(region)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(regions, ", "))
	}
	if e.Commercial {
		b.WriteString(" (Commercial)")
	}
	for _, tag := range e.Tags {
		tag = strings.TrimSpace(strings.ReplaceAll(oneLine(tag), "`", ""))
		if tag != "" {
			fmt.Fprintf(&b, " `%s`", tag)
		}
	}
	return b.String()
}

var (
	textEscaper = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`)
	urlEscaper  = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")
)

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func escapeText(s string) string {
	return textEscaper.Replace(oneLine(s))
}

func escapeURL(s string) string {
	return urlEscaper.Replace(strings.TrimSpace(s))
}
