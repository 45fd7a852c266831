package validation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rignaneseleo/groups-for-nomads/internal/directory"
	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"

	"gopkg.in/yaml.v3"
)

const (
	countryIDTag  = "len=2,alpha,uppercase"
	languageIDTag = "len=2,alpha,lowercase"
)

type pair struct {
	key   *yaml.Node
	value *yaml.Node
}

func fieldsOf(m *yaml.Node) map[string]pair {
	out := make(map[string]pair, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		out[k.Value] = pair{key: k, value: directory.Resolve(m.Content[i+1])}
	}
	return out
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

func join(base, field string) string {
	return base + "." + field
}

func index(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

// checkRecord applies the entry rules to one record node
func (rc *recordCheck) checkRecord(node *yaml.Node) {
	if node == nil || node.Kind != yaml.MappingNode {
		rc.add(rc.path, "", node, apperrors.NewTypeMismatchError("entry", "mapping", directory.KindName(node)))
		return
	}
	f := fieldsOf(node)

	rc.requiredString(node, f, rc.path, "name")

	if platform, ok := rc.requiredString(node, f, rc.path, "platform"); ok {
		if !models.Platform(platform).IsValid() {
			rc.add(join(rc.path, "platform"), "platform", f["platform"].value,
				apperrors.NewInvalidEnumError("platform", platform, models.PlatformNames()))
		}
	}

	if raw, ok := rc.requiredString(node, f, rc.path, "url"); ok {
		if reason := rc.urlProblem(raw); reason != "" {
			rc.add(join(rc.path, "url"), "url", f["url"].value, apperrors.NewInvalidURLError(raw, reason))
		}
	}

	rc.checkLocations(node, f)

	if lang, ok := rc.optionalString(f, rc.path, "language_id"); ok {
		if rc.v.fields.Var(lang, languageIDTag) != nil {
			rc.add(join(rc.path, "language_id"), "language_id", f["language_id"].value, &apperrors.ConstraintError{
				Field:   "language_id",
				Message: "must be a two-letter lowercase ISO 639-1 code",
			})
		}
	}

	if p, ok := f["commercial"]; ok && !(p.value.Kind == yaml.ScalarNode && p.value.ShortTag() == "!!bool") {
		rc.add(join(rc.path, "commercial"), "commercial", p.value,
			apperrors.NewTypeMismatchError("commercial", "boolean", directory.KindName(p.value)))
	}

	if p, ok := f["tags"]; ok {
		tagsPath := join(rc.path, "tags")
		if p.value.Kind != yaml.SequenceNode {
			rc.add(tagsPath, "tags", p.value,
				apperrors.NewTypeMismatchError("tags", "sequence", directory.KindName(p.value)))
		} else {
			for i, item := range p.value.Content {
				item = directory.Resolve(item)
				if !isString(item) {
					rc.add(index(tagsPath, i), "tags", item,
						apperrors.NewTypeMismatchError("tags", "string", directory.KindName(item)))
				}
			}
		}
	}

	rc.optionalString(f, rc.path, "description")
}

func (rc *recordCheck) checkLocations(record *yaml.Node, f map[string]pair) {
	path := join(rc.path, "locations")
	p, ok := f["locations"]
	switch {
	case !ok:
		rc.add(path, "locations", record, apperrors.NewMissingFieldError("locations"))
		return
	case p.value.Kind != yaml.SequenceNode:
		rc.add(path, "locations", p.value,
			apperrors.NewTypeMismatchError("locations", "sequence", directory.KindName(p.value)))
		return
	case len(p.value.Content) == 0:
		rc.add(path, "locations", p.value, apperrors.NewMissingFieldError("locations"))
		return
	}

	for i, loc := range p.value.Content {
		rc.checkLocation(index(path, i), directory.Resolve(loc))
	}
}

func (rc *recordCheck) checkLocation(path string, loc *yaml.Node) {
	if loc == nil || loc.Kind != yaml.MappingNode {
		rc.add(path, "locations", loc,
			apperrors.NewTypeMismatchError("locations", "mapping", directory.KindName(loc)))
		return
	}
	f := fieldsOf(loc)

	if continent, ok := rc.requiredString(loc, f, path, "continent"); ok {
		if !models.Continent(continent).IsValid() {
			rc.add(join(path, "continent"), "continent", f["continent"].value,
				apperrors.NewInvalidEnumError("continent", continent, models.ContinentNames()))
		}
	}

	if country, ok := rc.optionalString(f, path, "country_id"); ok {
		if rc.v.fields.Var(country, countryIDTag) != nil {
			rc.add(join(path, "country_id"), "country_id", f["country_id"].value,
				apperrors.NewInvalidLocationError("country_id", country, "must be an ISO 3166-1 alpha-2 code such as FR"))
		}
	}

	if city, ok := rc.locationName(f, path, "city"); ok {
		if _, hasCountry := f["country_id"]; !hasCountry {
			rc.add(join(path, "city"), "city", f["city"].value,
				apperrors.NewInvalidLocationError("city", city, "a city requires country_id"))
		}
	}

	rc.locationName(f, path, "region")
}

// locationName type-checks an optional city or region and rejects a blank one
func (rc *recordCheck) locationName(f map[string]pair, base, name string) (string, bool) {
	value, ok := rc.optionalString(f, base, name)
	if !ok {
		return "", false
	}
	if strings.TrimSpace(value) == "" {
		rc.add(join(base, name), name, f[name].value,
			apperrors.NewInvalidLocationError(name, value, "must not be blank"))
		return "", false
	}
	return value, true
}

// requiredString reports a missing, mistyped or blank field and returns the
// value when it is usable
func (rc *recordCheck) requiredString(parent *yaml.Node, f map[string]pair, base, name string) (string, bool) {
	path := join(base, name)
	p, ok := f[name]
	if !ok {
		rc.add(path, name, parent, apperrors.NewMissingFieldError(name))
		return "", false
	}
	if !isString(p.value) {
		rc.add(path, name, p.value, apperrors.NewTypeMismatchError(name, "string", directory.KindName(p.value)))
		return "", false
	}
	if strings.TrimSpace(p.value.Value) == "" {
		rc.add(path, name, p.value, apperrors.NewMissingFieldError(name))
		return "", false
	}
	return p.value.Value, true
}

// optionalString type-checks a field that may be absent
func (rc *recordCheck) optionalString(f map[string]pair, base, name string) (string, bool) {
	p, ok := f[name]
	if !ok {
		return "", false
	}
	if !isString(p.value) {
		rc.add(join(base, name), name, p.value,
			apperrors.NewTypeMismatchError(name, "string", directory.KindName(p.value)))
		return "", false
	}
	return p.value.Value, true
}

// urlProblem returns why raw is not an absolute URL, or "" when it is
func (rc *recordCheck) urlProblem(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return err.Error()
	}
	if u.Scheme == "" {
		return "missing scheme"
	}
	if u.Host == "" {
		return "missing host"
	}
	if rc.v.fields.Var(raw, "url") != nil {
		return "not a valid URL"
	}
	return ""
}
