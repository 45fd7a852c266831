package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rignaneseleo/groups-for-nomads/internal/directory"
	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const rootField = "(root)"

// schemaPass checks the record against the schema-definition file. Results at
// or around a path already reported by the entry rules are dropped.
func (rc *recordCheck) schemaPass(node *yaml.Node) {
	res, err := rc.v.schema.Validate(toValue(node))
	if err != nil {
		rc.add(rc.path, "", node, &apperrors.ConstraintError{Message: "schema evaluation failed: " + err.Error()})
		return
	}

	for _, re := range res.Errors() {
		segs := splitField(re.Field())
		field := lastName(segs)
		var e error

		switch re.Type() {
		case "required":
			segs, field = withProperty(segs, re.Details())
			e = apperrors.NewMissingFieldError(field)
		case "additional_property_not_allowed":
			segs, field = withProperty(segs, re.Details())
			e = &apperrors.UnknownFieldError{Field: field}
		case "invalid_type":
			e = apperrors.NewTypeMismatchError(field, detail(re.Details(), "expected"), detail(re.Details(), "given"))
		case "enum":
			e = apperrors.NewInvalidEnumError(field, fmt.Sprint(re.Value()), allowedFor(field))
		case "format":
			if field == "url" {
				e = apperrors.NewInvalidURLError(fmt.Sprint(re.Value()), re.Description())
			} else {
				e = &apperrors.ConstraintError{Field: field, Message: re.Description()}
			}
		case "missing_dependency":
			e = apperrors.NewInvalidLocationError(field, "", re.Description())
		default:
			e = &apperrors.ConstraintError{Field: field, Message: re.Description()}
		}

		path := rc.path + suffix(segs)
		if rc.covers(path) {
			continue
		}
		at := nodeAt(node, segs)
		rc.add(path, field, at, e)
	}
}

// splitField turns "locations.0.city" into its segments
func splitField(f string) []string {
	f = strings.TrimPrefix(f, rootField)
	f = strings.TrimPrefix(f, ".")
	if f == "" {
		return nil
	}
	return strings.Split(f, ".")
}

func withProperty(segs []string, details gojsonschema.ErrorDetails) ([]string, string) {
	prop := detail(details, "property")
	if prop == "" || (len(segs) > 0 && segs[len(segs)-1] == prop) {
		return segs, lastName(segs)
	}
	return append(segs, prop), prop
}

func detail(details gojsonschema.ErrorDetails, key string) string {
	v, ok := details[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// lastName returns the innermost property name, skipping array indices
func lastName(segs []string) string {
	for i := len(segs) - 1; i >= 0; i-- {
		if _, err := strconv.Atoi(segs[i]); err != nil {
			return segs[i]
		}
	}
	return ""
}

// suffix renders segments as ".locations[0].city"
func suffix(segs []string) string {
	var b strings.Builder
	for _, s := range segs {
		if _, err := strconv.Atoi(s); err == nil {
			b.WriteString("[" + s + "]")
			continue
		}
		b.WriteString("." + s)
	}
	return b.String()
}

func allowedFor(field string) []string {
	switch field {
	case "platform":
		return models.PlatformNames()
	case "continent":
		return models.ContinentNames()
	}
	return nil
}

// nodeAt walks segs from n and returns the deepest node that exists
func nodeAt(n *yaml.Node, segs []string) *yaml.Node {
	cur := directory.Resolve(n)
	for _, s := range segs {
		var next *yaml.Node
		switch cur.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(cur.Content); i += 2 {
				if cur.Content[i].Value == s {
					next = directory.Resolve(cur.Content[i+1])
					break
				}
			}
		case yaml.SequenceNode:
			if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(cur.Content) {
				next = directory.Resolve(cur.Content[i])
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
	return cur
}

// toValue converts a node into the plain value tree the schema library reads
func toValue(n *yaml.Node) interface{} {
	n = directory.Resolve(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return toValue(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = toValue(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		s := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			s = append(s, toValue(c))
		}
		return s
	}

	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if n.Decode(&b) == nil {
			return b
		}
	case "!!int":
		var i int64
		if n.Decode(&i) == nil {
			return i
		}
		var f float64
		if n.Decode(&f) == nil {
			return f
		}
	case "!!float":
		var f float64
		if n.Decode(&f) == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f
		}
	}
	return n.Value
}
