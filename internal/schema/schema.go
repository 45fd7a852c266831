// Package schema loads the JSON Schema that describes one directory entry.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"

	"github.com/spf13/afero"
	"github.com/xeipuuv/gojsonschema"
)

// FileName is the conventional name of the schema-definition file
const FileName = "schema.json"

// EmbeddedPath names the copy of the schema compiled into the binary
const EmbeddedPath = "<embedded schema.json>"

//go:embed schema.json
var embedded []byte

// Schema is a compiled schema-definition file
type Schema struct {
	Path     string
	compiled *gojsonschema.Schema
}

// enumSets picks the closed sets out of the schema document
type enumSets struct {
	Properties struct {
		Platform struct {
			Enum []string `json:"enum"`
		} `json:"platform"`
	} `json:"properties"`
	Definitions struct {
		Location struct {
			Properties struct {
				Continent struct {
					Enum []string `json:"enum"`
				} `json:"continent"`
			} `json:"properties"`
		} `json:"location"`
	} `json:"definitions"`
}

// Parse compiles a schema document. The platform and continent enumerations it
// declares must match the supported closed sets exactly.
func Parse(path string, data []byte) (*Schema, error) {
	var enums enumSets
	if err := json.Unmarshal(data, &enums); err != nil {
		return nil, apperrors.NewSchemaError(path, "invalid JSON", err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, apperrors.NewSchemaError(path, "not a valid JSON Schema", err)
	}

	if !sameSet(enums.Properties.Platform.Enum, models.PlatformNames()) {
		return nil, apperrors.NewSchemaError(path, fmt.Sprintf(
			"platform enum [%s] does not match supported platforms [%s]",
			strings.Join(enums.Properties.Platform.Enum, ", "), strings.Join(models.PlatformNames(), ", ")), nil)
	}
	if !sameSet(enums.Definitions.Location.Properties.Continent.Enum, models.ContinentNames()) {
		return nil, apperrors.NewSchemaError(path, fmt.Sprintf(
			"continent enum [%s] does not match supported continents [%s]",
			strings.Join(enums.Definitions.Location.Properties.Continent.Enum, ", "), strings.Join(models.ContinentNames(), ", ")), nil)
	}

	return &Schema{Path: path, compiled: compiled}, nil
}

// Embedded returns the schema compiled into the binary
func Embedded() (*Schema, error) {
	return Parse(EmbeddedPath, embedded)
}

// Load reads and compiles the schema file at path
func Load(fs afero.Fs, path string) (*Schema, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, apperrors.NewSchemaError(path, "could not read schema file", err)
	}
	return Parse(path, data)
}

// Resolve picks the schema file to use. An explicit path must exist; otherwise
// the first existing candidate wins. An empty result means the embedded copy.
func Resolve(fs afero.Fs, explicit string, candidates ...string) (string, error) {
	if explicit != "" {
		if ok, _ := afero.Exists(fs, explicit); !ok {
			return "", apperrors.NewSchemaError(explicit, "schema file not found", os.ErrNotExist)
		}
		return explicit, nil
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if ok, _ := afero.Exists(fs, c); ok {
			return c, nil
		}
	}
	return "", nil
}

// Open resolves and loads the schema, falling back to the embedded copy
func Open(fs afero.Fs, explicit string, candidates ...string) (*Schema, error) {
	path, err := Resolve(fs, explicit, candidates...)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Embedded()
	}
	return Load(fs, path)
}

// Validate checks one JSON-compatible value against the schema
func (s *Schema) Validate(value interface{}) (*gojsonschema.Result, error) {
	return s.compiled.Validate(gojsonschema.NewGoLoader(value))
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
