// Package directory reads the structured data file shared by the validator
// and the renderer.
package directory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/models"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// GroupsKey is the key holding the entries in the wrapped layout
	GroupsKey = "groups"

	rootPath = "$"
)

var yamlLineRe = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// Document is a parsed data file with the node holding the records located
type Document struct {
	Root    *yaml.Node // mapping or sequence at the top of the file
	Records *yaml.Node // sequence of entries, nil when the list is empty
	Prefix  string     // path of the records sequence: "$" or "$.groups"
	Version string
}

// Len returns the number of records
func (d *Document) Len() int {
	if d.Records == nil {
		return 0
	}
	return len(d.Records.Content)
}

// Record returns the node of record i
func (d *Document) Record(i int) *yaml.Node {
	return Resolve(d.Records.Content[i])
}

// RecordPath returns the path of record i, e.g. "$.groups[3]"
func (d *Document) RecordPath(i int) string {
	return d.Prefix + "[" + strconv.Itoa(i) + "]"
}

// Parse parses data and locates the entries. It fails with a ParseError on
// malformed YAML and with a ShapeError when the top-level value is neither a
// sequence nor a mapping with a "groups" sequence.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, toParseError(err)
	}
	if err := checkKeys(&doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, apperrors.NewShapeError("a sequence of entries", "an empty document")
	}

	root := Resolve(doc.Content[0])
	switch root.Kind {
	case yaml.SequenceNode:
		return &Document{Root: root, Records: root, Prefix: rootPath}, nil
	case yaml.MappingNode:
		out := &Document{Root: root, Prefix: rootPath + "." + GroupsKey}
		var found bool
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], Resolve(root.Content[i+1])
			switch key.Value {
			case "version":
				out.Version = value.Value
			case GroupsKey:
				found = true
				switch {
				case value.Kind == yaml.SequenceNode:
					out.Records = value
				case value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null":
					// "groups:" with nothing under it
				default:
					return nil, apperrors.NewShapeError(`"groups" to be a sequence of entries`, KindName(value))
				}
			}
		}
		if !found {
			return nil, apperrors.NewShapeError(`a sequence of entries or a mapping with a "groups" key`, "a mapping without \"groups\"")
		}
		return out, nil
	}
	return nil, apperrors.NewShapeError("a sequence of entries", KindName(root))
}

// Entries decodes every record into models.Entry. Platform and continent
// values outside their closed sets fail with InvalidEnumError.
func (d *Document) Entries() ([]models.Entry, error) {
	if d.Records == nil {
		return []models.Entry{}, nil
	}
	entries := make([]models.Entry, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		var e models.Entry
		if err := d.Record(i).Decode(&e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", d.RecordPath(i), err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Decode parses data and decodes its entries
func Decode(data []byte) ([]models.Entry, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.Entries()
}

// ReadFile reads and decodes the data file at path
func ReadFile(fs afero.Fs, path string) ([]models.Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Resolve follows alias nodes to the node they point at
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// KindName describes the type of a node the way diagnostics name it
func KindName(n *yaml.Node) string {
	n = Resolve(n)
	if n == nil {
		return "nothing"
	}
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return "string"
		case "!!int":
			return "integer"
		case "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		case "!!timestamp":
			return "timestamp"
		}
		return "scalar"
	}
	return "unknown"
}

// checkKeys rejects a mapping that repeats a key. Decoding into a yaml.Node
// keeps both, while decoding into a struct does not.
func checkKeys(n *yaml.Node) error {
	if n == nil || n.Kind == yaml.AliasNode {
		return nil
	}
	if n.Kind == yaml.MappingNode {
		seen := make(map[string]*yaml.Node, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode || key.ShortTag() == "!!merge" {
				continue
			}
			if first, ok := seen[key.Value]; ok {
				return apperrors.NewParseError(key.Line, key.Column,
					fmt.Sprintf("mapping key %q already defined at line %d", key.Value, first.Line))
			}
			seen[key.Value] = key
		}
	}
	for _, c := range n.Content {
		if err := checkKeys(c); err != nil {
			return err
		}
	}
	return nil
}

func toParseError(err error) error {
	msg := err.Error()
	if m := yamlLineRe.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return apperrors.NewParseError(line, 0, m[2])
	}
	return apperrors.NewParseError(0, 0, strings.TrimPrefix(msg, "yaml: "))
}
