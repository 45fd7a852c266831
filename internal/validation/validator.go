// Package validation checks the directory data file against the entry rules
// and the schema-definition file, collecting every violation in one pass.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rignaneseleo/groups-for-nomads/internal/directory"
	apperrors "github.com/rignaneseleo/groups-for-nomads/internal/errors"
	"github.com/rignaneseleo/groups-for-nomads/internal/schema"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Violation is one problem found in the data file
type Violation struct {
	Record int // index of the offending entry, -1 for document-level problems
	Path   string
	Field  string
	Value  string
	Line   int
	Column int
	Err    error
}

// Kind returns the taxonomy name of the violation
func (v Violation) Kind() string {
	return apperrors.KindOf(v.Err)
}

// Message returns the human readable description
func (v Violation) Message() string {
	if v.Err == nil {
		return ""
	}
	return v.Err.Error()
}

func (v Violation) String() string {
	return v.Path + ": " + v.Kind() + ": " + v.Message()
}

// Violations is an ordered list of violations usable as an error
type Violations []Violation

func (vs Violations) Error() string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "; ")
}

// Report is the outcome of one validation run
type Report struct {
	File       string
	SchemaPath string
	Records    int
	Violations Violations
}

// Valid reports whether no violation was found
func (r *Report) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns the violations as an error, nil when valid
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Violations
}

// Unparsable reports whether the file could not be read as YAML at all
func (r *Report) Unparsable() bool {
	return len(r.Violations) == 1 && apperrors.IsParse(r.Violations[0].Err)
}

// Options tune a validation run
type Options struct {
	// FailFast keeps only the first violation in document order
	FailFast bool
}

// Validator checks data files. It holds no per-run state.
type Validator struct {
	schema *schema.Schema
	fields *validator.Validate
	opts   Options
}

// NewValidator creates a new Validator
func NewValidator(s *schema.Schema, opts Options) *Validator {
	return &Validator{
		schema: s,
		fields: validator.New(),
		opts:   opts,
	}
}

// Validate checks data and reports every violation found. It never touches
// anything but its arguments.
func (v *Validator) Validate(data []byte) *Report {
	report := &Report{}
	if v.schema != nil {
		report.SchemaPath = v.schema.Path
	}

	doc, err := directory.Parse(data)
	if err != nil {
		viol := Violation{Record: -1, Path: "$", Err: err}
		var pe *apperrors.ParseError
		if errors.As(err, &pe) {
			viol.Line, viol.Column = pe.Line, pe.Column
		}
		report.Violations = Violations{viol}
		return report
	}

	report.Records = doc.Len()
	for i := 0; i < doc.Len(); i++ {
		rc := &recordCheck{v: v, index: i, path: doc.RecordPath(i)}
		node := doc.Record(i)
		rc.checkRecord(node)
		if v.schema != nil {
			rc.schemaPass(node)
		}
		report.Violations = append(report.Violations, rc.out...)
	}

	sort.SliceStable(report.Violations, func(i, j int) bool {
		a, b := report.Violations[i], report.Violations[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	if v.opts.FailFast && len(report.Violations) > 1 {
		report.Violations = report.Violations[:1]
	}
	return report
}

// ValidateFile reads and checks the data file at path. Only a read failure
// is returned as an error; everything else ends up in the report.
func (v *Validator) ValidateFile(fs afero.Fs, path string) (*Report, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	report := v.Validate(data)
	report.File = path
	return report, nil
}

// recordCheck collects the violations of a single entry
type recordCheck struct {
	v     *Validator
	index int
	path  string
	out   []Violation
}

func (rc *recordCheck) add(path, field string, at *yaml.Node, err error) {
	viol := Violation{Record: rc.index, Path: path, Field: field, Err: err}
	if at = directory.Resolve(at); at != nil {
		viol.Line, viol.Column = at.Line, at.Column
		if at.Kind == yaml.ScalarNode {
			viol.Value = at.Value
		}
	}
	rc.out = append(rc.out, viol)
}

// covers reports whether a violation was already recorded at path, at one of
// its parents or below it
func (rc *recordCheck) covers(path string) bool {
	for _, o := range rc.out {
		if related(o.Path, path) || related(path, o.Path) {
			return true
		}
	}
	return false
}

func related(path, prefix string) bool {
	if path == prefix {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	next := path[len(prefix)]
	return next == '.' || next == '['
}
