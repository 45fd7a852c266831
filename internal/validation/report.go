package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format selects how a report is written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatGHA  Format = "gha" // GitHub Actions workflow commands
)

// Formats lists the supported output formats
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatGHA)}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatGHA:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q (allowed: %s)", s, strings.Join(Formats(), ", "))
}

type jsonViolation struct {
	Type    string `json:"type"`
	Record  int    `json:"record"`
	Path    string `json:"path"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
}

type jsonReport struct {
	Status     string          `json:"status"`
	File       string          `json:"file"`
	Schema     string          `json:"schema,omitempty"`
	Records    int             `json:"records"`
	ErrorCount int             `json:"errorCount"`
	Errors     []jsonViolation `json:"errors"`
}

// Write renders the report in the given format
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return r.writeJSON(w)
	case FormatGHA:
		return r.writeGHA(w)
	default:
		return r.writeText(w)
	}
}

// Summary is the one-line outcome of the run
func (r *Report) Summary() string {
	if r.Valid() {
		return fmt.Sprintf("%s: valid (%d entries)", r.File, r.Records)
	}
	return fmt.Sprintf("%s: %d error(s) found", r.File, len(r.Violations))
}

func (r *Report) writeText(w io.Writer) error {
	if r.Valid() {
		_, err := fmt.Fprintln(w, r.Summary())
		return err
	}
	for _, v := range r.Violations {
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.location(v), v); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) location(v Violation) string {
	switch {
	case v.Line > 0 && v.Column > 0:
		return fmt.Sprintf("%s:%d:%d", r.File, v.Line, v.Column)
	case v.Line > 0:
		return fmt.Sprintf("%s:%d", r.File, v.Line)
	}
	return r.File
}

func (r *Report) writeJSON(w io.Writer) error {
	out := jsonReport{
		Status:     "ok",
		File:       r.File,
		Schema:     r.SchemaPath,
		Records:    r.Records,
		ErrorCount: len(r.Violations),
		Errors:     make([]jsonViolation, 0, len(r.Violations)),
	}
	if !r.Valid() {
		out.Status = "error"
	}
	for _, v := range r.Violations {
		out.Errors = append(out.Errors, jsonViolation{
			Type:    v.Kind(),
			Record:  v.Record,
			Path:    v.Path,
			Field:   v.Field,
			Value:   v.Value,
			Line:    v.Line,
			Column:  v.Column,
			Message: v.Message(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (r *Report) writeGHA(w io.Writer) error {
	if r.Valid() {
		_, err := fmt.Fprintf(w, "::notice file=%s::%s\n", escapeProperty(r.File), escapeData(r.Summary()))
		return err
	}
	for _, v := range r.Violations {
		line := v.Line
		if line == 0 {
			line = 1
		}
		col := v.Column
		if col == 0 {
			col = 1
		}
		msg := fmt.Sprintf("%s: %s (%s)", v.Kind(), v.Message(), v.Path)
		if _, err := fmt.Fprintf(w, "::error file=%s,line=%d,col=%d::%s\n",
			escapeProperty(r.File), line, col, escapeData(msg)); err != nil {
			return err
		}
	}
	return nil
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
