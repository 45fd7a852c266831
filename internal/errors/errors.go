package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError represents malformed input syntax
type ParseError struct {
	Line    int // 1-based, 0 when the parser did not report a position
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Kind returns the taxonomy name of the error
func (e *ParseError) Kind() string { return "ParseError" }

// Is enables errors.Is() comparison for ParseError
func (e *ParseError) Is(target error) bool {
	_, ok := target.(*ParseError)
	return ok
}

// ShapeError represents a document whose top-level structure is wrong
type ShapeError struct {
	Expected string
	Got      string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected document shape: expected %s, got %s", e.Expected, e.Got)
}

func (e *ShapeError) Kind() string { return "ShapeError" }

// Is enables errors.Is() comparison for ShapeError
func (e *ShapeError) Is(target error) bool {
	_, ok := target.(*ShapeError)
	return ok
}

// MissingFieldError represents a required field that is absent or empty
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) Kind() string { return "MissingFieldError" }

// Is enables errors.Is() comparison for MissingFieldError
func (e *MissingFieldError) Is(target error) bool {
	_, ok := target.(*MissingFieldError)
	return ok
}

// TypeMismatchError represents a field holding a value of the wrong type
type TypeMismatchError struct {
	Field    string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q must be %s, got %s", e.Field, e.Expected, e.Got)
}

func (e *TypeMismatchError) Kind() string { return "TypeMismatchError" }

// Is enables errors.Is() comparison for TypeMismatchError
func (e *TypeMismatchError) Is(target error) bool {
	_, ok := target.(*TypeMismatchError)
	return ok
}

// InvalidEnumError represents a value outside a closed set (platform, continent)
type InvalidEnumError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("field %q has unsupported value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("field %q has unsupported value %q (allowed: %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidEnumError) Kind() string { return "InvalidEnumError" }

// Is enables errors.Is() comparison for InvalidEnumError
func (e *InvalidEnumError) Is(target error) bool {
	_, ok := target.(*InvalidEnumError)
	return ok
}

// InvalidLocationError represents a location that breaks the
// continent > country > city chain, or a malformed country code
type InvalidLocationError struct {
	Field   string
	Value   string
	Message string
}

func (e *InvalidLocationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid location: %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid location: %s: %s", e.Field, e.Message)
}

func (e *InvalidLocationError) Kind() string { return "InvalidLocationError" }

// Is enables errors.Is() comparison for InvalidLocationError
func (e *InvalidLocationError) Is(target error) bool {
	_, ok := target.(*InvalidLocationError)
	return ok
}

// InvalidURLError represents a url that fails the generic syntax check
type InvalidURLError struct {
	Value  string
	Reason string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.Value, e.Reason)
}

func (e *InvalidURLError) Kind() string { return "InvalidUrlError" }

// Is enables errors.Is() comparison for InvalidURLError
func (e *InvalidURLError) Is(target error) bool {
	_, ok := target.(*InvalidURLError)
	return ok
}

// UnknownFieldError represents a property the schema does not declare
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

func (e *UnknownFieldError) Kind() string { return "UnknownFieldError" }

// Is enables errors.Is() comparison for UnknownFieldError
func (e *UnknownFieldError) Is(target error) bool {
	_, ok := target.(*UnknownFieldError)
	return ok
}

// ConstraintError represents any other schema constraint violation
// (length limits, patterns, array sizes)
type ConstraintError struct {
	Field   string
	Message string
}

func (e *ConstraintError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ConstraintError) Kind() string { return "ConstraintError" }

// Is enables errors.Is() comparison for ConstraintError
func (e *ConstraintError) Is(target error) bool {
	_, ok := target.(*ConstraintError)
	return ok
}

// UnknownLocationError is returned by the renderer when a location cannot be
// placed in the geography display table
type UnknownLocationError struct {
	Entry     string
	Continent string
	CountryID string
	Message   string
}

func (e *UnknownLocationError) Error() string {
	var where []string
	if e.Continent != "" {
		where = append(where, "continent "+e.Continent)
	}
	if e.CountryID != "" {
		where = append(where, "country "+e.CountryID)
	}
	msg := "unknown location"
	if len(where) > 0 {
		msg += " (" + strings.Join(where, ", ") + ")"
	}
	if e.Entry != "" {
		msg += fmt.Sprintf(" for entry %q", e.Entry)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *UnknownLocationError) Kind() string { return "UnknownLocationError" }

// Is enables errors.Is() comparison for UnknownLocationError
func (e *UnknownLocationError) Is(target error) bool {
	_, ok := target.(*UnknownLocationError)
	return ok
}

// SchemaError represents a schema-definition file that cannot be used
type SchemaError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaError) Kind() string { return "SchemaError" }

func (e *SchemaError) Unwrap() error { return e.Cause }

// Is enables errors.Is() comparison for SchemaError
func (e *SchemaError) Is(target error) bool {
	_, ok := target.(*SchemaError)
	return ok
}

// Kinded is implemented by every error of the taxonomy
type Kinded interface {
	error
	Kind() string
}

// Helper Functions

// KindOf returns the taxonomy name of err, or "Error" for foreign errors
func KindOf(err error) string {
	var k Kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "Error"
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsShape checks if an error is a ShapeError
func IsShape(err error) bool {
	var e *ShapeError
	return errors.As(err, &e)
}

// IsInvalidEnum checks if an error is an InvalidEnumError
func IsInvalidEnum(err error) bool {
	var e *InvalidEnumError
	return errors.As(err, &e)
}

// IsInvalidLocation checks if an error is an InvalidLocationError
func IsInvalidLocation(err error) bool {
	var e *InvalidLocationError
	return errors.As(err, &e)
}

// IsInvalidURL checks if an error is an InvalidURLError
func IsInvalidURL(err error) bool {
	var e *InvalidURLError
	return errors.As(err, &e)
}

// IsUnknownLocation checks if an error is an UnknownLocationError
func IsUnknownLocation(err error) bool {
	var e *UnknownLocationError
	return errors.As(err, &e)
}

// IsSchema checks if an error is a SchemaError
func IsSchema(err error) bool {
	var e *SchemaError
	return errors.As(err, &e)
}

// NewParseError creates a new ParseError
func NewParseError(line, column int, message string) error {
	return &ParseError{Line: line, Column: column, Message: message}
}

// NewShapeError creates a new ShapeError
func NewShapeError(expected, got string) error {
	return &ShapeError{Expected: expected, Got: got}
}

// NewMissingFieldError creates a new MissingFieldError
func NewMissingFieldError(field string) error {
	return &MissingFieldError{Field: field}
}

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(field, expected, got string) error {
	return &TypeMismatchError{Field: field, Expected: expected, Got: got}
}

// NewInvalidEnumError creates a new InvalidEnumError
func NewInvalidEnumError(field, value string, allowed []string) error {
	return &InvalidEnumError{Field: field, Value: value, Allowed: allowed}
}

// NewInvalidLocationError creates a new InvalidLocationError
func NewInvalidLocationError(field, value, message string) error {
	return &InvalidLocationError{Field: field, Value: value, Message: message}
}

// NewInvalidURLError creates a new InvalidURLError
func NewInvalidURLError(value, reason string) error {
	return &InvalidURLError{Value: value, Reason: reason}
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(path, message string, cause error) error {
	return &SchemaError{Path: path, Message: message, Cause: cause}
}
