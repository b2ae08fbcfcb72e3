// =============================================================================
// kf2ate - Validation Engine
// =============================================================================
//
// This module checks a source CSV header against the field mapping. The only
// validation kf2ate performs is this allow-list check: every header name must
// be a known Kansei Hagaki II column. Cell contents are never inspected.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UnknownFieldError reports a header name that is not part of the source
// schema.
type UnknownFieldError struct {
	// Field is the offending header name.
	Field string

	// Column is the 1-based header position.
	Column int
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q (column %d)", e.Field, e.Column)
}

// UnknownFieldsError collects every unknown header name.
type UnknownFieldsError struct {
	Fields []*UnknownFieldError
}

func (e *UnknownFieldsError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = fmt.Sprintf("%q", f.Field)
	}
	return fmt.Sprintf("%d unknown field(s): %s", len(e.Fields), strings.Join(names, ", "))
}

// Unwrap exposes the individual errors to errors.As.
func (e *UnknownFieldsError) Unwrap() []error {
	errs := make([]error, len(e.Fields))
	for i, f := range e.Fields {
		errs[i] = f
	}
	return errs
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// FieldSet is the allow-list consulted by the validator. *mapping.Table
// satisfies it.
type FieldSet interface {
	Has(source string) bool
}

// ValidateHeader returns an *UnknownFieldError for the first header name not
// in fields.
func ValidateHeader(header []string, fields FieldSet) error {
	for i, name := range header {
		if !fields.Has(name) {
			return &UnknownFieldError{Field: name, Column: i + 1}
		}
	}
	return nil
}

// ValidateHeaderAll checks every header name and returns an
// *UnknownFieldsError listing all unknown names, or nil.
func ValidateHeaderAll(header []string, fields FieldSet) error {
	var unknown []*UnknownFieldError
	for i, name := range header {
		if !fields.Has(name) {
			unknown = append(unknown, &UnknownFieldError{Field: name, Column: i + 1})
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return &UnknownFieldsError{Fields: unknown}
}
