// =============================================================================
// kf2ate - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - mapping
//   - validation
//   - converter
//   - xlsxbook
//
// =============================================================================

package types

// =============================================================================
// MAPPING TARGET
// =============================================================================

// Target is the destination of a source column: either a destination column
// name or a drop. The zero value is a drop.
type Target struct {
	column string
	ok     bool
}

// To returns a Target that copies the source value into column.
func To(column string) Target {
	return Target{column: column, ok: true}
}

// Drop returns a Target that discards the source value.
func Drop() Target {
	return Target{}
}

// Column returns the destination column name and true, or "" and false for
// a drop.
func (t Target) Column() (string, bool) {
	return t.column, t.ok
}

// IsDrop reports whether the source column is excluded from the output.
func (t Target) IsDrop() bool {
	return !t.ok
}

// String renders the target for listings. Drops render as "-".
func (t Target) String() string {
	if !t.ok {
		return "-"
	}
	return t.column
}

// =============================================================================
// RECORD TYPES
// =============================================================================

// Record is one CSV row: cell values positionally aligned to a header.
type Record []string

// FixedField is a destination column that always carries a constant value.
type FixedField struct {
	// Column is the destination column name.
	Column string

	// Value is written to Column in every output row.
	Value string
}
