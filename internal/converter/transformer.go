// =============================================================================
// kf2ate - Row Translator
// =============================================================================
//
// This module turns one Kansei Hagaki II record into one ATE row.
//
// TRANSLATION STEPS:
//   1. Start from a row of empty strings, one per destination column
//   2. Write the fixed field constants (宛名区分, 印字区分)
//   3. Copy every mapped source cell into its destination column
//
// Dropped source columns are ignored. Destination columns with no source and
// no fixed value stay empty. Cell values are copied as-is.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/kf2ate/internal/mapping"
	"github.com/ginjaninja78/kf2ate/internal/types"
	"github.com/ginjaninja78/kf2ate/internal/validation"
)

// ErrArity is returned for a record whose field count differs from the
// header.
var ErrArity = errors.New("record length does not match header")

// Translator translates records of one source header. The header is
// validated and resolved to destination indices once, in NewTranslator.
type Translator struct {
	width int

	// fixed holds destination index -> constant.
	fixed []fixedValue

	// plan holds, per source position, the destination index or -1 for a
	// drop.
	plan []int
}

type fixedValue struct {
	index int
	value string
}

// NewTranslator validates header against table and precomputes the copy
// plan. An unknown header name returns *validation.UnknownFieldError.
func NewTranslator(table *mapping.Table, header []string) (*Translator, error) {
	if err := validation.ValidateHeader(header, table); err != nil {
		return nil, err
	}

	t := &Translator{
		width: table.Width(),
		plan:  make([]int, len(header)),
	}

	for _, f := range table.FixedFields() {
		// New guarantees fixed columns are in the schema.
		i, _ := table.Index(f.Column)
		t.fixed = append(t.fixed, fixedValue{index: i, value: f.Value})
	}

	for pos, name := range header {
		target, _ := table.Lookup(name)
		t.plan[pos] = destinationIndex(table, target)
	}

	return t, nil
}

func destinationIndex(table *mapping.Table, target types.Target) int {
	col, ok := target.Column()
	if !ok {
		return -1
	}
	i, _ := table.Index(col)
	return i
}

// Width is the number of fields in every translated row.
func (t *Translator) Width() int {
	return t.width
}

// Translate returns the destination row for record. When two source columns
// map to the same destination the later one wins.
func (t *Translator) Translate(record types.Record) ([]string, error) {
	if len(record) != len(t.plan) {
		return nil, fmt.Errorf("%w: got %d fields, header has %d", ErrArity, len(record), len(t.plan))
	}

	row := make([]string, t.width)

	for _, f := range t.fixed {
		row[f.index] = f.value
	}

	for pos, dst := range t.plan {
		if dst < 0 {
			continue
		}
		row[dst] = record[pos]
	}

	return row, nil
}
