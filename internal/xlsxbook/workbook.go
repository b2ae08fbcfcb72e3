// =============================================================================
// kf2ate - Mapping Workbook
// =============================================================================
//
// This module exports the mapping table to an XLSX workbook and reads an
// edited workbook back as mapping overrides. It lets the mapping be reviewed
// and adjusted in a spreadsheet without rebuilding kf2ate.
//
// WORKBOOK LAYOUT:
//   Sheet "FieldMapping":   A = source column, B = ATE column (blank = drop)
//   Sheet "FixedFields":    A = ATE column,    B = constant value
//   Sheet "Destination":    A = position,      B = ATE column (read-only)
//
//   Row 1 of every sheet is a header row and is skipped when reading.
//
// =============================================================================

package xlsxbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/kf2ate/internal/mapping"
	"github.com/ginjaninja78/kf2ate/internal/types"
)

// Sheet names.
const (
	SheetFieldMapping = "FieldMapping"
	SheetFixedFields  = "FixedFields"
	SheetDestination  = "Destination"
)

// =============================================================================
// EXPORT
// =============================================================================

// Export writes table to a new workbook at path.
func Export(table *mapping.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the field mapping sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SheetFieldMapping); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetFixedFields); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetDestination); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	var rows [][]interface{}
	for _, e := range table.Entries() {
		col, _ := e.Target.Column()
		rows = append(rows, []interface{}{e.Source, col})
	}
	if err := writeSheet(f, SheetFieldMapping, []interface{}{"Source", "Destination"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, fx := range table.FixedFields() {
		rows = append(rows, []interface{}{fx.Column, fx.Value})
	}
	if err := writeSheet(f, SheetFixedFields, []interface{}{"Destination", "Value"}, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for i, name := range table.Schema() {
		rows = append(rows, []interface{}{i + 1, name})
	}
	if err := writeSheet(f, SheetDestination, []interface{}{"Position", "Column"}, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD
// =============================================================================

// Book is a mapping workbook read from disk.
type Book struct {
	// Overrides holds the field mapping and fixed fields of the workbook.
	Overrides mapping.Overrides

	// Destination is the column list of the Destination sheet, if present.
	Destination []string
}

// Load reads a mapping workbook.
func Load(path string) (*Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	book := &Book{}

	rows, err := f.GetRows(SheetFieldMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SheetFieldMapping, err)
	}
	for _, row := range dataRows(rows) {
		source := cell(row, 0)
		if source == "" {
			continue
		}
		target := types.Drop()
		if col := cell(row, 1); col != "" {
			target = types.To(col)
		}
		book.Overrides.Fields = append(book.Overrides.Fields, mapping.Entry{Source: source, Target: target})
	}

	if idx, _ := f.GetSheetIndex(SheetFixedFields); idx >= 0 {
		rows, err := f.GetRows(SheetFixedFields)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", SheetFixedFields, err)
		}
		for _, row := range dataRows(rows) {
			col := cell(row, 0)
			if col == "" {
				continue
			}
			book.Overrides.Fixed = append(book.Overrides.Fixed, types.FixedField{Column: col, Value: cell(row, 1)})
		}
	}

	if idx, _ := f.GetSheetIndex(SheetDestination); idx >= 0 {
		rows, err := f.GetRows(SheetDestination)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", SheetDestination, err)
		}
		for i, row := range dataRows(rows) {
			if pos := cell(row, 0); pos != "" {
				if n, err := strconv.Atoi(pos); err != nil || n != i+1 {
					return nil, fmt.Errorf("%s row %d: position %q out of order", SheetDestination, i+2, pos)
				}
			}
			book.Destination = append(book.Destination, cell(row, 1))
		}
	}

	return book, nil
}

// Apply returns table with the workbook overrides applied. The Destination
// sheet, when present, must match the table's destination schema exactly.
func (b *Book) Apply(table *mapping.Table) (*mapping.Table, error) {
	if len(b.Destination) > 0 {
		schema := table.Schema()
		if len(schema) != len(b.Destination) {
			return nil, fmt.Errorf("workbook lists %d destination columns, want %d", len(b.Destination), len(schema))
		}
		for i := range schema {
			if schema[i] != b.Destination[i] {
				return nil, fmt.Errorf("workbook destination column %d is %q, want %q", i+1, b.Destination[i], schema[i])
			}
		}
	}
	return table.WithOverrides(b.Overrides)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// dataRows skips the header row.
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
