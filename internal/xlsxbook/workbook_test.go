package xlsxbook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/kf2ate/internal/mapping"
)

func TestExportLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.xlsx")
	table := mapping.Default()
	require.NoError(t, Export(table, path))

	book, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, table.Schema(), book.Destination)
	assert.Len(t, book.Overrides.Fields, len(table.Entries()))

	applied, err := book.Apply(table)
	require.NoError(t, err)
	assert.Equal(t, table.Entries(), applied.Entries())
	assert.Equal(t, table.FixedFields(), applied.FixedFields())
	assert.Equal(t, table.Schema(), applied.Schema())
}

func TestLoadEditedWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.xlsx")
	require.NoError(t, Export(mapping.Default(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	// Row 2 is 識別番号 (dropped), row 3 is 氏名.
	require.NoError(t, f.SetCellValue(SheetFieldMapping, "B2", "備考２"))
	require.NoError(t, f.SetCellValue(SheetFieldMapping, "B3", ""))
	require.NoError(t, f.SetSheetRow(SheetFieldMapping, "A44", &[]interface{}{"性別区分", "性別"}))
	require.NoError(t, f.SetCellValue(SheetFixedFields, "B3", "0"))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	book, err := Load(path)
	require.NoError(t, err)
	table, err := book.Apply(mapping.Default())
	require.NoError(t, err)

	target, _ := table.Lookup("識別番号")
	assert.Equal(t, "備考２", target.String())
	target, _ = table.Lookup("氏名")
	assert.True(t, target.IsDrop())
	target, ok := table.Lookup("性別区分")
	require.True(t, ok)
	assert.Equal(t, "性別", target.String())
	assert.Equal(t, "0", table.FixedFields()[1].Value)
}

func TestApplyRejectsReorderedDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.xlsx")
	require.NoError(t, Export(mapping.Default(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(SheetDestination, "B2", "印字区分"))
	require.NoError(t, f.SetCellValue(SheetDestination, "B3", "宛名区分"))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	book, err := Load(path)
	require.NoError(t, err)
	_, err = book.Apply(mapping.Default())
	require.ErrorContains(t, err, "destination column 1")
}

func TestApplyRejectsUnknownTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.xlsx")
	require.NoError(t, Export(mapping.Default(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(SheetFieldMapping, "B3", "存在しない"))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	book, err := Load(path)
	require.NoError(t, err)

	_, err = book.Apply(mapping.Default())
	var invalid *mapping.InvalidTargetError
	require.ErrorAs(t, err, &invalid)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
}
