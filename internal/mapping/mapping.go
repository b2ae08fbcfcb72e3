// =============================================================================
// kf2ate - Mapping Tables
// =============================================================================
//
// This module holds the static tables that drive the conversion:
//   1. Field mapping: Kansei Hagaki II column -> ATE column (or drop)
//   2. Fixed fields:  ATE column -> constant value
//   3. Destination schema: ordered ATE column list (output contract)
//
// A Table bundles the three and precomputes the destination column index.
// Tables are never mutated after construction; overrides produce a new Table.
//
// =============================================================================

package mapping

import (
	"fmt"

	"github.com/ginjaninja78/kf2ate/internal/types"
)

// Destination column names.
const (
	ColCategory       = "宛名区分"
	ColPrintFlag      = "印字区分"
	ColName           = "名前"
	ColKana           = "カナ"
	ColHonorific      = "敬称"
	ColSex            = "性別"
	ColBirthDate      = "生年月日"
	ColPostalCode     = "郵便番号"
	ColPrefecture     = "都道府県"
	ColAddress1       = "住所１"
	ColAddress2       = "住所２"
	ColPhone          = "電話番号"
	ColFax            = "ＦＡＸ"
	ColMobile         = "携帯番号"
	ColEmail          = "メール"
	ColHomepage       = "ＨＰ"
	ColCategoryMajor  = "大分類"
	ColCategoryMinor1 = "小分類"
	ColCategoryMinor2 = "小分類２"
	ColNote1          = "備考１"
	ColNote2          = "備考２"
	ColPhoto          = "顔写真"
	ColUpdated        = "更新日"
	ColRegistered     = "登録日"
)

// =============================================================================
// BUILT-IN TABLES
// =============================================================================

// destinationSchema is the ATE import column order. Changing it changes the
// output format.
var destinationSchema = []string{
	ColCategory, ColPrintFlag, ColName, ColKana, ColHonorific, ColSex,
	ColBirthDate, ColPostalCode, ColPrefecture, ColAddress1, ColAddress2,
	ColPhone, ColFax, ColMobile, ColEmail, ColHomepage, ColCategoryMajor,
	ColCategoryMinor1, ColCategoryMinor2, ColNote1, ColNote2, ColPhoto,
	ColUpdated, ColRegistered,
}

// fixedFields are written to every output row.
var fixedFields = []types.FixedField{
	{Column: ColCategory, Value: "0"},  // 0: addressee, 1: sender
	{Column: ColPrintFlag, Value: "1"}, // 1: print, 0: skip
}

// fieldMapping lists every column the Kansei Hagaki II export produces.
// 性別, 都道府県 and the category columns have no source and stay empty.
var fieldMapping = []Entry{
	{"識別番号", types.Drop()},
	{"氏名", types.To(ColName)},
	{"フリガナ", types.To(ColKana)},
	{"生年月日", types.To(ColBirthDate)},
	{"コールサイン", types.Drop()},
	{"会員コード", types.Drop()},
	{"敬称", types.To(ColHonorific)},
	{"年賀フラグ", types.Drop()},
	{"暑中フラグ", types.Drop()},
	{"クリスマスフラグ", types.Drop()},
	{"喪中フラグ", types.Drop()},
	{"連名", types.To(ColNote1)},
	{"自宅郵便番号", types.To(ColPostalCode)},
	{"自宅住所１", types.To(ColAddress1)},
	{"自宅住所２", types.To(ColAddress2)},
	{"自宅電話番号", types.To(ColPhone)},
	{"自宅Ｆａｘ番号", types.To(ColFax)},
	{"個人携帯電話", types.To(ColMobile)},
	{"個人メールアドレス", types.To(ColEmail)},
	{"個人ホームページ", types.To(ColHomepage)},
	{"勤務先フリガナ", types.Drop()},
	{"勤務先名", types.Drop()},
	{"勤務先郵便番号", types.Drop()},
	{"勤務先住所１", types.Drop()},
	{"勤務先住所２", types.Drop()},
	{"部署名", types.Drop()},
	{"役職名", types.Drop()},
	{"勤務先電話番号", types.Drop()},
	{"勤務先Ｆａｘ番号", types.Drop()},
	{"勤務先携帯電話番号", types.Drop()},
	{"勤務先内線番号", types.Drop()},
	{"勤務先メールアドレス", types.Drop()},
	{"勤務先ホームページ", types.Drop()},
	{"実家郵便番号", types.Drop()},
	{"実家住所１", types.Drop()},
	{"実家住所２", types.Drop()},
	{"実家電話番号", types.Drop()},
	{"実家Ｆａｘ番号", types.Drop()},
	{"実家携帯電話番号", types.Drop()},
	{"備考", types.Drop()},
	{"登録年月日", types.Drop()},
	{"更新年月日", types.Drop()},
}

var defaultTable = mustNew(fieldMapping, fixedFields, destinationSchema)

// Default returns the built-in Kansei Hagaki II -> ATE table.
func Default() *Table {
	return defaultTable
}

// =============================================================================
// TABLE
// =============================================================================

// Entry maps one source column.
type Entry struct {
	Source string
	Target types.Target
}

// Table is an immutable set of mapping tables.
type Table struct {
	entries []Entry
	fields  map[string]types.Target
	fixed   []types.FixedField
	schema  []string
	index   map[string]int
}

// InvalidTargetError reports a mapping whose destination column is not part
// of the destination schema.
type InvalidTargetError struct {
	// Source is the source column, or "" for a fixed field.
	Source string

	// Column is the unknown destination column.
	Column string
}

func (e *InvalidTargetError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("fixed field targets unknown destination column %q", e.Column)
	}
	return fmt.Sprintf("field %q maps to unknown destination column %q", e.Source, e.Column)
}

// New builds a Table and checks that every target and fixed column exists in
// schema. The slices are copied.
func New(entries []Entry, fixed []types.FixedField, schema []string) (*Table, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("destination schema is empty")
	}

	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		fields:  make(map[string]types.Target, len(entries)),
		fixed:   append([]types.FixedField(nil), fixed...),
		schema:  append([]string(nil), schema...),
		index:   make(map[string]int, len(schema)),
	}

	for i, name := range t.schema {
		if name == "" {
			return nil, fmt.Errorf("destination column %d has no name", i+1)
		}
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("duplicate destination column %q", name)
		}
		t.index[name] = i
	}

	for _, e := range entries {
		if e.Source == "" {
			return nil, fmt.Errorf("field mapping has an empty source column")
		}
		if _, dup := t.fields[e.Source]; dup {
			return nil, fmt.Errorf("duplicate source column %q", e.Source)
		}
		if col, ok := e.Target.Column(); ok {
			if _, known := t.index[col]; !known {
				return nil, &InvalidTargetError{Source: e.Source, Column: col}
			}
		}
		t.fields[e.Source] = e.Target
		t.entries = append(t.entries, e)
	}

	for _, f := range t.fixed {
		if _, known := t.index[f.Column]; !known {
			return nil, &InvalidTargetError{Column: f.Column}
		}
	}

	return t, nil
}

func mustNew(entries []Entry, fixed []types.FixedField, schema []string) *Table {
	t, err := New(entries, fixed, schema)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the target for a source column. ok is false when the column
// is not part of the source schema.
func (t *Table) Lookup(source string) (target types.Target, ok bool) {
	target, ok = t.fields[source]
	return target, ok
}

// Has reports whether source is part of the source schema.
func (t *Table) Has(source string) bool {
	_, ok := t.fields[source]
	return ok
}

// Index returns the position of a destination column.
func (t *Table) Index(column string) (int, bool) {
	i, ok := t.index[column]
	return i, ok
}

// Width is the number of destination columns.
func (t *Table) Width() int {
	return len(t.schema)
}

// Entries returns the field mapping in declaration order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// FixedFields returns the fixed destination values.
func (t *Table) FixedFields() []types.FixedField {
	return append([]types.FixedField(nil), t.fixed...)
}

// Schema returns the destination column names in output order.
func (t *Table) Schema() []string {
	return append([]string(nil), t.schema...)
}

// =============================================================================
// OVERRIDES
// =============================================================================

// Overrides adjusts a Table. Entries for existing sources replace the
// existing target in place; new sources are appended. Fixed fields for an
// existing column replace its value; new columns are appended.
type Overrides struct {
	Fields []Entry
	Fixed  []types.FixedField
}

// Empty reports whether o changes nothing.
func (o Overrides) Empty() bool {
	return len(o.Fields) == 0 && len(o.Fixed) == 0
}

// WithOverrides returns a new Table with o applied. The receiver is left
// unchanged.
func (t *Table) WithOverrides(o Overrides) (*Table, error) {
	entries := t.Entries()
	pos := make(map[string]int, len(entries))
	for i, e := range entries {
		pos[e.Source] = i
	}
	for _, e := range o.Fields {
		if i, ok := pos[e.Source]; ok {
			entries[i].Target = e.Target
			continue
		}
		pos[e.Source] = len(entries)
		entries = append(entries, e)
	}

	fixed := t.FixedFields()
	fixedPos := make(map[string]int, len(fixed))
	for i, f := range fixed {
		fixedPos[f.Column] = i
	}
	for _, f := range o.Fixed {
		if i, ok := fixedPos[f.Column]; ok {
			fixed[i].Value = f.Value
			continue
		}
		fixedPos[f.Column] = len(fixed)
		fixed = append(fixed, f)
	}

	return New(entries, fixed, t.schema)
}
