package csvparser

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/ginjaninja78/kf2ate/internal/config"
	"github.com/ginjaninja78/kf2ate/internal/types"
)

var utf8Settings = config.CSVSettings{Encoding: "UTF-8", Delimiter: ','}

func TestStreamingParser(t *testing.T) {
	input := "氏名,フリガナ\n山田太郎,ヤマダタロウ\n\" 佐藤 \",\n"

	p, err := NewStreamingParser(strings.NewReader(input), utf8Settings)
	require.NoError(t, err)
	assert.Equal(t, []string{"氏名", "フリガナ"}, p.Headers())
	assert.Equal(t, 1, p.RowNumber())

	var records []types.Record
	for p.Next() {
		records = append(records, p.Record())
	}
	require.NoError(t, p.Err())

	assert.Equal(t, []types.Record{
		{"山田太郎", "ヤマダタロウ"},
		{" 佐藤 ", ""},
	}, records)
	assert.Equal(t, 3, p.RowNumber())
}

func TestStreamingParserShiftJIS(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String("氏名,敬称\n山田太郎,様\n")
	require.NoError(t, err)

	p, err := NewStreamingParser(bytes.NewReader([]byte(encoded)), config.CSVSettings{Encoding: "Shift_JIS"})
	require.NoError(t, err)
	assert.Equal(t, []string{"氏名", "敬称"}, p.Headers())

	require.True(t, p.Next())
	assert.Equal(t, types.Record{"山田太郎", "様"}, p.Record())
	assert.False(t, p.Next())
	require.NoError(t, p.Err())
}

func TestStreamingParserStripsBOM(t *testing.T) {
	p, err := NewStreamingParser(strings.NewReader("\ufeff氏名\n山田\n"), utf8Settings)
	require.NoError(t, err)
	assert.Equal(t, []string{"氏名"}, p.Headers())
}

func TestStreamingParserDelimiter(t *testing.T) {
	p, err := NewStreamingParser(strings.NewReader("氏名\tフリガナ\na\tb\n"), config.CSVSettings{Encoding: "UTF-8", Delimiter: '\t'})
	require.NoError(t, err)
	assert.Equal(t, []string{"氏名", "フリガナ"}, p.Headers())
}

func TestStreamingParserRaggedRow(t *testing.T) {
	p, err := NewStreamingParser(strings.NewReader("a,b\n1,2\n3\n4,5\n"), utf8Settings)
	require.NoError(t, err)

	require.True(t, p.Next())
	assert.False(t, p.Next())
	require.ErrorIs(t, p.Err(), csv.ErrFieldCount)
	assert.Nil(t, p.Record())
	assert.False(t, p.Next(), "parser stays stopped after an error")
}

func TestStreamingParserEmpty(t *testing.T) {
	_, err := NewStreamingParser(strings.NewReader(""), utf8Settings)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestStreamingParserUnknownEncoding(t *testing.T) {
	_, err := NewStreamingParser(strings.NewReader("a\n"), config.CSVSettings{Encoding: "no-such-encoding"})
	require.Error(t, err)
}

func TestReadHeader(t *testing.T) {
	header, err := ReadHeader(strings.NewReader("識別番号,氏名\n1,2,3\n"), utf8Settings)
	require.NoError(t, err)
	assert.Equal(t, []string{"識別番号", "氏名"}, header)
}

func TestStreamingParserInvalidBytes(t *testing.T) {
	header, err := japanese.ShiftJIS.NewEncoder().String("氏名,敬称\n")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		settings config.CSVSettings
		row, col int
	}{
		{"shift_jis cell", header + "A\xff\xfdB,様\n", config.CSVSettings{Encoding: "Shift_JIS"}, 2, 1},
		{"shift_jis header", "a,\xff\n", config.CSVSettings{Encoding: "Shift_JIS"}, 1, 2},
		{"utf-8 cell", "氏名,敬称\nok,A\xff\xfdB\n", utf8Settings, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewStreamingParser(strings.NewReader(tt.input), tt.settings)
			if err == nil {
				assert.False(t, p.Next())
				assert.Nil(t, p.Record())
				err = p.Err()
			}

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.row, decodeErr.Row)
			assert.Equal(t, tt.col, decodeErr.Column)
			assert.Equal(t, tt.settings.Encoding, decodeErr.Encoding)
		})
	}
}
