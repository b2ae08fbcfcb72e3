// =============================================================================
// kf2ate - CSV Parser Module
// =============================================================================
//
// This module reads the Kansei Hagaki II CSV export. The export is a plain
// header-driven CSV:
//   - Row 1 names the columns
//   - Every following row is one address-book record
//   - The file is Shift_JIS encoded unless configured otherwise
//
// Parsing is strict: every record must have as many fields as the header.
// Ragged rows surface as the encoding/csv error for that row, and bytes that
// are not valid in the input encoding surface as a DecodeError.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/ginjaninja78/kf2ate/internal/config"
	"github.com/ginjaninja78/kf2ate/internal/textenc"
	"github.com/ginjaninja78/kf2ate/internal/types"
)

// ErrEmptyInput is returned when the source has no header row.
var ErrEmptyInput = errors.New("CSV input is empty")

const utf8BOM = "\ufeff"

// DecodeError reports a cell that is not valid in the input encoding.
type DecodeError struct {
	// Row is the 1-based row number, counting the header as row 1.
	Row int

	// Column is the 1-based column number.
	Column int

	// Encoding is the configured input encoding name.
	Encoding string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("row %d, column %d: invalid %s byte sequence", e.Row, e.Column, e.Encoding)
}

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads records one at a time.
//
// USAGE:
//   parser, err := NewStreamingParser(r, settings)
//   if err != nil {
//       return err
//   }
//
//   for parser.Next() {
//       record := parser.Record()
//       // Process the record...
//   }
//
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	reader    *csv.Reader
	enc       encoding.Encoding
	encName   string
	headers   []string
	current   types.Record
	rowNumber int
	err       error
}

// NewStreamingParser decodes r with the configured encoding and reads the
// header row.
func NewStreamingParser(r io.Reader, settings config.CSVSettings) (*StreamingParser, error) {
	enc, err := textenc.Lookup(settings.Encoding)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bufio.NewReader(textenc.NewReader(r, enc)))
	configureReader(reader, settings)

	parser := &StreamingParser{reader: reader, enc: enc, encName: settings.Encoding}
	if err := parser.readHeaders(); err != nil {
		return nil, err
	}

	return parser, nil
}

// configureReader sets up strict parsing: fixed field count, standard
// quoting and no trimming of cell values.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	if settings.Delimiter != 0 {
		reader.Comma = settings.Delimiter
	}
	reader.FieldsPerRecord = 0
	reader.LazyQuotes = false
	reader.TrimLeadingSpace = false
	reader.ReuseRecord = false
}

// readHeaders reads the header row.
func (p *StreamingParser) readHeaders() error {
	row, err := p.reader.Read()
	if err == io.EOF {
		return ErrEmptyInput
	}
	if err != nil {
		return fmt.Errorf("error reading header row: %w", err)
	}
	p.rowNumber++

	if err := p.checkDecoded(row); err != nil {
		return err
	}
	if len(row) > 0 {
		row[0] = strings.TrimPrefix(row[0], utf8BOM)
	}

	p.headers = row
	return nil
}

// Next advances to the next record. Returns false at end of input or on
// error; check Err afterwards.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	row, err := p.reader.Read()
	if err == io.EOF {
		p.current = nil
		return false
	}
	if err != nil {
		p.err = fmt.Errorf("error reading row %d: %w", p.rowNumber+1, err)
		p.current = nil
		return false
	}

	p.rowNumber++
	if err := p.checkDecoded(row); err != nil {
		p.err = err
		p.current = nil
		return false
	}

	p.current = row
	return true
}

// checkDecoded rejects the current row if any cell lost bytes in decoding.
func (p *StreamingParser) checkDecoded(row []string) error {
	for i, cell := range row {
		if !textenc.Valid(p.enc, cell) {
			return &DecodeError{Row: p.rowNumber, Column: i + 1, Encoding: p.encName}
		}
	}
	return nil
}

// Record returns the current record.
func (p *StreamingParser) Record() types.Record {
	return p.current
}

// Headers returns the header row.
func (p *StreamingParser) Headers() []string {
	return p.headers
}

// RowNumber returns the 1-based row number of the current record, counting
// the header as row 1.
func (p *StreamingParser) RowNumber() int {
	return p.rowNumber
}

// Err returns any error that occurred during parsing.
func (p *StreamingParser) Err() error {
	return p.err
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// ReadHeader returns only the header row of r.
func ReadHeader(r io.Reader, settings config.CSVSettings) ([]string, error) {
	p, err := NewStreamingParser(r, settings)
	if err != nil {
		return nil, err
	}
	return p.Headers(), nil
}
