// =============================================================================
// kf2ate - CSV Writer Module
// =============================================================================
//
// This module writes the ATE import CSV. Output is encoded on the fly from
// UTF-8 into the configured encoding (Shift_JIS for files by default).
//
// OUTPUT STRUCTURE:
//   宛名区分,印字区分,名前,カナ,...,更新日,登録日   <- destination schema
//   0,1,山田太郎,ヤマダタロウ,...,,                  <- one row per record
//
// =============================================================================

package csvwriter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ginjaninja78/kf2ate/internal/config"
	"github.com/ginjaninja78/kf2ate/internal/textenc"
)

// Writer writes CSV rows in a target encoding. Rows are buffered; call Close
// to flush them to the underlying writer.
type Writer struct {
	buf     *bufio.Writer
	encoder io.WriteCloser
	csv     *csv.Writer
	width   int
	rows    int
}

// New returns a Writer for rows of exactly width fields.
func New(w io.Writer, settings config.CSVSettings, width int) (*Writer, error) {
	enc, err := textenc.Lookup(settings.Encoding)
	if err != nil {
		return nil, err
	}

	buf := bufio.NewWriter(w)
	encoder := textenc.NewWriter(buf, enc)

	cw := csv.NewWriter(encoder)
	if settings.Delimiter != 0 {
		cw.Comma = settings.Delimiter
	}
	cw.UseCRLF = settings.UseCRLF

	return &Writer{buf: buf, encoder: encoder, csv: cw, width: width}, nil
}

// WriteHeader writes the destination schema row.
func (w *Writer) WriteHeader(schema []string) error {
	if err := w.write(schema); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// WriteRow writes one translated record.
func (w *Writer) WriteRow(row []string) error {
	if err := w.write(row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", w.rows+1, err)
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written.
func (w *Writer) Rows() int {
	return w.rows
}

func (w *Writer) write(row []string) error {
	if len(row) != w.width {
		return fmt.Errorf("row has %d fields, want %d", len(row), w.width)
	}
	if err := w.csv.Write(row); err != nil {
		return err
	}
	// Flush per row so unencodable characters are reported against the row
	// that contains them.
	w.csv.Flush()
	return w.csv.Error()
}

// Close flushes everything written so far. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	if err := w.encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush encoder: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
