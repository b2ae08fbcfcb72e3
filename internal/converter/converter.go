// =============================================================================
// kf2ate - Converter Module
// =============================================================================
//
// This module orchestrates the conversion of one Kansei Hagaki II export into
// one ATE import file.
//
// CONVERSION PIPELINE:
//   1. Open the input (decoded from the input encoding)
//   2. Read and validate the header against the field mapping
//   3. Open the output (a file in the output encoding, or standard output)
//   4. Write the destination schema as the header row
//   5. Translate and write every record, in input order
//   6. Commit the output
//
// A header with an unknown column aborts before anything is written. File
// output goes to a temporary file that only replaces the target on success.
// Standard output is held in memory and written once the run has succeeded.
//
// =============================================================================

package converter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/ginjaninja78/kf2ate/internal/config"
	"github.com/ginjaninja78/kf2ate/internal/csvparser"
	"github.com/ginjaninja78/kf2ate/internal/csvwriter"
	"github.com/ginjaninja78/kf2ate/internal/mapping"
	"github.com/ginjaninja78/kf2ate/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// InputFile is the path of the source CSV ("-" for standard input).
	InputFile string

	// OutputFile is the path of the destination CSV, or "-" for standard
	// output. Empty if the run failed.
	OutputFile string

	// Success indicates whether the conversion completed.
	Success bool

	// Error is the reason the conversion failed, nil on success.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the conversion.
type ProcessingStats struct {
	// RowsRead is the number of data rows read from the source.
	RowsRead int

	// RowsWritten is the number of data rows written to the destination.
	RowsWritten int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts Kansei Hagaki II exports using one mapping table.
type Converter struct {
	config *config.Config
	table  *mapping.Table
	logger log.Logger

	// Stdout receives the output when no output path is given.
	Stdout io.Writer
}

// New creates a Converter. A nil logger discards log output.
func New(cfg *config.Config, table *mapping.Table, logger log.Logger) *Converter {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Converter{
		config: cfg,
		table:  table,
		logger: logger,
		Stdout: os.Stdout,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Run converts inputPath into outputPath. An empty outputPath or "-" writes
// to Stdout.
func (c *Converter) Run(inputPath, outputPath string) Result {
	startTime := time.Now()
	result := Result{InputFile: inputPath}

	toStdout := outputPath == "" || outputPath == utils.StdioName

	level.Info(c.logger).Log("msg", "converting", "input", inputPath, "output", displayOutput(outputPath))

	stats, err := c.run(inputPath, outputPath, toStdout)
	stats.ProcessingTime = time.Since(startTime)
	result.Stats = stats

	if err != nil {
		level.Error(c.logger).Log("msg", "conversion failed", "input", inputPath, "err", err)
		result.Error = err
		return result
	}

	result.Success = true
	result.OutputFile = displayOutput(outputPath)
	level.Info(c.logger).Log(
		"msg", "conversion complete",
		"rows", stats.RowsWritten,
		"output", result.OutputFile,
		"elapsed", stats.ProcessingTime,
	)
	return result
}

func (c *Converter) run(inputPath, outputPath string, toStdout bool) (ProcessingStats, error) {
	in, err := utils.OpenInput(inputPath)
	if err != nil {
		return ProcessingStats{}, err
	}
	defer in.Close()

	if toStdout {
		var buf bytes.Buffer
		stats, err := c.Convert(in, &buf, c.config.OutputSettings(true))
		if err != nil {
			return stats, err
		}
		if _, err := buf.WriteTo(c.Stdout); err != nil {
			return stats, fmt.Errorf("failed to write to standard output: %w", err)
		}
		return stats, nil
	}

	// Validate the header before the output file is created so that an
	// unknown field leaves no trace on disk.
	parser, translator, err := c.open(in)
	if err != nil {
		return ProcessingStats{}, err
	}

	out, err := utils.CreateAtomic(outputPath)
	if err != nil {
		return ProcessingStats{}, err
	}
	defer out.Close()

	level.Debug(c.logger).Log("msg", "writing temporary output", "path", out.TempPath())

	stats, err := c.write(parser, translator, out, c.config.OutputSettings(false))
	if err != nil {
		return stats, err
	}
	if err := out.Commit(); err != nil {
		return stats, err
	}
	level.Debug(c.logger).Log("msg", "output committed", "path", out.Path())
	return stats, nil
}

// Convert reads a Kansei Hagaki II CSV from src and writes the ATE CSV to
// dst using out. Nothing is written to dst if the header is invalid.
func (c *Converter) Convert(src io.Reader, dst io.Writer, out config.CSVSettings) (ProcessingStats, error) {
	parser, translator, err := c.open(src)
	if err != nil {
		return ProcessingStats{}, err
	}
	return c.write(parser, translator, dst, out)
}

// open reads the header and builds the translator for it.
func (c *Converter) open(src io.Reader) (*csvparser.StreamingParser, *Translator, error) {
	parser, err := csvparser.NewStreamingParser(src, c.config.InputSettings())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	header := parser.Headers()
	translator, err := NewTranslator(c.table, header)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid header: %w", err)
	}

	level.Debug(c.logger).Log("msg", "header validated", "columns", len(header))
	return parser, translator, nil
}

func (c *Converter) write(parser *csvparser.StreamingParser, translator *Translator, dst io.Writer, out config.CSVSettings) (ProcessingStats, error) {
	var stats ProcessingStats

	w, err := csvwriter.New(dst, out, translator.Width())
	if err != nil {
		return stats, err
	}

	if err := w.WriteHeader(c.table.Schema()); err != nil {
		return stats, err
	}

	for parser.Next() {
		stats.RowsRead++

		row, err := translator.Translate(parser.Record())
		if err != nil {
			return stats, fmt.Errorf("row %d: %w", parser.RowNumber(), err)
		}
		if err := w.WriteRow(row); err != nil {
			return stats, err
		}
		stats.RowsWritten = w.Rows()
	}
	if err := parser.Err(); err != nil {
		return stats, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if err := w.Close(); err != nil {
		return stats, err
	}

	level.Debug(c.logger).Log("msg", "rows translated", "read", stats.RowsRead, "written", stats.RowsWritten)
	return stats, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func displayOutput(outputPath string) string {
	if outputPath == "" {
		return utils.StdioName
	}
	return outputPath
}
