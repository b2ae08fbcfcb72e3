// =============================================================================
// kf2ate - Convert Command
// =============================================================================
//
// This file holds the conversion run behind the root command and the setup
// shared by all commands.
//
// PROCESSING PIPELINE:
//   1. Load the configuration (or the built-in defaults)
//   2. Build the logger
//   3. Build the mapping table (built-in, workbook, config overrides)
//   4. Convert the input file
//   5. Report the result
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/kf2ate/internal/config"
	"github.com/ginjaninja78/kf2ate/internal/converter"
	"github.com/ginjaninja78/kf2ate/internal/logging"
	"github.com/ginjaninja78/kf2ate/internal/mapping"
	"github.com/ginjaninja78/kf2ate/internal/xlsxbook"
)

// session bundles what every command needs.
type session struct {
	config *config.Config
	logger log.Logger
	table  *mapping.Table
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert converts inputPath into outputPath.
func runConvert(cmd *cobra.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}

	conv := converter.New(s.config, s.table, s.logger)
	conv.Stdout = cmd.OutOrStdout()

	result := conv.Run(inputPath, outputPath)
	if !result.Success {
		return result.Error
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// setup loads the configuration, logger and mapping table.
func setup(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	table, err := buildTable(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &session{config: cfg, logger: logger, table: table}, nil
}

// buildTable starts from the built-in table and applies the mapping
// workbook, then the configuration overrides.
func buildTable(cfg *config.Config, logger log.Logger) (*mapping.Table, error) {
	table := mapping.Default()

	if cfg.MappingWorkbook != "" {
		book, err := xlsxbook.Load(cfg.MappingWorkbook)
		if err != nil {
			return nil, fmt.Errorf("failed to load mapping workbook: %w", err)
		}
		table, err = book.Apply(table)
		if err != nil {
			return nil, fmt.Errorf("invalid mapping workbook %s: %w", cfg.MappingWorkbook, err)
		}
		level.Debug(logger).Log("msg", "applied mapping workbook", "path", cfg.MappingWorkbook)
	}

	if o := cfg.Overrides(); !o.Empty() {
		var err error
		table, err = table.WithOverrides(o)
		if err != nil {
			return nil, fmt.Errorf("invalid mapping overrides: %w", err)
		}
		level.Debug(logger).Log("msg", "applied config overrides", "fields", len(o.Fields), "fixed", len(o.Fixed))
	}

	return table, nil
}
