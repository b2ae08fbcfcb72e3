// =============================================================================
// kf2ate - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   kf2ate validate -i <kf_csv>
//
// Reads only the header row of the input and reports every column that is
// not a known Kansei Hagaki II column. Nothing is written.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/kf2ate/internal/csvparser"
	"github.com/ginjaninja78/kf2ate/internal/validation"
	"github.com/ginjaninja78/kf2ate/pkg/utils"
)

// validateInput is the file checked by the validate command.
var validateInput string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the input header against the known Kansei Hagaki II columns",
	Long: `The validate command reads the header row of a Kansei Hagaki II export
and lists every column that kf2ate does not recognize. It exits with an error
if any column is unknown. No output file is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(
		&validateInput,
		"input",
		"i",
		"",
		"Kansei Hagaki csv file (\"-\" for standard input)",
	)
	validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}

	in, err := utils.OpenInput(validateInput)
	if err != nil {
		return err
	}
	defer in.Close()

	header, err := csvparser.ReadHeader(in, s.config.InputSettings())
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}

	if err := validation.ValidateHeaderAll(header, s.table); err != nil {
		level.Error(s.logger).Log("msg", "header rejected", "input", validateInput, "err", err)
		return err
	}

	level.Info(s.logger).Log("msg", "header accepted", "input", validateInput, "columns", len(header))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d columns OK\n", validateInput, len(header))
	return nil
}
