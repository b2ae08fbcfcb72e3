// =============================================================================
// kf2ate - Root Command
// =============================================================================
//
// The root command performs the conversion itself, so the common case needs
// no subcommand:
//
//   kf2ate -i export.csv -o ate.csv
//
// COBRA CLI STRUCTURE:
//   rootCmd (kf2ate -i ... [-o ...])
//   ├── validateCmd (kf2ate validate -i ...)
//   ├── mappingCmd  (kf2ate mapping [--xlsx ...])
//   └── versionCmd  (kf2ate version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// inputPath is the Kansei Hagaki II CSV to read.
var inputPath string

// outputPath is the ATE CSV to write. Empty means standard output.
var outputPath string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd converts a Kansei Hagaki II export into an ATE import file.
var rootCmd = &cobra.Command{
	Use:   "kf2ate -i <kf_csv> [-o <ate_csv>]",
	Short: "Convert Kansei Hagaki II CSV to Hajimeteno Jushoroku (ATE) CSV",
	Long: `kf2ate converts an address-book CSV exported from Kansei Hagaki II into
the CSV import format of Hajimeteno Jushoroku (ATE).

The input header is checked against the known Kansei Hagaki II columns; an
unknown column aborts the run before any output is written. Each record is
remapped into the fixed 24-column ATE layout, with 宛名区分 set to 0
(addressee) and 印字区分 set to 1 (print).

The input is read as Shift_JIS. The output is written as Shift_JIS to the
file given with -o, or as UTF-8 to standard output when -o is omitted.

Example Usage:
  kf2ate -i kansei.csv -o ate.csv
  kf2ate -i kansei.csv > ate-utf8.csv
  kf2ate -i kansei.csv -o ate.csv --config kf2ate.yaml`,

	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (built-in defaults if omitted)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging on stderr",
	)

	rootCmd.Flags().StringVarP(
		&inputPath,
		"input",
		"i",
		"",
		"Kansei Hagaki csv file (\"-\" for standard input)",
	)
	rootCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Hajimeteno Jushoroku csv (standard output if omitted)",
	)
	rootCmd.MarkFlagRequired("input")
}
