// =============================================================================
// kf2ate - Mapping Command
// =============================================================================
//
// COMMAND USAGE:
//   kf2ate mapping                 - Print the effective mapping table
//   kf2ate mapping --xlsx book.xlsx - Export it as a mapping workbook
//
// The effective table includes the workbook and overrides named in --config,
// so the command also shows what a configuration changes.
//
// =============================================================================

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/kf2ate/internal/xlsxbook"
)

// xlsxPath is the workbook written by the mapping command.
var xlsxPath string

// mappingCmd represents the 'mapping' command.
var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Show or export the field mapping table",
	Long: `The mapping command prints the source to destination field mapping, the
fixed fields and the destination column order. With --xlsx it writes them to
an XLSX workbook instead; the workbook can be edited and passed back through
the mapping_workbook configuration setting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMapping(cmd)
	},
}

func init() {
	rootCmd.AddCommand(mappingCmd)

	mappingCmd.Flags().StringVar(
		&xlsxPath,
		"xlsx",
		"",
		"Write the mapping to this XLSX workbook",
	)
}

func runMapping(cmd *cobra.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}

	if xlsxPath != "" {
		if err := xlsxbook.Export(s.table, xlsxPath); err != nil {
			return err
		}
		level.Info(s.logger).Log("msg", "exported mapping workbook", "path", xlsxPath)
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SOURCE\tDESTINATION")
	for _, e := range s.table.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", e.Source, e.Target)
	}

	fmt.Fprintln(tw, "\nFIXED\tVALUE")
	for _, f := range s.table.FixedFields() {
		fmt.Fprintf(tw, "%s\t%s\n", f.Column, f.Value)
	}

	fmt.Fprintln(tw, "\nPOSITION\tDESTINATION")
	for i, name := range s.table.Schema() {
		fmt.Fprintf(tw, "%d\t%s\n", i+1, name)
	}

	return tw.Flush()
}
