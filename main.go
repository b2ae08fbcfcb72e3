// =============================================================================
// kf2ate - Main Entry Point
// =============================================================================
//
// kf2ate converts address-book CSV exports from Kansei Hagaki II into the CSV
// import format of Hajimeteno Jushoroku (ATE).
//
// USAGE:
//   kf2ate -i export.csv -o ate.csv   - Convert a file
//   kf2ate -i export.csv              - Convert to standard output
//   kf2ate validate -i export.csv     - Check the header only
//   kf2ate mapping [--xlsx book.xlsx] - Show or export the mapping table
//   kf2ate version                    - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Mapping tables, parsing, translation, output
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/kf2ate/cmd"
)

func main() {
	cmd.Execute()
}
