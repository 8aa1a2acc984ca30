// =============================================================================
// T-ID CSV Renumberer - Main Entry Point
// =============================================================================
//
// USAGE:
//   renumber          - Renumber the T-### identifiers in the target CSV
//   renumber check    - Fail if the identifiers are not already sequential
//   renumber version  - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : configuration, logging, decoding, renumbering, reports
//   - pkg/       : the storage boundary shared by commands and tests
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/tcsv-renumber/cmd"
)

func main() {
	cmd.Execute()
}
