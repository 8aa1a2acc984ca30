// =============================================================================
// T-ID CSV Renumberer - Check Command
// =============================================================================
//
// The check command renumbers the target file in memory and fails when the
// output bytes would differ from what is on disk. A file that passes is
// already numbered T-001, T-002, ..., is UTF-8 with \n line endings and one
// trailing newline, and a real run would leave it byte-for-byte untouched.
//
// COMMAND USAGE:
//   renumber check [--file PATH] [--report PATH]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/tcsv-renumber/internal/renumber"
	"github.com/ginjaninja78/tcsv-renumber/internal/validation"
	"github.com/spf13/cobra"
)

// checkCmd represents the 'check' command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify identifiers are already sequential",
	Long: `check reads and decodes the target file exactly like a normal run, but never
writes it. It lists every identifier that a run would change and exits
non-zero if there is at least one, or if a run would otherwise rewrite the
file (line endings, missing trailing newline, non-UTF-8 encoding).
Identifiers wider than three digits are reported as warnings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runRenumber(cmd, true)
		if err != nil {
			return err
		}

		findings := validation.ValidateSequence(result.Changes)
		out := cmd.OutOrStdout()
		if len(findings.Errors) > 0 {
			fmt.Fprint(out, validation.FormatErrors(findings.Errors))
		}
		if !findings.IsValid {
			return fmt.Errorf("%w: %d of %d ids in %s would change",
				renumber.ErrNotSequential, findings.ErrorCount, findings.IDsChecked, result.Path)
		}

		if result.ContentChanged {
			fmt.Fprintf(out, "%s: %d ids in sequence, but %s.\n", result.Path, findings.IDsChecked, rewriteReason(result))
			return fmt.Errorf("%w: %s would be rewritten", renumber.ErrContentChanged, result.Path)
		}

		fmt.Fprintf(out, "%s: %d ids, already sequential.\n", result.Path, findings.IDsChecked)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// rewriteReason describes why an in-sequence file would still be rewritten.
func rewriteReason(result *renumber.Result) string {
	if result.Encoding != "utf-8" {
		return fmt.Sprintf("it is encoded as %s and would be rewritten as utf-8", result.Encoding)
	}
	return "line endings would be normalized to \\n with one trailing newline"
}
