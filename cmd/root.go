// =============================================================================
// T-ID CSV Renumberer - Root Command
// =============================================================================
//
// This file defines the root command. Invoked without a subcommand it runs
// the renumberer once against the target file, which is the tool's whole
// job; subcommands add a read-only check and version output.
//
// COBRA CLI STRUCTURE:
//   rootCmd (renumber)
//   ├── checkCmd (renumber check)
//   └── versionCmd (renumber version)
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ginjaninja78/tcsv-renumber/internal/config"
	"github.com/ginjaninja78/tcsv-renumber/internal/log"
	"github.com/ginjaninja78/tcsv-renumber/internal/renumber"
	"github.com/ginjaninja78/tcsv-renumber/internal/report"
	"github.com/ginjaninja78/tcsv-renumber/pkg/utils"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file. Empty means
// renumber.yaml in the working directory, if present.
var cfgFile string

// targetFile overrides the configured target file.
var targetFile string

// reportFile overrides the configured report file.
var reportFile string

// logFormat overrides the configured log format.
var logFormat string

// verbose enables debug logging when set to true.
var verbose bool

// dryRun renumbers in memory without writing the target file.
var dryRun bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "renumber",
	Short: "Renumber T-### identifiers in a CSV file",
	Long: `renumber rewrites the first T-### identifier on every data row of a CSV
file with a sequential, zero-padded identifier (T-001, T-002, ...). The
header row is left alone and rows without an identifier are copied as-is.

The file is decoded as UTF-8, falling back to Shift_JIS, and written back in
place as UTF-8 with a trailing newline. There is no backup.

Example Usage:
  renumber                          # renumber <binary dir>/../data/t.csv
  renumber --file ./data/t.csv      # renumber a specific file
  renumber --dry-run --report r.xlsx # preview changes into a workbook
  renumber check                    # fail if identifiers are not sequential`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runRenumber(cmd, dryRun)
		if err != nil {
			return err
		}
		if result.DryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %s would have %d ids updated.\n", result.Path, result.Updated)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s with %d ids.\n", result.Path, result.Updated)
		return nil
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is "+config.DefaultConfigFile+" if present)",
	)

	rootCmd.PersistentFlags().StringVar(
		&targetFile,
		"file",
		"",
		"CSV file to renumber (default is <binary dir>/../data/t.csv)",
	)

	rootCmd.PersistentFlags().StringVar(
		&reportFile,
		"report",
		"",
		"Write a change report (.xlsx for a workbook, anything else for text)",
	)

	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"",
		"Log format: text or json",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Renumber without writing the target file",
	)
}

// =============================================================================
// SHARED RUN LOGIC
// =============================================================================

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	path, required := cfgFile, true
	if path == "" {
		path, required = config.DefaultConfigFile, false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if targetFile != "" {
		cfg.TargetFile = targetFile
	}
	if reportFile != "" {
		cfg.ReportFile = reportFile
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.ResolveTarget(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runRenumber runs the renumberer once and writes the report, if any.
func runRenumber(cmd *cobra.Command, dry bool) (*renumber.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := log.New(cmd.ErrOrStderr(), cfg.Log)

	r, err := renumber.New(cfg.TargetFile, utils.NewFileManager(), renumber.Options{
		Encodings: cfg.Encodings,
		DryRun:    dry,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	result, err := r.Run(cmd.Context())
	if err != nil {
		return nil, err
	}

	if cfg.ReportFile != "" {
		if err := report.Write(cfg.ReportFile, report.FromResult(result)); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("report written", "path", cfg.ReportFile)
	}

	return result, nil
}
