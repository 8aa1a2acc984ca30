// =============================================================================
// T-ID CSV Renumberer - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration for the renumberer and
// resolves the target file location.
//
// CONFIGURATION FILE (renumber.yaml):
//   target_file: ../data/t.csv      # relative paths resolve against this file
//   encodings: [utf-8, shift_jis]   # tried in order
//   report_file: changes.xlsx       # optional change report
//   log:
//     level: info
//     format: text
//
// Without a configuration file every value takes its default, which
// reproduces the tool's fixed behavior: the data file lives at
// <executable dir>/../data/t.csv and is decoded as UTF-8, then Shift_JIS.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/tcsv-renumber/internal/csvparser"
	"github.com/ginjaninja78/tcsv-renumber/internal/log"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up when --config is not
// given.
const DefaultConfigFile = "renumber.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the renumberer configuration.
type Config struct {
	// TargetFile is the CSV file to renumber in place.
	// Default: <executable dir>/../data/t.csv
	TargetFile string `yaml:"target_file"`

	// Encodings lists the candidate encodings in the order they are tried.
	// Default: [utf-8, shift_jis]
	Encodings []string `yaml:"encodings"`

	// ReportFile, when set, receives a change report after each run.
	// A .xlsx extension produces a workbook; anything else a text summary.
	ReportFile string `yaml:"report_file"`

	// Log controls level and format of diagnostics.
	Log log.Config `yaml:"log"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from path.
//
// PARAMETERS:
//   - path: The YAML file to read.
//   - required: When false a missing file yields the defaults instead of an
//     error. Set it when the user named the file explicitly.
//
// RETURNS:
//   - The configuration with defaults applied and relative paths resolved.
//     TargetFile stays empty when the file does not set it.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string, required bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if cfg.TargetFile != "" && !filepath.IsAbs(cfg.TargetFile) {
			cfg.TargetFile = filepath.Join(filepath.Dir(path), cfg.TargetFile)
		}
		if cfg.ReportFile != "" && !filepath.IsAbs(cfg.ReportFile) {
			cfg.ReportFile = filepath.Join(filepath.Dir(path), cfg.ReportFile)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
// TargetFile is left alone; see ResolveTarget.
func applyDefaults(cfg *Config) {
	if len(cfg.Encodings) == 0 {
		cfg.Encodings = append([]string(nil), csvparser.DefaultEncodings...)
	}
	defaults := log.DefaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Format
	}
}

// validate checks values that would otherwise fail late in the pipeline.
func validate(cfg *Config) error {
	if _, err := csvparser.LookupEncodings(cfg.Encodings); err != nil {
		return err
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q (want text or json)", cfg.Log.Format)
	}
	return nil
}

// =============================================================================
// TARGET PATH RESOLUTION
// =============================================================================

// executable is swapped out in tests.
var executable = os.Executable

// ResolveTarget makes TargetFile absolute, falling back to DefaultTargetPath
// when neither the configuration file nor a flag set it. Call it after all
// overrides have been applied.
func (c *Config) ResolveTarget() error {
	if c.TargetFile == "" {
		target, err := DefaultTargetPath()
		if err != nil {
			return err
		}
		c.TargetFile = target
	}
	abs, err := filepath.Abs(c.TargetFile)
	if err != nil {
		return fmt.Errorf("failed to resolve target file: %w", err)
	}
	c.TargetFile = abs
	return nil
}

// DefaultTargetPath returns the data file next to the installed binary:
// the parent of the executable's directory, then data/t.csv.
func DefaultTargetPath() (string, error) {
	exe, err := executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return TargetPathFrom(filepath.Dir(exe)), nil
}

// TargetPathFrom resolves ../data/t.csv against anchorDir.
func TargetPathFrom(anchorDir string) string {
	return filepath.Clean(filepath.Join(anchorDir, "..", "data", "t.csv"))
}
