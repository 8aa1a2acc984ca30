// =============================================================================
// T-ID CSV Renumberer - Pipeline
// =============================================================================
//
// This module runs the renumbering pipeline for a single file:
//   1. Report the target path and whether it exists
//   2. Read the raw bytes
//   3. Decode them with the candidate encodings, in order
//   4. Split into lines, aborting on an empty document
//   5. Renumber the identifiers (transformer.go)
//   6. Join and overwrite the file as UTF-8
//
// Every failure is terminal: nothing is retried and nothing is written
// unless steps 1-5 succeed.
//
// =============================================================================

package renumber

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ginjaninja78/tcsv-renumber/internal/csvparser"
	"github.com/ginjaninja78/tcsv-renumber/internal/log"
	"github.com/google/uuid"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrEmptyDocument aborts a run whose decoded text has no lines.
var ErrEmptyDocument = csvparser.ErrEmptyDocument

// ErrNotSequential is returned by checks when identifiers would change.
var ErrNotSequential = errors.New("identifiers are not sequential")

// ErrContentChanged is returned by checks when identifiers are in order but
// a run would still rewrite the file.
var ErrContentChanged = errors.New("file is not in canonical form")

// DecodeError is returned when no candidate encoding decodes the file.
type DecodeError = csvparser.DecodeError

// FileError is returned when the target file cannot be read or written.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Op, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result describes a completed run.
type Result struct {
	// RunID identifies the run in logs and reports.
	RunID string

	// Path is the resolved target file.
	Path string

	// Existed is the existence check made before reading.
	Existed bool

	// ByteLength is the size of the file as read.
	ByteLength int

	// Encoding names the candidate that decoded the file.
	Encoding string

	// Fallback is true when the first candidate failed.
	Fallback bool

	// Lines is the number of lines, header included.
	Lines int

	// Updated is the number of identifiers renumbered.
	Updated int

	// Changes lists every renumbered identifier.
	Changes []Change

	// ContentChanged is set when the output bytes differ from the bytes
	// read: identifiers moved, line endings were normalized, a trailing
	// newline was added or the file was re-encoded as UTF-8.
	ContentChanged bool

	// DryRun is set when the write was skipped on request.
	DryRun bool

	// Written is set once the file has been overwritten.
	Written bool

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// =============================================================================
// RENUMBERER
// =============================================================================

// FileStore is the storage boundary used by the Renumberer.
type FileStore interface {
	Exists(ctx context.Context, path string) bool
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Options configures a Renumberer.
type Options struct {
	// Encodings lists candidate encodings in the order they are tried.
	Encodings []string

	// DryRun skips the final write.
	DryRun bool

	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger log.Logger
}

// DefaultOptions returns the options matching the tool's fixed behavior.
func DefaultOptions() Options {
	return Options{
		Encodings: append([]string(nil), csvparser.DefaultEncodings...),
		Logger:    log.Discard(),
	}
}

// Renumberer rewrites identifiers in a single file.
type Renumberer struct {
	path       string
	files      FileStore
	candidates []csvparser.Candidate
	dryRun     bool
	logger     log.Logger
}

// New creates a Renumberer for path.
//
// RETURNS:
//   - An error if an encoding in opts cannot be resolved.
func New(path string, files FileStore, opts Options) (*Renumberer, error) {
	candidates, err := csvparser.LookupEncodings(opts.Encodings)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &Renumberer{
		path:       path,
		files:      files,
		candidates: candidates,
		dryRun:     opts.DryRun,
		logger:     logger,
	}, nil
}

// Run executes the pipeline once.
func (r *Renumberer) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	result := &Result{
		RunID:  uuid.New().String(),
		Path:   r.path,
		DryRun: r.dryRun,
	}
	logger := r.logger.With("run_id", result.RunID)

	// =========================================================================
	// STEP 1: LOCATE
	// =========================================================================

	result.Existed = r.files.Exists(ctx, r.path)
	logger.Info("target path", "path", r.path)
	logger.Info("target exists", "exists", result.Existed)

	// =========================================================================
	// STEP 2: READ
	// =========================================================================

	data, err := r.files.ReadFile(ctx, r.path)
	if err != nil {
		logger.Error("read error", "error", err)
		return nil, &FileError{Op: "read", Path: r.path, Err: err}
	}
	result.ByteLength = len(data)
	logger.Info("read target", "bytes", result.ByteLength)

	// =========================================================================
	// STEP 3-4: DECODE AND SPLIT
	// =========================================================================

	doc, err := csvparser.Parse(data, r.candidates)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			logger.Error("decode error", "error", err)
		}
		return nil, err
	}
	result.Encoding = doc.Encoding
	result.Fallback = doc.Fallback
	result.Lines = len(doc.Lines)
	logger.Info("decoded", "encoding", doc.Encoding, "fallback", doc.Fallback)

	// =========================================================================
	// STEP 5: RENUMBER
	// =========================================================================

	transformed := Transform(doc.Lines, 1)
	result.Updated = transformed.Replaced()
	result.Changes = transformed.Changes
	for _, c := range transformed.Changes {
		logger.Debug("renumbered", "line", c.Line, "old", c.Old, "new", c.New)
	}
	output := []byte(csvparser.Join(transformed.Lines))
	result.ContentChanged = !bytes.Equal(output, data)

	// =========================================================================
	// STEP 6: WRITE
	// =========================================================================

	if r.dryRun {
		logger.Info("dry run, target not written", "updated", result.Updated, "content_changed", result.ContentChanged)
		result.Elapsed = time.Since(startTime)
		return result, nil
	}

	if err := r.files.WriteFile(ctx, r.path, output); err != nil {
		return nil, &FileError{Op: "write", Path: r.path, Err: err}
	}
	result.Written = true
	result.Elapsed = time.Since(startTime)
	logger.Info("updated", "path", r.path, "ids", result.Updated, "elapsed", result.Elapsed)

	return result, nil
}

// =============================================================================
// IN-MEMORY ENTRY POINT
// =============================================================================

// RenumberText renumbers already-decoded text.
//
// RETURNS:
//   - The newline-terminated output text.
//   - The transformation details.
//   - ErrEmptyDocument when text has no lines.
func RenumberText(text string) (string, *Transformation, error) {
	lines := csvparser.SplitLines(text)
	if len(lines) == 0 {
		return "", nil, ErrEmptyDocument
	}
	transformed := Transform(lines, 1)
	return csvparser.Join(transformed.Lines), transformed, nil
}
