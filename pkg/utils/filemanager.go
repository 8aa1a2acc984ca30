// =============================================================================
// T-ID CSV Renumberer - File Manager Utility
// =============================================================================
//
// This module is the only place the renumberer touches storage. It wraps an
// afs.Service so the target file can live on the local disk (plain paths or
// file:// URLs) or any other afs-backed location such as mem:// in tests.
//
// WRITE SEMANTICS:
//   Writes overwrite the target in place. There is no temp-file swap and no
//   backup; a failure partway through can leave the file truncated.
//
// =============================================================================

package utils

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// FileManager reads and writes the target file through afs.
type FileManager struct {
	fs afs.Service
}

// NewFileManager creates a FileManager backed by the default afs service.
func NewFileManager() *FileManager {
	return &FileManager{fs: afs.New()}
}

// NewFileManagerWithService creates a FileManager over an existing afs service.
func NewFileManagerWithService(fs afs.Service) *FileManager {
	return &FileManager{fs: fs}
}

// Exists reports whether the file exists. Lookup errors count as absent.
func (fm *FileManager) Exists(ctx context.Context, path string) bool {
	exists, err := fm.fs.Exists(ctx, path)
	if err != nil {
		return false
	}
	return exists
}

// ReadFile returns the full contents of path.
func (fm *FileManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := fm.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile replaces the contents of path with data.
func (fm *FileManager) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := fm.fs.Upload(ctx, path, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
