// =============================================================================
// kf2ate - File Manager Utility
// =============================================================================
//
// This module provides the file handling used by the conversion:
//   - Opening the input (a path, or "-" for standard input)
//   - Writing the output atomically (temporary file + rename)
//
// OUTPUT STRATEGY:
//   The output is written to a hidden temporary file in the target directory,
//   named with a random UUID. On success it is renamed over the target path.
//   On failure it is removed, so a failed run never leaves a partial or
//   truncated output file behind.
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StdioName selects standard input or output in place of a path.
const StdioName = "-"

// =============================================================================
// INPUT
// =============================================================================

// OpenInput opens path for reading. StdioName returns standard input wrapped
// so that closing it is a no-op.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == StdioName {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return f, nil
}

// =============================================================================
// ATOMIC OUTPUT
// =============================================================================

// AtomicFile is an output file that only appears at its final path once
// Commit succeeds.
type AtomicFile struct {
	file    *os.File
	path    string
	tmpPath string
	closed  bool
}

// CreateAtomic creates a temporary file next to path.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &AtomicFile{file: f, path: path, tmpPath: tmpPath}, nil
}

// Write writes to the temporary file.
func (a *AtomicFile) Write(p []byte) (int, error) {
	return a.file.Write(p)
}

// Path returns the final output path.
func (a *AtomicFile) Path() string {
	return a.path
}

// TempPath returns the temporary file path.
func (a *AtomicFile) TempPath() string {
	return a.tmpPath
}

// Commit syncs and closes the temporary file and renames it to the final
// path. If the rename fails the temporary file is removed.
func (a *AtomicFile) Commit() error {
	if a.closed {
		return errors.New("output file already closed")
	}
	a.closed = true

	if err := a.file.Sync(); err != nil {
		a.file.Close()
		os.Remove(a.tmpPath)
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	if err := a.file.Close(); err != nil {
		os.Remove(a.tmpPath)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(a.tmpPath, a.path); err != nil {
		os.Remove(a.tmpPath)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}

// Close discards the temporary file unless Commit succeeded. It is safe to
// defer Close and call Commit on the success path.
func (a *AtomicFile) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	closeErr := a.file.Close()
	if err := os.Remove(a.tmpPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary file: %w", err)
	}
	return closeErr
}
