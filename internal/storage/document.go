// Package storage provides crash-safe JSON document persistence on the local filesystem.
//
// Each component of the engine owns one document under a storage root. Documents are
// rewritten in full on every save using a temp file, fsync and atomic rename, so a
// crash leaves either the previous or the new document on disk, never a partial one.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	apperrors "github.com/allisson/cardguard/internal/errors"
)

const (
	// DirPerm is the permission used when creating the storage root.
	DirPerm os.FileMode = 0o700
	// FilePerm is the permission used for document files.
	FilePerm os.FileMode = 0o600
)

// Document is a single JSON document stored at a fixed path.
type Document struct {
	path string
}

// NewDocument returns a Document stored as name under dir.
func NewDocument(dir, name string) *Document {
	return &Document{path: filepath.Join(dir, name)}
}

// Path returns the absolute or relative location of the document.
func (d *Document) Path() string {
	return d.path
}

// Read decodes the document into v.
//
// Returns found=false with a nil error when the document does not exist yet.
// Returns an error wrapping ErrCorrupt when the file exists but is not valid JSON,
// and an error wrapping ErrStorage for any other I/O failure.
func (d *Document) Read(v any) (found bool, err error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, apperrors.Storage(err, fmt.Sprintf("failed to read %s", filepath.Base(d.path)))
	}

	if err := json.Unmarshal(data, v); err != nil {
		return true, apperrors.Wrapf(
			errors.Join(apperrors.ErrCorrupt, err),
			"failed to decode %s",
			filepath.Base(d.path),
		)
	}

	return true, nil
}

// Write encodes v as indented JSON and atomically replaces the document.
// Any failure is returned wrapped in ErrStorage.
func (d *Document) Write(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.Storage(err, fmt.Sprintf("failed to encode %s", filepath.Base(d.path)))
	}

	if err := atomicWriteFile(d.path, data, FilePerm); err != nil {
		return apperrors.Storage(err, fmt.Sprintf("failed to write %s", filepath.Base(d.path)))
	}

	return nil
}

// atomicWriteFile writes data next to path and renames it into place.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Same directory keeps the rename on one filesystem.
	f, err := os.CreateTemp(dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := f.Name()

	success := false
	defer func() {
		if !success {
			_ = f.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if err := f.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync data to disk: %w", err)
	}

	// Close before rename, required on Windows.
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	syncDir(dir)
	return nil
}

// syncDir makes the rename durable on POSIX systems. Failures are ignored since the
// rename itself already succeeded.
func syncDir(dir string) {
	if runtime.GOOS == "windows" {
		return
	}
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer func() { _ = d.Close() }()
	_ = d.Sync()
}

// Probe checks that dir exists (creating it if needed) and accepts new files.
func Probe(dir string) error {
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return apperrors.Storage(err, "failed to create storage directory")
	}
	f, err := os.CreateTemp(dir, ".probe-")
	if err != nil {
		return apperrors.Storage(err, "storage directory is not writable")
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
