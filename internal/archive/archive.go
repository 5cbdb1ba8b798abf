// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive reads submission zip files: listing entry names without
// extraction, and copying individual entries out on demand.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/hwextract/pkg/types"
)

// Reader wraps an open zip archive for the duration of one extraction run.
type Reader struct {
	zr   *zip.ReadCloser
	path string
}

// Open opens the zip archive at path. An unreadable or invalid archive is a
// fatal error for the run.
func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	return &Reader{zr: zr, path: path}, nil
}

// Close releases the archive handle.
func (r *Reader) Close() error {
	return r.zr.Close()
}

// List returns the archive's file entries in central-directory order,
// directories excluded.
func (r *Reader) List() []types.Entry {
	entries := make([]types.Entry, 0, len(r.zr.File))
	for _, f := range r.zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, types.Entry{Name: f.Name})
	}
	return entries
}

// CopyEntry copies the named entry's bytes to destPath, overwriting any
// existing file. The write goes through a same-directory temp file renamed
// into place on success; on any error the temp file is removed and the
// previous destination (if any) is left untouched.
func (r *Reader) CopyEntry(entryName, destPath string) error {
	var file *zip.File
	for _, f := range r.zr.File {
		if f.Name == entryName {
			file = f
			break
		}
	}
	if file == nil {
		return fmt.Errorf("entry %q not found in %s", entryName, r.path)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening entry %q: %w", entryName, err)
	}
	defer src.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".extract-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, src)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing entry %q: %w", entryName, copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
