// Package fsutil holds small filesystem helpers shared by the downloader,
// cache, and activation packages: every one of them needs to write a file
// nobody else observes half-written.
package fsutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"mcpkg/internal/errkind"
)

// WriteAtomic writes the bytes read from src to a temporary file alongside
// destPath and renames it into place, so a reader of destPath never sees a
// partially written file and a process crash mid-write never corrupts an
// existing one. It returns the number of bytes written.
func WriteAtomic(destPath string, src io.Reader) (int64, error) {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errkind.Wrap(errkind.IO, err, "mkdir for atomic write")
	}
	tmp, err := os.CreateTemp(dir, ".mcpkg-tmp-*")
	if err != nil {
		return 0, errkind.Wrap(errkind.IO, err, "create temp file")
	}
	tmpPath := tmp.Name()
	n, copyErr := io.Copy(tmp, src)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		if copyErr != nil {
			return 0, errkind.Wrap(errkind.IO, copyErr, "write temp file")
		}
		return 0, errkind.Wrap(errkind.IO, closeErr, "close temp file")
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, errkind.Wrap(errkind.IO, err, "rename into place")
	}
	return n, nil
}

// WriteAtomicBytes is WriteAtomic for an in-memory buffer.
func WriteAtomicBytes(destPath string, data []byte) error {
	_, err := WriteAtomic(destPath, bytes.NewReader(data))
	return err
}
