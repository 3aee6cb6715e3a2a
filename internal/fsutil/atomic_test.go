package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAtomicBytesCreatesFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "out.bin")
	if err := WriteAtomicBytes(dest, []byte("payload")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteAtomicBytesLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.bin")
	if err := WriteAtomicBytes(dest, []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.bin" {
		t.Fatalf("expected only out.bin in dir, got %v", entries)
	}
}

func TestWriteAtomicBytesOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.bin")
	if err := WriteAtomicBytes(dest, []byte("first")); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := WriteAtomicBytes(dest, []byte("second")); err != nil {
		t.Fatalf("write second: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("got %q", got)
	}
}
