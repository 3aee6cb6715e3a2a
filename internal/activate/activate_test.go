package activate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"mcpkg/internal/download"
	"mcpkg/internal/errkind"
	"mcpkg/internal/mc"
	"mcpkg/internal/registry"
)

func digestOf(t *testing.T, content []byte) mc.Digest {
	t.Helper()
	sum := sha256.Sum256(content)
	d, err := mc.New(mc.DigestAlgoSHA256, hex.EncodeToString(sum[:]))
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	return d
}

func TestActivatePlacesFilesAndWritesManifest(t *testing.T) {
	content := []byte("jar-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer srv.Close()

	dl := download.NewDownloaderWithClient(srv.Client(), 2, 4)
	defer dl.Close()

	mod := mc.ModMetadata{
		Slug:        "sodium",
		FileName:    "sodium.jar",
		ModVersion:  "1.0.0",
		DownloadURL: srv.URL,
		Digest:      digestOf(t, content),
	}

	targetDir := t.TempDir()
	report, err := Activate(context.Background(), registry.New(), dl, targetDir, []mc.ModMetadata{mod})
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if len(report.Activated) != 1 || report.Activated[0].Slug != "sodium" {
		t.Fatalf("unexpected report: %+v", report)
	}

	placed, err := os.ReadFile(filepath.Join(targetDir, "mods", "sodium.jar"))
	if err != nil {
		t.Fatalf("read placed jar: %v", err)
	}
	if string(placed) != "jar-bytes" {
		t.Fatalf("got %q", placed)
	}

	entries, err := ReadManifest(targetDir)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if len(entries) != 1 || entries[0].Slug != "sodium" || entries[0].FileName != "sodium.jar" {
		t.Fatalf("unexpected manifest entries: %+v", entries)
	}
}

func TestActivateDigestMismatchFailsWithoutPlacingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tampered"))
	}))
	defer srv.Close()

	dl := download.NewDownloaderWithClient(srv.Client(), 1, 4)
	defer dl.Close()

	wrongDigest := digestOf(t, []byte("original"))
	mod := mc.ModMetadata{
		Slug:        "sodium",
		FileName:    "sodium.jar",
		DownloadURL: srv.URL,
		Digest:      wrongDigest,
	}

	targetDir := t.TempDir()
	if _, err := Activate(context.Background(), registry.New(), dl, targetDir, []mc.ModMetadata{mod}); err == nil {
		t.Fatalf("expected activation to fail on digest mismatch")
	}
	if _, err := os.Stat(filepath.Join(targetDir, "mods", "sodium.jar")); !os.IsNotExist(err) {
		t.Fatalf("expected no file placed on digest mismatch")
	}
}

func TestReadManifestMissingReturnsNotFound(t *testing.T) {
	_, err := ReadManifest(t.TempDir())
	if err == nil {
		t.Fatalf("expected error reading a manifest that was never written")
	}
	if !errkind.Is(err, errkind.NotFound) {
		t.Fatalf("expected errkind.NotFound, got %v", err)
	}
}
