package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"mcpkg/internal/mc"
)

func withTempWorkdir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	viper.Reset()

	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "cmd", "mcpkg", "config"), 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	yaml := []byte("download:\n  parallel: 2\n  queue: 4\n  dir: downloads\n  timeout_s: 5\ncache:\n  dir: cache\n  default_ttl_s: 60\n  lru_size: 16\nlogging:\n  level: info\n")
	if err := os.WriteFile(filepath.Join(dir, "cmd", "mcpkg", "config", "default.yaml"), yaml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestNewAppSeedsRegistryAndCache(t *testing.T) {
	withTempWorkdir(t)

	a, err := newApp()
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	defer a.Close()

	if len(a.reg.Providers()) != 4 {
		t.Fatalf("expected 4 seeded providers, got %d", len(a.reg.Providers()))
	}
	if len(a.reg.Loaders()) != 7 {
		t.Fatalf("expected 7 seeded loaders, got %d", len(a.reg.Loaders()))
	}
}

func TestProviderListCommandPrintsSeededProviders(t *testing.T) {
	withTempWorkdir(t)

	cmd := newProviderCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"list"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Modrinth")) {
		t.Fatalf("expected Modrinth in output, got %q", buf.String())
	}
}

func TestCacheClearCommandRuns(t *testing.T) {
	withTempWorkdir(t)

	cmd := newCacheCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"clear"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("cache cleared")) {
		t.Fatalf("expected confirmation message, got %q", buf.String())
	}
}

func TestListCommandWithNoManifestFails(t *testing.T) {
	withTempWorkdir(t)

	cmd := newListCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--target", "."})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error reading a manifest that was never written")
	}
}

func TestFilterByLoaderKeepsUnknownAndMatching(t *testing.T) {
	mods := []mc.ModMetadata{
		{Slug: "a", LoaderID: mc.LoaderFabric},
		{Slug: "b", LoaderID: mc.LoaderForge},
		{Slug: "c", LoaderID: mc.LoaderUnknown},
	}
	filtered := filterByLoader(mods, "fabric")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 mods to survive the fabric filter, got %d", len(filtered))
	}
}
