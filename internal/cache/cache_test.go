package cache

import (
	"context"
	"testing"
	"time"

	"mcpkg/internal/mc"
)

func TestPutGetRoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	mod := mc.ModMetadata{ID: "sodium-1", Slug: "sodium", Name: "Sodium"}
	if err := c.Put(context.Background(), "sodium", mod, time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := c.Get(context.Background(), "sodium")
	if err != nil || !ok {
		t.Fatalf("get: %v, %v", got, err)
	}
	if got.ID != mod.ID || got.Name != mod.Name {
		t.Fatalf("got %+v, want %+v", got, mod)
	}
}

func TestGetMissingKey(t *testing.T) {
	c, err := New(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, ok, err := c.Get(context.Background(), "nope")
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestGetSurvivesLRUEvictionViaDisk(t *testing.T) {
	c, err := New(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	mod1 := mc.ModMetadata{Slug: "a"}
	mod2 := mc.ModMetadata{Slug: "b"}
	if err := c.Put(context.Background(), "a", mod1, time.Hour); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if err := c.Put(context.Background(), "b", mod2, time.Hour); err != nil {
		t.Fatalf("put b: %v", err)
	}
	// LRU size 1 means "a" was evicted from memory, but its on-disk file
	// must still serve Get.
	got, ok, err := c.Get(context.Background(), "a")
	if err != nil || !ok || got.Slug != "a" {
		t.Fatalf("expected disk fallback to find %q, got %+v, %v, %v", "a", got, ok, err)
	}
}

func TestGetPastTTLIsAMiss(t *testing.T) {
	c, err := New(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	mod := mc.ModMetadata{Slug: "stale"}
	if err := c.Put(context.Background(), "stale", mod, time.Nanosecond); err != nil {
		t.Fatalf("put: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	_, ok, err := c.Get(context.Background(), "stale")
	if err != nil || ok {
		t.Fatalf("expected expired entry to report a miss, got ok=%v err=%v", ok, err)
	}
}

func TestEvictAndPurge(t *testing.T) {
	c, err := New(t.TempDir(), 8)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Put(context.Background(), "a", mc.ModMetadata{Slug: "a"}, time.Hour); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if err := c.Put(context.Background(), "b", mc.ModMetadata{Slug: "b"}, time.Hour); err != nil {
		t.Fatalf("put b: %v", err)
	}
	if err := c.Evict("a"); err != nil {
		t.Fatalf("evict: %v", err)
	}
	if _, ok, _ := c.Get(context.Background(), "a"); ok {
		t.Fatalf("expected a to be evicted")
	}
	if err := c.Purge(); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, ok, _ := c.Get(context.Background(), "b"); ok {
		t.Fatalf("expected b to be purged")
	}
}
