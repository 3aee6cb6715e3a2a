// Package cache stores resolved mod metadata as on-disk, tagged mpcodec
// blobs, one file per key, fronted by an in-memory LRU for hot entries.
// Grounded on original_source/mcpkg/cache.c's file-per-entry layout and,
// for the front, the teacher's own hashicorp/golang-lru/v2 dependency.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"mcpkg/internal/errkind"
	"mcpkg/internal/fsutil"
	"mcpkg/internal/mc"
)

// Cache is an on-disk, TTL-bounded cache of resolved mod metadata.
type Cache struct {
	dir string
	mu  sync.Mutex
	lru *lru.Cache[string, entry]
}

// New opens (creating if necessary) a cache rooted at dir, fronted by an
// in-memory LRU holding up to lruSize hot entries.
func New(dir string, lruSize int) (*Cache, error) {
	if lruSize <= 0 {
		lruSize = 128
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errkind.Wrap(errkind.IO, err, "create cache directory")
	}
	l, err := lru.New[string, entry](lruSize)
	if err != nil {
		return nil, errkind.Wrap(errkind.InvalidArgument, err, "create lru")
	}
	return &Cache{dir: dir, lru: l}, nil
}

func (c *Cache) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".mpcache")
}

// Get returns the cached metadata for key. A past-TTL hit is reported as a
// miss; the stale on-disk file is left untouched for a later Put to
// overwrite, since Get never itself talks to a provider.
func (c *Cache) Get(ctx context.Context, key string) (mc.ModMetadata, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.lru.Get(key); ok {
		if e.expired(time.Now()) {
			return mc.ModMetadata{}, false, nil
		}
		return e.mod, true, nil
	}

	buf, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return mc.ModMetadata{}, false, nil
		}
		return mc.ModMetadata{}, false, errkind.Wrap(errkind.IO, err, "read cache entry")
	}
	e, err := unpackEntry(buf)
	if err != nil {
		return mc.ModMetadata{}, false, err
	}
	if e.expired(time.Now()) {
		return mc.ModMetadata{}, false, nil
	}
	c.lru.Add(key, e)
	return e.mod, true, nil
}

// Put stores mod under key with the given TTL (zero or negative means the
// entry never expires), both in the in-memory LRU and on disk.
func (c *Cache) Put(ctx context.Context, key string, mod mc.ModMetadata, ttl time.Duration) error {
	e := entry{key: key, mod: mod.Clone(), fetchedAt: time.Now(), ttl: ttl}
	buf, err := packEntry(e)
	if err != nil {
		return err
	}
	if err := fsutil.WriteAtomicBytes(c.pathFor(key), buf); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, e)
	return nil
}

// Evict removes key from both the in-memory LRU and the on-disk store.
func (c *Cache) Evict(key string) error {
	c.mu.Lock()
	c.lru.Remove(key)
	c.mu.Unlock()
	if err := os.Remove(c.pathFor(key)); err != nil && !os.IsNotExist(err) {
		return errkind.Wrap(errkind.IO, err, "remove cache entry")
	}
	return nil
}

// Purge clears every entry, in memory and on disk.
func (c *Cache) Purge() error {
	c.mu.Lock()
	c.lru.Purge()
	c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return errkind.Wrap(errkind.IO, err, "list cache directory")
	}
	for _, de := range entries {
		if filepath.Ext(de.Name()) != ".mpcache" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, de.Name())); err != nil {
			return errkind.Wrap(errkind.IO, err, "remove cache file")
		}
	}
	return nil
}
