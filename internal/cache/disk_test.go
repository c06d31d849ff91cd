package cache_test

import (
	"crypto/sha256"
	"testing"

	"surgehdl/internal/cache"
)

func openTestCache(t *testing.T) *cache.DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := cache.Open("surgehdl-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return c
}

func TestDiskCachePutGetRoundTrip(t *testing.T) {
	c := openTestCache(t)

	hash := sha256.Sum256([]byte("module top; endmodule"))
	fp := sha256.Sum256([]byte("config-a"))
	key := cache.KeyFor(hash, fp)

	want := &cache.FilePayload{
		Path:        "top.sv",
		ContentHash: hash,
		ErrorCount:  0,
		Clean:       true,
	}
	if err := c.Put(key, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got cache.FilePayload
	hit, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if got.Path != want.Path || got.Clean != want.Clean {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDiskCacheMissOnDifferentKey(t *testing.T) {
	c := openTestCache(t)

	hash1 := sha256.Sum256([]byte("content-1"))
	hash2 := sha256.Sum256([]byte("content-2"))
	fp := sha256.Sum256([]byte("config"))

	if err := c.Put(cache.KeyFor(hash1, fp), &cache.FilePayload{Path: "a.sv", Clean: true}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got cache.FilePayload
	hit, err := c.Get(cache.KeyFor(hash2, fp), &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("expected a miss for a different content hash")
	}
}

func TestDiskCacheSameContentDifferentFingerprint(t *testing.T) {
	c := openTestCache(t)

	hash := sha256.Sum256([]byte("shared content"))
	fpA := sha256.Sum256([]byte("config-a"))
	fpB := sha256.Sum256([]byte("config-b"))

	if err := c.Put(cache.KeyFor(hash, fpA), &cache.FilePayload{Path: "a.sv", Clean: true}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got cache.FilePayload
	hit, err := c.Get(cache.KeyFor(hash, fpB), &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("expected a miss when the configuration fingerprint differs, even with the same content hash")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	c := openTestCache(t)

	hash := sha256.Sum256([]byte("x"))
	fp := sha256.Sum256([]byte("y"))
	key := cache.KeyFor(hash, fp)
	if err := c.Put(key, &cache.FilePayload{Path: "x.sv", Clean: true}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	var got cache.FilePayload
	hit, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if hit {
		t.Fatal("expected no entries to survive DropAll")
	}
}

func TestDiskCacheNilReceiverIsNoop(t *testing.T) {
	var c *cache.DiskCache
	if err := c.Put(cache.Key{}, &cache.FilePayload{}); err != nil {
		t.Fatalf("Put on nil cache should be a no-op, got: %v", err)
	}
	var out cache.FilePayload
	hit, err := c.Get(cache.Key{}, &out)
	if err != nil || hit {
		t.Fatalf("Get on nil cache should be a no-op miss, got hit=%v err=%v", hit, err)
	}
}
