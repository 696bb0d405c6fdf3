package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Error("Get(missing) = hit, want miss")
	}

	if err := c.Set(ctx, "doc:abc", []byte("payload"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, ok, err := c.Get(ctx, "doc:abc")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("Get() = miss, want hit")
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, "doc:abc"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "doc:abc"); ok {
		t.Error("Get() after Delete = hit, want miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() after expiry = hit, want miss")
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v, %v; want hit", data, ok, err)
	}
	if string(data) != "v" {
		t.Errorf("Get() = %q, want %q", data, "v")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestNullCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("NullCache Get() = hit, want miss")
	}
}

func TestDocumentKeyIsStable(t *testing.T) {
	k := NewDefaultKeyer()
	opts := DocumentKeyOpts{DataURL: "dataset.csv"}

	a := k.DocumentKey("hash1", opts)
	b := k.DocumentKey("hash1", opts)
	if a != b {
		t.Errorf("DocumentKey not stable: %q vs %q", a, b)
	}

	c := k.DocumentKey("hash1", DocumentKeyOpts{DataURL: "dataset.csv", Inline: true})
	if a == c {
		t.Error("DocumentKey ignored options")
	}

	d := k.DocumentKey("hash2", opts)
	if a == d {
		t.Error("DocumentKey ignored dataset hash")
	}
}

func TestScopedKeyer(t *testing.T) {
	k := NewScopedKeyer(NewDefaultKeyer(), "snapshot-2026:")
	key := k.DatasetKey("abc")
	if key[:14] != "snapshot-2026:" {
		t.Errorf("DatasetKey = %q, want snapshot-2026: prefix", key)
	}
}
