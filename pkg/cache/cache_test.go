package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	key := "analysis:abc"
	value := []byte("payload")

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("expected miss on empty cache, hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, key, value, 0); err != nil {
		t.Fatal(err)
	}
	got, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("expected hit, hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("got %q, want %q", got, value)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("expected miss after delete")
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("deleting an absent key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry still served")
	}
}

func TestFileCacheClear(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Errorf("cache unusable after Clear: %v", err)
	}
}

func TestNullCacheNeverHits(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("null cache returned a hit")
	}
}

func TestKeyerDeterministic(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.DocumentKey("hash1", DocumentKeyOpts{CanvasHash: "c1", Title: "t"})
	b := k.DocumentKey("hash1", DocumentKeyOpts{CanvasHash: "c1", Title: "t"})
	if a != b {
		t.Error("identical inputs produced different keys")
	}

	other := k.DocumentKey("hash1", DocumentKeyOpts{CanvasHash: "c2", Title: "t"})
	if a == other {
		t.Error("different canvas options share a key")
	}

	if k.AnalysisKey("x") == k.ArtifactKey("x", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("artifact classes share a key namespace")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "tenant1:")

	key := scoped.AnalysisKey("abc")
	if key == base.AnalysisKey("abc") {
		t.Error("scoped key identical to unscoped key")
	}
	if key != "tenant1:"+base.AnalysisKey("abc") {
		t.Errorf("unexpected scoped key %q", key)
	}
}

func TestHashStable(t *testing.T) {
	if Hash([]byte("data")) != Hash([]byte("data")) {
		t.Error("hash not stable")
	}
	if len(Hash([]byte("data"))) != 64 {
		t.Error("expected full sha256 hex digest")
	}
}
