package cache

import (
	"testing"
	"time"
)

func TestKey_Deterministic(t *testing.T) {
	k1 := Key("search", "what is go?")
	k2 := Key("search", "what is go?")
	if k1 != k2 {
		t.Errorf("Same inputs produced different keys: %s vs %s", k1, k2)
	}
}

func TestKey_StageSeparation(t *testing.T) {
	k1 := Key("search", "https://example.com")
	k2 := Key("scrape", "https://example.com")
	if k1 == k2 {
		t.Error("Different stages produced the same key")
	}
}

func TestKey_ParamBoundaries(t *testing.T) {
	// Concatenation must not collide across parameter boundaries.
	k1 := Key("answer", "ab", "c")
	k2 := Key("answer", "a", "bc")
	if k1 == k2 {
		t.Error("Parameter boundary collision")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(1*time.Minute, 1*time.Minute)

	if err := c.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("key")
	if !found {
		t.Fatal("Expected cache hit")
	}
	if string(val) != "value" {
		t.Errorf("Unexpected value: %s", val)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected cache miss for missing key")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache(1*time.Minute, 1*time.Minute)

	if err := c.Set("key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, found := c.Get("key"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(1*time.Minute, 1*time.Minute)
	_ = c.Set("key", []byte("value"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("Expected miss after clear")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 1*time.Minute)

	if err := c.Set(Key("scrape", "https://example.com"), []byte("page text"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(Key("scrape", "https://example.com"))
	if !found {
		t.Fatal("Expected cache hit")
	}
	if string(val) != "page text" {
		t.Errorf("Unexpected value: %s", val)
	}
}

func TestDiskCache_Expiration(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 1*time.Minute)

	if err := c.Set("key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, found := c.Get("key"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestDiskCache_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	c1 := NewDiskCache(dir, 1*time.Minute)
	if err := c1.Set("key", []byte("persisted"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	c2 := NewDiskCache(dir, 1*time.Minute)
	val, found := c2.Get("key")
	if !found {
		t.Fatal("Expected hit from second cache instance")
	}
	if string(val) != "persisted" {
		t.Errorf("Unexpected value: %s", val)
	}
}

func TestDiskCache_Clear(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 1*time.Minute)
	_ = c.Set("key", []byte("value"), 0)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("Expected miss after clear")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer only, then read through a fresh layered cache.
	seed := NewDiskCache(dir, 1*time.Minute)
	if err := seed.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	layered := NewLayeredCache(1*time.Minute, dir, 1*time.Minute)
	val, found := layered.Get("key")
	if !found {
		t.Fatal("Expected hit from disk layer")
	}
	if string(val) != "value" {
		t.Errorf("Unexpected value: %s", val)
	}

	// After promotion the memory layer answers even when the disk entry
	// is gone.
	if err := seed.Delete("key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := layered.Get("key"); !found {
		t.Error("Expected promoted entry in memory layer")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(1*time.Minute, dir, 1*time.Minute)

	if err := layered.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	disk := NewDiskCache(dir, 1*time.Minute)
	if _, found := disk.Get("key"); !found {
		t.Error("Expected entry in disk layer")
	}
}

func TestLayeredCache_Clear(t *testing.T) {
	layered := NewLayeredCache(1*time.Minute, t.TempDir(), 1*time.Minute)
	_ = layered.Set("key", []byte("value"), 0)

	if err := layered.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := layered.Get("key"); found {
		t.Error("Expected miss after clear")
	}
}
