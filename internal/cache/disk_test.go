package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/leakguard/internal/model"
)

func TestDiskCache_SetGetAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	key := CacheKey("hello there", model.TypeAuto)

	if err := NewDiskCache(dir, time.Hour).Set(key, []byte("verdict"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, found := NewDiskCache(dir, time.Hour).Get(key)
	if !found || string(val) != "verdict" {
		t.Fatalf("expected persisted hit, got %q found=%v", val, found)
	}

	info, err := os.Stat(filepath.Join(dir, keyReplacer.Replace(key)+".cache"))
	if err != nil {
		t.Fatalf("stat entry: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("expected private entry file, got %v", perm)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found := c.Get("k"); !found {
		t.Fatal("expected hit before expiry")
	}

	now = now.Add(2 * time.Minute)
	if _, found := c.Get("k"); found {
		t.Error("expected miss after expiry")
	}
}

func TestDiskCache_NoExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)
	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	now = now.Add(24 * 365 * time.Hour)
	if _, found := c.Get("k"); !found {
		t.Error("expected entry without TTL to persist")
	}
}

func TestDiskCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	if err := os.WriteFile(c.path("k"), []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, found := c.Get("k"); found {
		t.Error("expected miss for corrupt entry")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expected corrupt entry to be removed")
	}
}

func TestDiskCache_DeleteAndClear(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Delete("missing"); err != nil {
		t.Errorf("delete of missing key: %v", err)
	}

	other := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(other, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if err := c.Set(k, []byte(k), 0); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("expected miss after clear")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("expected unrelated files to survive clear")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("from disk"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	memory := NewMemoryCache(time.Hour, 0)
	c := NewLayeredCache(memory, disk)

	val, found := c.Get("k")
	if !found || string(val) != "from disk" {
		t.Fatalf("expected disk hit, got %q found=%v", val, found)
	}
	if memory.Len() != 1 {
		t.Errorf("expected disk hit promoted to memory, got %d entries", memory.Len())
	}

	if err := c.Set("n", []byte("both"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found := disk.Get("n"); !found {
		t.Error("expected set to reach disk layer")
	}

	if err := c.Delete("n"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c.Get("n"); found {
		t.Error("expected miss after delete")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after clear")
	}
}

func TestNew(t *testing.T) {
	if c := New(model.CacheConfig{Enabled: false}); c != nil {
		t.Errorf("expected nil cache when disabled, got %T", c)
	}
	if _, ok := New(model.CacheConfig{Enabled: true, TTL: time.Minute}).(*MemoryCache); !ok {
		t.Error("expected memory cache without dir")
	}
	if _, ok := New(model.CacheConfig{Enabled: true, TTL: time.Minute, Dir: t.TempDir()}).(*LayeredCache); !ok {
		t.Error("expected layered cache with dir")
	}
}
