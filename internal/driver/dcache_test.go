package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lockweak/internal/expand"
	"lockweak/internal/version"
)

func TestDiskCachePutGet(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	key := cacheKey([]byte("class A {}\n"), Options{})

	var miss DiskPayload
	if ok, err := cache.Get(key, &miss); ok || err != nil {
		t.Fatalf("empty cache must miss, got %v %v", ok, err)
	}

	in := &DiskPayload{Path: "A.swift", Output: []byte("out"), Changed: true, Stats: expand.Stats{Classes: 1, Fields: 2}}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	ok, err := cache.Get(key, &out)
	if !ok || err != nil {
		t.Fatalf("Get after Put: %v %v", ok, err)
	}
	if string(out.Output) != "out" || !out.Changed || out.Stats != in.Stats || out.Schema != diskCacheSchemaVersion {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	if info, err := cache.Info(); err != nil || info.Entries != 1 || info.Bytes == 0 {
		t.Fatalf("Info = %+v, %v", info, err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatalf("DropAll must invalidate entries")
	}
	if info, _ := cache.Info(); info.Entries != 0 {
		t.Fatalf("DropAll left %d entries", info.Entries)
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	key := cacheKey([]byte("x"), Options{})
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	if ok, err := cache.Get(key, &out); ok || err == nil {
		t.Fatalf("corrupt entry must be an error miss, got %v %v", ok, err)
	}
}

func TestCacheKeyDependsOnOptions(t *testing.T) {
	content := []byte(hubSource)
	base := cacheKey(content, Options{})
	if base != cacheKey(content, Options{Jobs: 8}) {
		t.Fatalf("jobs must not affect the key")
	}
	if base == cacheKey(content, Options{Policy: expand.ExtensionWhenUsed}) {
		t.Fatalf("policy must affect the key")
	}
	if base == cacheKey(content, Options{Names: expand.Names{Wrapper: "Box"}}) {
		t.Fatalf("names must affect the key")
	}
	if base == cacheKey([]byte(hubSource+"\n"), Options{}) {
		t.Fatalf("content must affect the key")
	}
}

func TestCacheKeyDependsOnToolVersion(t *testing.T) {
	saved := version.Version
	t.Cleanup(func() { version.Version = saved })

	content := []byte(hubSource)
	before := cacheKey(content, Options{})
	version.Version = saved + "+next"
	if before == cacheKey(content, Options{}) {
		t.Fatalf("a different lockweak version must not reuse cached output")
	}
}

func TestExpandUsesCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"Hub.swift": hubSource, "Bad.swift": "@LockedWeakReference\nenum E {}\n"})
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	first, err := ExpandDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := ExpandDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for i, fr := range second.Files {
		wantCached := filepath.Base(fr.Path) == "Hub.swift"
		if fr.Cached != wantCached {
			t.Fatalf("%s: cached=%v, want %v", fr.Path, fr.Cached, wantCached)
		}
		if string(fr.Output) != string(first.Files[i].Output) || fr.Stats != first.Files[i].Stats {
			t.Fatalf("%s: cached result differs", fr.Path)
		}
	}
	if second.Bag().Len() != 1 {
		t.Fatalf("files with diagnostics are never cached, so the error must be re-reported")
	}
}
