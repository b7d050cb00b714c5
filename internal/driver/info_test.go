package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"marker/internal/version"
)

func TestInfoEncoding(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInfo(&buf, CurrentInfo()); err != nil {
		t.Fatal(err)
	}
	info, err := ReadInfo(buf.Bytes())
	if err != nil {
		t.Fatalf("ReadInfo: %v", err)
	}
	if info != CurrentInfo() || !info.Compatible() {
		t.Errorf("info = %+v", info)
	}
	if info.Toolchain != version.DefaultToolchain {
		t.Errorf("toolchain = %q", info.Toolchain)
	}

	old := Info{Toolchain: "nightly-2020-01-01", Version: "0.1.0", APIVersion: "0.1.0"}
	if old.Compatible() {
		t.Error("older api version reported compatible")
	}
}

func TestReadInfoRejectsGarbage(t *testing.T) {
	if _, err := ReadInfo([]byte("marker 0.4.0\n")); err == nil {
		t.Error("plain text accepted")
	}
	var buf bytes.Buffer
	if err := WriteInfo(&buf, Info{Toolchain: "stable"}); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadInfo(buf.Bytes()); err == nil {
		t.Error("info without api version accepted")
	}
}

func TestInfoCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewInfoCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	bin := filepath.Join(dir, "marker_rustc_driver")
	if err := os.WriteFile(bin, []byte("v1"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := cache.Get(bin); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	want := CurrentInfo()
	if err := cache.Put(bin, want); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := cache.Get(bin)
	if !ok || err != nil || got != want {
		t.Fatalf("Get = %+v, %v, %v", got, ok, err)
	}

	// a rebuilt binary is a different entry
	if err := os.WriteFile(bin, []byte("v2-longer"), 0o755); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(bin, later, later); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(bin); ok {
		t.Error("stale entry returned for a changed binary")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(bin); ok {
		t.Error("entry survived DropAll")
	}
}

func TestInfoCacheMissingDriver(t *testing.T) {
	cache, err := NewInfoCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := cache.Get(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Get of a missing driver succeeded")
	}
	var nilCache *InfoCache
	if _, ok, err := nilCache.Get("x"); ok || err != nil {
		t.Error("nil cache is not a miss")
	}
}
