package toolchain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"marker/internal/driver"
)

func TestCachedProbe(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "marker_rustc_driver")
	if err := os.WriteFile(bin, []byte("#!/bin/false\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	cache, err := driver.NewInfoCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	var encoded bytes.Buffer
	if err := driver.WriteInfo(&encoded, driver.CurrentInfo()); err != nil {
		t.Fatal(err)
	}
	runs := 0
	run := func(_ context.Context, cmd Command) ([]byte, error) {
		runs++
		if cmd.String() != bin+" "+driver.InfoFlag {
			t.Errorf("ran %q", cmd)
		}
		return encoded.Bytes(), nil
	}

	probe := CachedProbe(run, cache)
	for range 3 {
		info, err := probe(context.Background(), bin)
		if err != nil || info != driver.CurrentInfo() {
			t.Fatalf("probe = %+v, %v", info, err)
		}
	}
	if runs != 1 {
		t.Errorf("driver started %d times, want 1", runs)
	}

	uncached := CachedProbe(run, nil)
	if _, err := uncached(context.Background(), bin); err != nil {
		t.Fatal(err)
	}
	if runs != 2 {
		t.Errorf("nil cache did not run the driver")
	}
}
