package fuzztests

import (
	"bytes"
	"testing"

	"marker/internal/driver"
)

func FuzzReadInfo(f *testing.F) {
	var buf bytes.Buffer
	if err := driver.WriteInfo(&buf, driver.CurrentInfo()); err != nil {
		f.Fatal(err)
	}
	f.Add(buf.Bytes())
	f.Add([]byte{})
	f.Add([]byte{0x80})
	f.Add([]byte("not msgpack"))
	f.Fuzz(func(t *testing.T, input []byte) {
		info, err := driver.ReadInfo(clampSeed(input))
		if err == nil && info.APIVersion == "" {
			t.Fatal("accepted info without api version")
		}
	})
}

func FuzzParseLevels(f *testing.F) {
	for _, s := range levelSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, input string) {
		levels, err := driver.ParseLevels(input)
		if err != nil {
			return
		}
		again, err := driver.ParseLevels(driver.FormatLevels(levels))
		if err != nil {
			t.Fatalf("formatted levels do not parse: %v", err)
		}
		if len(again) != len(levels) {
			t.Fatalf("round trip changed %d levels to %d", len(levels), len(again))
		}
		for name, lvl := range levels {
			if again[name] != lvl {
				t.Fatalf("level of %q changed from %v to %v", name, lvl, again[name])
			}
		}
	})
}
