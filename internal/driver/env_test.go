package driver

import (
	"reflect"
	"testing"

	"marker/pkg/lint"
)

func TestLintCrateList(t *testing.T) {
	paths := []string{"/t/marker/release/liba.so", "/t/marker/release/libb.so"}
	joined := JoinLintCrates(paths)
	if joined != "/t/marker/release/liba.so;/t/marker/release/libb.so" {
		t.Errorf("joined = %q", joined)
	}
	if got := SplitLintCrates(joined + "; ;"); !reflect.DeepEqual(got, paths) {
		t.Errorf("split = %q", got)
	}
	if got := SplitLintCrates(""); got != nil {
		t.Errorf("split of empty = %q", got)
	}
}

func TestLevelsRoundTrip(t *testing.T) {
	levels := map[string]lint.Level{"b_lint": lint.Deny, "a_lint": lint.Allow}
	s := FormatLevels(levels)
	if s != "a_lint=allow;b_lint=deny" {
		t.Errorf("formatted = %q", s)
	}
	back, err := ParseLevels(s)
	if err != nil || !reflect.DeepEqual(back, levels) {
		t.Errorf("ParseLevels = %v, %v", back, err)
	}
}

func TestParseLevelsErrors(t *testing.T) {
	for _, in := range []string{"nolevel", "=warn", "x=loud"} {
		if _, err := ParseLevels(in); err == nil {
			t.Errorf("ParseLevels(%q) accepted", in)
		}
	}
	if got, err := ParseLevels(""); err != nil || len(got) != 0 {
		t.Errorf("empty = %v, %v", got, err)
	}
}
