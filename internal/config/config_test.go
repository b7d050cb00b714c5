package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marker/pkg/lint"
)

const workspaceManifest = `
[workspace]
members = ["app"]

[workspace.metadata.marker]
debug-build = true
rustc-flags = "-C debuginfo=1"

[workspace.metadata.marker.lints]
marker_lints = "0.4.0"
local_lints = { path = "lints/local" }
git_lints = { git = "https://example.com/lints.git", rev = "abc123" }

[workspace.metadata.marker.levels]
Fn-Names = "deny"
unused_thing = "allow"
`

func TestParse(t *testing.T) {
	path := filepath.Join("/w", ManifestName)
	cfg, err := Parse(path, []byte(workspaceManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.DebugBuild || cfg.RustcFlags != "-C debuginfo=1" || cfg.Root != "/w" {
		t.Errorf("config = %+v", cfg)
	}

	var names []string
	for _, lc := range cfg.Lints {
		names = append(names, lc.Name+":"+lc.Kind.String())
	}
	if got := strings.Join(names, ","); got != "git_lints:git,local_lints:path,marker_lints:registry" {
		t.Errorf("lints = %s", got)
	}
	local, ok := cfg.Lint("local_lints")
	if !ok || local.Path != filepath.Join("/w", "lints", "local") {
		t.Errorf("local lint = %+v", local)
	}
	if g, _ := cfg.Lint("git_lints"); g.Rev != "abc123" {
		t.Errorf("git lint = %+v", g)
	}

	tests := []struct {
		name string
		want lint.Level
		ok   bool
	}{
		{"fn_names", lint.Deny, true},
		{"FN_NAMES", lint.Deny, true},
		{"unused-thing", lint.Allow, true},
		{"other", lint.Allow, false},
	}
	for _, tt := range tests {
		lvl, ok := cfg.Level(tt.name)
		if ok != tt.ok || lvl != tt.want {
			t.Errorf("Level(%q) = %s, %v; want %s, %v", tt.name, lvl, ok, tt.want, tt.ok)
		}
	}
}

func TestParseEmptySection(t *testing.T) {
	cfg, err := Parse("Cargo.toml", []byte("[package]\nname = \"app\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Lints) != 0 || cfg.DebugBuild || cfg.RustcFlags != "" {
		t.Errorf("config = %+v", cfg)
	}
	if _, ok := cfg.Level("x"); ok {
		t.Error("level without configuration")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		key  string
	}{
		{"syntax", "[workspace.metadata.marker\n", ""},
		{"unknown key", "[workspace.metadata.marker]\ndebug = true\n", "debug"},
		{"bad level", "[workspace.metadata.marker.levels]\nx = \"loud\"\n", "levels.x"},
		{"conflicting levels", "[workspace.metadata.marker.levels]\na_b = \"deny\"\nA-B = \"warn\"\n", "levels."},
		{"path and git", "[workspace.metadata.marker.lints]\nx = { path = \"p\", git = \"g\" }\n", "lints.x"},
		{"no source", "[workspace.metadata.marker.lints]\nx = { rev = \"r\" }\n", "lints.x"},
		{"rev without git", "[workspace.metadata.marker.lints]\nx = { path = \"p\", rev = \"r\" }\n", "lints.x"},
		{"unknown lint key", "[workspace.metadata.marker.lints]\nx = { branch = \"main\" }\n", "lints.x"},
		{"number", "[workspace.metadata.marker.lints]\nx = 4\n", "lints.x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("Cargo.toml", []byte(tt.src))
			var ce *Error
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if !strings.HasPrefix(ce.Key, tt.key) {
				t.Errorf("key = %q, want prefix %q", ce.Key, tt.key)
			}
		})
	}
}

func TestLoadFindsNearestManifest(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte(workspaceManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "app", "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if cfg.ManifestPath != filepath.Join(root, ManifestName) || len(cfg.Lints) != 3 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestNormalizeLintName(t *testing.T) {
	tests := map[string]string{
		"fn_names":    "fn_names",
		" Fn-Names ":  "fn_names",
		"MARKER-LINT": "marker_lint",
	}
	for in, want := range tests {
		if got := NormalizeLintName(in); got != want {
			t.Errorf("NormalizeLintName(%q) = %q, want %q", in, got, want)
		}
	}
}
