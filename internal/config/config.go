// Package config reads the marker section of a cargo workspace manifest:
//
//	[workspace.metadata.marker]
//	debug-build = true
//	rustc-flags = "-C debuginfo=1"
//
//	[workspace.metadata.marker.lints]
//	marker_lints = "0.4.0"
//	local_lints = { path = "lints/local" }
//
//	[workspace.metadata.marker.levels]
//	fn_names = "deny"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"

	"marker/pkg/lint"
)

// ManifestName is the file Find looks for.
const ManifestName = "Cargo.toml"

// Config is the marker configuration of one workspace.
type Config struct {
	ManifestPath string
	Root         string

	// Lints are sorted by name.
	Lints []LintCrate
	// Levels is keyed by normalized lint name.
	Levels map[string]lint.Level
	// DebugBuild builds lint crates without --release.
	DebugBuild bool
	// RustcFlags is passed to lint crate builds as RUSTFLAGS.
	RustcFlags string
}

// SourceKind tells where a lint crate comes from.
type SourceKind uint8

const (
	SourceRegistry SourceKind = iota + 1
	SourcePath
	SourceGit
)

func (k SourceKind) String() string {
	switch k {
	case SourceRegistry:
		return "registry"
	case SourcePath:
		return "path"
	case SourceGit:
		return "git"
	}
	return "unknown"
}

// LintCrate is one entry of [workspace.metadata.marker.lints].
type LintCrate struct {
	Name    string
	Kind    SourceKind
	Version string
	// Path is absolute for SourcePath.
	Path string
	Git  string
	Rev  string
}

type manifest struct {
	Workspace struct {
		Metadata struct {
			Marker markerTable `toml:"marker"`
		} `toml:"metadata"`
	} `toml:"workspace"`
}

type markerTable struct {
	Lints      map[string]any    `toml:"lints"`
	Levels     map[string]string `toml:"levels"`
	DebugBuild bool              `toml:"debug-build"`
	RustcFlags string            `toml:"rustc-flags"`
}

// Error is an invalid value in the marker section.
type Error struct {
	Path string
	Key  string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: workspace.metadata.marker.%s: %s", e.Path, e.Key, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Find returns the nearest Cargo.toml at or above startDir.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and reads the manifest above startDir. ok is false when there
// is no manifest.
func Load(startDir string) (cfg *Config, ok bool, err error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err = LoadFile(path)
	return cfg, true, err
}

// LoadFile reads the manifest at path.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Parse decodes manifest data read from path. Relative lint paths are
// resolved against the directory of path.
func Parse(path string, data []byte) (*Config, error) {
	var m manifest
	meta, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, &Error{Path: path, Msg: "failed to parse TOML", Err: err}
	}
	for _, key := range meta.Undecoded() {
		if len(key) >= 4 && key[0] == "workspace" && key[1] == "metadata" && key[2] == "marker" {
			// entries of lints are decoded by hand
			if key[3] == "lints" {
				continue
			}
			return nil, &Error{Path: path, Key: strings.Join(key[3:], "."), Msg: "unknown key"}
		}
	}

	mt := m.Workspace.Metadata.Marker
	cfg := &Config{
		ManifestPath: path,
		Root:         filepath.Dir(path),
		Levels:       make(map[string]lint.Level, len(mt.Levels)),
		DebugBuild:   mt.DebugBuild,
		RustcFlags:   mt.RustcFlags,
	}
	for name, raw := range mt.Lints {
		lc, err := lintCrate(cfg.Root, name, raw)
		if err != nil {
			return nil, &Error{Path: path, Key: "lints." + name, Msg: err.Error()}
		}
		cfg.Lints = append(cfg.Lints, lc)
	}
	sort.Slice(cfg.Lints, func(i, j int) bool { return cfg.Lints[i].Name < cfg.Lints[j].Name })

	for name, raw := range mt.Levels {
		lvl, err := lint.ParseLevel(raw)
		if err != nil {
			return nil, &Error{Path: path, Key: "levels." + name, Msg: err.Error(), Err: err}
		}
		key := NormalizeLintName(name)
		if prev, dup := cfg.Levels[key]; dup && prev != lvl {
			return nil, &Error{Path: path, Key: "levels." + name, Msg: fmt.Sprintf("conflicts with another spelling of %s", key)}
		}
		cfg.Levels[key] = lvl
	}
	return cfg, nil
}

func lintCrate(root, name string, raw any) (LintCrate, error) {
	lc := LintCrate{Name: name}
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return lc, errors.New("empty version")
		}
		lc.Kind, lc.Version = SourceRegistry, v
		return lc, nil
	case map[string]any:
		for key, val := range v {
			s, ok := val.(string)
			if !ok {
				return lc, fmt.Errorf("%s must be a string", key)
			}
			switch key {
			case "version":
				lc.Version = s
			case "path":
				lc.Path = s
			case "git":
				lc.Git = s
			case "rev":
				lc.Rev = s
			default:
				return lc, fmt.Errorf("unknown key %s", key)
			}
		}
	default:
		return lc, fmt.Errorf("expected a version string or a table, got %T", raw)
	}

	switch {
	case lc.Path != "" && lc.Git != "":
		return lc, errors.New("path and git are exclusive")
	case lc.Path != "":
		lc.Kind = SourcePath
		if !filepath.IsAbs(lc.Path) {
			lc.Path = filepath.Join(root, filepath.FromSlash(lc.Path))
		}
	case lc.Git != "":
		lc.Kind = SourceGit
	case lc.Version != "":
		lc.Kind = SourceRegistry
	default:
		return lc, errors.New("needs one of version, path or git")
	}
	if lc.Rev != "" && lc.Kind != SourceGit {
		return lc, errors.New("rev requires git")
	}
	return lc, nil
}

// NormalizeLintName folds case and treats '-' like '_', so `Fn-Names` and
// `fn_names` name the same lint.
func NormalizeLintName(name string) string {
	return strings.ReplaceAll(cases.Fold().String(strings.TrimSpace(name)), "-", "_")
}

// Level returns the configured level of a lint.
func (c *Config) Level(name string) (lint.Level, bool) {
	if c == nil {
		return lint.Allow, false
	}
	lvl, ok := c.Levels[NormalizeLintName(name)]
	return lvl, ok
}

// Lint returns the lint crate called name.
func (c *Config) Lint(name string) (LintCrate, bool) {
	for _, lc := range c.Lints {
		if lc.Name == name {
			return lc, true
		}
	}
	return LintCrate{}, false
}
