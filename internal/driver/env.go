package driver

import (
	"fmt"
	"sort"
	"strings"

	"marker/pkg/lint"
)

const (
	// EnvLintCrates lists the lint libraries the driver loads.
	EnvLintCrates = "MARKER_LINT_CRATES"
	// EnvLintLevels carries the configured lint levels as name=level pairs.
	EnvLintLevels = "MARKER_LINT_LEVELS"
)

const listSep = ";"

// JoinLintCrates encodes library paths for EnvLintCrates.
func JoinLintCrates(paths []string) string {
	return strings.Join(paths, listSep)
}

// SplitLintCrates decodes EnvLintCrates. Empty entries are dropped.
func SplitLintCrates(value string) []string {
	var paths []string
	for _, p := range strings.Split(value, listSep) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// FormatLevels encodes levels for EnvLintLevels, sorted by name.
func FormatLevels(levels map[string]lint.Level) string {
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+levels[name].String())
	}
	return strings.Join(parts, listSep)
}

// ParseLevels decodes EnvLintLevels.
func ParseLevels(value string) (map[string]lint.Level, error) {
	levels := make(map[string]lint.Level)
	for _, part := range strings.Split(value, listSep) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		name, raw, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%s: malformed entry %q", EnvLintLevels, part)
		}
		lvl, err := lint.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", EnvLintLevels, name, err)
		}
		levels[name] = lvl
	}
	return levels, nil
}
