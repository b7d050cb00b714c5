// Package lint is the surface a lint crate compiles against: lint
// declarations, the pass interfaces and the AstContext used to call back into
// the driver.
package lint

import (
	"fmt"
	"strings"
)

// Level is the severity a lint is reported with.
type Level uint8

const (
	// Allow silences the lint.
	Allow Level = iota
	Warn
	Deny
	// Forbid is Deny that cannot be lowered by later configuration.
	Forbid
)

func (l Level) String() string {
	switch l {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	case Forbid:
		return "forbid"
	}
	return "unknown"
}

// ParseLevel accepts allow|warn|deny|forbid in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "warn":
		return Warn, nil
	case "deny":
		return Deny, nil
	case "forbid":
		return Forbid, nil
	}
	return Allow, fmt.Errorf("invalid lint level: %q (expected: allow|warn|deny|forbid)", s)
}

// Lint describes one check. Lint values are declared as package-level
// variables by lint crates and passed by pointer.
type Lint struct {
	// Name is the snake_case identifier, unique per lint crate.
	Name string
	// DefaultLevel applies unless the project configuration overrides it.
	DefaultLevel Level
	// Explanation is shown by `--explain`-style tooling.
	Explanation string
}

func (l *Lint) String() string {
	if l == nil {
		return "<nil lint>"
	}
	return l.Name
}
