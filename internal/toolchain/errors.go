package toolchain

import (
	"errors"
	"fmt"
	"strings"

	"marker/internal/driver"
	"marker/internal/version"
)

// CandidateKind names the step of the resolution order a candidate came from.
type CandidateKind uint8

const (
	// CandidateLocal is the driver next to the executable in local mode.
	CandidateLocal CandidateKind = iota + 1
	// CandidateOverride is the toolchain named by RUSTUP_TOOLCHAIN.
	CandidateOverride
	// CandidateDefault is the toolchain the driver is built against.
	CandidateDefault
	// CandidateAdjacent is the fallback search next to the executable.
	CandidateAdjacent
)

func (k CandidateKind) String() string {
	switch k {
	case CandidateLocal:
		return "local driver"
	case CandidateOverride:
		return "toolchain override"
	case CandidateDefault:
		return "default toolchain"
	case CandidateAdjacent:
		return "driver next to executable"
	}
	return "unknown"
}

// Attempt records one failed candidate.
type Attempt struct {
	Kind CandidateKind
	// Toolchain is empty for adjacent searches.
	Toolchain string
	Err       error
}

func (a Attempt) String() string {
	if a.Toolchain != "" {
		return fmt.Sprintf("%s %s: %v", a.Kind, a.Toolchain, a.Err)
	}
	return fmt.Sprintf("%s: %v", a.Kind, a.Err)
}

// ResolutionError lists every candidate that was tried, in attempt order.
type ResolutionError struct {
	Attempts []Attempt
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("no usable driver found")
	for i, a := range e.Attempts {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, a)
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}

// CommandError is an external command that exited with a non-zero status.
// Stderr is kept verbatim.
type CommandError struct {
	Command  string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("command failed (exit %d): %s", e.ExitCode, e.Command)
	}
	return fmt.Sprintf("command failed (exit %d): %s: %s", e.ExitCode, e.Command, msg)
}

// IOError is a file system or process lookup failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ErrIncompatibleDriver matches every *IncompatibleDriverError.
var ErrIncompatibleDriver = errors.New("incompatible driver")

// IncompatibleDriverError is a driver built for another API version.
type IncompatibleDriverError struct {
	Path string
	Info driver.Info
}

func (e *IncompatibleDriverError) Error() string {
	return fmt.Sprintf("driver %s speaks API %s, expected %s (driver %s, toolchain %s)",
		e.Path, e.Info.APIVersion, version.APIVersion, e.Info.Version, e.Info.Toolchain)
}

func (e *IncompatibleDriverError) Is(target error) bool {
	return target == ErrIncompatibleDriver
}
