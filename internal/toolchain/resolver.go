// Package toolchain finds the driver binary to lint with and builds the cargo
// command lines that run it.
package toolchain

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"marker/internal/driver"
	"marker/internal/trace"
	"marker/internal/version"
)

// EnvLocalDriver switches the resolver to local mode: only the driver next
// to the running executable is considered.
const EnvLocalDriver = "MARKER_LOCAL_DRIVER"

// Toolchain is a resolved driver together with the cargo that belongs to it.
type Toolchain struct {
	DriverPath string
	Cargo      Cargo
	Info       driver.Info
	// Kind tells which resolution step found the driver.
	Kind CandidateKind
}

// CargoWithDriver returns `cargo args...` with the driver installed as the
// compiler wrapper of the workspace.
func (t *Toolchain) CargoWithDriver(args ...string) Command {
	return t.Cargo.Command(args...).WithEnv(EnvWrapper, t.DriverPath)
}

// Resolver finds a driver. Every hook has an OS-backed default; tests
// replace them.
type Resolver struct {
	LookupEnv  func(key string) (string, bool)
	Executable func() (string, error)
	Which      func(ctx context.Context, toolchain, tool string) (string, error)
	Probe      func(ctx context.Context, driverPath string) (driver.Info, error)
	IsFile     func(path string) bool

	// DefaultToolchain is tried after the override.
	DefaultToolchain string
	// Local forces local mode in addition to EnvLocalDriver.
	Local bool
}

// NewResolver returns a resolver that runs commands with run and caches
// probe results in cache, which may be nil.
func NewResolver(run Runner, cache *driver.InfoCache) *Resolver {
	if run == nil {
		run = Exec
	}
	return &Resolver{
		LookupEnv:  os.LookupEnv,
		Executable: os.Executable,
		Which: func(ctx context.Context, toolchain, tool string) (string, error) {
			return Which(ctx, run, toolchain, tool)
		},
		Probe:            CachedProbe(run, cache),
		IsFile:           isFile,
		DefaultToolchain: version.DefaultToolchain,
	}
}

// Probe runs `<driver> --marker-info` and decodes its answer.
func Probe(ctx context.Context, run Runner, driverPath string) (driver.Info, error) {
	out, err := run(ctx, Command{Name: driverPath, Args: []string{driver.InfoFlag}})
	if err != nil {
		return driver.Info{}, err
	}
	return driver.ReadInfo(out)
}

// CachedProbe is Probe backed by cache. Cache errors only cost a probe.
func CachedProbe(run Runner, cache *driver.InfoCache) func(context.Context, string) (driver.Info, error) {
	return func(ctx context.Context, driverPath string) (driver.Info, error) {
		if info, ok, err := cache.Get(driverPath); err == nil && ok {
			return info, nil
		}
		info, err := Probe(ctx, run, driverPath)
		if err != nil {
			return driver.Info{}, err
		}
		if putErr := cache.Put(driverPath, info); putErr != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeCandidate, "info_cache", putErr.Error(), trace.CurrentSpan(ctx).SpanID)
		}
		return info, nil
	}
}

// Resolve returns the first usable driver in this order: the adjacent driver
// in local mode (and nothing else), the RUSTUP_TOOLCHAIN toolchain, the
// default toolchain, and the adjacent driver as a fallback. When all fail the
// error is a *ResolutionError with one Attempt per candidate.
func (r *Resolver) Resolve(ctx context.Context) (*Toolchain, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, "resolve", trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpan(ctx, span)

	var attempts []Attempt
	try := func(kind CandidateKind, toolchain string) *Toolchain {
		cs := trace.Begin(tracer, trace.ScopeCandidate, kind.String(), span.ID())
		var tc *Toolchain
		var err error
		if toolchain == "" {
			tc, err = r.searchAdjacent(ctx)
		} else {
			tc, err = r.searchToolchain(ctx, toolchain)
		}
		if err != nil {
			cs.End(err.Error())
			attempts = append(attempts, Attempt{Kind: kind, Toolchain: toolchain, Err: err})
			return nil
		}
		cs.End(tc.DriverPath)
		tc.Kind = kind
		return tc
	}

	if r.localMode() {
		if tc := try(CandidateLocal, ""); tc != nil {
			span.End("local")
			return tc, nil
		}
		span.End("failed")
		return nil, &ResolutionError{Attempts: attempts}
	}
	if name, ok := r.LookupEnv(EnvToolchain); ok && name != "" {
		if tc := try(CandidateOverride, name); tc != nil {
			span.End(name)
			return tc, nil
		}
	}
	if r.DefaultToolchain != "" {
		if tc := try(CandidateDefault, r.DefaultToolchain); tc != nil {
			span.End(r.DefaultToolchain)
			return tc, nil
		}
	}
	if tc := try(CandidateAdjacent, ""); tc != nil {
		span.End("adjacent")
		return tc, nil
	}
	span.End("failed")
	return nil, &ResolutionError{Attempts: attempts}
}

func (r *Resolver) localMode() bool {
	if r.Local {
		return true
	}
	v, ok := r.LookupEnv(EnvLocalDriver)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

func (r *Resolver) searchToolchain(ctx context.Context, toolchain string) (*Toolchain, error) {
	path, err := r.Which(ctx, toolchain, DriverBinaryName())
	if err != nil {
		return nil, err
	}
	return r.accept(ctx, path, Cargo{Toolchain: toolchain})
}

func (r *Resolver) searchAdjacent(ctx context.Context) (*Toolchain, error) {
	exe, err := r.Executable()
	if err != nil {
		return nil, &IOError{Op: "locate executable", Err: err}
	}
	path := filepath.Join(filepath.Dir(exe), DriverBinaryName())
	if !r.IsFile(path) {
		return nil, &IOError{Op: "find driver", Path: path, Err: fs.ErrNotExist}
	}
	return r.accept(ctx, path, Cargo{})
}

// accept probes the driver at path and checks its API version.
func (r *Resolver) accept(ctx context.Context, path string, cargo Cargo) (*Toolchain, error) {
	info, err := r.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	if !info.Compatible() {
		return nil, &IncompatibleDriverError{Path: path, Info: info}
	}
	return &Toolchain{DriverPath: path, Cargo: cargo, Info: info}, nil
}

// DriverBinaryName is the driver's file name on this platform.
func DriverBinaryName() string {
	if runtime.GOOS == "windows" {
		return version.DriverBinary + ".exe"
	}
	return version.DriverBinary
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	if err != nil {
		return false
	}
	return st.Mode().IsRegular()
}
