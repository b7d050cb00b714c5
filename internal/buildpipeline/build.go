// Package buildpipeline compiles lint crates and runs cargo check with the
// resolved driver as the compiler wrapper.
package buildpipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"

	"marker/internal/config"
	"marker/internal/toolchain"
)

// EnvRustFlags carries the configured rustc flags into lint crate builds.
const EnvRustFlags = "RUSTFLAGS"

// BuildRequest configures a lint crate build.
type BuildRequest struct {
	Cargo toolchain.Cargo
	// TargetDir is the workspace target directory. Lint crates are built in
	// its marker subdirectory so they never share artifacts with the
	// workspace itself.
	TargetDir  string
	Lints      []config.LintCrate
	DebugBuild bool
	RustcFlags string
	// Jobs caps concurrent cargo builds. Values below 1 mean 1.
	Jobs int

	Run      toolchain.Runner
	Progress ProgressSink
	// CommandLog receives every command line before it runs.
	CommandLog io.Writer
	// Stdout and Stderr stream cargo output when set.
	Stdout io.Writer
	Stderr io.Writer
	// GOOS picks the library file naming; empty means runtime.GOOS.
	GOOS string
}

// LintLibrary is a built lint crate.
type LintLibrary struct {
	Name string
	Path string
}

// BuildResult lists the built libraries in request order.
type BuildResult struct {
	Libraries []LintLibrary
	Timings   Timings
}

// Paths returns the library paths.
func (r BuildResult) Paths() []string {
	paths := make([]string, len(r.Libraries))
	for i, lib := range r.Libraries {
		paths[i] = lib.Path
	}
	return paths
}

// BuildLints runs one cargo build per lint crate. The first failure cancels
// builds that have not started and is returned.
func BuildLints(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if len(req.Lints) == 0 {
		return result, fmt.Errorf("no lint crates configured; add them to [workspace.metadata.marker.lints]")
	}
	if req.TargetDir == "" {
		return result, fmt.Errorf("missing target directory")
	}

	start := time.Now()
	emit(req.Progress, "", StageBuild, StatusWorking, nil, 0)

	dir := filepath.Join(req.TargetDir, "marker")
	wrapper, err := writeWrapperManifest(dir, req.Lints)
	if err != nil {
		emit(req.Progress, "", StageBuild, StatusError, err, 0)
		return result, err
	}

	for _, lc := range req.Lints {
		emit(req.Progress, lc.Name, StageBuild, StatusQueued, nil, 0)
	}

	libs := make([]LintLibrary, len(req.Lints))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(req.Jobs, 1))
	for i, lc := range req.Lints {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lib, err := buildOne(gctx, req, dir, wrapper, lc)
			if err != nil {
				return fmt.Errorf("lint crate %s: %w", lc.Name, err)
			}
			libs[i] = lib
			return nil
		})
	}
	err = g.Wait()
	result.Timings.Set(StageBuild, time.Since(start))
	if err != nil {
		emit(req.Progress, "", StageBuild, StatusError, err, result.Timings.Duration(StageBuild))
		return result, err
	}
	result.Libraries = libs
	emit(req.Progress, "", StageBuild, StatusDone, nil, result.Timings.Duration(StageBuild))
	return result, nil
}

func buildOne(ctx context.Context, req *BuildRequest, dir, wrapper string, lc config.LintCrate) (LintLibrary, error) {
	start := time.Now()
	emit(req.Progress, lc.Name, StageBuild, StatusWorking, nil, 0)
	fail := func(err error) (LintLibrary, error) {
		emit(req.Progress, lc.Name, StageBuild, StatusError, err, time.Since(start))
		return LintLibrary{}, err
	}

	cmd := req.Cargo.Command(buildArgs(dir, wrapper, lc, req.DebugBuild)...).WithEnv(EnvRustFlags, req.RustcFlags)
	cmd.Stdout = req.Stdout
	cmd.Stderr = req.Stderr
	if _, err := runCommand(ctx, req.Run, req.CommandLog, cmd); err != nil {
		return fail(err)
	}

	path := filepath.Join(dir, profile(req.DebugBuild), LibraryFile(req.GOOS, lc.Name))
	if _, err := os.Stat(path); err != nil {
		return fail(&toolchain.IOError{Op: "locate lint library", Path: path, Err: err})
	}
	emit(req.Progress, lc.Name, StageBuild, StatusDone, nil, time.Since(start))
	return LintLibrary{Name: lc.Name, Path: path}, nil
}

func buildArgs(dir, wrapper string, lc config.LintCrate, debug bool) []string {
	args := []string{"build"}
	if lc.Kind == config.SourcePath {
		args = append(args, "--manifest-path", filepath.Join(lc.Path, config.ManifestName))
	} else {
		args = append(args, "--manifest-path", wrapper, "-p", lc.Name)
	}
	args = append(args, "--target-dir", dir)
	if !debug {
		args = append(args, "--release")
	}
	return args
}

func profile(debug bool) string {
	if debug {
		return "debug"
	}
	return "release"
}

// LibraryFile is the file name cargo gives the dynamic library of crate on
// goos.
func LibraryFile(goos, crate string) string {
	if goos == "" {
		goos = runtime.GOOS
	}
	name := strings.ReplaceAll(crate, "-", "_")
	switch goos {
	case "windows":
		return name + ".dll"
	case "darwin", "ios":
		return "lib" + name + ".dylib"
	default:
		return "lib" + name + ".so"
	}
}

// wrapperManifest is a throwaway package that depends on every registry and
// git lint crate, so `cargo build -p <name>` can fetch and build them.
type wrapperManifest struct {
	Package      wrapperPackage        `toml:"package"`
	Lib          wrapperLib            `toml:"lib"`
	Dependencies map[string]wrapperDep `toml:"dependencies"`
	Workspace    map[string]any        `toml:"workspace"`
}

type wrapperPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
	Publish bool   `toml:"publish"`
}

type wrapperLib struct {
	Path string `toml:"path"`
}

type wrapperDep struct {
	Version string `toml:"version,omitempty"`
	Git     string `toml:"git,omitempty"`
	Rev     string `toml:"rev,omitempty"`
}

const wrapperDir = "lints"

// writeWrapperManifest writes the wrapper package under dir and returns its
// manifest path, or "" when every lint crate is a path crate.
func writeWrapperManifest(dir string, lints []config.LintCrate) (string, error) {
	deps := make(map[string]wrapperDep)
	for _, lc := range lints {
		switch lc.Kind {
		case config.SourceRegistry:
			deps[lc.Name] = wrapperDep{Version: lc.Version}
		case config.SourceGit:
			deps[lc.Name] = wrapperDep{Git: lc.Git, Rev: lc.Rev}
		case config.SourcePath:
		default:
			return "", fmt.Errorf("lint crate %s: unknown source kind %s", lc.Name, lc.Kind)
		}
	}
	if len(deps) == 0 {
		return "", nil
	}

	m := wrapperManifest{
		Package:      wrapperPackage{Name: "marker_lint_crates", Version: "0.0.0", Edition: "2021"},
		Lib:          wrapperLib{Path: "lib.rs"},
		Dependencies: deps,
		Workspace:    map[string]any{},
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return "", fmt.Errorf("encode lint crate manifest: %w", err)
	}

	root := filepath.Join(dir, wrapperDir)
	if err := os.MkdirAll(root, 0o750); err != nil {
		return "", &toolchain.IOError{Op: "mkdir", Path: root, Err: err}
	}
	manifest := filepath.Join(root, config.ManifestName)
	if err := writeIfChanged(manifest, buf.Bytes()); err != nil {
		return "", err
	}
	if err := writeIfChanged(filepath.Join(root, "lib.rs"), nil); err != nil {
		return "", err
	}
	return manifest, nil
}

// writeIfChanged leaves identical files alone so cargo's fingerprints stay
// valid between runs.
func writeIfChanged(path string, data []byte) error {
	// #nosec G304 -- path is inside the marker target directory
	old, err := os.ReadFile(path)
	if err == nil && bytes.Equal(old, data) {
		return nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &toolchain.IOError{Op: "read", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &toolchain.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
