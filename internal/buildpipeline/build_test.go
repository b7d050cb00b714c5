package buildpipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/BurntSushi/toml"

	"marker/internal/config"
	"marker/internal/toolchain"
)

// fakeCargo pretends to be cargo build: it records the command and drops
// the library where cargo would put it.
type fakeCargo struct {
	mu   sync.Mutex
	cmds []toolchain.Command
	fail map[string]error
	skip map[string]bool
}

func (f *fakeCargo) run(_ context.Context, cmd toolchain.Command) ([]byte, error) {
	f.mu.Lock()
	f.cmds = append(f.cmds, cmd)
	f.mu.Unlock()

	name := crateOf(cmd.Args)
	if err := f.fail[name]; err != nil {
		return nil, err
	}
	if f.skip[name] {
		return nil, nil
	}
	dir := argAfter(cmd.Args, "--target-dir")
	prof := "debug"
	if slices.Contains(cmd.Args, "--release") {
		prof = "release"
	}
	lib := filepath.Join(dir, prof, LibraryFile("linux", name))
	if err := os.MkdirAll(filepath.Dir(lib), 0o750); err != nil {
		return nil, err
	}
	return nil, os.WriteFile(lib, []byte("\x7fELF"), 0o600)
}

func (f *fakeCargo) commands() []toolchain.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]toolchain.Command(nil), f.cmds...)
}

func argAfter(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func crateOf(args []string) string {
	if p := argAfter(args, "-p"); p != "" {
		return p
	}
	return filepath.Base(filepath.Dir(argAfter(args, "--manifest-path")))
}

func testLints(root string) []config.LintCrate {
	return []config.LintCrate{
		{Name: "git_lints", Kind: config.SourceGit, Git: "https://example.com/lints.git", Rev: "abc123"},
		{Name: "local_lints", Kind: config.SourcePath, Path: filepath.Join(root, "local_lints")},
		{Name: "marker_lints", Kind: config.SourceRegistry, Version: "0.4.0"},
	}
}

func TestBuildLints(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	fake := &fakeCargo{}
	var rec RecordSink
	var log strings.Builder

	res, err := BuildLints(context.Background(), &BuildRequest{
		Cargo:      toolchain.Cargo{Toolchain: "nightly"},
		TargetDir:  target,
		Lints:      testLints(root),
		RustcFlags: "-C debuginfo=1",
		Run:        fake.run,
		Progress:   &rec,
		CommandLog: &log,
		GOOS:       "linux",
	})
	if err != nil {
		t.Fatalf("BuildLints: %v", err)
	}

	dir := filepath.Join(target, "marker")
	want := []string{
		filepath.Join(dir, "release", "libgit_lints.so"),
		filepath.Join(dir, "release", "liblocal_lints.so"),
		filepath.Join(dir, "release", "libmarker_lints.so"),
	}
	if !slices.Equal(res.Paths(), want) {
		t.Errorf("paths = %q\nwant %q", res.Paths(), want)
	}
	if !res.Timings.Has(StageBuild) {
		t.Error("build stage not timed")
	}

	wrapper := filepath.Join(dir, "lints", "Cargo.toml")
	cmds := fake.commands()
	if len(cmds) != 3 {
		t.Fatalf("%d cargo runs, want 3", len(cmds))
	}
	for _, cmd := range cmds {
		if !slices.Contains(cmd.Env, "RUSTFLAGS=-C debuginfo=1") || !slices.Contains(cmd.Env, "RUSTUP_TOOLCHAIN=nightly") {
			t.Errorf("env = %q", cmd.Env)
		}
		if argAfter(cmd.Args, "--target-dir") != dir {
			t.Errorf("target dir of %v", cmd)
		}
		manifest := argAfter(cmd.Args, "--manifest-path")
		if crateOf(cmd.Args) == "local_lints" {
			if manifest != filepath.Join(root, "local_lints", "Cargo.toml") {
				t.Errorf("path crate manifest = %q", manifest)
			}
		} else if manifest != wrapper {
			t.Errorf("manifest of %s = %q", crateOf(cmd.Args), manifest)
		}
	}
	if n := strings.Count(log.String(), "cargo build"); n != 3 {
		t.Errorf("command log has %d builds:\n%s", n, log.String())
	}

	var m struct {
		Dependencies map[string]map[string]string `toml:"dependencies"`
	}
	if _, err := toml.DecodeFile(wrapper, &m); err != nil {
		t.Fatalf("wrapper manifest: %v", err)
	}
	if len(m.Dependencies) != 2 || m.Dependencies["marker_lints"]["version"] != "0.4.0" ||
		m.Dependencies["git_lints"]["rev"] != "abc123" {
		t.Errorf("dependencies = %v", m.Dependencies)
	}

	done := 0
	for _, evt := range rec.Events() {
		if evt.Status == StatusDone {
			done++
		}
		if evt.Status == StatusError {
			t.Errorf("error event %+v", evt)
		}
	}
	if done != 4 {
		t.Errorf("%d done events, want 4", done)
	}
}

func TestBuildLintsDebugPathOnly(t *testing.T) {
	root := t.TempDir()
	fake := &fakeCargo{}
	lints := []config.LintCrate{{Name: "local-lints", Kind: config.SourcePath, Path: filepath.Join(root, "local-lints")}}

	res, err := BuildLints(context.Background(), &BuildRequest{
		TargetDir:  filepath.Join(root, "target"),
		Lints:      lints,
		DebugBuild: true,
		Run:        fake.run,
		GOOS:       "linux",
	})
	if err != nil {
		t.Fatalf("BuildLints: %v", err)
	}
	if got := filepath.Base(res.Libraries[0].Path); got != "liblocal_lints.so" {
		t.Errorf("library = %q", got)
	}
	if slices.Contains(fake.commands()[0].Args, "--release") {
		t.Error("debug build passed --release")
	}
	if _, err := os.Stat(filepath.Join(root, "target", "marker", "lints")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("wrapper written for path-only lints: %v", err)
	}
}

func TestBuildLintsFailure(t *testing.T) {
	root := t.TempDir()
	boom := &toolchain.CommandError{Command: "cargo build", Stderr: "error[E0432]\n", ExitCode: 101}
	fake := &fakeCargo{fail: map[string]error{"local_lints": boom}}
	var rec RecordSink

	_, err := BuildLints(context.Background(), &BuildRequest{
		TargetDir: filepath.Join(root, "target"),
		Lints:     testLints(root),
		Run:       fake.run,
		Progress:  &rec,
		GOOS:      "linux",
	})
	var ce *toolchain.CommandError
	if !errors.As(err, &ce) || ce.Stderr != "error[E0432]\n" {
		t.Fatalf("err = %v, want the cargo failure", err)
	}
	if !strings.Contains(err.Error(), "lint crate local_lints") {
		t.Errorf("err = %q", err)
	}

	var crateErr, stageErr bool
	for _, evt := range rec.Events() {
		if evt.Status != StatusError {
			continue
		}
		switch evt.Crate {
		case "local_lints":
			crateErr = true
		case "":
			stageErr = true
		}
	}
	if !crateErr || !stageErr {
		t.Errorf("error events crate=%v stage=%v", crateErr, stageErr)
	}
}

func TestBuildLintsMissingLibrary(t *testing.T) {
	root := t.TempDir()
	fake := &fakeCargo{skip: map[string]bool{"marker_lints": true}}
	_, err := BuildLints(context.Background(), &BuildRequest{
		TargetDir: filepath.Join(root, "target"),
		Lints:     testLints(root)[2:],
		Run:       fake.run,
		GOOS:      "linux",
	})
	var ioe *toolchain.IOError
	if !errors.As(err, &ioe) || !strings.HasSuffix(ioe.Path, "libmarker_lints.so") {
		t.Errorf("err = %v, want missing library", err)
	}
}

func TestBuildLintsRejects(t *testing.T) {
	tests := []struct {
		name string
		req  *BuildRequest
	}{
		{"nil", nil},
		{"no lints", &BuildRequest{TargetDir: "/t"}},
		{"no target", &BuildRequest{Lints: testLints("/w")}},
		{"bad kind", &BuildRequest{TargetDir: t.TempDir(), Lints: []config.LintCrate{{Name: "x"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCargo{}
			if tt.req != nil {
				tt.req.Run = fake.run
			}
			if _, err := BuildLints(context.Background(), tt.req); err == nil {
				t.Error("accepted")
			}
			if n := len(fake.commands()); n != 0 {
				t.Errorf("%d commands ran", n)
			}
		})
	}
}

func TestBuildLintsCanceled(t *testing.T) {
	root := t.TempDir()
	fake := &fakeCargo{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildLints(ctx, &BuildRequest{
		TargetDir: filepath.Join(root, "target"),
		Lints:     testLints(root),
		Run:       fake.run,
		Jobs:      2,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want canceled", err)
	}
	if n := len(fake.commands()); n != 0 {
		t.Errorf("%d commands ran after cancel", n)
	}
}

func TestLibraryFile(t *testing.T) {
	tests := []struct {
		goos, crate, want string
	}{
		{"linux", "marker_lints", "libmarker_lints.so"},
		{"freebsd", "my-lints", "libmy_lints.so"},
		{"darwin", "marker_lints", "libmarker_lints.dylib"},
		{"windows", "my-lints", "my_lints.dll"},
	}
	for _, tt := range tests {
		if got := LibraryFile(tt.goos, tt.crate); got != tt.want {
			t.Errorf("LibraryFile(%q, %q) = %q, want %q", tt.goos, tt.crate, got, tt.want)
		}
	}
}
