package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marker/internal/driver"
	"marker/internal/toolchain"
	"marker/internal/version"
	"marker/pkg/lint"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestHandshakeFlags(t *testing.T) {
	info, err := driver.ReadInfo([]byte(execute(t, driver.InfoFlag)))
	if err != nil {
		t.Fatalf("ReadInfo: %v", err)
	}
	if info != driver.CurrentInfo() {
		t.Errorf("info = %+v", info)
	}
	if got := execute(t, "--toolchain"); got != version.DefaultToolchain+"\n" {
		t.Errorf("--toolchain = %q", got)
	}
	if got := execute(t, "-V"); !strings.HasPrefix(got, version.DriverBinary+" ") {
		t.Errorf("-V = %q", got)
	}
}

type wrapperEnv map[string]string

func (e wrapperEnv) lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

func TestWrapperForwardsToRustc(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "libmarker_lints.so")
	if err := os.WriteFile(lib, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	var got toolchain.Command
	w := &wrapper{
		lookupEnv: wrapperEnv{
			driver.EnvLintCrates: " " + lib + " ;;",
			driver.EnvLintLevels: "unit_return=warn; fn_names=deny",
		}.lookup,
		exec: func(_ context.Context, cmd toolchain.Command) ([]byte, error) {
			got = cmd
			return nil, nil
		},
	}
	args := []string{"/rust/bin/rustc", "--crate-name", "demo", "--edition=2021", "src/lib.rs"}
	if err := w.run(context.Background(), args); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Name != "/rust/bin/rustc" || strings.Join(got.Args, " ") != "--crate-name demo --edition=2021 src/lib.rs" {
		t.Errorf("forwarded %s", got)
	}
	wantEnv := []string{
		driver.EnvLintCrates + "=" + lib,
		driver.EnvLintLevels + "=fn_names=deny;unit_return=warn",
	}
	if strings.Join(got.Env, "\n") != strings.Join(wantEnv, "\n") {
		t.Errorf("rustc env = %q, want %q", got.Env, wantEnv)
	}

	s, err := w.setup()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.libraries) != 1 || s.levels["fn_names"] != lint.Deny {
		t.Errorf("setup = %+v", s)
	}
}

func TestWrapperRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		env  wrapperEnv
		args []string
	}{
		{"no rustc", wrapperEnv{driver.EnvLintCrates: dir}, nil},
		{"no crates var", wrapperEnv{}, []string{"rustc"}},
		{"empty list", wrapperEnv{driver.EnvLintCrates: " ; "}, []string{"rustc"}},
		{"missing library", wrapperEnv{driver.EnvLintCrates: filepath.Join(dir, "nope.so")}, []string{"rustc"}},
		{"directory", wrapperEnv{driver.EnvLintCrates: dir}, []string{"rustc"}},
		{"bad level", wrapperEnv{driver.EnvLintCrates: dir, driver.EnvLintLevels: "x=loud"}, []string{"rustc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran := false
			w := &wrapper{
				lookupEnv: tt.env.lookup,
				exec: func(context.Context, toolchain.Command) ([]byte, error) {
					ran = true
					return nil, nil
				},
			}
			if err := w.run(context.Background(), tt.args); err == nil {
				t.Error("accepted")
			}
			if ran {
				t.Error("rustc ran")
			}
		})
	}
}

func TestWrapperKeepsRustcFailure(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "liba.so")
	if err := os.WriteFile(lib, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	boom := &toolchain.CommandError{Command: "rustc", Stderr: "error[E0308]\n", ExitCode: 1}
	w := &wrapper{
		lookupEnv: wrapperEnv{driver.EnvLintCrates: lib}.lookup,
		exec:      func(context.Context, toolchain.Command) ([]byte, error) { return nil, boom },
	}
	if err := w.run(context.Background(), []string{"rustc", "x.rs"}); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}
