package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"marker/internal/driver"
	"marker/internal/toolchain"
	"marker/pkg/lint"
)

// wrapper is the RUSTC_WORKSPACE_WRAPPER side of the driver: cargo calls it
// with the real rustc path followed by rustc's arguments.
type wrapper struct {
	lookupEnv func(key string) (string, bool)
	exec      toolchain.Runner
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
}

// lintSetup is what cargo-marker prepared for this compilation.
type lintSetup struct {
	libraries []string
	levels    map[string]lint.Level
}

func (w *wrapper) setup() (lintSetup, error) {
	var s lintSetup
	raw, ok := w.lookupEnv(driver.EnvLintCrates)
	if !ok {
		return s, fmt.Errorf("%s is not set; run the driver through cargo-marker", driver.EnvLintCrates)
	}
	s.libraries = driver.SplitLintCrates(raw)
	if len(s.libraries) == 0 {
		return s, fmt.Errorf("%s names no lint libraries", driver.EnvLintCrates)
	}
	for _, lib := range s.libraries {
		st, err := os.Stat(lib)
		if err != nil {
			return s, &toolchain.IOError{Op: "load lint library", Path: lib, Err: err}
		}
		if st.IsDir() {
			return s, &toolchain.IOError{Op: "load lint library", Path: lib, Err: fmt.Errorf("is a directory")}
		}
	}
	levels, _ := w.lookupEnv(driver.EnvLintLevels)
	var err error
	if s.levels, err = driver.ParseLevels(levels); err != nil {
		return s, err
	}
	return s, nil
}

// run checks the lint setup and hands the compilation to rustc. The lint
// libraries and levels reach the compiler process in normalized form: empty
// list entries dropped, levels sorted by name.
func (w *wrapper) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected the rustc path as first argument")
	}
	s, err := w.setup()
	if err != nil {
		return err
	}
	cmd := toolchain.Command{
		Name:   args[0],
		Args:   args[1:],
		Stdin:  w.stdin,
		Stdout: w.stdout,
		Stderr: w.stderr,
	}
	cmd = s.apply(cmd)
	_, err = w.exec(ctx, cmd)
	return err
}

func (s lintSetup) apply(cmd toolchain.Command) toolchain.Command {
	cmd = cmd.WithEnv(driver.EnvLintCrates, driver.JoinLintCrates(s.libraries))
	if len(s.levels) > 0 {
		cmd = cmd.WithEnv(driver.EnvLintLevels, driver.FormatLevels(s.levels))
	}
	return cmd
}
