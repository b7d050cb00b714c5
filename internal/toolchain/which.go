package toolchain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Rustup is the toolchain multiplexer queried by Which.
const Rustup = "rustup"

// Which asks rustup for the path of tool in toolchain.
func Which(ctx context.Context, run Runner, toolchain, tool string) (string, error) {
	cmd := Command{Name: Rustup, Args: []string{"which", "--toolchain", toolchain, tool}}
	out, err := run(ctx, cmd)
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(string(out))
	if path == "" || strings.ContainsAny(path, "\r\n") {
		return "", fmt.Errorf("%s: expected one path, got %q", cmd, string(out))
	}
	return path, nil
}

// Root returns the toolchain directory of a tool path:
// .../toolchains/T/bin/cargo -> .../toolchains/T.
func Root(tool string) (string, error) {
	p := filepath.Clean(tool)
	for range 2 {
		parent := filepath.Dir(p)
		if parent == p {
			return "", fmt.Errorf("unexpected layout of the toolchain bin directory: %s has not enough ancestors", tool)
		}
		p = parent
	}
	return p, nil
}

// Folder returns the root directory of toolchain.
func Folder(ctx context.Context, run Runner, toolchain string) (string, error) {
	cargo, err := Which(ctx, run, toolchain, "cargo")
	if err != nil {
		return "", err
	}
	return Root(cargo)
}
