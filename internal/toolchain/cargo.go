package toolchain

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	// EnvToolchain selects the toolchain of rustup proxies. The resolver
	// reads it as the toolchain override.
	EnvToolchain = "RUSTUP_TOOLCHAIN"
	// EnvWrapper names the binary cargo runs instead of rustc for every
	// workspace member.
	EnvWrapper = "RUSTC_WORKSPACE_WRAPPER"
)

// Cargo builds cargo command lines for one toolchain. The zero value uses
// whatever cargo is on PATH.
type Cargo struct {
	Toolchain string
}

// Command returns `cargo args...`.
func (c Cargo) Command(args ...string) Command {
	cmd := Command{Name: "cargo", Args: args}
	if c.Toolchain != "" {
		cmd = cmd.WithEnv(EnvToolchain, c.Toolchain)
	}
	return cmd
}

type metadata struct {
	TargetDirectory string `json:"target_directory"`
}

// TargetDir returns the target directory of the workspace at manifest, or of
// the current directory when manifest is empty.
func (c Cargo) TargetDir(ctx context.Context, run Runner, manifest string) (string, error) {
	args := []string{"metadata", "--format-version", "1", "--no-deps"}
	if manifest != "" {
		args = append(args, "--manifest-path", manifest)
	}
	out, err := run(ctx, c.Command(args...))
	if err != nil {
		return "", fmt.Errorf("couldn't find the target directory: %w", err)
	}
	var md metadata
	if err := json.Unmarshal(out, &md); err != nil {
		return "", fmt.Errorf("couldn't find the target directory: cargo metadata: %w", err)
	}
	if md.TargetDirectory == "" {
		return "", fmt.Errorf("couldn't find the target directory: cargo metadata has no target_directory")
	}
	return md.TargetDirectory, nil
}
