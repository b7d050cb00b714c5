package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"marker/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "cargo-marker",
	Short:         "Lint Rust crates with marker lint crates",
	Long:          `cargo-marker builds the lint crates listed in the workspace manifest and runs cargo check with the marker driver loading them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// main registers subcommands and persistent flags, then executes the root
// command. cargo runs subcommands as `cargo-marker marker ...`; the extra
// argument is dropped.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(toolchainCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")

	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both); ring dumps on failure")
	pf.String("trace-format", "auto", "trace encoding (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "heartbeat interval, 0 disables")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	rootCmd.SetArgs(cargoArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd.ErrOrStderr(), err, useColor(rootCmd, os.Stderr))
		os.Exit(exitCode(err))
	}
}

// cargoArgs strips the subcommand name cargo passes first.
func cargoArgs(args []string) []string {
	if len(args) > 0 && args[0] == "marker" {
		return args[1:]
	}
	return args
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor reads --color; auto colors terminals only.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
