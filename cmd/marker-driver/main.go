// Command marker-driver is installed as marker_rustc_driver. cargo runs it as
// RUSTC_WORKSPACE_WRAPPER; cargo-marker also calls it directly for the
// version handshake.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marker/internal/driver"
	"marker/internal/toolchain"
	"marker/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   version.DriverBinary + " [--marker-info | --toolchain | <rustc> args...]",
	Short: "Compiler wrapper that runs marker lint crates",
	// rustc flags must reach rustc untouched
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			switch args[0] {
			case driver.InfoFlag:
				return driver.WriteInfo(out, driver.CurrentInfo())
			case "--toolchain":
				_, err := fmt.Fprintln(out, version.DefaultToolchain)
				return err
			case "--version", "-V":
				_, err := fmt.Fprintf(out, "%s %s\n", version.DriverBinary, version.Plain())
				return err
			case "--help", "-h":
				return cmd.Help()
			}
		}
		w := &wrapper{
			lookupEnv: os.LookupEnv,
			exec:      toolchain.Exec,
			stdin:     cmd.InOrStdin(),
			stdout:    out,
			stderr:    cmd.ErrOrStderr(),
		}
		return w.run(cmd.Context(), args)
	},
}

func main() {
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		var ce *toolchain.CommandError
		if errors.As(err, &ce) {
			// rustc already printed its diagnostics
			os.Exit(max(ce.ExitCode, 1))
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", version.DriverBinary, err)
		os.Exit(1)
	}
}
