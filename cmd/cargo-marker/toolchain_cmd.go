package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"marker/internal/toolchain"
	"marker/internal/trace"
)

var toolchainCmd = &cobra.Command{
	Use:   "toolchain",
	Short: "Show which driver check would use",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		local, err := cmd.Flags().GetBool("local-driver")
		if err != nil {
			return err
		}
		clearCache, err := cmd.Flags().GetBool("clear-cache")
		if err != nil {
			return err
		}
		tr, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		defer func() { tr.finish(err) }()

		ctx := cmd.Context()
		cache := openInfoCache(ctx)
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear driver cache: %w", err)
			}
		}
		resolver := toolchain.NewResolver(toolchain.Exec, cache)
		resolver.Local = local
		span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "toolchain", 0)
		tc, err := resolver.Resolve(trace.WithSpan(ctx, span))
		if err != nil {
			span.End(err.Error())
			return err
		}
		span.End(tc.DriverPath)
		return printToolchain(cmd.OutOrStdout(), tc)
	},
}

func init() {
	toolchainCmd.Flags().Bool("local-driver", false, "only use the driver next to cargo-marker")
	toolchainCmd.Flags().Bool("clear-cache", false, "forget cached driver handshakes first")
}

func printToolchain(out io.Writer, tc *toolchain.Toolchain) error {
	cargoToolchain := tc.Cargo.Toolchain
	if cargoToolchain == "" {
		cargoToolchain = "(cargo on PATH)"
	}
	_, err := fmt.Fprintf(out, "driver:      %s\nfound via:   %s\ncargo:       %s\ntoolchain:   %s\nversion:     %s\napi version: %s\n",
		tc.DriverPath, tc.Kind, cargoToolchain, tc.Info.Toolchain, tc.Info.Version, tc.Info.APIVersion)
	return err
}
