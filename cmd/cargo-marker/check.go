package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"marker/internal/buildpipeline"
	"marker/internal/config"
	"marker/internal/driver"
	"marker/internal/toolchain"
	"marker/internal/trace"
)

var checkCmd = &cobra.Command{
	Use:   "check [-- cargo check args...]",
	Short: "Build the configured lint crates and lint the workspace",
	Long: `check resolves the marker driver, builds every lint crate from
[workspace.metadata.marker.lints] and runs cargo check with the driver as
RUSTC_WORKSPACE_WRAPPER. Arguments after -- go to cargo check.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("manifest-path", "", "path to Cargo.toml (default: nearest above the working directory)")
	checkCmd.Flags().Int("jobs", 1, "lint crates built concurrently")
	checkCmd.Flags().Bool("print-commands", false, "print every cargo command before running it")
	checkCmd.Flags().Bool("local-driver", false, "only use the driver next to cargo-marker")
	checkCmd.Flags().String("ui", "auto", "live build view (auto|on|off)")
}

// checkOptions are the parsed flags of check.
type checkOptions struct {
	manifestPath  string
	jobs          int
	printCommands bool
	localDriver   bool
	ui            uiMode
	quiet         bool
	timings       bool
	extra         []string
}

func readCheckOptions(cmd *cobra.Command, args []string) (checkOptions, error) {
	var opts checkOptions
	var err error
	flags := cmd.Flags()
	if opts.manifestPath, err = flags.GetString("manifest-path"); err != nil {
		return opts, err
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, err
	}
	if opts.jobs < 1 {
		return opts, fmt.Errorf("--jobs must be at least 1")
	}
	if opts.printCommands, err = flags.GetBool("print-commands"); err != nil {
		return opts, err
	}
	if opts.localDriver, err = flags.GetBool("local-driver"); err != nil {
		return opts, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, err
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return opts, err
	}
	if opts.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return opts, err
	}
	opts.extra = args
	return opts, nil
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	opts, err := readCheckOptions(cmd, args)
	if err != nil {
		return err
	}
	tr, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer func() { tr.finish(err) }()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	ctx := cmd.Context()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", 0)
	defer func() {
		if err != nil {
			span.End(err.Error())
			return
		}
		span.End("")
	}()
	ctx = trace.WithSpan(ctx, span)

	cfg, err := loadConfig(opts.manifestPath)
	if err != nil {
		return err
	}

	var timings buildpipeline.Timings
	start := time.Now()
	resolver := toolchain.NewResolver(toolchain.Exec, openInfoCache(ctx))
	resolver.Local = opts.localDriver
	tc, err := resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	timings.Set(buildpipeline.StageResolve, time.Since(start))
	if !opts.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "using %s (%s)\n", tc.DriverPath, tc.Kind)
	}

	targetDir, err := tc.Cargo.TargetDir(ctx, toolchain.Exec, cfg.ManifestPath)
	if err != nil {
		return err
	}

	progress := buildpipeline.TraceSink{Tracer: tracer, Parent: span.ID()}
	buildReq := &buildpipeline.BuildRequest{
		Cargo:      tc.Cargo,
		TargetDir:  targetDir,
		Lints:      cfg.Lints,
		DebugBuild: cfg.DebugBuild,
		RustcFlags: cfg.RustcFlags,
		Jobs:       opts.jobs,
		Run:        toolchain.Exec,
		Progress:   progress,
		Stderr:     cmd.ErrOrStderr(),
	}
	if opts.printCommands {
		buildReq.CommandLog = cmd.ErrOrStderr()
	}

	var built buildpipeline.BuildResult
	if shouldUseTUI(opts.ui, opts.quiet) {
		built, err = runBuildWithUI(ctx, cmd.OutOrStdout(), "building lint crates", buildReq)
		var ce *toolchain.CommandError
		if errors.As(err, &ce) {
			fmt.Fprint(cmd.ErrOrStderr(), ce.Stderr)
		}
	} else {
		built, err = buildpipeline.BuildLints(ctx, buildReq)
	}
	if err != nil {
		return err
	}
	timings.Set(buildpipeline.StageBuild, built.Timings.Duration(buildpipeline.StageBuild))

	checkReq := &buildpipeline.CheckRequest{
		Toolchain:    tc,
		Libraries:    built.Libraries,
		Levels:       cfg.Levels,
		ManifestPath: cfg.ManifestPath,
		Args:         opts.extra,
		Run:          toolchain.Exec,
		Progress:     progress,
		CommandLog:   buildReq.CommandLog,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
	}
	checked, err := buildpipeline.Check(ctx, checkReq)
	timings.Set(buildpipeline.StageCheck, checked.Timings.Duration(buildpipeline.StageCheck))
	if opts.timings {
		if printErr := printStageTimings(cmd.ErrOrStderr(), timings); printErr != nil && err == nil {
			err = printErr
		}
	}
	return err
}

// loadConfig reads the manifest given by --manifest-path or the nearest one
// above the working directory.
func loadConfig(manifestPath string) (*config.Config, error) {
	if manifestPath != "" {
		return config.LoadFile(manifestPath)
	}
	cfg, ok, err := config.Load(".")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("could not find %s in the working directory or any parent", config.ManifestName)
	}
	return cfg, nil
}

// openInfoCache returns nil when the cache directory is unusable; probes
// then always run the driver.
func openInfoCache(ctx context.Context) *driver.InfoCache {
	cache, err := driver.OpenInfoCache("marker")
	if err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopePhase, "info-cache", err.Error(), trace.CurrentSpan(ctx).SpanID)
		return nil
	}
	return cache
}
