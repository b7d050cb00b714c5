package buildpipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"marker/internal/driver"
	"marker/internal/toolchain"
	"marker/pkg/lint"
)

// CheckRequest configures the linted cargo check.
type CheckRequest struct {
	Toolchain *toolchain.Toolchain
	Libraries []LintLibrary
	// Levels are handed to the driver through driver.EnvLintLevels.
	Levels       map[string]lint.Level
	ManifestPath string
	// Args are appended to `cargo check`.
	Args []string

	Run        toolchain.Runner
	Progress   ProgressSink
	CommandLog io.Writer
	Stdout     io.Writer
	Stderr     io.Writer
}

// CheckResult carries timings of the check stage.
type CheckResult struct {
	Timings Timings
}

// Check runs `cargo check` with the driver as workspace wrapper. Lint
// diagnostics arrive on Stderr; a non-zero exit is a *toolchain.CommandError.
func Check(ctx context.Context, req *CheckRequest) (CheckResult, error) {
	var result CheckResult
	if req == nil || req.Toolchain == nil {
		return result, fmt.Errorf("missing check request")
	}
	if len(req.Libraries) == 0 {
		return result, fmt.Errorf("no lint libraries to load")
	}

	args := []string{"check"}
	if req.ManifestPath != "" {
		args = append(args, "--manifest-path", req.ManifestPath)
	}
	args = append(args, req.Args...)

	paths := make([]string, len(req.Libraries))
	for i, lib := range req.Libraries {
		paths[i] = lib.Path
	}
	cmd := req.Toolchain.CargoWithDriver(args...).WithEnv(driver.EnvLintCrates, driver.JoinLintCrates(paths))
	if len(req.Levels) > 0 {
		cmd = cmd.WithEnv(driver.EnvLintLevels, driver.FormatLevels(req.Levels))
	}
	cmd.Stdout = req.Stdout
	cmd.Stderr = req.Stderr

	start := time.Now()
	emit(req.Progress, "", StageCheck, StatusWorking, nil, 0)
	_, err := runCommand(ctx, req.Run, req.CommandLog, cmd)
	result.Timings.Set(StageCheck, time.Since(start))
	if err != nil {
		emit(req.Progress, "", StageCheck, StatusError, err, result.Timings.Duration(StageCheck))
		return result, err
	}
	emit(req.Progress, "", StageCheck, StatusDone, nil, result.Timings.Duration(StageCheck))
	return result, nil
}
