package buildpipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"marker/internal/toolchain"
	"marker/internal/trace"
)

// runCommand runs cmd once, echoing it to log first when log is set.
func runCommand(ctx context.Context, run toolchain.Runner, log io.Writer, cmd toolchain.Command) ([]byte, error) {
	if log != nil {
		if _, err := fmt.Fprintln(log, cmd.String()); err != nil {
			return nil, fmt.Errorf("failed to print command: %w", err)
		}
	}
	if run == nil {
		run = toolchain.Exec
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCandidate, "exec:"+filepath.Base(cmd.Name), trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("command", cmd.String())
	out, err := run(ctx, cmd)
	if err != nil {
		span.End(err.Error())
		return out, err
	}
	span.End("")
	return out, nil
}
