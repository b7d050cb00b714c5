package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marker/internal/trace"
)

// tracing is the tracer installed for one command.
type tracing struct {
	cmd       *cobra.Command
	tracer    trace.Tracer
	heartbeat *trace.Heartbeat
	format    trace.Format
}

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context.
func setupTracing(cmd *cobra.Command) (*tracing, error) {
	pf := cmd.Root().PersistentFlags()

	traceOutput, err := pf.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := pf.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := pf.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := pf.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := pf.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace alone means phase level
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	t := &tracing{cmd: cmd, tracer: trace.Nop}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return t, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeatInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	t.tracer = tracer
	t.format = format
	if t.format == trace.FormatAuto {
		t.format = trace.FormatText
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	t.heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	return t, nil
}

// finish stops the heartbeat, dumps a ring tracer when the command failed
// and closes the tracer.
func (t *tracing) finish(runErr error) {
	if t == nil {
		return
	}
	if t.heartbeat != nil {
		t.heartbeat.Stop()
	}
	errOut := t.cmd.ErrOrStderr()
	if ring, ok := t.tracer.(*trace.RingTracer); ok && runErr != nil {
		fmt.Fprintln(errOut, "trace: last events before the failure:")
		if err := ring.Dump(errOut, t.format); err != nil {
			fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
		}
	}
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}
