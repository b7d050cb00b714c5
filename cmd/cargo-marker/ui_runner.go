package main

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"marker/internal/buildpipeline"
	"marker/internal/ui"
)

type buildOutcome struct {
	result buildpipeline.BuildResult
	err    error
}

// runBuildWithUI runs BuildLints while the progress view owns out. Cargo
// output is not streamed; failures carry it in their error.
func runBuildWithUI(ctx context.Context, out io.Writer, title string, req *buildpipeline.BuildRequest) (buildpipeline.BuildResult, error) {
	if req == nil {
		return buildpipeline.BuildResult{}, fmt.Errorf("missing build request")
	}
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	crates := make([]string, len(req.Lints))
	for i, lc := range req.Lints {
		crates[i] = lc.Name
	}

	go func() {
		reqCopy := *req
		reqCopy.Progress = buildpipeline.MultiSink{req.Progress, buildpipeline.ChannelSink{Ch: events}}
		reqCopy.Stdout = nil
		reqCopy.Stderr = nil
		res, err := buildpipeline.BuildLints(ctx, &reqCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, crates, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
