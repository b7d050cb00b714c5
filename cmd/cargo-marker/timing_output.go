package main

import (
	"fmt"
	"io"
	"time"

	"marker/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) error {
	if out == nil {
		return nil
	}
	stages := []struct {
		stage buildpipeline.Stage
		label string
	}{
		{buildpipeline.StageResolve, "resolved"},
		{buildpipeline.StageBuild, "built lints"},
		{buildpipeline.StageCheck, "checked"},
	}
	for _, s := range stages {
		if !timings.Has(s.stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", s.label, toMillis(timings.Duration(s.stage))); err != nil {
			return err
		}
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
