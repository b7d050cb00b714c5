package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"marker/internal/config"
	"marker/internal/toolchain"
	"marker/internal/version"
)

type reportPalette struct {
	err  *color.Color
	kind *color.Color
	note *color.Color
}

func newReportPalette(enabled bool) reportPalette {
	p := reportPalette{
		err:  color.New(color.FgRed, color.Bold),
		kind: color.New(color.FgYellow),
		note: color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.kind, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// reportError prints err for a human. Resolution failures list every
// candidate with its cause; failed cargo runs only get a summary because
// cargo already printed its output.
func reportError(w io.Writer, err error, colored bool) {
	p := newReportPalette(colored)

	var re *toolchain.ResolutionError
	var ce *toolchain.CommandError
	var cfgErr *config.Error
	switch {
	case errors.As(err, &re):
		fmt.Fprintf(w, "%s no usable %s found\n", p.err.Sprint("error:"), version.DriverBinary)
		for i, a := range re.Attempts {
			target := a.Kind.String()
			if a.Toolchain != "" {
				target += " " + a.Toolchain
			}
			fmt.Fprintf(w, "  %d. %s: %v\n", i+1, p.kind.Sprint(target), a.Err)
		}
		fmt.Fprintf(w, "%s install the driver for %s, or set %s=1 to use the one next to cargo-marker\n",
			p.note.Sprint("help:"), version.DefaultToolchain, toolchain.EnvLocalDriver)
	case errors.As(err, &ce):
		fmt.Fprintf(w, "%s `%s` exited with code %d\n", p.err.Sprint("error:"), ce.Command, ce.ExitCode)
	case errors.As(err, &cfgErr):
		fmt.Fprintf(w, "%s %v\n", p.err.Sprint("error:"), cfgErr)
	default:
		fmt.Fprintf(w, "%s %v\n", p.err.Sprint("error:"), err)
	}
}

// exitCode forwards cargo's exit code so that failed lint runs fail CI the
// same way cargo check does.
func exitCode(err error) int {
	var ce *toolchain.CommandError
	if errors.As(err, &ce) && ce.ExitCode > 0 {
		return ce.ExitCode
	}
	return 1
}
