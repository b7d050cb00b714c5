package diag

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"marker/internal/source"
)

type RenderOptions struct {
	Color bool
}

type palette struct {
	err, warn, info, gutter, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		note:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.gutter, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s Severity) *color.Color {
	switch s {
	case SevError:
		return p.err
	case SevWarning:
		return p.warn
	}
	return p.info
}

// Render writes diagnostics in the familiar compiler layout:
//
//	warning[name]: message
//	  --> src/lib.rs:4:1
//	   |
//	 4 | fn add(x: u32) -> u32 {
//	   | ^^^^^^
//	   = note: ...
func Render(w io.Writer, diags []Diagnostic, fs *source.FileSet, opts RenderOptions) error {
	p := newPalette(opts.Color)
	var b strings.Builder
	for i := range diags {
		renderOne(&b, &diags[i], fs, p)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderOne(b *strings.Builder, d *Diagnostic, fs *source.FileSet, p palette) {
	b.WriteString(p.severity(d.Severity).Sprint(d.Label()))
	b.WriteString(p.note.Sprint(": " + sanitizeMessage(d.Message)))
	b.WriteByte('\n')
	if d.HasSpan && fs != nil && int(d.Primary.File) < fs.Len() {
		renderSnippet(b, d.Primary, fs, p, p.severity(d.Severity))
	}
	for _, n := range d.Notes {
		loc := strings.TrimSuffix(location(fs, n.Span, true), ": ")
		if loc != "" {
			loc = " (" + loc + ")"
		}
		fmt.Fprintf(b, "  %s note: %s%s\n", p.gutter.Sprint("="), sanitizeMessage(n.Msg), loc)
	}
}

func renderSnippet(b *strings.Builder, span source.Span, fs *source.FileSet, p palette, mark *color.Color) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	lineNo := strconv.FormatUint(uint64(start.Line), 10)
	pad := strings.Repeat(" ", len(lineNo))

	fmt.Fprintf(b, "%s%s %s:%d:%d\n", pad, p.gutter.Sprint("-->"), file.Path, start.Line, start.Col)
	fmt.Fprintf(b, "%s %s\n", pad, p.gutter.Sprint("|"))

	line := strings.ReplaceAll(file.GetLine(start.Line), "\t", "    ")
	raw := file.GetLine(start.Line)
	fmt.Fprintf(b, "%s %s %s\n", p.gutter.Sprint(lineNo), p.gutter.Sprint("|"), line)

	from := min(int(start.Col)-1, len(raw))
	to := len(raw)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(raw))
	}
	indent := displayWidth(raw[:from])
	width := max(displayWidth(raw[from:max(from, to)]), 1)
	fmt.Fprintf(b, "%s %s %s%s\n", pad, p.gutter.Sprint("|"), strings.Repeat(" ", indent), mark.Sprint(strings.Repeat("^", width)))
}

// displayWidth measures text as printed, with tabs expanded to four columns.
func displayWidth(s string) int {
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", "    "))
}
