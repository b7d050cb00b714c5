package diag

import (
	"fmt"
	"strings"

	"marker/internal/source"
)

// FormatShort renders one line per diagnostic and note:
//
//	src/lib.rs:4:1: warning[name]: message
//
// Diagnostics are printed in the given order; sort the bag first for stable
// output.
func FormatShort(diags []Diagnostic, fs *source.FileSet) string {
	var b strings.Builder
	for i := range diags {
		d := &diags[i]
		fmt.Fprintf(&b, "%s%s: %s\n", location(fs, d.Primary, d.HasSpan), d.Label(), sanitizeMessage(d.Message))
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "%snote: %s\n", location(fs, n.Span, true), sanitizeMessage(n.Msg))
		}
	}
	return b.String()
}

func location(fs *source.FileSet, span source.Span, hasSpan bool) string {
	if !hasSpan || fs == nil || int(span.File) >= fs.Len() {
		return ""
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d: ", fs.Get(span.File).Path, start.Line, start.Col)
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
