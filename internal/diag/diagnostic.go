package diag

import (
	"marker/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	// Lint is the name of the emitting lint, empty for other diagnostics.
	Lint    string
	Message string
	Primary source.Span
	// HasSpan is false for diagnostics without a source location.
	HasSpan bool
	Notes   []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		HasSpan:  true,
		Message:  msg,
	}
}

// NewUnspanned is a diagnostic about the run rather than a source location.
func NewUnspanned(sev Severity, code Code, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg}
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithLint(name string) Diagnostic {
	d.Lint = name
	return d
}

// Label is "warning[name]" for lints and the severity otherwise.
func (d Diagnostic) Label() string {
	if d.Lint != "" {
		return d.Severity.String() + "[" + d.Lint + "]"
	}
	return d.Severity.String()
}
