// Package bridge connects lint passes to the driver. A Session owns the
// converter of one pass and serves the lint.DriverCallbacks table that
// lint.AstContext calls through.
package bridge

import (
	"errors"
	"fmt"
	"unsafe"

	"marker/internal/convert"
	"marker/internal/diag"
	"marker/internal/source"
	"marker/pkg/ast"
	"marker/pkg/lint"
)

// ErrSessionClosed is the panic value of callbacks made after Close.
var ErrSessionClosed = errors.New("bridge: session used after its pass ended")

// LevelFunc returns the level configured for a lint, if any.
type LevelFunc func(name string) (lint.Level, bool)

// Session is the driver side of one pass.
type Session struct {
	conv     *convert.Converter
	reporter diag.Reporter
	files    *source.FileSet
	levels   LevelFunc

	fileIDs   map[*ast.SpanSource]source.FileID
	callbacks lint.DriverCallbacks
	cx        *lint.AstContext
	closed    bool
	failed    *CallbackError
}

// Option configures a Session.
type Option func(*Session)

// WithLevels overrides the default level of lints found by fn.
func WithLevels(fn LevelFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.levels = fn
		}
	}
}

// WithFileSet registers host files in fs instead of a private file set, so
// reported diagnostics can be rendered against it.
func WithFileSet(fs *source.FileSet) Option {
	return func(s *Session) {
		if fs != nil {
			s.files = fs
		}
	}
}

// New returns a session reporting lints to r.
func New(conv *convert.Converter, r diag.Reporter, opts ...Option) *Session {
	if r == nil {
		r = diag.NopReporter{}
	}
	s := &Session{
		conv:     conv,
		reporter: r,
		files:    source.NewFileSet(),
		levels:   func(string) (lint.Level, bool) { return lint.Allow, false },
		fileIDs:  make(map[*ast.SpanSource]source.FileID),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.callbacks = lint.DriverCallbacks{
		DriverContext: unsafe.Pointer(s),
		EmitLint:      emitLint,
		GetSpan:       getSpan,
		SpanSnippet:   spanSnippet,
		SymbolStr:     symbolStr,
		GetBody:       getBody,
	}
	s.cx = lint.NewAstContext(&s.callbacks)
	return s
}

// Context returns the context handed to every pass hook.
func (s *Session) Context() *lint.AstContext { return s.cx }

func (s *Session) Callbacks() *lint.DriverCallbacks { return &s.callbacks }

func (s *Session) Converter() *convert.Converter { return s.conv }

// FileSet holds the host files spans were reported against.
func (s *Session) FileSet() *source.FileSet { return s.files }

// Close ends the pass. Contexts handed out earlier stay valid Go values, but
// every call through them panics.
func (s *Session) Close() {
	s.closed = true
}

func (s *Session) Closed() bool { return s.closed }

// CallbackError carries a conversion failure out of a callback. Callbacks
// have no error results, so it travels as a panic value until Run recovers it.
type CallbackError struct {
	Op  string
	Err error
}

func (e *CallbackError) Error() string { return "bridge: " + e.Op + ": " + e.Err.Error() }

func (e *CallbackError) Unwrap() error { return e.Err }

// Run calls fn and returns the conversion error a callback made inside fn
// failed with. Other panics propagate. Once a callback failed, the session
// stays failed: Run returns that error without calling fn, and every later
// callback panics with it, even when fn recovered the first panic itself.
func (s *Session) Run(fn func()) (err error) {
	if s.failed != nil {
		return s.failed
	}
	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(*CallbackError)
			if !ok {
				panic(r)
			}
			err = ce
		}
		if s.failed != nil {
			err = s.failed
		}
	}()
	fn()
	return nil
}

// Err returns the error of the first failed callback, or nil.
func (s *Session) Err() error {
	if s.failed == nil {
		return nil
	}
	return s.failed
}

// raise records the first callback failure and unwinds with it.
func (s *Session) raise(op string, err error) {
	if s.failed == nil {
		s.failed = &CallbackError{Op: op, Err: err}
	}
	panic(s.failed)
}

func session(p unsafe.Pointer) *Session {
	s := (*Session)(p)
	if s == nil || s.closed {
		panic(ErrSessionClosed)
	}
	if s.failed != nil {
		panic(s.failed)
	}
	return s
}

// Level resolves the effective level of l.
func (s *Session) Level(l *lint.Lint) lint.Level {
	if lvl, ok := s.levels(l.Name); ok {
		// forbid cannot be lowered
		if l.DefaultLevel == lint.Forbid {
			return lint.Forbid
		}
		return lvl
	}
	return l.DefaultLevel
}

func (s *Session) emitLint(l *lint.Lint, msg string, span ast.Span) {
	if l == nil {
		panic("bridge: EmitLint with a nil lint")
	}
	var sev diag.Severity
	switch s.Level(l) {
	case lint.Allow:
		return
	case lint.Warn:
		sev = diag.SevWarning
	default:
		sev = diag.SevError
	}

	if sp, ok := s.sourceSpan(span); ok {
		diag.NewReportBuilder(s.reporter, sev, diag.LintEmitted, sp, msg).WithLint(l.Name).Emit()
		return
	}
	d := diag.NewUnspanned(sev, diag.LintEmitted, fmt.Sprintf("%s (at %s)", msg, span)).WithLint(l.Name)
	s.reporter.Report(d)
}

// sourceSpan maps span into the file set, registering its host file on
// first use.
func (s *Session) sourceSpan(span ast.Span) (source.Span, bool) {
	src := span.Source()
	if src == nil {
		return source.Span{}, false
	}
	id, ok := s.fileIDs[src]
	if !ok {
		f, found := s.conv.SourceFile(src)
		if !found {
			return source.Span{}, false
		}
		path, _ := src.File()
		var content []byte
		if f.HasSrc {
			content = []byte(f.Src)
		}
		id = s.files.AddVirtual(path, content)
		s.fileIDs[src] = id
	}
	return source.Span{File: id, Start: span.Start(), End: span.End()}, true
}

func (s *Session) resolveSpan(owner ast.SpanOwner) *ast.Span {
	sp, err := s.conv.ResolveSpan(owner)
	if err != nil {
		s.raise("GetSpan", err)
	}
	return sp
}

func (s *Session) snippet(span ast.Span) (string, bool) {
	f, ok := s.conv.SourceFile(span.Source())
	if !ok || !f.HasSrc {
		return "", false
	}
	if span.Start() > span.End() || int(span.End()) > len(f.Src) {
		return "", false
	}
	return f.Src[span.Start():span.End()], true
}

func (s *Session) body(id ast.BodyId) *ast.Body {
	b, err := s.conv.Body(id)
	if err != nil {
		s.raise("GetBody", err)
	}
	return b
}

func emitLint(p unsafe.Pointer, l *lint.Lint, msg string, span ast.Span) {
	session(p).emitLint(l, msg, span)
}

func getSpan(p unsafe.Pointer, owner ast.SpanOwner) *ast.Span {
	return session(p).resolveSpan(owner)
}

func spanSnippet(p unsafe.Pointer, span ast.Span) (string, bool) {
	return session(p).snippet(span)
}

func symbolStr(p unsafe.Pointer, sym ast.SymbolId) string {
	return session(p).conv.SymbolStr(sym)
}

func getBody(p unsafe.Pointer, id ast.BodyId) *ast.Body {
	return session(p).body(id)
}
