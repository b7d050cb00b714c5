package lint

import (
	"unsafe"

	"marker/pkg/ast"
)

// AstContext is passed to every pass callback. It lets lint code emit lints
// and resolve spans, snippets, symbols and bodies in the live session.
//
// An AstContext is a capability for exactly one pass. It is deliberately not
// comparable; use Same to compare two contexts by identity. Using a context
// after its pass has ended panics.
type AstContext struct {
	_      [0]func()
	driver *DriverCallbacks
}

// NewAstContext is intended for drivers.
func NewAstContext(driver *DriverCallbacks) *AstContext {
	return &AstContext{driver: driver}
}

// Same reports whether cx and other are the same context.
func (cx *AstContext) Same(other *AstContext) bool { return cx == other }

func (cx *AstContext) String() string { return "AstContext{}" }

// EmitLint reports lint at span with msg. Whether and how it is shown
// depends on the lint level configured for the project.
func (cx *AstContext) EmitLint(lint *Lint, msg string, span ast.Span) {
	cx.callbacks().callEmitLint(lint, msg, span)
}

// Span resolves the span of an item or of a SpanId stored in a node.
func (cx *AstContext) Span(owner ast.SpanOwner) *ast.Span {
	return cx.callbacks().callGetSpan(owner)
}

// ItemSpan is shorthand for Span(ast.SpanOwnerOfItem(id)).
func (cx *AstContext) ItemSpan(id ast.ItemId) *ast.Span {
	return cx.Span(ast.SpanOwnerOfItem(id))
}

// SpanOf is shorthand for Span(ast.SpanOwnerOfSpan(id)).
func (cx *AstContext) SpanOf(id ast.SpanId) *ast.Span {
	return cx.Span(ast.SpanOwnerOfSpan(id))
}

// SpanSnippet returns the source text of span. It reports false when no text
// is available, e.g. for spans created by the compiler.
func (cx *AstContext) SpanSnippet(span ast.Span) (string, bool) {
	return cx.callbacks().callSpanSnippet(span)
}

func (cx *AstContext) SymbolStr(sym ast.SymbolId) string {
	return cx.callbacks().callSymbolStr(sym)
}

// Body converts and returns the body with the given id.
func (cx *AstContext) Body(id ast.BodyId) *ast.Body {
	return cx.callbacks().callGetBody(id)
}

func (cx *AstContext) callbacks() *DriverCallbacks {
	if cx == nil || cx.driver == nil {
		panic("lint: AstContext used without a driver")
	}
	return cx.driver
}

// DriverCallbacks is the table of entry points a driver provides. Field order
// and signatures are part of the API version: any change requires rebuilding
// both the driver and every lint crate.
//
// DriverContext is opaque to lint crates. It is passed back as the first
// argument of every entry point and the driver casts it to its own session
// type. Entry points only exchange plain data.
type DriverCallbacks struct {
	DriverContext unsafe.Pointer
	EmitLint      func(driver unsafe.Pointer, lint *Lint, msg string, span ast.Span)
	GetSpan       func(driver unsafe.Pointer, owner ast.SpanOwner) *ast.Span
	SpanSnippet   func(driver unsafe.Pointer, span ast.Span) (string, bool)
	SymbolStr     func(driver unsafe.Pointer, sym ast.SymbolId) string
	GetBody       func(driver unsafe.Pointer, id ast.BodyId) *ast.Body
}

func (d *DriverCallbacks) callEmitLint(lint *Lint, msg string, span ast.Span) {
	d.EmitLint(d.DriverContext, lint, msg, span)
}

func (d *DriverCallbacks) callGetSpan(owner ast.SpanOwner) *ast.Span {
	return d.GetSpan(d.DriverContext, owner)
}

func (d *DriverCallbacks) callSpanSnippet(span ast.Span) (string, bool) {
	return d.SpanSnippet(d.DriverContext, span)
}

func (d *DriverCallbacks) callSymbolStr(sym ast.SymbolId) string {
	return d.SymbolStr(d.DriverContext, sym)
}

func (d *DriverCallbacks) callGetBody(id ast.BodyId) *ast.Body {
	return d.GetBody(d.DriverContext, id)
}
