// Package convert maps the host's syntax tree to the portable AST in pkg/ast.
//
// Conversion is lazy: nodes are converted when first requested and cached
// per pass, so asking twice for the same item, body or expression returns the
// same pointer. Items, bodies and expressions are inserted into the cache
// before their children are converted; a request that re-enters a node still
// under construction gets the pointer that will hold the finished node.
//
// Host nodes the portable AST does not model either disappear from their
// container (skipped, traced at debug level) or abort the pass with a
// *NotImplementedError. An aborted converter keeps returning that error:
// nodes reserved by the failed request were never filled.
package convert

import (
	"fmt"

	"marker/internal/host"
	"marker/internal/trace"
	"marker/pkg/ast"
)

// Converter converts the nodes of one host session for one pass. It is not
// safe for concurrent use.
type Converter struct {
	sess    host.Session
	store   *Storage
	tracer  trace.Tracer
	parent  uint64
	layouts layoutTable

	items  map[ast.ItemId]ast.Item
	bodies map[ast.BodyId]*ast.Body
	exprs  map[ast.ExprId]ast.Expr
	pats   map[host.HirId]ast.Pat
	spans  map[ast.SpanId]*ast.Span

	sources     map[host.FileName]*ast.SpanSource
	sourceFiles map[*ast.SpanSource]*host.SourceFile
	numSymbols  map[uint32]ast.SymbolId

	crate   *ast.Crate
	skipped int
	err     error
}

type Option func(*Converter)

// WithTracer routes skip events to t, parented under span parent.
func WithTracer(t trace.Tracer, parent uint64) Option {
	return func(c *Converter) {
		if t != nil {
			c.tracer = t
			c.parent = parent
		}
	}
}

// New verifies the id layouts and returns a converter that allocates into
// store.
func New(sess host.Session, store *Storage, opts ...Option) (*Converter, error) {
	layouts, err := hostLayouts()
	if err != nil {
		return nil, err
	}
	return newConverter(sess, store, layouts, opts...), nil
}

func newConverter(sess host.Session, store *Storage, layouts layoutTable, opts ...Option) *Converter {
	c := &Converter{
		sess:        sess,
		store:       store,
		tracer:      trace.Nop,
		layouts:     layouts,
		items:       make(map[ast.ItemId]ast.Item),
		bodies:      make(map[ast.BodyId]*ast.Body),
		exprs:       make(map[ast.ExprId]ast.Expr),
		pats:        make(map[host.HirId]ast.Pat),
		spans:       make(map[ast.SpanId]*ast.Span),
		sources:     make(map[host.FileName]*ast.SpanSource),
		sourceFiles: make(map[*ast.SpanSource]*host.SourceFile),
		numSymbols:  make(map[uint32]ast.SymbolId),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertCrate converts the crate root module and everything reachable from
// it. Later calls return the cached crate.
func (c *Converter) ConvertCrate() (crate *ast.Crate, err error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.crate != nil {
		return c.crate, nil
	}
	defer c.recoverBailout(&err)

	root := c.sess.RootModule()
	mod, ok := c.item(root).(*ast.ModItem)
	if !ok {
		return nil, fmt.Errorf("convert: crate root is a %s, not a module", root.Kind)
	}
	c.crate = newNode(c.store, &c.store.items.crates, ast.NewCrate(c.crateID(host.LocalCrate), mod))
	return c.crate, nil
}

// Item converts the item or associated item with the given id. A nil item
// with a nil error means the item is skipped.
func (c *Converter) Item(id ast.ItemId) (item ast.Item, err error) {
	if c.err != nil {
		return nil, c.err
	}
	if it, ok := c.items[id]; ok {
		return it, nil
	}
	defer c.recoverBailout(&err)

	def := HostDefId(id)
	if hi, ok := c.sess.Item(def); ok {
		return c.item(hi), nil
	}
	if ii, ok := c.sess.ImplItem(def); ok {
		return c.implItem(ii), nil
	}
	return nil, fmt.Errorf("convert: unknown item %v", id)
}

// Body converts the body with the given id.
func (c *Converter) Body(id ast.BodyId) (body *ast.Body, err error) {
	if c.err != nil {
		return nil, c.err
	}
	if b, ok := c.bodies[id]; ok {
		return b, nil
	}
	defer c.recoverBailout(&err)
	return c.body(HostBodyId(id)), nil
}

// ResolveSpan returns the span of owner. Dummy spans resolve to nil.
func (c *Converter) ResolveSpan(owner ast.SpanOwner) (span *ast.Span, err error) {
	if c.err != nil {
		return nil, c.err
	}
	var sid ast.SpanId
	switch owner.Kind() {
	case ast.SpanOwnerItem:
		id, _ := owner.Item()
		it, err := c.Item(id)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, fmt.Errorf("convert: span of skipped item %v", id)
		}
		sid = it.SpanID()
	case ast.SpanOwnerSpecific:
		sid, _ = owner.SpanID()
	default:
		return nil, fmt.Errorf("convert: invalid span owner")
	}
	if sid.IsDummy() {
		return nil, nil
	}
	if sp, ok := c.spans[sid]; ok {
		return sp, nil
	}
	defer c.recoverBailout(&err)

	sp := newNode(c.store, &c.store.spans.spans, c.span(HostSpan(sid)))
	c.spans[sid] = sp
	return sp, nil
}

// SourceFile returns the host file a span source was created for.
func (c *Converter) SourceFile(src *ast.SpanSource) (*host.SourceFile, bool) {
	f, ok := c.sourceFiles[src]
	return f, ok
}

func (c *Converter) SymbolStr(sym ast.SymbolId) string {
	return c.sess.SymbolStr(HostSymbol(sym))
}

// Err returns the error that aborted the converter, or nil.
func (c *Converter) Err() error { return c.err }

// Skipped counts the nodes left out of the output so far.
func (c *Converter) Skipped() int { return c.skipped }

// skip records a node that is dropped from its container.
func (c *Converter) skip(what string, span host.Span) {
	c.skipped++
	if c.tracer.Enabled() {
		trace.Point(c.tracer, trace.ScopeNode, "skip", fmt.Sprintf("%s at %d..%d", what, span.Lo, span.Hi), c.parent)
	}
}
