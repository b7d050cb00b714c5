package ast

type PatKind uint8

const (
	PatIdent PatKind = iota + 1
	PatWildcard
	PatTuple
)

type Pat interface {
	SpanID() SpanId
	Kind() PatKind
	pat()
}

// IdentPat binds a variable, optionally `ref`/`mut` and with a sub-pattern
// (`name @ sub`).
type IdentPat struct {
	span    SpanId
	name    SymbolId
	varId   VarId
	mutable bool
	byRef   bool
	binding Pat
}

func NewIdentPat(span SpanId, name SymbolId, varId VarId, mutable, byRef bool, binding Pat) IdentPat {
	return IdentPat{span: span, name: name, varId: varId, mutable: mutable, byRef: byRef, binding: binding}
}

func (p *IdentPat) SpanID() SpanId { return p.span }
func (p *IdentPat) Name() SymbolId { return p.name }
func (p *IdentPat) Var() VarId     { return p.varId }
func (p *IdentPat) IsMut() bool    { return p.mutable }
func (p *IdentPat) IsRef() bool    { return p.byRef }
func (p *IdentPat) Binding() Pat   { return p.binding }
func (*IdentPat) Kind() PatKind    { return PatIdent }
func (*IdentPat) pat()             {}

type WildcardPat struct {
	span SpanId
}

func NewWildcardPat(span SpanId) WildcardPat { return WildcardPat{span: span} }

func (p *WildcardPat) SpanID() SpanId { return p.span }
func (*WildcardPat) Kind() PatKind    { return PatWildcard }
func (*WildcardPat) pat()             {}

type TuplePat struct {
	span  SpanId
	elems []Pat
}

func NewTuplePat(span SpanId, elems []Pat) TuplePat { return TuplePat{span: span, elems: elems} }

func (p *TuplePat) SpanID() SpanId { return p.span }
func (p *TuplePat) Elems() []Pat   { return p.elems }
func (*TuplePat) Kind() PatKind    { return PatTuple }
func (*TuplePat) pat()             {}
