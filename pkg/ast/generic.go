package ast

// GenericParams collects the declared generic parameters of an item together
// with its where clauses.
type GenericParams struct {
	params  []GenericParam
	clauses []WhereClause
}

func NewGenericParams(params []GenericParam, clauses []WhereClause) GenericParams {
	return GenericParams{params: params, clauses: clauses}
}

func (g *GenericParams) Params() []GenericParam { return g.params }
func (g *GenericParams) Clauses() []WhereClause { return g.clauses }
func (g *GenericParams) IsEmpty() bool          { return len(g.params) == 0 && len(g.clauses) == 0 }

type GenericParamKind uint8

const (
	GenericParamLifetime GenericParamKind = iota + 1
	GenericParamTy
)

// GenericParam is a LifetimeParam or a TyParam.
type GenericParam interface {
	ID() GenericId
	Name() SymbolId
	Kind() GenericParamKind
	genericParam()
}

type LifetimeParam struct {
	id     GenericId
	name   SymbolId
	bounds []Lifetime
	span   SpanId
}

func NewLifetimeParam(id GenericId, name SymbolId, bounds []Lifetime, span SpanId) LifetimeParam {
	return LifetimeParam{id: id, name: name, bounds: bounds, span: span}
}

func (p *LifetimeParam) ID() GenericId        { return p.id }
func (p *LifetimeParam) Name() SymbolId       { return p.name }
func (p *LifetimeParam) Bounds() []Lifetime   { return p.bounds }
func (p *LifetimeParam) SpanID() SpanId       { return p.span }
func (*LifetimeParam) Kind() GenericParamKind { return GenericParamLifetime }
func (*LifetimeParam) genericParam()            {}

type TyParam struct {
	span   SpanId
	name   SymbolId
	id     GenericId
	bounds []TyParamBound
}

func NewTyParam(span SpanId, name SymbolId, id GenericId, bounds []TyParamBound) TyParam {
	return TyParam{span: span, name: name, id: id, bounds: bounds}
}

func (p *TyParam) ID() GenericId          { return p.id }
func (p *TyParam) Name() SymbolId         { return p.name }
func (p *TyParam) Bounds() []TyParamBound { return p.bounds }
func (p *TyParam) SpanID() SpanId         { return p.span }
func (*TyParam) Kind() GenericParamKind   { return GenericParamTy }
func (*TyParam) genericParam()              {}

type LifetimeKind uint8

const (
	// LifetimeStatic is 'static.
	LifetimeStatic LifetimeKind = iota + 1
	// LifetimeNamed refers to a declared lifetime parameter.
	LifetimeNamed
)

type Lifetime struct {
	kind LifetimeKind
	name SymbolId
	id   GenericId
	span SpanId
}

func NewLifetime(kind LifetimeKind, name SymbolId, id GenericId, span SpanId) Lifetime {
	return Lifetime{kind: kind, name: name, id: id, span: span}
}

func (l *Lifetime) LifetimeKind() LifetimeKind { return l.kind }
func (l *Lifetime) Name() SymbolId             { return l.name }

// Param returns the id of the lifetime parameter for named lifetimes.
func (l *Lifetime) Param() (GenericId, bool)  { return l.id, l.kind == LifetimeNamed }
func (l *Lifetime) SpanID() SpanId            { return l.span }
func (*Lifetime) BoundKind() TyParamBoundKind { return BoundLifetime }
func (*Lifetime) tyParamBound()              {}

type TyParamBoundKind uint8

const (
	BoundTrait TyParamBoundKind = iota + 1
	BoundLifetime
)

// TyParamBound is a TraitBound or a *Lifetime.
type TyParamBound interface {
	BoundKind() TyParamBoundKind
	tyParamBound()
}

type TraitBound struct {
	maybe    bool
	traitRef TraitRef
	span     SpanId
}

func NewTraitBound(maybe bool, traitRef TraitRef, span SpanId) TraitBound {
	return TraitBound{maybe: maybe, traitRef: traitRef, span: span}
}

// IsRelaxed reports a `?Trait` bound.
func (b *TraitBound) IsRelaxed() bool           { return b.maybe }
func (b *TraitBound) TraitRef() *TraitRef       { return &b.traitRef }
func (b *TraitBound) SpanID() SpanId            { return b.span }
func (*TraitBound) BoundKind() TyParamBoundKind { return BoundTrait }
func (*TraitBound) tyParamBound()              {}

type WhereClauseKind uint8

const (
	ClauseTy WhereClauseKind = iota + 1
	ClauseLifetime
)

// WhereClause is a TyClause or a LifetimeClause.
type WhereClause interface {
	ClauseKind() WhereClauseKind
	whereClause()
}

// TyClause is `for<'a> Ty: Bound + Bound`.
type TyClause struct {
	params *GenericParams
	ty     SynTy
	bounds []TyParamBound
}

func NewTyClause(params *GenericParams, ty SynTy, bounds []TyParamBound) TyClause {
	return TyClause{params: params, ty: ty, bounds: bounds}
}

// Params returns the `for<...>` parameters of the clause, nil if there are
// none.
func (c *TyClause) Params() *GenericParams    { return c.params }
func (c *TyClause) Ty() SynTy                 { return c.ty }
func (c *TyClause) Bounds() []TyParamBound    { return c.bounds }
func (*TyClause) ClauseKind() WhereClauseKind { return ClauseTy }
func (*TyClause) whereClause()                  {}

// LifetimeClause is `'a: 'b + 'c`.
type LifetimeClause struct {
	lifetime Lifetime
	bounds   []Lifetime
}

func NewLifetimeClause(lifetime Lifetime, bounds []Lifetime) LifetimeClause {
	return LifetimeClause{lifetime: lifetime, bounds: bounds}
}

func (c *LifetimeClause) Lifetime() *Lifetime       { return &c.lifetime }
func (c *LifetimeClause) Bounds() []Lifetime        { return c.bounds }
func (*LifetimeClause) ClauseKind() WhereClauseKind { return ClauseLifetime }
func (*LifetimeClause) whereClause()                 {}
