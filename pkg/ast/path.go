package ast

// AstPath is a sequence of path segments, e.g. `std::vec::Vec<u8>`.
type AstPath struct {
	segments []AstPathSegment
}

func NewAstPath(segments []AstPathSegment) AstPath { return AstPath{segments: segments} }

func (p *AstPath) Segments() []AstPathSegment { return p.segments }

// Last returns the final segment, if any.
func (p *AstPath) Last() (*AstPathSegment, bool) {
	if len(p.segments) == 0 {
		return nil, false
	}
	return &p.segments[len(p.segments)-1], true
}

type AstPathSegment struct {
	ident    SymbolId
	generics GenericArgs
}

func NewAstPathSegment(ident SymbolId, generics GenericArgs) AstPathSegment {
	return AstPathSegment{ident: ident, generics: generics}
}

func (s *AstPathSegment) Ident() SymbolId        { return s.ident }
func (s *AstPathSegment) Generics() *GenericArgs { return &s.generics }

// GenericArgs are the arguments given to a path segment, in source order.
type GenericArgs struct {
	args []GenericArg
}

func NewGenericArgs(args []GenericArg) GenericArgs { return GenericArgs{args: args} }

func (g *GenericArgs) Args() []GenericArg { return g.args }
func (g *GenericArgs) IsEmpty() bool      { return len(g.args) == 0 }

type GenericArgKind uint8

const (
	GenericArgLifetime GenericArgKind = iota + 1
	GenericArgTy
)

type GenericArg interface {
	ArgKind() GenericArgKind
	genericArg()
}

type LifetimeArg struct {
	lifetime Lifetime
}

func NewLifetimeArg(lifetime Lifetime) LifetimeArg { return LifetimeArg{lifetime: lifetime} }

func (a *LifetimeArg) Lifetime() *Lifetime   { return &a.lifetime }
func (*LifetimeArg) ArgKind() GenericArgKind { return GenericArgLifetime }
func (*LifetimeArg) genericArg()              {}

type TyArg struct {
	ty SynTy
}

func NewTyArg(ty SynTy) TyArg { return TyArg{ty: ty} }

func (a *TyArg) Ty() SynTy             { return a.ty }
func (*TyArg) ArgKind() GenericArgKind { return GenericArgTy }
func (*TyArg) genericArg()                 {}

// TraitRef names a trait together with its generic arguments.
type TraitRef struct {
	item     ItemId
	generics GenericArgs
}

func NewTraitRef(item ItemId, generics GenericArgs) TraitRef {
	return TraitRef{item: item, generics: generics}
}

func (r *TraitRef) TraitID() ItemId        { return r.item }
func (r *TraitRef) Generics() *GenericArgs { return &r.generics }
