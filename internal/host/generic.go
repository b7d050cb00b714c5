package host

type Generics struct {
	Params     []GenericParam
	Predicates []WherePredicate
	Span       Span
}

type ParamNameKind uint8

const (
	// ParamNamePlain is a name written by the user.
	ParamNamePlain ParamNameKind = iota + 1
	// ParamNameFresh is a name the host invented for an elided lifetime.
	ParamNameFresh
	ParamNameError
)

type ParamName struct {
	Kind  ParamNameKind
	Ident Ident
}

type GenericParamKind uint8

const (
	GenericParamLifetime GenericParamKind = iota + 1
	GenericParamType
	GenericParamConst
)

type LifetimeParamKind uint8

const (
	LifetimeParamExplicit LifetimeParamKind = iota + 1
	LifetimeParamElided
	LifetimeParamError
)

type GenericParam struct {
	HirId        HirId
	DefId        DefId
	Name         ParamName
	Span         Span
	Kind         GenericParamKind
	LifetimeKind LifetimeParamKind
	// Synthetic marks type params desugared from `impl Trait` arguments.
	Synthetic bool
}

type PredicateKind uint8

const (
	PredicateBound PredicateKind = iota + 1
	PredicateRegion
	PredicateEq
)

// PredicateOrigin records where a predicate was written. Bounds written
// inline on a parameter (`T: Clone`) are lowered to predicates too.
type PredicateOrigin uint8

const (
	OriginWhereClause PredicateOrigin = iota + 1
	OriginGenericParam
	OriginImplTrait
)

type WherePredicate struct {
	Kind   PredicateKind
	Span   Span
	Origin PredicateOrigin

	// PredicateBound: `for<BoundGenericParams> BoundedTy: Bounds`.
	BoundGenericParams []GenericParam
	BoundedTy          *Ty
	// BoundedParam is set when BoundedTy is a plain generic parameter.
	BoundedParam    DefId
	HasBoundedParam bool

	// PredicateRegion: `Lifetime: Bounds`.
	Lifetime *Lifetime

	Bounds []GenericBound
}

type GenericBoundKind uint8

const (
	GenericBoundTrait GenericBoundKind = iota + 1
	GenericBoundLangItemTrait
	GenericBoundOutlives
)

type TraitBoundModifier uint8

const (
	TraitBoundNone TraitBoundModifier = iota
	TraitBoundMaybe
	TraitBoundMaybeConst
)

type GenericBound struct {
	Kind     GenericBoundKind
	Span     Span
	TraitRef *TraitRef
	Modifier TraitBoundModifier
	Lifetime *Lifetime
}

type TraitRef struct {
	Path  *Path
	HirId HirId
}

type LifetimeNameKind uint8

const (
	// LifetimeNameParam refers to a declared lifetime parameter.
	LifetimeNameParam LifetimeNameKind = iota + 1
	LifetimeNameStatic
	// LifetimeNameInfer is an elided lifetime the host infers.
	LifetimeNameInfer
	LifetimeNameError
)

type Lifetime struct {
	HirId HirId
	Ident Ident
	Kind  LifetimeNameKind
	Param DefId
}
