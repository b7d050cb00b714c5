package host

type TyKind uint8

const (
	TyPath TyKind = iota + 1
	TyRef
	TyPtr
	TySlice
	TyArray
	TyTup
	TyNever
	TyInfer
	TyBareFn
	TyTraitObject
	TyOpaqueDef
	TyTypeof
	TyErr
)

func (k TyKind) String() string {
	switch k {
	case TyPath:
		return "path"
	case TyRef:
		return "ref"
	case TyPtr:
		return "ptr"
	case TySlice:
		return "slice"
	case TyArray:
		return "array"
	case TyTup:
		return "tuple"
	case TyNever:
		return "never"
	case TyInfer:
		return "infer"
	case TyBareFn:
		return "bare fn"
	case TyTraitObject:
		return "trait object"
	case TyOpaqueDef:
		return "opaque def"
	case TyTypeof:
		return "typeof"
	case TyErr:
		return "error"
	}
	return "unknown"
}

// Ty is a type as written in the source.
type Ty struct {
	HirId HirId
	Span  Span
	Kind  TyKind

	// TyPath.
	QPath *QPath
	// TyRef: Lifetime may be an inferred lifetime.
	Lifetime *Lifetime
	// TyRef, TyPtr.
	Mutable bool
	// TyRef, TyPtr, TySlice, TyArray.
	Inner *Ty
	// TyArray: the anonymous constant holding the length.
	Len BodyId
	// TyTup.
	Elems []*Ty
}

type QPathKind uint8

const (
	// QPathResolved is `path` or `<Self as Trait>::path` when Self is set.
	QPathResolved QPathKind = iota + 1
	// QPathTypeRelative is `<T>::name`.
	QPathTypeRelative
	QPathLangItem
)

type QPath struct {
	Kind QPathKind
	Self *Ty
	Path *Path
	Span Span
}

type ResKind uint8

const (
	ResErr ResKind = iota
	ResDef
	ResLocal
	ResPrimTy
	ResSelfTy
)

type DefKind uint8

const (
	DefMod DefKind = iota + 1
	DefStruct
	DefUnion
	DefEnum
	DefVariant
	DefTrait
	DefTraitAlias
	DefTyAlias
	DefForeignTy
	DefTyParam
	DefAssocTy
	DefFn
	DefConst
	DefStatic
	DefCtor
	DefAssocFn
	DefAssocConst
)

// IsType reports whether the definition names a type.
func (k DefKind) IsType() bool {
	switch k {
	case DefStruct, DefUnion, DefEnum, DefTrait, DefTraitAlias, DefTyAlias, DefForeignTy, DefTyParam, DefAssocTy:
		return true
	}
	return false
}

// Res is what a path resolved to.
type Res struct {
	Kind    ResKind
	DefKind DefKind
	DefId   DefId
	// Local is the binding HirId for ResLocal.
	Local HirId
}

type Path struct {
	Span     Span
	Res      Res
	Segments []PathSegment
}

type PathSegment struct {
	Ident Ident
	HirId HirId
	Args  *GenericArgs
}

type GenericArgs struct {
	Args []GenericArg
	Span Span
}

type GenericArgKind uint8

const (
	GenericArgLifetime GenericArgKind = iota + 1
	GenericArgType
	GenericArgConst
	GenericArgInfer
)

type GenericArg struct {
	Kind     GenericArgKind
	Lifetime *Lifetime
	Ty       *Ty
	// GenericArgConst, GenericArgInfer.
	HirId HirId
	Span  Span
}
