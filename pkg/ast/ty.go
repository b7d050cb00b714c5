package ast

// SynTyKind enumerates syntactic (as-written) types.
type SynTyKind uint8

const (
	TyPath SynTyKind = iota + 1
	TyRef
	TyRawPtr
	TySlice
	TyArray
	TyTuple
	TyNever
	TyInferred
)

func (k SynTyKind) String() string {
	switch k {
	case TyPath:
		return "path"
	case TyRef:
		return "ref"
	case TyRawPtr:
		return "raw-ptr"
	case TySlice:
		return "slice"
	case TyArray:
		return "array"
	case TyTuple:
		return "tuple"
	case TyNever:
		return "never"
	case TyInferred:
		return "inferred"
	}
	return "unknown"
}

// SynTy is a type as it was written in the source.
type SynTy interface {
	SpanID() SpanId
	Kind() SynTyKind
	synTy()
}

type CommonSynTyData struct {
	span SpanId
}

func NewCommonSynTyData(span SpanId) CommonSynTyData { return CommonSynTyData{span: span} }

func (d CommonSynTyData) SpanID() SpanId { return d.span }

// PathTy is a named type. Def is set when the path resolves to a type
// definition.
type PathTy struct {
	CommonSynTyData
	path   AstPath
	def    TyDefId
	hasDef bool
}

func NewPathTy(data CommonSynTyData, path AstPath, def TyDefId, hasDef bool) PathTy {
	return PathTy{CommonSynTyData: data, path: path, def: def, hasDef: hasDef}
}

func (t *PathTy) Path() *AstPath       { return &t.path }
func (t *PathTy) Def() (TyDefId, bool) { return t.def, t.hasDef }
func (*PathTy) Kind() SynTyKind        { return TyPath }
func (*PathTy) synTy()                  {}

type RefTy struct {
	CommonSynTyData
	lifetime *Lifetime
	mutable  bool
	inner    SynTy
}

func NewRefTy(data CommonSynTyData, lifetime *Lifetime, mutable bool, inner SynTy) RefTy {
	return RefTy{CommonSynTyData: data, lifetime: lifetime, mutable: mutable, inner: inner}
}

// Lifetime is nil when the lifetime was elided.
func (t *RefTy) Lifetime() *Lifetime { return t.lifetime }
func (t *RefTy) IsMut() bool         { return t.mutable }
func (t *RefTy) Inner() SynTy        { return t.inner }
func (*RefTy) Kind() SynTyKind       { return TyRef }
func (*RefTy) synTy()                {}

type RawPtrTy struct {
	CommonSynTyData
	mutable bool
	inner   SynTy
}

func NewRawPtrTy(data CommonSynTyData, mutable bool, inner SynTy) RawPtrTy {
	return RawPtrTy{CommonSynTyData: data, mutable: mutable, inner: inner}
}

func (t *RawPtrTy) IsMut() bool   { return t.mutable }
func (t *RawPtrTy) Inner() SynTy  { return t.inner }
func (*RawPtrTy) Kind() SynTyKind { return TyRawPtr }
func (*RawPtrTy) synTy()          {}

type SliceTy struct {
	CommonSynTyData
	elem SynTy
}

func NewSliceTy(data CommonSynTyData, elem SynTy) SliceTy {
	return SliceTy{CommonSynTyData: data, elem: elem}
}

func (t *SliceTy) Elem() SynTy   { return t.elem }
func (*SliceTy) Kind() SynTyKind { return TySlice }
func (*SliceTy) synTy()          {}

// ArrayTy is `[Elem; Len]`. The length is a constant expression.
type ArrayTy struct {
	CommonSynTyData
	elem   SynTy
	length Expr
}

func NewArrayTy(data CommonSynTyData, elem SynTy, length Expr) ArrayTy {
	return ArrayTy{CommonSynTyData: data, elem: elem, length: length}
}

func (t *ArrayTy) Elem() SynTy   { return t.elem }
func (t *ArrayTy) Len() Expr     { return t.length }
func (*ArrayTy) Kind() SynTyKind { return TyArray }
func (*ArrayTy) synTy()          {}

type TupleTy struct {
	CommonSynTyData
	elems []SynTy
}

func NewTupleTy(data CommonSynTyData, elems []SynTy) TupleTy {
	return TupleTy{CommonSynTyData: data, elems: elems}
}

func (t *TupleTy) Elems() []SynTy { return t.elems }
func (*TupleTy) Kind() SynTyKind  { return TyTuple }
func (*TupleTy) synTy()           {}

type NeverTy struct {
	CommonSynTyData
}

func NewNeverTy(data CommonSynTyData) NeverTy { return NeverTy{CommonSynTyData: data} }

func (*NeverTy) Kind() SynTyKind { return TyNever }
func (*NeverTy) synTy()          {}

// InferredTy is `_`.
type InferredTy struct {
	CommonSynTyData
}

func NewInferredTy(data CommonSynTyData) InferredTy { return InferredTy{CommonSynTyData: data} }

func (*InferredTy) Kind() SynTyKind { return TyInferred }
func (*InferredTy) synTy()          {}
