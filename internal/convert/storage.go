package convert

import "marker/pkg/ast"

// chunkLen is the number of nodes per arena chunk. Chunks are never grown
// in place, so node pointers stay valid until Release.
const chunkLen = 128

// Arena stores values of one node type in fixed-size chunks.
type Arena[T any] struct {
	chunks [][]T
	n      int
}

func (a *Arena[T]) alloc(v T) *T {
	last := len(a.chunks) - 1
	if last < 0 || len(a.chunks[last]) == cap(a.chunks[last]) {
		a.chunks = append(a.chunks, make([]T, 0, chunkLen))
		last++
	}
	a.chunks[last] = append(a.chunks[last], v)
	a.n++
	return &a.chunks[last][len(a.chunks[last])-1]
}

func (a *Arena[T]) Len() int { return a.n }

type itemArenas struct {
	externCrates Arena[ast.ExternCrateItem]
	uses         Arena[ast.UseItem]
	statics      Arena[ast.StaticItem]
	consts       Arena[ast.ConstItem]
	fns          Arena[ast.FnItem]
	mods         Arena[ast.ModItem]
	tyAliases    Arena[ast.TyAliasItem]
	impls        Arena[ast.ImplItem]
	crates       Arena[ast.Crate]
}

type genericArenas struct {
	params          Arena[ast.GenericParams]
	lifetimeParams  Arena[ast.LifetimeParam]
	tyParams        Arena[ast.TyParam]
	lifetimes       Arena[ast.Lifetime]
	traitBounds     Arena[ast.TraitBound]
	tyClauses       Arena[ast.TyClause]
	lifetimeClauses Arena[ast.LifetimeClause]
	lifetimeArgs    Arena[ast.LifetimeArg]
	tyArgs          Arena[ast.TyArg]
}

type tyArenas struct {
	paths    Arena[ast.PathTy]
	refs     Arena[ast.RefTy]
	rawPtrs  Arena[ast.RawPtrTy]
	slices   Arena[ast.SliceTy]
	arrays   Arena[ast.ArrayTy]
	tuples   Arena[ast.TupleTy]
	nevers   Arena[ast.NeverTy]
	inferred Arena[ast.InferredTy]
}

type exprArenas struct {
	intLits   Arena[ast.IntLitExpr]
	floatLits Arena[ast.FloatLitExpr]
	strLits   Arena[ast.StrLitExpr]
	charLits  Arena[ast.CharLitExpr]
	boolLits  Arena[ast.BoolLitExpr]
	paths     Arena[ast.PathExpr]
	calls     Arena[ast.CallExpr]
	methods   Arena[ast.MethodExpr]
	unaries   Arena[ast.UnaryOpExpr]
	binaries  Arena[ast.BinaryOpExpr]
	refs      Arena[ast.RefExpr]
	blocks    Arena[ast.BlockExpr]
	returns   Arena[ast.ReturnExpr]
	assigns   Arena[ast.AssignExpr]
	fields    Arena[ast.FieldExpr]
}

type bodyArenas struct {
	bodies    Arena[ast.Body]
	itemStmts Arena[ast.ItemStmt]
	letStmts  Arena[ast.LetStmt]
	exprStmts Arena[ast.ExprStmt]
	identPats Arena[ast.IdentPat]
	wildPats  Arena[ast.WildcardPat]
	tuplePats Arena[ast.TuplePat]
}

type spanArenas struct {
	spans   Arena[ast.Span]
	sources Arena[ast.SpanSource]
}

// Storage owns every node produced during one pass. Nothing allocated from
// it may be used after Release.
type Storage struct {
	released bool

	items    itemArenas
	generics genericArenas
	tys      tyArenas
	exprs    exprArenas
	bodies   bodyArenas
	spans    spanArenas
}

func NewStorage() *Storage {
	return &Storage{}
}

// Release drops all nodes at once. Further allocations panic with
// ErrStorageReleased.
func (s *Storage) Release() {
	*s = Storage{released: true}
}

func (s *Storage) Released() bool { return s.released }

// newNode allocates v in arena a of storage s.
func newNode[T any](s *Storage, a *Arena[T], v T) *T {
	if s.released {
		panic(ErrStorageReleased)
	}
	return a.alloc(v)
}
