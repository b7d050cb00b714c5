package ast

import "fmt"

// The id types below are plain, fixed-width values. Drivers build them with
// the New* constructors from the host's own identifiers; lint crates only
// compare and pass them around. Two ids are equal iff they denote the same
// host entity within the same pass.

// CrateId identifies a crate of the current compilation.
type CrateId uint32

// SymbolId is an interned name. Use lint.AstContext.SymbolStr to read it.
type SymbolId uint32

// NoSymbol marks an absent name.
const NoSymbol SymbolId = 0

// ItemId identifies an item (including associated items).
type ItemId struct {
	krate uint32
	index uint32
}

// NewItemId is intended for drivers.
func NewItemId(krate, index uint32) ItemId { return ItemId{krate: krate, index: index} }

func (id ItemId) Krate() uint32  { return id.krate }
func (id ItemId) Index() uint32  { return id.index }
func (id ItemId) String() string { return fmt.Sprintf("ItemId(%d:%d)", id.krate, id.index) }

// GenericId identifies a generic parameter.
type GenericId struct {
	krate uint32
	index uint32
}

func NewGenericId(krate, index uint32) GenericId { return GenericId{krate: krate, index: index} }

func (id GenericId) Krate() uint32  { return id.krate }
func (id GenericId) Index() uint32  { return id.index }
func (id GenericId) String() string { return fmt.Sprintf("GenericId(%d:%d)", id.krate, id.index) }

// TyDefId identifies the definition a type path resolves to.
type TyDefId struct {
	krate uint32
	index uint32
}

func NewTyDefId(krate, index uint32) TyDefId { return TyDefId{krate: krate, index: index} }

func (id TyDefId) Krate() uint32  { return id.krate }
func (id TyDefId) Index() uint32  { return id.index }
func (id TyDefId) String() string { return fmt.Sprintf("TyDefId(%d:%d)", id.krate, id.index) }

// BodyId identifies the body of a function, constant or static.
type BodyId struct {
	owner uint32
	index uint32
}

func NewBodyId(owner, index uint32) BodyId { return BodyId{owner: owner, index: index} }

func (id BodyId) Owner() uint32  { return id.owner }
func (id BodyId) Index() uint32  { return id.index }
func (id BodyId) String() string { return fmt.Sprintf("BodyId(%d:%d)", id.owner, id.index) }

// VarId identifies a local variable binding.
type VarId struct {
	owner uint32
	index uint32
}

func NewVarId(owner, index uint32) VarId { return VarId{owner: owner, index: index} }

func (id VarId) Owner() uint32  { return id.owner }
func (id VarId) Index() uint32  { return id.index }
func (id VarId) String() string { return fmt.Sprintf("VarId(%d:%d)", id.owner, id.index) }

// ExprId identifies an expression inside a body.
type ExprId struct {
	owner uint32
	index uint32
}

func NewExprId(owner, index uint32) ExprId { return ExprId{owner: owner, index: index} }

func (id ExprId) Owner() uint32  { return id.owner }
func (id ExprId) Index() uint32  { return id.index }
func (id ExprId) String() string { return fmt.Sprintf("ExprId(%d:%d)", id.owner, id.index) }

// LetStmtId identifies a let statement.
type LetStmtId struct {
	owner uint32
	index uint32
}

func NewLetStmtId(owner, index uint32) LetStmtId { return LetStmtId{owner: owner, index: index} }

func (id LetStmtId) Owner() uint32 { return id.owner }
func (id LetStmtId) Index() uint32 { return id.index }

// SpanId is a compact handle for a source range. Resolve it to a Span through
// lint.AstContext.Span.
type SpanId struct {
	lo uint32
	hi uint32
}

func NewSpanId(lo, hi uint32) SpanId { return SpanId{lo: lo, hi: hi} }

func (id SpanId) Lo() uint32     { return id.lo }
func (id SpanId) Hi() uint32     { return id.hi }
func (id SpanId) String() string { return fmt.Sprintf("SpanId(%d..%d)", id.lo, id.hi) }
func (id SpanId) IsDummy() bool  { return id.lo == 0 && id.hi == 0 }
