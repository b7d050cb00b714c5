package host

// Body is the executable part of a fn, const, static or anonymous constant.
type Body struct {
	Id     BodyId
	Owner  DefId
	Params []Param
	Value  *Expr
}

type Param struct {
	HirId  HirId
	Pat    *Pat
	TySpan Span
	Span   Span
}

type ExprKind uint8

const (
	ExprLit ExprKind = iota + 1
	ExprPath
	ExprCall
	ExprMethodCall
	ExprUnary
	ExprBinary
	ExprAddrOf
	ExprBlock
	ExprRet
	ExprAssign
	ExprIf
	ExprLoop
	ExprMatch
	ExprClosure
	ExprField
	ExprIndex
	ExprCast
	ExprErr
)

func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "lit"
	case ExprPath:
		return "path"
	case ExprCall:
		return "call"
	case ExprMethodCall:
		return "method call"
	case ExprUnary:
		return "unary"
	case ExprBinary:
		return "binary"
	case ExprAddrOf:
		return "addr of"
	case ExprBlock:
		return "block"
	case ExprRet:
		return "ret"
	case ExprAssign:
		return "assign"
	case ExprIf:
		return "if"
	case ExprLoop:
		return "loop"
	case ExprMatch:
		return "match"
	case ExprClosure:
		return "closure"
	case ExprField:
		return "field"
	case ExprIndex:
		return "index"
	case ExprCast:
		return "cast"
	case ExprErr:
		return "error"
	}
	return "unknown"
}

type UnOp uint8

const (
	UnNeg UnOp = iota + 1
	UnNot
	UnDeref
)

type BinOp uint8

const (
	BinAdd BinOp = iota + 1
	BinSub
	BinMul
	BinDiv
	BinRem
	BinAnd
	BinOr
	BinBitXor
	BinBitAnd
	BinBitOr
	BinShl
	BinShr
	BinEq
	BinLt
	BinLe
	BinNe
	BinGe
	BinGt
)

type Expr struct {
	HirId HirId
	Span  Span
	Kind  ExprKind

	Lit   *Lit
	QPath *QPath

	// ExprCall: Callee(Args). ExprMethodCall: Receiver.Method(Args).
	Callee   *Expr
	Receiver *Expr
	Method   *PathSegment
	Args     []*Expr

	UnOp  UnOp
	BinOp BinOp
	// ExprUnary, ExprAddrOf, ExprField.
	Operand *Expr
	// ExprField: either a named field or, when Positional is set, the
	// index of a tuple field.
	Field      Ident
	FieldIndex uint32
	Positional bool
	// ExprBinary, ExprAssign.
	Lhs *Expr
	Rhs *Expr
	// ExprAddrOf.
	Mutable bool

	Block *Block
	// ExprRet: nil for a bare `return`.
	Value *Expr
}

type LitKind uint8

const (
	LitInt LitKind = iota + 1
	LitFloat
	LitStr
	LitChar
	LitBool
	LitByteStr
	LitErr
)

type Lit struct {
	Kind  LitKind
	Span  Span
	Int   uint64
	Float float64
	Str   string
	Char  rune
	Bool  bool
}

type Block struct {
	HirId  HirId
	Span   Span
	Stmts  []Stmt
	Expr   *Expr
	Unsafe bool
}

type StmtKind uint8

const (
	StmtLocal StmtKind = iota + 1
	StmtItem
	StmtExpr
	// StmtSemi is an expression followed by `;`.
	StmtSemi
)

type Stmt struct {
	HirId HirId
	Span  Span
	Kind  StmtKind
	Local *Local
	Item  DefId
	Expr  *Expr
}

// Local is a `let` statement.
type Local struct {
	HirId HirId
	Span  Span
	Pat   *Pat
	Ty    *Ty
	Init  *Expr
	Els   *Block
}

type PatKind uint8

const (
	PatBinding PatKind = iota + 1
	PatWild
	PatTuple
	PatStruct
	PatTupleStruct
	PatLit
	PatRange
	PatRef
	PatSlice
	PatOr
)

func (k PatKind) String() string {
	switch k {
	case PatBinding:
		return "binding"
	case PatWild:
		return "wild"
	case PatTuple:
		return "tuple"
	case PatStruct:
		return "struct"
	case PatTupleStruct:
		return "tuple struct"
	case PatLit:
		return "lit"
	case PatRange:
		return "range"
	case PatRef:
		return "ref"
	case PatSlice:
		return "slice"
	case PatOr:
		return "or"
	}
	return "unknown"
}

type BindingMode struct {
	ByRef   bool
	Mutable bool
}

type Pat struct {
	HirId HirId
	Span  Span
	Kind  PatKind

	// PatBinding: `ref mut Ident @ Sub`.
	Binding BindingMode
	Ident   Ident
	Sub     *Pat

	// PatTuple.
	Elems []*Pat
}
