package ast

type ExprKind uint8

const (
	ExprIntLit ExprKind = iota + 1
	ExprFloatLit
	ExprStrLit
	ExprCharLit
	ExprBoolLit
	ExprPath
	ExprCall
	ExprMethod
	ExprUnaryOp
	ExprBinaryOp
	ExprRef
	ExprBlock
	ExprReturn
	ExprAssign
	ExprField
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntLit:
		return "int-lit"
	case ExprFloatLit:
		return "float-lit"
	case ExprStrLit:
		return "str-lit"
	case ExprCharLit:
		return "char-lit"
	case ExprBoolLit:
		return "bool-lit"
	case ExprPath:
		return "path"
	case ExprCall:
		return "call"
	case ExprMethod:
		return "method"
	case ExprUnaryOp:
		return "unary"
	case ExprBinaryOp:
		return "binary"
	case ExprRef:
		return "ref"
	case ExprBlock:
		return "block"
	case ExprReturn:
		return "return"
	case ExprAssign:
		return "assign"
	case ExprField:
		return "field"
	}
	return "unknown"
}

// Expr is implemented by every expression node.
type Expr interface {
	ID() ExprId
	SpanID() SpanId
	Kind() ExprKind
	expr()
}

type CommonExprData struct {
	id   ExprId
	span SpanId
}

func NewCommonExprData(id ExprId, span SpanId) CommonExprData {
	return CommonExprData{id: id, span: span}
}

func (d CommonExprData) ID() ExprId     { return d.id }
func (d CommonExprData) SpanID() SpanId { return d.span }

type IntLitExpr struct {
	CommonExprData
	value uint64
}

func NewIntLitExpr(data CommonExprData, value uint64) IntLitExpr {
	return IntLitExpr{CommonExprData: data, value: value}
}

func (e *IntLitExpr) Value() uint64 { return e.value }
func (*IntLitExpr) Kind() ExprKind  { return ExprIntLit }
func (*IntLitExpr) expr()           {}

type FloatLitExpr struct {
	CommonExprData
	value float64
}

func NewFloatLitExpr(data CommonExprData, value float64) FloatLitExpr {
	return FloatLitExpr{CommonExprData: data, value: value}
}

func (e *FloatLitExpr) Value() float64 { return e.value }
func (*FloatLitExpr) Kind() ExprKind   { return ExprFloatLit }
func (*FloatLitExpr) expr()            {}

type StrLitExpr struct {
	CommonExprData
	value string
}

func NewStrLitExpr(data CommonExprData, value string) StrLitExpr {
	return StrLitExpr{CommonExprData: data, value: value}
}

func (e *StrLitExpr) Value() string { return e.value }
func (*StrLitExpr) Kind() ExprKind  { return ExprStrLit }
func (*StrLitExpr) expr()           {}

type CharLitExpr struct {
	CommonExprData
	value rune
}

func NewCharLitExpr(data CommonExprData, value rune) CharLitExpr {
	return CharLitExpr{CommonExprData: data, value: value}
}

func (e *CharLitExpr) Value() rune  { return e.value }
func (*CharLitExpr) Kind() ExprKind { return ExprCharLit }
func (*CharLitExpr) expr()          {}

type BoolLitExpr struct {
	CommonExprData
	value bool
}

func NewBoolLitExpr(data CommonExprData, value bool) BoolLitExpr {
	return BoolLitExpr{CommonExprData: data, value: value}
}

func (e *BoolLitExpr) Value() bool  { return e.value }
func (*BoolLitExpr) Kind() ExprKind { return ExprBoolLit }
func (*BoolLitExpr) expr()          {}

// PathExpr refers to a local, a function, a constant or a static by path.
type PathExpr struct {
	CommonExprData
	path AstPath
	// set when the path names a local binding
	local    VarId
	hasLocal bool
}

func NewPathExpr(data CommonExprData, path AstPath, local VarId, hasLocal bool) PathExpr {
	return PathExpr{CommonExprData: data, path: path, local: local, hasLocal: hasLocal}
}

func (e *PathExpr) Path() *AstPath       { return &e.path }
func (e *PathExpr) Local() (VarId, bool) { return e.local, e.hasLocal }
func (*PathExpr) Kind() ExprKind         { return ExprPath }
func (*PathExpr) expr()                    {}

// CallExpr calls the function its operand evaluates to, e.g. `foo(1)` or
// `Vec::new()`.
type CallExpr struct {
	CommonExprData
	operand Expr
	args    []Expr
}

func NewCallExpr(data CommonExprData, operand Expr, args []Expr) CallExpr {
	return CallExpr{CommonExprData: data, operand: operand, args: args}
}

func (e *CallExpr) Operand() Expr { return e.operand }
func (e *CallExpr) Args() []Expr  { return e.args }
func (*CallExpr) Kind() ExprKind  { return ExprCall }
func (*CallExpr) expr()            {}

// MethodExpr is `receiver.method::<G>(args)`.
type MethodExpr struct {
	CommonExprData
	receiver Expr
	method   AstPathSegment
	args     []Expr
}

func NewMethodExpr(data CommonExprData, receiver Expr, method AstPathSegment, args []Expr) MethodExpr {
	return MethodExpr{CommonExprData: data, receiver: receiver, method: method, args: args}
}

func (e *MethodExpr) Receiver() Expr          { return e.receiver }
func (e *MethodExpr) Method() *AstPathSegment { return &e.method }
func (e *MethodExpr) Args() []Expr            { return e.args }
func (*MethodExpr) Kind() ExprKind            { return ExprMethod }
func (*MethodExpr) expr()                      {}

type UnaryOpKind uint8

const (
	UnaryNeg UnaryOpKind = iota + 1
	UnaryNot
	UnaryDeref
)

type UnaryOpExpr struct {
	CommonExprData
	op      UnaryOpKind
	operand Expr
}

func NewUnaryOpExpr(data CommonExprData, op UnaryOpKind, operand Expr) UnaryOpExpr {
	return UnaryOpExpr{CommonExprData: data, op: op, operand: operand}
}

func (e *UnaryOpExpr) Op() UnaryOpKind { return e.op }
func (e *UnaryOpExpr) Operand() Expr   { return e.operand }
func (*UnaryOpExpr) Kind() ExprKind    { return ExprUnaryOp }
func (*UnaryOpExpr) expr()             {}

type BinaryOpKind uint8

const (
	BinAdd BinaryOpKind = iota + 1
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

type BinaryOpExpr struct {
	CommonExprData
	op    BinaryOpKind
	left  Expr
	right Expr
}

func NewBinaryOpExpr(data CommonExprData, op BinaryOpKind, left, right Expr) BinaryOpExpr {
	return BinaryOpExpr{CommonExprData: data, op: op, left: left, right: right}
}

func (e *BinaryOpExpr) Op() BinaryOpKind { return e.op }
func (e *BinaryOpExpr) Left() Expr       { return e.left }
func (e *BinaryOpExpr) Right() Expr      { return e.right }
func (*BinaryOpExpr) Kind() ExprKind     { return ExprBinaryOp }
func (*BinaryOpExpr) expr()              {}

// RefExpr is `&expr` or `&mut expr`.
type RefExpr struct {
	CommonExprData
	mutable bool
	inner   Expr
}

func NewRefExpr(data CommonExprData, mutable bool, inner Expr) RefExpr {
	return RefExpr{CommonExprData: data, mutable: mutable, inner: inner}
}

func (e *RefExpr) IsMut() bool  { return e.mutable }
func (e *RefExpr) Inner() Expr  { return e.inner }
func (*RefExpr) Kind() ExprKind { return ExprRef }
func (*RefExpr) expr()            {}

// BlockExpr holds statements in source order and an optional trailing
// expression.
type BlockExpr struct {
	CommonExprData
	stmts  []Stmt
	result Expr
	unsafe bool
}

func NewBlockExpr(data CommonExprData, stmts []Stmt, result Expr, unsafe bool) BlockExpr {
	return BlockExpr{CommonExprData: data, stmts: stmts, result: result, unsafe: unsafe}
}

func (e *BlockExpr) Stmts() []Stmt  { return e.stmts }
func (e *BlockExpr) Result() Expr   { return e.result }
func (e *BlockExpr) IsUnsafe() bool { return e.unsafe }
func (*BlockExpr) Kind() ExprKind   { return ExprBlock }
func (*BlockExpr) expr()             {}

type ReturnExpr struct {
	CommonExprData
	value Expr
}

func NewReturnExpr(data CommonExprData, value Expr) ReturnExpr {
	return ReturnExpr{CommonExprData: data, value: value}
}

// Value is nil for a bare `return`.
func (e *ReturnExpr) Value() Expr  { return e.value }
func (*ReturnExpr) Kind() ExprKind { return ExprReturn }
func (*ReturnExpr) expr()           {}

type AssignExpr struct {
	CommonExprData
	target Expr
	value  Expr
}

func NewAssignExpr(data CommonExprData, target, value Expr) AssignExpr {
	return AssignExpr{CommonExprData: data, target: target, value: value}
}

func (e *AssignExpr) Target() Expr { return e.target }
func (e *AssignExpr) Value() Expr  { return e.value }
func (*AssignExpr) Kind() ExprKind { return ExprAssign }
func (*AssignExpr) expr()           {}

// FieldExpr is `operand.field`. Positional fields of tuples and tuple structs
// are named by their index, so `pair.0` has the field name "0".
type FieldExpr struct {
	CommonExprData
	operand Expr
	field   SymbolId
}

func NewFieldExpr(data CommonExprData, operand Expr, field SymbolId) FieldExpr {
	return FieldExpr{CommonExprData: data, operand: operand, field: field}
}

func (e *FieldExpr) Operand() Expr   { return e.operand }
func (e *FieldExpr) Field() SymbolId { return e.field }
func (*FieldExpr) Kind() ExprKind    { return ExprField }
func (*FieldExpr) expr()             {}
