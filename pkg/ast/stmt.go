package ast

type StmtKind uint8

const (
	StmtItem StmtKind = iota + 1
	StmtLet
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtItem:
		return "item"
	case StmtLet:
		return "let"
	case StmtExpr:
		return "expr"
	}
	return "unknown"
}

// Stmt is an ItemStmt, a LetStmt or an ExprStmt.
type Stmt interface {
	SpanID() SpanId
	Kind() StmtKind
	stmt()
}

// ItemStmt is an item declared inside a block.
type ItemStmt struct {
	item Item
}

func NewItemStmt(item Item) ItemStmt { return ItemStmt{item: item} }

func (s *ItemStmt) Item() Item     { return s.item }
func (s *ItemStmt) SpanID() SpanId { return s.item.SpanID() }
func (*ItemStmt) Kind() StmtKind   { return StmtItem }
func (*ItemStmt) stmt()            {}

// LetStmt is `let pat: ty = init else { els };`.
type LetStmt struct {
	id   LetStmtId
	span SpanId
	pat  Pat
	ty   SynTy
	init Expr
	els  Expr
}

func NewLetStmt(id LetStmtId, span SpanId, pat Pat, ty SynTy, init, els Expr) LetStmt {
	return LetStmt{id: id, span: span, pat: pat, ty: ty, init: init, els: els}
}

func (s *LetStmt) ID() LetStmtId  { return s.id }
func (s *LetStmt) SpanID() SpanId { return s.span }
func (s *LetStmt) Pat() Pat       { return s.pat }

// Ty returns the written type, nil if none was specified.
func (s *LetStmt) Ty() SynTy  { return s.ty }
func (s *LetStmt) Init() Expr { return s.init }

// Els returns the diverging `else` block of a let-else, nil otherwise.
func (s *LetStmt) Els() Expr    { return s.els }
func (*LetStmt) Kind() StmtKind { return StmtLet }
func (*LetStmt) stmt()            {}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	expr Expr
}

func NewExprStmt(expr Expr) ExprStmt { return ExprStmt{expr: expr} }

func (s *ExprStmt) Expr() Expr     { return s.expr }
func (s *ExprStmt) SpanID() SpanId { return s.expr.SpanID() }
func (*ExprStmt) Kind() StmtKind   { return StmtExpr }
func (*ExprStmt) stmt()            {}
