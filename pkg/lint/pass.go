package lint

import "marker/pkg/ast"

// PassInfo lists the lints a pass may emit.
type PassInfo struct {
	Lints []*Lint
}

// Pass is the entry point of a lint crate. A pass additionally implements any
// of the Check* interfaces below; the driver only calls the hooks a pass
// implements.
type Pass interface {
	Info() PassInfo
}

// CrateChecker is called once per crate before any item is visited.
type CrateChecker interface {
	CheckCrate(cx *AstContext, crate *ast.Crate)
}

// ItemChecker is called for every item, including items nested in modules,
// impl blocks and bodies, in declaration order.
type ItemChecker interface {
	CheckItem(cx *AstContext, item ast.Item)
}

// BodyChecker is called for every body of a visited fn, const or static.
type BodyChecker interface {
	CheckBody(cx *AstContext, body *ast.Body)
}

type StmtChecker interface {
	CheckStmt(cx *AstContext, stmt ast.Stmt)
}

// ExprChecker is called for every expression, parents before children.
type ExprChecker interface {
	CheckExpr(cx *AstContext, expr ast.Expr)
}
