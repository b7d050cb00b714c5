package convert

import (
	"fmt"

	"marker/internal/host"
	"marker/pkg/ast"
)

// body converts a host body. The body is cached before its expression is
// converted.
func (c *Converter) body(id host.BodyId) *ast.Body {
	bid := c.bodyID(id)
	if b, ok := c.bodies[bid]; ok {
		return b
	}
	hb, ok := c.sess.Body(id)
	if !ok {
		c.fail(fmt.Errorf("convert: unknown body %v", bid))
	}

	shell := newNode(c.store, &c.store.bodies.bodies, ast.Body{})
	c.bodies[bid] = shell

	inputs := c.ownerInputs(hb.Owner)
	var params []ast.Parameter
	if len(hb.Params) > 0 {
		params = make([]ast.Parameter, len(hb.Params))
		for i := range hb.Params {
			p := &hb.Params[i]
			var ty ast.SynTy
			if i < len(inputs) {
				ty = c.ty(inputs[i])
			}
			params[i] = ast.NewParameter(c.pat(p.Pat), ty, c.spanID(p.Span))
		}
	}
	*shell = ast.NewBody(bid, c.itemID(hb.Owner), params, c.expr(hb.Value))
	return shell
}

// ownerInputs returns the declared parameter types of the fn owning a body.
func (c *Converter) ownerInputs(owner host.DefId) []*host.Ty {
	if it, ok := c.sess.Item(owner); ok {
		if it.Kind == host.ItemFn && it.Fn != nil {
			return it.Fn.Sig.Decl.Inputs
		}
		return nil
	}
	if ii, ok := c.sess.ImplItem(owner); ok && ii.Kind == host.ImplItemFn && ii.Fn != nil {
		return ii.Fn.Sig.Decl.Inputs
	}
	return nil
}

// reserveExpr allocates an empty expression and caches it under id.
func reserveExpr[T any, P interface {
	*T
	ast.Expr
}](c *Converter, arena *Arena[T], id ast.ExprId) P {
	shell := P(newNode(c.store, arena, *new(T)))
	c.exprs[id] = shell
	return shell
}

func (c *Converter) expr(e *host.Expr) ast.Expr {
	id := c.exprID(e.HirId)
	if x, ok := c.exprs[id]; ok {
		return x
	}

	switch e.Kind {
	case host.ExprLit:
		if e.Lit.Kind == host.LitByteStr || e.Lit.Kind == host.LitErr {
			c.notYetImplemented("byte string or erroneous literal", e.Span)
		}
	case host.ExprIf, host.ExprLoop, host.ExprMatch, host.ExprClosure,
		host.ExprIndex, host.ExprCast, host.ExprErr:
		c.notYetImplemented(e.Kind.String()+" expression", e.Span)
	}

	data := ast.NewCommonExprData(id, c.spanID(e.Span))
	switch e.Kind {
	case host.ExprLit:
		return c.litExpr(data, e.Lit)

	case host.ExprPath:
		shell := reserveExpr(c, &c.store.exprs.paths, id)
		path := c.qpath(e.QPath)
		var local ast.VarId
		res := e.QPath.Path.Res
		hasLocal := res.Kind == host.ResLocal
		if hasLocal {
			local = c.varID(res.Local)
		}
		*shell = ast.NewPathExpr(data, path, local, hasLocal)
		return shell

	case host.ExprCall:
		shell := reserveExpr(c, &c.store.exprs.calls, id)
		*shell = ast.NewCallExpr(data, c.expr(e.Callee), c.exprList(e.Args))
		return shell

	case host.ExprMethodCall:
		shell := reserveExpr(c, &c.store.exprs.methods, id)
		*shell = ast.NewMethodExpr(data, c.expr(e.Receiver), c.pathSegment(e.Method), c.exprList(e.Args))
		return shell

	case host.ExprUnary:
		shell := reserveExpr(c, &c.store.exprs.unaries, id)
		*shell = ast.NewUnaryOpExpr(data, unaryOp(e.UnOp), c.expr(e.Operand))
		return shell

	case host.ExprBinary:
		shell := reserveExpr(c, &c.store.exprs.binaries, id)
		op := c.binaryOp(e.BinOp)
		*shell = ast.NewBinaryOpExpr(data, op, c.expr(e.Lhs), c.expr(e.Rhs))
		return shell

	case host.ExprAddrOf:
		shell := reserveExpr(c, &c.store.exprs.refs, id)
		*shell = ast.NewRefExpr(data, e.Mutable, c.expr(e.Operand))
		return shell

	case host.ExprBlock:
		return c.blockExpr(e.Block, id, data.SpanID())

	case host.ExprRet:
		shell := reserveExpr(c, &c.store.exprs.returns, id)
		var value ast.Expr
		if e.Value != nil {
			value = c.expr(e.Value)
		}
		*shell = ast.NewReturnExpr(data, value)
		return shell

	case host.ExprAssign:
		shell := reserveExpr(c, &c.store.exprs.assigns, id)
		*shell = ast.NewAssignExpr(data, c.expr(e.Lhs), c.expr(e.Rhs))
		return shell

	case host.ExprField:
		shell := reserveExpr(c, &c.store.exprs.fields, id)
		field := c.symbolID(e.Field.Name)
		if e.Positional {
			field = c.symbolForNum(e.FieldIndex)
		}
		*shell = ast.NewFieldExpr(data, c.expr(e.Operand), field)
		return shell
	}

	c.fail(fmt.Errorf("convert: unknown expression kind %d", e.Kind))
	return nil
}

func (c *Converter) litExpr(data ast.CommonExprData, lit *host.Lit) ast.Expr {
	id := data.ID()
	switch lit.Kind {
	case host.LitInt:
		shell := reserveExpr(c, &c.store.exprs.intLits, id)
		*shell = ast.NewIntLitExpr(data, lit.Int)
		return shell
	case host.LitFloat:
		shell := reserveExpr(c, &c.store.exprs.floatLits, id)
		*shell = ast.NewFloatLitExpr(data, lit.Float)
		return shell
	case host.LitStr:
		shell := reserveExpr(c, &c.store.exprs.strLits, id)
		*shell = ast.NewStrLitExpr(data, lit.Str)
		return shell
	case host.LitChar:
		shell := reserveExpr(c, &c.store.exprs.charLits, id)
		*shell = ast.NewCharLitExpr(data, lit.Char)
		return shell
	case host.LitBool:
		shell := reserveExpr(c, &c.store.exprs.boolLits, id)
		*shell = ast.NewBoolLitExpr(data, lit.Bool)
		return shell
	}
	c.fail(fmt.Errorf("convert: unknown literal kind %d", lit.Kind))
	return nil
}

func (c *Converter) exprList(es []*host.Expr) []ast.Expr {
	if len(es) == 0 {
		return nil
	}
	out := make([]ast.Expr, len(es))
	for i, e := range es {
		out[i] = c.expr(e)
	}
	return out
}

// blockExpr converts a block under the id of the expression holding it. A
// `let ... else` block has no expression of its own and uses its block id.
func (c *Converter) blockExpr(b *host.Block, id ast.ExprId, span ast.SpanId) ast.Expr {
	if x, ok := c.exprs[id]; ok {
		return x
	}
	shell := reserveExpr(c, &c.store.exprs.blocks, id)

	var stmts []ast.Stmt
	if len(b.Stmts) > 0 {
		stmts = make([]ast.Stmt, 0, len(b.Stmts))
		for i := range b.Stmts {
			if s := c.stmt(&b.Stmts[i]); s != nil {
				stmts = append(stmts, s)
			}
		}
	}
	var result ast.Expr
	if b.Expr != nil {
		result = c.expr(b.Expr)
	}
	*shell = ast.NewBlockExpr(ast.NewCommonExprData(id, span), stmts, result, b.Unsafe)
	return shell
}

// stmt returns nil for statements declaring a skipped item.
func (c *Converter) stmt(s *host.Stmt) ast.Stmt {
	switch s.Kind {
	case host.StmtLocal:
		l := s.Local
		var ty ast.SynTy
		if l.Ty != nil {
			ty = c.ty(l.Ty)
		}
		var init, els ast.Expr
		if l.Init != nil {
			init = c.expr(l.Init)
		}
		if l.Els != nil {
			els = c.blockExpr(l.Els, c.exprID(l.Els.HirId), c.spanID(l.Els.Span))
		}
		let := ast.NewLetStmt(c.letStmtID(l.HirId), c.spanID(l.Span), c.pat(l.Pat), ty, init, els)
		return newNode(c.store, &c.store.bodies.letStmts, let)

	case host.StmtItem:
		it := c.itemByDefId(s.Item)
		if it == nil {
			return nil
		}
		return newNode(c.store, &c.store.bodies.itemStmts, ast.NewItemStmt(it))

	case host.StmtExpr, host.StmtSemi:
		return newNode(c.store, &c.store.bodies.exprStmts, ast.NewExprStmt(c.expr(s.Expr)))
	}

	c.fail(fmt.Errorf("convert: unknown statement kind %d", s.Kind))
	return nil
}

func unaryOp(op host.UnOp) ast.UnaryOpKind {
	switch op {
	case host.UnNot:
		return ast.UnaryNot
	case host.UnDeref:
		return ast.UnaryDeref
	}
	return ast.UnaryNeg
}

// binaryOp relies on both enums listing the operators in the same order.
func (c *Converter) binaryOp(op host.BinOp) ast.BinaryOpKind {
	if op < host.BinAdd || op > host.BinGt {
		c.fail(fmt.Errorf("convert: unknown binary operator %d", op))
	}
	return ast.BinaryOpKind(op)
}
