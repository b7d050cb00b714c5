package convert

import (
	"fmt"
	"io"

	"marker/pkg/ast"
)

// Symbols resolves symbol ids for printing. *Converter implements it.
type Symbols interface {
	SymbolStr(ast.SymbolId) string
}

// Printer writes the portable AST as indented text. Output depends only on
// the tree, so two conversions of the same host crate print the same.
type Printer struct {
	w      io.Writer
	syms   Symbols
	indent int
	err    error
}

func NewPrinter(w io.Writer, syms Symbols) *Printer {
	return &Printer{w: w, syms: syms}
}

// Dump writes crate to w.
func Dump(w io.Writer, crate *ast.Crate, syms Symbols) error {
	p := NewPrinter(w, syms)
	p.PrintCrate(crate)
	return p.err
}

func (p *Printer) PrintCrate(crate *ast.Crate) {
	p.line("crate %d", crate.ID())
	p.indent++
	for _, it := range crate.Items() {
		p.PrintItem(it)
	}
	p.indent--
}

func (p *Printer) PrintItem(it ast.Item) {
	name := p.sym(it.Name())
	switch it := it.(type) {
	case *ast.ExternCrateItem:
		p.line("extern crate %s as %s %s", p.sym(it.CrateName()), name, it.ID())
	case *ast.UseItem:
		kind := "single"
		if it.UseKind() == ast.UseGlob {
			kind = "glob"
		}
		path := it.Path()
		p.line("use %s %s (%s) %s", p.path(&path), kind, name, it.ID())
	case *ast.StaticItem:
		mut := ""
		if it.IsMutable() {
			mut = "mut "
		}
		p.line("static %s%s: %s = %s %s", mut, name, p.ty(it.Ty()), it.Body(), it.ID())
	case *ast.ConstItem:
		body := "<none>"
		if b, ok := it.Body(); ok {
			body = b.String()
		}
		p.line("const %s: %s = %s %s", name, p.ty(it.Ty()), body, it.ID())
	case *ast.FnItem:
		p.printFn(name, it)
	case *ast.ModItem:
		p.line("mod %s %s", name, it.ID())
		p.indent++
		for _, child := range it.Items() {
			p.PrintItem(child)
		}
		p.indent--
	case *ast.TyAliasItem:
		aliased := "<none>"
		if it.AliasedTy() != nil {
			aliased = p.ty(it.AliasedTy())
		}
		p.line("type %s%s = %s %s", name, p.genericParams(it.Generics()), aliased, it.ID())
		p.printClauses(it.Generics())
	case *ast.ImplItem:
		head := "impl"
		if it.IsUnsafe() {
			head = "unsafe " + head
		}
		head += p.genericParams(it.Generics())
		if tr := it.TraitRef(); tr != nil {
			neg := ""
			if it.IsNegative() {
				neg = "!"
			}
			head += " " + neg + p.traitRef(tr) + " for"
		}
		p.line("%s %s %s", head, p.ty(it.SelfTy()), it.ID())
		p.printClauses(it.Generics())
		p.indent++
		for _, assoc := range it.Items() {
			p.PrintItem(assoc)
		}
		p.indent--
	default:
		p.line("<unknown item %T>", it)
	}
}

func (p *Printer) printFn(name string, fn *ast.FnItem) {
	cd := fn.Callable()
	head := ""
	if cd.IsConst() {
		head += "const "
	}
	if cd.IsAsync() {
		head += "async "
	}
	if cd.IsUnsafe() {
		head += "unsafe "
	}
	if cd.IsExtern() || cd.Abi() != ast.AbiDefault {
		head += fmt.Sprintf("extern %q ", cd.Abi())
	}
	params := ""
	if cd.HasSelf() {
		params = "self"
	}
	for i, param := range cd.Params() {
		if i > 0 || cd.HasSelf() {
			params += ", "
		}
		params += p.pat(param.Pat()) + ": " + p.ty(param.Ty())
	}
	ret := ""
	if cd.ReturnTy() != nil {
		ret = " -> " + p.ty(cd.ReturnTy())
	}
	body := ""
	if b, ok := fn.Body(); ok {
		body = " " + b.String()
	}
	p.line("%sfn %s%s(%s)%s%s %s", head, name, p.genericParams(fn.Generics()), params, ret, body, fn.ID())
	p.printClauses(fn.Generics())
}

// PrintBody writes a converted body.
func (p *Printer) PrintBody(b *ast.Body) {
	params := ""
	for i, param := range b.Params() {
		if i > 0 {
			params += ", "
		}
		params += p.pat(param.Pat()) + ": " + p.ty(param.Ty())
	}
	p.line("body %s of %s (%s)", b.ID(), b.Owner(), params)
	p.indent++
	p.printExpr(b.Expr())
	p.indent--
}

func (p *Printer) printExpr(e ast.Expr) {
	if e == nil {
		p.line("<nil>")
		return
	}
	switch e := e.(type) {
	case *ast.IntLitExpr:
		p.line("int %d", e.Value())
	case *ast.FloatLitExpr:
		p.line("float %g", e.Value())
	case *ast.StrLitExpr:
		p.line("str %q", e.Value())
	case *ast.CharLitExpr:
		p.line("char %q", e.Value())
	case *ast.BoolLitExpr:
		p.line("bool %t", e.Value())
	case *ast.PathExpr:
		if v, ok := e.Local(); ok {
			p.line("path %s local %s", p.path(e.Path()), v)
		} else {
			p.line("path %s", p.path(e.Path()))
		}
	case *ast.CallExpr:
		p.line("call")
		p.nested(append([]ast.Expr{e.Operand()}, e.Args()...)...)
	case *ast.MethodExpr:
		p.line("method %s", p.segment(e.Method()))
		p.nested(append([]ast.Expr{e.Receiver()}, e.Args()...)...)
	case *ast.UnaryOpExpr:
		p.line("unary %d", e.Op())
		p.nested(e.Operand())
	case *ast.BinaryOpExpr:
		p.line("binary %d", e.Op())
		p.nested(e.Left(), e.Right())
	case *ast.RefExpr:
		if e.IsMut() {
			p.line("ref mut")
		} else {
			p.line("ref")
		}
		p.nested(e.Inner())
	case *ast.BlockExpr:
		if e.IsUnsafe() {
			p.line("unsafe block")
		} else {
			p.line("block")
		}
		p.indent++
		for _, s := range e.Stmts() {
			p.printStmt(s)
		}
		if e.Result() != nil {
			p.printExpr(e.Result())
		}
		p.indent--
	case *ast.ReturnExpr:
		p.line("return")
		if e.Value() != nil {
			p.nested(e.Value())
		}
	case *ast.AssignExpr:
		p.line("assign")
		p.nested(e.Target(), e.Value())
	case *ast.FieldExpr:
		p.line("field %s", p.sym(e.Field()))
		p.nested(e.Operand())
	default:
		p.line("<unknown expr %T>", e)
	}
}

func (p *Printer) nested(es ...ast.Expr) {
	p.indent++
	for _, e := range es {
		p.printExpr(e)
	}
	p.indent--
}

func (p *Printer) printStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.LetStmt:
		ty := ""
		if s.Ty() != nil {
			ty = ": " + p.ty(s.Ty())
		}
		p.line("let %s%s", p.pat(s.Pat()), ty)
		p.indent++
		if s.Init() != nil {
			p.printExpr(s.Init())
		}
		if s.Els() != nil {
			p.line("else")
			p.nested(s.Els())
		}
		p.indent--
	case *ast.ItemStmt:
		p.PrintItem(s.Item())
	case *ast.ExprStmt:
		p.printExpr(s.Expr())
	}
}

func (p *Printer) genericParams(g *ast.GenericParams) string {
	if len(g.Params()) == 0 {
		return ""
	}
	out := "<"
	for i, param := range g.Params() {
		if i > 0 {
			out += ", "
		}
		switch param := param.(type) {
		case *ast.LifetimeParam:
			out += "'" + p.sym(param.Name())
			for j, b := range param.Bounds() {
				if j == 0 {
					out += ": "
				} else {
					out += " + "
				}
				out += p.lifetime(&b)
			}
		case *ast.TyParam:
			out += p.sym(param.Name()) + p.bounds(param.Bounds())
		}
	}
	return out + ">"
}

func (p *Printer) printClauses(g *ast.GenericParams) {
	for _, clause := range g.Clauses() {
		switch clause := clause.(type) {
		case *ast.TyClause:
			forParams := ""
			if clause.Params() != nil {
				forParams = "for" + p.genericParams(clause.Params()) + " "
			}
			p.line("  where %s%s%s", forParams, p.ty(clause.Ty()), p.bounds(clause.Bounds()))
		case *ast.LifetimeClause:
			out := p.lifetime(clause.Lifetime())
			for i, b := range clause.Bounds() {
				if i == 0 {
					out += ": "
				} else {
					out += " + "
				}
				out += p.lifetime(&b)
			}
			p.line("  where %s", out)
		}
	}
}

func (p *Printer) bounds(bs []ast.TyParamBound) string {
	out := ""
	for i, b := range bs {
		if i == 0 {
			out += ": "
		} else {
			out += " + "
		}
		switch b := b.(type) {
		case *ast.TraitBound:
			if b.IsRelaxed() {
				out += "?"
			}
			out += p.traitRef(b.TraitRef())
		case *ast.Lifetime:
			out += p.lifetime(b)
		}
	}
	return out
}

func (p *Printer) lifetime(l *ast.Lifetime) string {
	return "'" + p.sym(l.Name())
}

func (p *Printer) traitRef(r *ast.TraitRef) string {
	return r.TraitID().String() + p.genericArgs(r.Generics())
}

func (p *Printer) path(path *ast.AstPath) string {
	out := ""
	for i := range path.Segments() {
		if i > 0 {
			out += "::"
		}
		out += p.segment(&path.Segments()[i])
	}
	return out
}

func (p *Printer) segment(s *ast.AstPathSegment) string {
	return p.sym(s.Ident()) + p.genericArgs(s.Generics())
}

func (p *Printer) genericArgs(args *ast.GenericArgs) string {
	if args.IsEmpty() {
		return ""
	}
	out := "<"
	for i, a := range args.Args() {
		if i > 0 {
			out += ", "
		}
		switch a := a.(type) {
		case *ast.LifetimeArg:
			out += p.lifetime(a.Lifetime())
		case *ast.TyArg:
			out += p.ty(a.Ty())
		}
	}
	return out + ">"
}

func (p *Printer) ty(t ast.SynTy) string {
	switch t := t.(type) {
	case nil:
		return "?"
	case *ast.PathTy:
		return p.path(t.Path())
	case *ast.RefTy:
		out := "&"
		if t.Lifetime() != nil {
			out += p.lifetime(t.Lifetime()) + " "
		}
		if t.IsMut() {
			out += "mut "
		}
		return out + p.ty(t.Inner())
	case *ast.RawPtrTy:
		if t.IsMut() {
			return "*mut " + p.ty(t.Inner())
		}
		return "*const " + p.ty(t.Inner())
	case *ast.SliceTy:
		return "[" + p.ty(t.Elem()) + "]"
	case *ast.ArrayTy:
		length := "_"
		if lit, ok := t.Len().(*ast.IntLitExpr); ok {
			length = fmt.Sprint(lit.Value())
		}
		return "[" + p.ty(t.Elem()) + "; " + length + "]"
	case *ast.TupleTy:
		out := "("
		for i, e := range t.Elems() {
			if i > 0 {
				out += ", "
			}
			out += p.ty(e)
		}
		return out + ")"
	case *ast.NeverTy:
		return "!"
	case *ast.InferredTy:
		return "_"
	}
	return fmt.Sprintf("<%T>", t)
}

func (p *Printer) pat(pt ast.Pat) string {
	switch pt := pt.(type) {
	case nil:
		return "_"
	case *ast.IdentPat:
		out := ""
		if pt.IsRef() {
			out += "ref "
		}
		if pt.IsMut() {
			out += "mut "
		}
		out += p.sym(pt.Name())
		if pt.Binding() != nil {
			out += " @ " + p.pat(pt.Binding())
		}
		return out
	case *ast.WildcardPat:
		return "_"
	case *ast.TuplePat:
		out := "("
		for i, e := range pt.Elems() {
			if i > 0 {
				out += ", "
			}
			out += p.pat(e)
		}
		return out + ")"
	}
	return fmt.Sprintf("<%T>", pt)
}

func (p *Printer) sym(id ast.SymbolId) string {
	if p.syms == nil {
		return fmt.Sprintf("#%d", id)
	}
	return p.syms.SymbolStr(id)
}

func (p *Printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	for range p.indent {
		if _, p.err = io.WriteString(p.w, "  "); p.err != nil {
			return
		}
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}
