package convert

import (
	"fmt"

	"marker/internal/host"
	"marker/pkg/ast"
)

func (c *Converter) qpath(q *host.QPath) ast.AstPath {
	switch q.Kind {
	case host.QPathResolved:
		if q.Self != nil {
			c.notYetImplemented("qualified path", q.Span)
		}
		return c.path(q.Path)
	case host.QPathTypeRelative:
		c.notYetImplemented("type-relative path", q.Span)
	case host.QPathLangItem:
		c.notYetImplemented("lang item path", q.Span)
	}
	c.fail(fmt.Errorf("convert: unknown qpath kind %d", q.Kind))
	return ast.AstPath{}
}

func (c *Converter) path(p *host.Path) ast.AstPath {
	segs := make([]ast.AstPathSegment, len(p.Segments))
	for i := range p.Segments {
		segs[i] = c.pathSegment(&p.Segments[i])
	}
	return ast.NewAstPath(segs)
}

func (c *Converter) pathSegment(seg *host.PathSegment) ast.AstPathSegment {
	return ast.NewAstPathSegment(c.symbolID(seg.Ident.Name), c.genericArgs(seg.Args))
}

func (c *Converter) genericArgs(args *host.GenericArgs) ast.GenericArgs {
	if args == nil || len(args.Args) == 0 {
		return ast.GenericArgs{}
	}
	out := make([]ast.GenericArg, 0, len(args.Args))
	for i := range args.Args {
		a := &args.Args[i]
		switch a.Kind {
		case host.GenericArgLifetime:
			lt, ok := c.lifetime(a.Lifetime)
			if !ok {
				c.skip("inferred lifetime argument", a.Span)
				continue
			}
			out = append(out, newNode(c.store, &c.store.generics.lifetimeArgs, ast.NewLifetimeArg(lt)))
		case host.GenericArgType:
			out = append(out, newNode(c.store, &c.store.generics.tyArgs, ast.NewTyArg(c.ty(a.Ty))))
		case host.GenericArgInfer:
			inferred := newNode(c.store, &c.store.tys.inferred, ast.NewInferredTy(ast.NewCommonSynTyData(c.spanID(a.Span))))
			out = append(out, newNode(c.store, &c.store.generics.tyArgs, ast.NewTyArg(inferred)))
		case host.GenericArgConst:
			c.notYetImplemented("const generic argument", a.Span)
		}
	}
	return ast.NewGenericArgs(out)
}

// traitRef converts a reference to a trait or trait alias. The generic
// arguments are those of the last path segment.
func (c *Converter) traitRef(r *host.TraitRef) ast.TraitRef {
	res := r.Path.Res
	if res.Kind != host.ResDef || (res.DefKind != host.DefTrait && res.DefKind != host.DefTraitAlias) {
		c.fail(fmt.Errorf("convert: trait reference does not resolve to a trait"))
	}
	var args ast.GenericArgs
	if n := len(r.Path.Segments); n > 0 {
		args = c.genericArgs(r.Path.Segments[n-1].Args)
	}
	return ast.NewTraitRef(c.itemID(res.DefId), args)
}
