package convert

import (
	"fmt"

	"marker/internal/host"
	"marker/pkg/ast"
)

// generics converts parameters and predicates. Bounds written inline on a
// parameter are attached to that parameter; everything else becomes a where
// clause.
func (c *Converter) generics(g *host.Generics) ast.GenericParams {
	if g == nil {
		return ast.GenericParams{}
	}

	var (
		tyBounds       map[host.DefId][]ast.TyParamBound
		lifetimeBounds map[host.DefId][]ast.Lifetime
		clauses        []ast.WhereClause
	)
	for i := range g.Predicates {
		p := &g.Predicates[i]
		switch p.Kind {
		case host.PredicateBound:
			bounds := c.bounds(p.Bounds)
			if p.Origin == host.OriginGenericParam && p.HasBoundedParam && len(p.BoundGenericParams) == 0 {
				if tyBounds == nil {
					tyBounds = make(map[host.DefId][]ast.TyParamBound)
				}
				tyBounds[p.BoundedParam] = append(tyBounds[p.BoundedParam], bounds...)
				continue
			}
			var params *ast.GenericParams
			if gp := c.genericParams(p.BoundGenericParams, nil, nil); len(gp) > 0 {
				params = newNode(c.store, &c.store.generics.params, ast.NewGenericParams(gp, nil))
			}
			clause := newNode(c.store, &c.store.generics.tyClauses, ast.NewTyClause(params, c.ty(p.BoundedTy), bounds))
			clauses = append(clauses, clause)

		case host.PredicateRegion:
			lt, ok := c.lifetime(p.Lifetime)
			if !ok {
				c.skip("lifetime clause on an inferred lifetime", p.Span)
				continue
			}
			bounds := c.outlives(p.Bounds)
			if p.Origin == host.OriginGenericParam && p.Lifetime.Kind == host.LifetimeNameParam {
				if lifetimeBounds == nil {
					lifetimeBounds = make(map[host.DefId][]ast.Lifetime)
				}
				lifetimeBounds[p.Lifetime.Param] = append(lifetimeBounds[p.Lifetime.Param], bounds...)
				continue
			}
			clause := newNode(c.store, &c.store.generics.lifetimeClauses, ast.NewLifetimeClause(lt, bounds))
			clauses = append(clauses, clause)

		case host.PredicateEq:
			c.notYetImplemented("equality predicate", p.Span)
		}
	}

	return ast.NewGenericParams(c.genericParams(g.Params, tyBounds, lifetimeBounds), clauses)
}

// genericParams keeps only parameters the user wrote: plain names, explicit
// lifetimes and non-synthetic type params.
func (c *Converter) genericParams(
	params []host.GenericParam,
	tyBounds map[host.DefId][]ast.TyParamBound,
	lifetimeBounds map[host.DefId][]ast.Lifetime,
) []ast.GenericParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]ast.GenericParam, 0, len(params))
	for i := range params {
		p := &params[i]
		if p.Name.Kind != host.ParamNamePlain {
			c.skip("generic param without a plain name", p.Span)
			continue
		}
		switch p.Kind {
		case host.GenericParamLifetime:
			if p.LifetimeKind != host.LifetimeParamExplicit {
				c.skip("implicit lifetime param", p.Span)
				continue
			}
			lp := ast.NewLifetimeParam(c.genericID(p.DefId), c.symbolID(p.Name.Ident.Name), lifetimeBounds[p.DefId], c.spanID(p.Span))
			out = append(out, newNode(c.store, &c.store.generics.lifetimeParams, lp))
		case host.GenericParamType:
			if p.Synthetic {
				c.skip("synthetic type param", p.Span)
				continue
			}
			tp := ast.NewTyParam(c.spanID(p.Span), c.symbolID(p.Name.Ident.Name), c.genericID(p.DefId), tyBounds[p.DefId])
			out = append(out, newNode(c.store, &c.store.generics.tyParams, tp))
		default:
			c.skip("const param", p.Span)
		}
	}
	return out
}

func (c *Converter) bounds(bs []host.GenericBound) []ast.TyParamBound {
	if len(bs) == 0 {
		return nil
	}
	out := make([]ast.TyParamBound, 0, len(bs))
	for i := range bs {
		b := &bs[i]
		switch b.Kind {
		case host.GenericBoundTrait:
			tb := ast.NewTraitBound(b.Modifier != host.TraitBoundNone, c.traitRef(b.TraitRef), c.spanID(b.Span))
			out = append(out, newNode(c.store, &c.store.generics.traitBounds, tb))
		case host.GenericBoundLangItemTrait:
			c.notYetImplemented("lang item trait bound", b.Span)
		case host.GenericBoundOutlives:
			lt, ok := c.lifetime(b.Lifetime)
			if !ok {
				c.skip("inferred lifetime bound", b.Span)
				continue
			}
			out = append(out, newNode(c.store, &c.store.generics.lifetimes, lt))
		}
	}
	return out
}

// outlives converts the bounds of a lifetime, which can only be lifetimes.
func (c *Converter) outlives(bs []host.GenericBound) []ast.Lifetime {
	if len(bs) == 0 {
		return nil
	}
	out := make([]ast.Lifetime, 0, len(bs))
	for i := range bs {
		b := &bs[i]
		if b.Kind != host.GenericBoundOutlives {
			c.fail(fmt.Errorf("convert: lifetime bounded by a non-lifetime bound"))
		}
		lt, ok := c.lifetime(b.Lifetime)
		if !ok {
			c.skip("inferred lifetime bound", b.Span)
			continue
		}
		out = append(out, lt)
	}
	return out
}

// lifetime reports false for lifetimes the user did not name.
func (c *Converter) lifetime(l *host.Lifetime) (ast.Lifetime, bool) {
	switch l.Kind {
	case host.LifetimeNameParam:
		return ast.NewLifetime(ast.LifetimeNamed, c.symbolID(l.Ident.Name), c.genericID(l.Param), c.spanID(l.Ident.Span)), true
	case host.LifetimeNameStatic:
		return ast.NewLifetime(ast.LifetimeStatic, c.symbolID(l.Ident.Name), ast.GenericId{}, c.spanID(l.Ident.Span)), true
	}
	return ast.Lifetime{}, false
}
