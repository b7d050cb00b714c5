package convert

import (
	"marker/internal/host"
	"marker/pkg/ast"
)

// pat converts a pattern. Patterns are cached by HirId so a parameter shares
// its node between the fn signature and the body.
func (c *Converter) pat(p *host.Pat) ast.Pat {
	if cached, ok := c.pats[p.HirId]; ok {
		return cached
	}

	var out ast.Pat
	span := c.spanID(p.Span)
	switch p.Kind {
	case host.PatBinding:
		var sub ast.Pat
		if p.Sub != nil {
			sub = c.pat(p.Sub)
		}
		ident := ast.NewIdentPat(span, c.symbolID(p.Ident.Name), c.varID(p.HirId), p.Binding.Mutable, p.Binding.ByRef, sub)
		out = newNode(c.store, &c.store.bodies.identPats, ident)
	case host.PatWild:
		out = newNode(c.store, &c.store.bodies.wildPats, ast.NewWildcardPat(span))
	case host.PatTuple:
		var elems []ast.Pat
		if len(p.Elems) > 0 {
			elems = make([]ast.Pat, len(p.Elems))
			for i, e := range p.Elems {
				elems[i] = c.pat(e)
			}
		}
		out = newNode(c.store, &c.store.bodies.tuplePats, ast.NewTuplePat(span, elems))
	default:
		c.notYetImplemented(p.Kind.String()+" pattern", p.Span)
	}

	c.pats[p.HirId] = out
	return out
}
