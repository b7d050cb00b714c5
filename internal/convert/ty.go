package convert

import (
	"marker/internal/host"
	"marker/pkg/ast"
)

func (c *Converter) ty(t *host.Ty) ast.SynTy {
	data := ast.NewCommonSynTyData(c.spanID(t.Span))
	switch t.Kind {
	case host.TyPath:
		path := c.qpath(t.QPath)
		var def ast.TyDefId
		res := t.QPath.Path.Res
		hasDef := res.Kind == host.ResDef && res.DefKind.IsType()
		if hasDef {
			def = c.tyDefID(res.DefId)
		}
		return newNode(c.store, &c.store.tys.paths, ast.NewPathTy(data, path, def, hasDef))

	case host.TyRef:
		var lt *ast.Lifetime
		if t.Lifetime != nil {
			if l, ok := c.lifetime(t.Lifetime); ok {
				lt = newNode(c.store, &c.store.generics.lifetimes, l)
			}
		}
		return newNode(c.store, &c.store.tys.refs, ast.NewRefTy(data, lt, t.Mutable, c.ty(t.Inner)))

	case host.TyPtr:
		return newNode(c.store, &c.store.tys.rawPtrs, ast.NewRawPtrTy(data, t.Mutable, c.ty(t.Inner)))

	case host.TySlice:
		return newNode(c.store, &c.store.tys.slices, ast.NewSliceTy(data, c.ty(t.Inner)))

	case host.TyArray:
		elem := c.ty(t.Inner)
		length := c.body(t.Len).Expr()
		return newNode(c.store, &c.store.tys.arrays, ast.NewArrayTy(data, elem, length))

	case host.TyTup:
		var elems []ast.SynTy
		if len(t.Elems) > 0 {
			elems = make([]ast.SynTy, len(t.Elems))
			for i, e := range t.Elems {
				elems[i] = c.ty(e)
			}
		}
		return newNode(c.store, &c.store.tys.tuples, ast.NewTupleTy(data, elems))

	case host.TyNever:
		return newNode(c.store, &c.store.tys.nevers, ast.NewNeverTy(data))

	case host.TyInfer:
		return newNode(c.store, &c.store.tys.inferred, ast.NewInferredTy(data))
	}

	c.notYetImplemented(t.Kind.String()+" type", t.Span)
	return nil
}
