package hostmem

import "marker/internal/host"

// The helpers below build the small subtrees most tests and embedders need.
// Node ids are allocated inside owner.

// Path builds a resolved path with one segment per name.
func (s *Session) Path(owner host.DefId, span host.Span, res host.Res, names ...string) *host.Path {
	segs := make([]host.PathSegment, len(names))
	for i, name := range names {
		segs[i] = host.PathSegment{Ident: s.Ident(name, span), HirId: s.NewHirId(owner)}
	}
	return &host.Path{Span: span, Res: res, Segments: segs}
}

// PathTy builds a type naming res.
func (s *Session) PathTy(owner host.DefId, span host.Span, res host.Res, names ...string) *host.Ty {
	return &host.Ty{
		HirId: s.NewHirId(owner),
		Span:  span,
		Kind:  host.TyPath,
		QPath: &host.QPath{Kind: host.QPathResolved, Path: s.Path(owner, span, res, names...), Span: span},
	}
}

// PrimTy builds a primitive type such as u32.
func (s *Session) PrimTy(owner host.DefId, span host.Span, name string) *host.Ty {
	return s.PathTy(owner, span, host.Res{Kind: host.ResPrimTy}, name)
}

// Binding builds the pattern `name`.
func (s *Session) Binding(owner host.DefId, span host.Span, name string) *host.Pat {
	return &host.Pat{HirId: s.NewHirId(owner), Span: span, Kind: host.PatBinding, Ident: s.Ident(name, span)}
}

// IntLit builds an integer literal expression.
func (s *Session) IntLit(owner host.DefId, span host.Span, v uint64) *host.Expr {
	return &host.Expr{
		HirId: s.NewHirId(owner),
		Span:  span,
		Kind:  host.ExprLit,
		Lit:   &host.Lit{Kind: host.LitInt, Span: span, Int: v},
	}
}

// LocalRef builds a path expression reading the binding introduced by pat.
func (s *Session) LocalRef(owner host.DefId, span host.Span, pat *host.Pat) *host.Expr {
	res := host.Res{Kind: host.ResLocal, Local: pat.HirId}
	path := s.Path(owner, span, res, s.SymbolStr(pat.Ident.Name))
	return &host.Expr{
		HirId: s.NewHirId(owner),
		Span:  span,
		Kind:  host.ExprPath,
		QPath: &host.QPath{Kind: host.QPathResolved, Path: path, Span: span},
	}
}

// BlockExpr wraps stmts and an optional tail expression into a block.
func (s *Session) BlockExpr(owner host.DefId, span host.Span, stmts []host.Stmt, tail *host.Expr) *host.Expr {
	return &host.Expr{
		HirId: s.NewHirId(owner),
		Span:  span,
		Kind:  host.ExprBlock,
		Block: &host.Block{HirId: s.NewHirId(owner), Span: span, Stmts: stmts, Expr: tail},
	}
}

// FnSpec describes a free function for AddFn.
type FnSpec struct {
	Name     string
	Span     host.Span
	Generics *host.Generics
	Header   host.FnHeader
	// Params and Inputs are parallel: pattern and type of each parameter.
	Params []*host.Pat
	Inputs []*host.Ty
	Output *host.Ty
	// Value builds the body expression; nil declares a function without a
	// body.
	Value func(owner host.DefId) *host.Expr
}

// FnOwner reserves the DefId of a function so its parameters and types can
// be allocated before AddFn.
func (s *Session) FnOwner() host.DefId { return s.NewDefId() }

// AddFn adds a function owned by def to module parent.
func (s *Session) AddFn(parent *host.Item, def host.DefId, spec FnSpec) *host.Item {
	fn := &host.Fn{
		Sig: host.FnSig{
			Header: spec.Header,
			Decl:   host.FnDecl{Inputs: spec.Inputs, Output: spec.Output},
			Span:   spec.Span,
		},
		Generics: spec.Generics,
	}
	if spec.Value != nil {
		body := &host.Body{Id: s.NewBodyId(def), Owner: def}
		for _, p := range spec.Params {
			body.Params = append(body.Params, host.Param{HirId: s.NewHirId(def), Pat: p, Span: p.Span})
		}
		body.Value = spec.Value(def)
		s.AddBody(body)
		fn.Body, fn.HasBody = body.Id, true
	}
	item := &host.Item{DefId: def, Ident: s.Ident(spec.Name, spec.Span), Span: spec.Span, Kind: host.ItemFn, Fn: fn}
	return s.AddItem(parent, item)
}
