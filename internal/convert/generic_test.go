package convert

import (
	"testing"

	"marker/internal/host"
	"marker/internal/host/hostmem"
	"marker/pkg/ast"
)

// genericsFixture builds
//
//	fn g<'a, 'b: 'a, '_, T: Clone, impl Sized, const N: usize>()
//	where T: Copy + '_, 'a: 'static, for<'c> &'c T: Clone
func genericsFixture() (*hostmem.Session, *host.Item) {
	s := hostmem.New("demo")
	f := s.AddRealFile("src/lib.rs", "fn g<'a, 'b: 'a, T: Clone>() where T: Copy {}")
	sp := s.Span(f, 0, 2)
	def := s.FnOwner()

	param := func(name string, kind host.GenericParamKind) host.GenericParam {
		return host.GenericParam{
			HirId:        s.NewHirId(def),
			DefId:        s.NewDefId(),
			Name:         host.ParamName{Kind: host.ParamNamePlain, Ident: s.Ident(name, sp)},
			Span:         sp,
			Kind:         kind,
			LifetimeKind: host.LifetimeParamExplicit,
		}
	}
	a := param("a", host.GenericParamLifetime)
	b := param("b", host.GenericParamLifetime)
	elided := param("_", host.GenericParamLifetime)
	elided.Name.Kind = host.ParamNameFresh
	ty := param("T", host.GenericParamType)
	synthetic := param("impl Sized", host.GenericParamType)
	synthetic.Synthetic = true
	n := param("N", host.GenericParamConst)
	c := param("c", host.GenericParamLifetime)

	lifetime := func(p host.GenericParam) *host.Lifetime {
		return &host.Lifetime{HirId: s.NewHirId(def), Ident: p.Name.Ident, Kind: host.LifetimeNameParam, Param: p.DefId}
	}
	static := &host.Lifetime{HirId: s.NewHirId(def), Ident: s.Ident("static", sp), Kind: host.LifetimeNameStatic}
	inferred := &host.Lifetime{HirId: s.NewHirId(def), Ident: s.Ident("_", sp), Kind: host.LifetimeNameInfer}
	trait := func(name string, index host.DefIndex) host.GenericBound {
		res := host.Res{Kind: host.ResDef, DefKind: host.DefTrait, DefId: host.DefId{Krate: 1, Index: index}}
		return host.GenericBound{Kind: host.GenericBoundTrait, Span: sp, TraitRef: &host.TraitRef{Path: s.Path(def, sp, res, name)}}
	}
	tyRes := host.Res{Kind: host.ResDef, DefKind: host.DefTyParam, DefId: ty.DefId}

	generics := &host.Generics{
		Params: []host.GenericParam{a, b, elided, ty, synthetic, n},
		Predicates: []host.WherePredicate{
			{
				Kind: host.PredicateRegion, Span: sp, Origin: host.OriginGenericParam,
				Lifetime: lifetime(b),
				Bounds:   []host.GenericBound{{Kind: host.GenericBoundOutlives, Span: sp, Lifetime: lifetime(a)}},
			},
			{
				Kind: host.PredicateBound, Span: sp, Origin: host.OriginGenericParam,
				BoundedTy: s.PathTy(def, sp, tyRes, "T"), BoundedParam: ty.DefId, HasBoundedParam: true,
				Bounds: []host.GenericBound{trait("Clone", 10)},
			},
			{
				Kind: host.PredicateBound, Span: sp, Origin: host.OriginWhereClause,
				BoundedTy: s.PathTy(def, sp, tyRes, "T"), BoundedParam: ty.DefId, HasBoundedParam: true,
				Bounds: []host.GenericBound{
					trait("Copy", 11),
					{Kind: host.GenericBoundOutlives, Span: sp, Lifetime: inferred},
				},
			},
			{
				Kind: host.PredicateRegion, Span: sp, Origin: host.OriginWhereClause,
				Lifetime: lifetime(a),
				Bounds:   []host.GenericBound{{Kind: host.GenericBoundOutlives, Span: sp, Lifetime: static}},
			},
			{
				Kind: host.PredicateBound, Span: sp, Origin: host.OriginWhereClause,
				BoundGenericParams: []host.GenericParam{c},
				BoundedTy: &host.Ty{
					HirId: s.NewHirId(def), Span: sp, Kind: host.TyRef,
					Lifetime: lifetime(c), Inner: s.PathTy(def, sp, tyRes, "T"),
				},
				Bounds: []host.GenericBound{trait("Clone", 10)},
			},
		},
		Span: sp,
	}
	fn := s.AddFn(s.Root(), def, hostmem.FnSpec{Name: "g", Span: sp, Generics: generics})
	return s, fn
}

func TestGenericsBoundsAndClauses(t *testing.T) {
	s, fn := genericsFixture()
	c, err := New(s, NewStorage())
	if err != nil {
		t.Fatal(err)
	}
	it, err := c.Item(c.itemID(fn.DefId))
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	g := it.(*ast.FnItem).Generics()

	params := g.Params()
	if len(params) != 3 {
		t.Fatalf("got %d generic params, want 3 ('a, 'b, T)", len(params))
	}
	a := params[0].(*ast.LifetimeParam)
	b := params[1].(*ast.LifetimeParam)
	ty := params[2].(*ast.TyParam)
	if c.SymbolStr(a.Name()) != "a" || c.SymbolStr(b.Name()) != "b" || c.SymbolStr(ty.Name()) != "T" {
		t.Errorf("param names = %s, %s, %s", c.SymbolStr(a.Name()), c.SymbolStr(b.Name()), c.SymbolStr(ty.Name()))
	}
	if len(a.Bounds()) != 0 {
		t.Errorf("'a has bounds %v", a.Bounds())
	}
	if len(b.Bounds()) != 1 || b.Bounds()[0].LifetimeKind() != ast.LifetimeNamed {
		t.Errorf("'b bounds = %v, want ['a]", b.Bounds())
	} else if id, _ := b.Bounds()[0].Param(); id != a.ID() {
		t.Errorf("'b is bounded by %v, want %v", id, a.ID())
	}
	if len(ty.Bounds()) != 1 || ty.Bounds()[0].BoundKind() != ast.BoundTrait {
		t.Errorf("T bounds = %v, want [Clone]", ty.Bounds())
	}

	clauses := g.Clauses()
	if len(clauses) != 3 {
		t.Fatalf("got %d clauses, want 3", len(clauses))
	}
	copyClause := clauses[0].(*ast.TyClause)
	if copyClause.Params() != nil {
		t.Error("clause without for<> has params")
	}
	if len(copyClause.Bounds()) != 1 {
		t.Errorf("T: Copy clause has %d bounds, want 1 (inferred lifetime dropped)", len(copyClause.Bounds()))
	}
	outlives := clauses[1].(*ast.LifetimeClause)
	if len(outlives.Bounds()) != 1 || outlives.Bounds()[0].LifetimeKind() != ast.LifetimeStatic {
		t.Errorf("'a clause bounds = %v, want ['static]", outlives.Bounds())
	}
	hrtb := clauses[2].(*ast.TyClause)
	if hrtb.Params() == nil || len(hrtb.Params().Params()) != 1 {
		t.Errorf("for<'c> clause params = %v", hrtb.Params())
	}
	if hrtb.Ty().Kind() != ast.TyRef || hrtb.Ty().(*ast.RefTy).Lifetime() == nil {
		t.Errorf("for<'c> clause type = %#v", hrtb.Ty())
	}

	// '_, impl Sized, const N and the inferred bound
	if c.Skipped() != 4 {
		t.Errorf("Skipped() = %d, want 4", c.Skipped())
	}
}

func TestTraitRefMustNameATrait(t *testing.T) {
	s := hostmem.New("demo")
	f := s.AddRealFile("src/lib.rs", "impl Foo for Bar {}")
	sp := s.Span(f, 0, 4)
	def := s.NewDefId()
	notTrait := host.Res{Kind: host.ResDef, DefKind: host.DefStruct, DefId: host.DefId{Krate: 1, Index: 3}}
	s.AddItem(s.Root(), &host.Item{
		DefId: def,
		Span:  sp,
		Kind:  host.ItemImpl,
		Impl: &host.Impl{
			OfTrait: &host.TraitRef{Path: s.Path(def, sp, notTrait, "Foo")},
			SelfTy:  s.PathTy(def, sp, host.Res{Kind: host.ResDef, DefKind: host.DefStruct, DefId: host.DefId{Krate: 1, Index: 4}}, "Bar"),
		},
	})

	c, err := New(s, NewStorage())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.ConvertCrate(); err == nil {
		t.Fatal("impl of a struct converted without error")
	}
}

func TestImplItems(t *testing.T) {
	s := hostmem.New("demo")
	f := s.AddRealFile("src/lib.rs", "impl Display for Bar { type Out = u8; const K: u8 = 1; fn show(&self) {} }")
	sp := s.Span(f, 0, 4)
	def := s.NewDefId()
	display := host.Res{Kind: host.ResDef, DefKind: host.DefTrait, DefId: host.DefId{Krate: 1, Index: 20}}
	bar := host.Res{Kind: host.ResDef, DefKind: host.DefStruct, DefId: host.DefId{Krate: 0, Index: 40}}
	impl := s.AddItem(s.Root(), &host.Item{
		DefId: def,
		Span:  sp,
		Kind:  host.ItemImpl,
		Impl: &host.Impl{
			OfTrait: &host.TraitRef{Path: s.Path(def, sp, display, "fmt", "Display")},
			SelfTy:  s.PathTy(def, sp, bar, "Bar"),
		},
	})
	out := s.NewDefId()
	s.AddImplItem(impl, &host.ImplItem{DefId: out, Ident: s.Ident("Out", sp), Span: sp, Kind: host.ImplItemType, TyAlias: &host.TyAlias{Ty: s.PrimTy(out, sp, "u8")}})
	k := s.NewDefId()
	kBody := s.AddBody(&host.Body{Id: s.NewBodyId(k), Owner: k, Value: s.IntLit(k, sp, 1)})
	s.AddImplItem(impl, &host.ImplItem{DefId: k, Ident: s.Ident("K", sp), Span: sp, Kind: host.ImplItemConst, Const: &host.Const{Ty: s.PrimTy(k, sp, "u8"), Body: kBody.Id, HasBody: true}})
	show := s.NewDefId()
	s.AddImplItem(impl, &host.ImplItem{DefId: show, Ident: s.Ident("show", sp), Span: sp, Kind: host.ImplItemFn, Fn: &host.Fn{Sig: host.FnSig{Decl: host.FnDecl{ImplicitSelf: true}, Header: host.FnHeader{Abi: host.AbiC}}}})

	c, err := New(s, NewStorage())
	if err != nil {
		t.Fatal(err)
	}
	crate, err := c.ConvertCrate()
	if err != nil {
		t.Fatalf("ConvertCrate: %v", err)
	}
	ii := crate.Items()[0].(*ast.ImplItem)
	if ii.TraitRef() == nil || ii.TraitRef().TraitID() != ast.NewItemId(1, 20) {
		t.Errorf("trait ref = %v", ii.TraitRef())
	}
	if ii.IsNegative() {
		t.Error("positive impl reported as negative")
	}
	if def, ok := ii.SelfTy().(*ast.PathTy).Def(); !ok || def != ast.NewTyDefId(0, 40) {
		t.Errorf("self type def = %v, %v", def, ok)
	}

	kinds := []ast.ItemKind{ast.ItemTyAlias, ast.ItemConst, ast.ItemFn}
	if len(ii.Items()) != len(kinds) {
		t.Fatalf("impl has %d items, want %d", len(ii.Items()), len(kinds))
	}
	for i, want := range kinds {
		if got := ii.Items()[i].Kind(); got != want {
			t.Errorf("impl item %d is %s, want %s", i, got, want)
		}
	}
	showFn := ii.Items()[2].(*ast.FnItem)
	if !showFn.Callable().HasSelf() || showFn.Callable().Abi() != ast.AbiC {
		t.Errorf("show callable = %+v", showFn.Callable())
	}

	// associated items are addressable by id like any other item
	got, err := c.Item(c.itemID(k))
	if err != nil || got != ii.Items()[1] {
		t.Errorf("Item(K) = %v, %v", got, err)
	}
}
