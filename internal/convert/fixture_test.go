package convert

import (
	"strings"
	"testing"

	"marker/internal/host"
	"marker/internal/host/hostmem"
)

const fixtureSrc = `extern crate core as std_core;
use std::fmt;
static mut COUNT: u32 = 0;
fn add(x: u32, (a, _): (u32, u32)) -> u32 {
    let z = x;
    z + a
}
mod inner {
    fn nested() {}
}
`

type fixture struct {
	s    *hostmem.Session
	file *host.SourceFile

	externCrate *host.Item
	use         *host.Item
	static      *host.Item
	add         *host.Item
	inner       *host.Item
	nested      *host.Item

	x, z *host.Pat
}

// at returns the span of the first occurrence of text in the fixture file.
func (fx *fixture) at(t *testing.T, text string) host.Span {
	t.Helper()
	i := strings.Index(fx.file.Src, text)
	if i < 0 {
		t.Fatalf("fixture source has no %q", text)
	}
	return fx.s.Span(fx.file, i, i+len(text))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := hostmem.New("demo")
	fx := &fixture{s: s, file: s.AddRealFile("src/lib.rs", fixtureSrc)}
	root := s.Root()

	fx.externCrate = s.AddItem(root, &host.Item{
		Ident:       s.Ident("std_core", fx.at(t, "std_core")),
		Span:        fx.at(t, "extern crate core as std_core;"),
		Kind:        host.ItemExternCrate,
		ExternCrate: &host.ExternCrate{Original: s.Sym("core"), HasOriginal: true},
	})

	useDef := s.NewDefId()
	fx.use = s.AddItem(root, &host.Item{
		DefId: useDef,
		Ident: s.Ident("fmt", fx.at(t, "fmt")),
		Span:  fx.at(t, "use std::fmt;"),
		Kind:  host.ItemUse,
		Use: &host.Use{
			Path: s.Path(useDef, fx.at(t, "std::fmt"), host.Res{Kind: host.ResDef, DefKind: host.DefMod, DefId: host.DefId{Krate: 1, Index: 7}}, "std", "fmt"),
			Kind: host.UseSingle,
		},
	})

	staticDef := s.NewDefId()
	staticBody := s.AddBody(&host.Body{
		Id:    s.NewBodyId(staticDef),
		Owner: staticDef,
		Value: s.IntLit(staticDef, fx.at(t, "0;"), 0),
	})
	fx.static = s.AddItem(root, &host.Item{
		DefId:  staticDef,
		Ident:  s.Ident("COUNT", fx.at(t, "COUNT")),
		Span:   fx.at(t, "static mut COUNT: u32 = 0;"),
		Kind:   host.ItemStatic,
		Static: &host.Static{Ty: s.PrimTy(staticDef, fx.at(t, "u32"), "u32"), Mutable: true, Body: staticBody.Id},
	})

	addDef := s.FnOwner()
	u32 := func() *host.Ty { return s.PrimTy(addDef, fx.at(t, "u32"), "u32") }
	fx.x = s.Binding(addDef, fx.at(t, "x:"), "x")
	a := s.Binding(addDef, fx.at(t, "a,"), "a")
	tuplePat := &host.Pat{
		HirId: s.NewHirId(addDef),
		Span:  fx.at(t, "(a, _)"),
		Kind:  host.PatTuple,
		Elems: []*host.Pat{a, {HirId: s.NewHirId(addDef), Span: fx.at(t, "_)"), Kind: host.PatWild}},
	}
	tupleTy := &host.Ty{HirId: s.NewHirId(addDef), Span: fx.at(t, "(u32, u32)"), Kind: host.TyTup, Elems: []*host.Ty{u32(), u32()}}
	fx.z = s.Binding(addDef, fx.at(t, "z ="), "z")
	fx.add = s.AddFn(root, addDef, hostmem.FnSpec{
		Name:   "add",
		Span:   fx.at(t, "fn add"),
		Params: []*host.Pat{fx.x, tuplePat},
		Inputs: []*host.Ty{u32(), tupleTy},
		Output: u32(),
		Value: func(owner host.DefId) *host.Expr {
			let := host.Stmt{
				HirId: s.NewHirId(owner),
				Span:  fx.at(t, "let z = x;"),
				Kind:  host.StmtLocal,
				Local: &host.Local{
					HirId: s.NewHirId(owner),
					Span:  fx.at(t, "let z = x;"),
					Pat:   fx.z,
					Init:  s.LocalRef(owner, fx.at(t, "x;"), fx.x),
				},
			}
			sum := &host.Expr{
				HirId: s.NewHirId(owner),
				Span:  fx.at(t, "z + a"),
				Kind:  host.ExprBinary,
				BinOp: host.BinAdd,
				Lhs:   s.LocalRef(owner, fx.at(t, "z + a"), fx.z),
				Rhs:   s.LocalRef(owner, fx.at(t, "a\n"), a),
			}
			return s.BlockExpr(owner, fx.at(t, "{\n    let"), []host.Stmt{let}, sum)
		},
	})

	fx.inner = s.AddItem(root, &host.Item{
		Ident: s.Ident("inner", fx.at(t, "inner")),
		Span:  fx.at(t, "mod inner"),
		Kind:  host.ItemMod,
	})
	fx.nested = s.AddFn(fx.inner, s.FnOwner(), hostmem.FnSpec{
		Name: "nested",
		Span: fx.at(t, "fn nested() {}"),
		Value: func(owner host.DefId) *host.Expr {
			return s.BlockExpr(owner, fx.at(t, "{}"), nil, nil)
		},
	})
	return fx
}

func (fx *fixture) converter(t *testing.T) (*Converter, *Storage) {
	t.Helper()
	store := NewStorage()
	c, err := New(fx.s, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, store
}
