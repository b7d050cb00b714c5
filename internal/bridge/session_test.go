package bridge

import (
	"errors"
	"strings"
	"testing"

	"marker/internal/convert"
	"marker/internal/diag"
	"marker/internal/host"
	"marker/internal/host/hostmem"
	"marker/pkg/ast"
	"marker/pkg/lint"
)

const src = "fn one() -> u32 { 1 }\nfn spin() { loop {} }\n"

type setup struct {
	sess      *Session
	bag       *diag.Bag
	one, spin ast.ItemId
}

func newSetup(t *testing.T, levels LevelFunc) *setup {
	t.Helper()
	s := hostmem.New("demo")
	f := s.AddRealFile("src/lib.rs", src)
	at := func(text string) host.Span {
		i := strings.Index(src, text)
		if i < 0 {
			t.Fatalf("no %q in source", text)
		}
		return s.Span(f, i, i+len(text))
	}

	s.AddFn(s.Root(), s.FnOwner(), hostmem.FnSpec{
		Name:   "one",
		Span:   at("fn one"),
		Output: s.PrimTy(host.DefId{}, at("u32"), "u32"),
		Value: func(owner host.DefId) *host.Expr {
			return s.BlockExpr(owner, at("{ 1 }"), nil, s.IntLit(owner, at("1"), 1))
		},
	})
	s.AddFn(s.Root(), s.FnOwner(), hostmem.FnSpec{
		Name: "spin",
		Span: at("fn spin"),
		Value: func(owner host.DefId) *host.Expr {
			return &host.Expr{HirId: s.NewHirId(owner), Span: at("loop {}"), Kind: host.ExprLoop}
		},
	})

	conv, err := convert.New(s, convert.NewStorage())
	if err != nil {
		t.Fatal(err)
	}
	crate, err := conv.ConvertCrate()
	if err != nil {
		t.Fatal(err)
	}
	items := crate.Items()
	bag := diag.NewBag(16)
	sess := New(conv, &diag.BagReporter{Bag: bag}, WithLevels(levels))
	return &setup{
		sess: sess,
		bag:  bag,
		one:  items[0].ID(),
		spin: items[1].ID(),
	}
}

func TestEmitLintLevels(t *testing.T) {
	loud := &lint.Lint{Name: "loud", DefaultLevel: lint.Warn}
	quiet := &lint.Lint{Name: "quiet", DefaultLevel: lint.Allow}
	raised := &lint.Lint{Name: "raised", DefaultLevel: lint.Warn}
	locked := &lint.Lint{Name: "locked", DefaultLevel: lint.Forbid}
	levels := func(name string) (lint.Level, bool) {
		switch name {
		case "raised":
			return lint.Deny, true
		case "locked":
			return lint.Allow, true
		}
		return 0, false
	}
	st := newSetup(t, levels)
	cx := st.sess.Context()

	span := cx.ItemSpan(st.one)
	if span == nil {
		t.Fatal("item span is nil")
	}
	for _, l := range []*lint.Lint{loud, quiet, raised, locked} {
		cx.EmitLint(l, "msg "+l.Name, *span)
	}

	items := st.bag.Items()
	if len(items) != 3 {
		t.Fatalf("got %d diagnostics, want 3: %+v", len(items), items)
	}
	want := []struct {
		lint string
		sev  diag.Severity
	}{{"loud", diag.SevWarning}, {"raised", diag.SevError}, {"locked", diag.SevError}}
	for i, w := range want {
		d := items[i]
		if d.Lint != w.lint || d.Severity != w.sev || d.Code != diag.LintEmitted {
			t.Errorf("diagnostic %d = %s %s %s", i, d.Lint, d.Severity, d.Code.ID())
		}
	}

	fs := st.sess.FileSet()
	got, ok := fs.Snippet(items[0].Primary)
	if !ok || got != "fn one" {
		t.Errorf("reported span covers %q, %v", got, ok)
	}
	if out := diag.FormatShort(items[:1], fs); out != "src/lib.rs:1:1: warning[loud]: msg loud\n" {
		t.Errorf("FormatShort = %q", out)
	}
}

func TestSpanSnippetAndSymbols(t *testing.T) {
	st := newSetup(t, nil)
	cx := st.sess.Context()

	span := cx.ItemSpan(st.spin)
	if snip, ok := cx.SpanSnippet(*span); !ok || snip != "fn spin" {
		t.Errorf("SpanSnippet = %q, %v", snip, ok)
	}
	outside := ast.NewSpan(span.Source(), 0, uint32(len(src)+10))
	if _, ok := cx.SpanSnippet(outside); ok {
		t.Error("snippet past the end of the file")
	}
	if _, ok := cx.SpanSnippet(ast.NewSpan(nil, 0, 1)); ok {
		t.Error("snippet for a span without source")
	}

	it, err := st.sess.Converter().Item(st.one)
	if err != nil {
		t.Fatal(err)
	}
	if name := cx.SymbolStr(it.Name()); name != "one" {
		t.Errorf("SymbolStr = %q", name)
	}
	if cx.ItemSpan(st.one) != cx.ItemSpan(st.one) {
		t.Error("spans are not cached")
	}
}

func TestBodyErrorsSurfaceFromRun(t *testing.T) {
	st := newSetup(t, nil)
	cx := st.sess.Context()

	one, err := st.sess.Converter().Item(st.one)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := one.(*ast.FnItem).Body()
	var body *ast.Body
	if err := st.sess.Run(func() { body = cx.Body(id) }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if body == nil || body.ID() != id {
		t.Fatalf("Body = %v", body)
	}

	spin, err := st.sess.Converter().Item(st.spin)
	if err != nil {
		t.Fatal(err)
	}
	id, _ = spin.(*ast.FnItem).Body()
	err = st.sess.Run(func() { cx.Body(id) })
	var ce *CallbackError
	if !errors.As(err, &ce) || ce.Op != "GetBody" || !errors.Is(err, convert.ErrNotYetImplemented) {
		t.Errorf("Run = %v, want not yet implemented from GetBody", err)
	}
}

func TestFailedSessionStaysFailed(t *testing.T) {
	st := newSetup(t, nil)
	cx := st.sess.Context()
	spin, err := st.sess.Converter().Item(st.spin)
	if err != nil {
		t.Fatal(err)
	}
	id, _ := spin.(*ast.FnItem).Body()

	// the pass swallows the callback panic itself
	err = st.sess.Run(func() {
		defer func() { _ = recover() }()
		cx.Body(id)
	})
	var ce *CallbackError
	if !errors.As(err, &ce) || !errors.Is(err, convert.ErrNotYetImplemented) {
		t.Fatalf("Run = %v, want the swallowed callback error", err)
	}
	if st.sess.Err() != ce {
		t.Errorf("Err() = %v, want %v", st.sess.Err(), ce)
	}

	called := false
	if again := st.sess.Run(func() { called = true }); again != ce {
		t.Errorf("second Run = %v, want %v", again, ce)
	}
	if called {
		t.Error("Run called fn on a failed session")
	}

	defer func() {
		if r := recover(); r != ce {
			t.Errorf("recovered %v, want %v", r, ce)
		}
	}()
	cx.ItemSpan(st.one)
}

func TestClosedSessionPanics(t *testing.T) {
	st := newSetup(t, nil)
	cx := st.sess.Context()
	st.sess.Close()
	if !st.sess.Closed() {
		t.Fatal("Closed() = false")
	}

	defer func() {
		if r := recover(); r != ErrSessionClosed {
			t.Errorf("recovered %v, want ErrSessionClosed", r)
		}
	}()
	cx.ItemSpan(st.one)
}

func TestContextIdentity(t *testing.T) {
	a := newSetup(t, nil).sess
	b := newSetup(t, nil).sess
	if !a.Context().Same(a.Context()) || a.Context().Same(b.Context()) {
		t.Error("context identity is not per session")
	}
	if a.Callbacks().DriverContext == b.Callbacks().DriverContext {
		t.Error("sessions share a driver context")
	}
}
