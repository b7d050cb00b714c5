package convert

import (
	"errors"
	"strings"
	"testing"

	"marker/internal/host"
	"marker/internal/host/hostmem"
	"marker/pkg/ast"
)

func TestResolveSpanRelativeOffsets(t *testing.T) {
	fx := newFixture(t)
	c, _ := fx.converter(t)

	sp, err := c.ResolveSpan(ast.SpanOwnerOfItem(c.itemID(fx.add.DefId)))
	if err != nil {
		t.Fatalf("ResolveSpan: %v", err)
	}
	start := strings.Index(fixtureSrc, "fn add")
	if int(sp.Start()) != start || int(sp.End()) != start+len("fn add") {
		t.Errorf("span = %d..%d, want %d..%d", sp.Start(), sp.End(), start, start+len("fn add"))
	}
	if path, ok := sp.Source().File(); !ok || path != "src/lib.rs" {
		t.Errorf("source = %q, %v", path, ok)
	}

	other, err := c.ResolveSpan(ast.SpanOwnerOfSpan(c.spanID(fx.static.Span)))
	if err != nil {
		t.Fatalf("ResolveSpan: %v", err)
	}
	if other.Source() != sp.Source() {
		t.Error("spans of one file do not share their source")
	}
	if f, ok := c.SourceFile(sp.Source()); !ok || f != fx.file {
		t.Errorf("SourceFile = %v, %v", f, ok)
	}

	dummy, err := c.ResolveSpan(ast.SpanOwnerOfSpan(c.spanID(host.DummySpan)))
	if err != nil || dummy != nil {
		t.Errorf("dummy span = %v, %v; want nil", dummy, err)
	}
}

func TestSpanSourcePerFile(t *testing.T) {
	s := hostmem.New("demo")
	a := s.AddRealFile("src/lib.rs", "mod b;")
	b := s.AddRealFile("src/b.rs", "fn f() {}")
	gen := s.AddFile(host.FileName{Kind: host.FileNameMacroExpansion, Path: "<macro>"}, "fn g() {}")

	c, err := New(s, NewStorage())
	if err != nil {
		t.Fatal(err)
	}
	resolve := func(sp host.Span) (*ast.Span, error) {
		return c.ResolveSpan(ast.SpanOwnerOfSpan(c.spanID(sp)))
	}

	sa, err := resolve(s.Span(a, 0, 3))
	if err != nil {
		t.Fatal(err)
	}
	sb, err := resolve(s.Span(b, 3, 4))
	if err != nil {
		t.Fatal(err)
	}
	if sa.Source() == sb.Source() {
		t.Error("different files share a span source")
	}
	if sb.Start() != 3 || sb.End() != 4 {
		t.Errorf("span in second file = %d..%d, want 3..4", sb.Start(), sb.End())
	}

	_, err = resolve(s.Span(gen, 0, 2))
	if !errors.Is(err, ErrNotYetImplemented) {
		t.Errorf("macro expansion span err = %v, want not yet implemented", err)
	}

	if _, err := resolve(s.Span(a, 0, 3)); !errors.Is(err, ErrNotYetImplemented) {
		t.Errorf("span after an aborted request err = %v, want the abort error", err)
	}

	if c, err = New(s, NewStorage()); err != nil {
		t.Fatal(err)
	}
	_, err = resolve(host.Span{Lo: a.StartPos + 2, Hi: b.StartPos + 1})
	if err == nil || errors.Is(err, ErrNotYetImplemented) {
		t.Errorf("span across files err = %v", err)
	}
}
