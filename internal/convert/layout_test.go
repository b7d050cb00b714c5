package convert

import (
	"errors"
	"testing"

	"marker/internal/host"
	"marker/pkg/ast"
)

func TestHostLayoutsMatch(t *testing.T) {
	if err := CheckLayouts(); err != nil {
		t.Fatalf("CheckLayouts: %v", err)
	}
}

func TestCheckLayout(t *testing.T) {
	tests := []struct {
		name string
		pair layoutPair
		ok   bool
	}{
		{"def id", pairOf[host.DefId, ast.ItemId](), true},
		{"span", pairOf[host.Span, ast.SpanId](), true},
		{"size", pairOf[host.BodyId, ast.CrateId](), false},
		{"struct vs scalar", pairOf[uint64, ast.ItemId](), false},
		{"field count", pairOf[struct{ A, B, C, D uint16 }, struct {
			A, B uint16
			C    uint32
		}](), false},
		{"field offset", pairOf[struct {
			A uint32
			B uint16
			C uint16
		}, struct {
			A uint16
			B uint16
			C uint32
		}](), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkLayout(tt.pair)
			if tt.ok {
				if err != nil {
					t.Errorf("unexpected mismatch: %v", err)
				}
				return
			}
			var lm *LayoutMismatchError
			if !errors.As(err, &lm) {
				t.Fatalf("err = %v, want *LayoutMismatchError", err)
			}
			if lm.Host == "" || lm.Portable == "" || lm.Detail == "" {
				t.Errorf("incomplete error %+v", lm)
			}
		})
	}
}

func TestLayoutMismatchStopsBeforeAnyNode(t *testing.T) {
	pairs := idLayouts
	pairs[layoutItemId] = pairOf[host.BodyId, ast.CrateId]()
	table, err := verifyLayouts(&pairs)
	if err == nil {
		t.Fatal("verifyLayouts accepted a mismatching pair")
	}
	for k, e := range table {
		if (e != nil) != (layoutKind(k) == layoutItemId) {
			t.Errorf("layout %d: err = %v", k, e)
		}
	}

	fx := newFixture(t)
	store := NewStorage()
	c := newConverter(fx.s, store, table)
	crate, err := c.ConvertCrate()
	var lm *LayoutMismatchError
	if crate != nil || !errors.As(err, &lm) {
		t.Fatalf("ConvertCrate = %v, %v; want layout mismatch", crate, err)
	}
	if n := store.items.mods.Len() + store.items.crates.Len(); n != 0 {
		t.Errorf("%d nodes allocated before the mismatch was reported", n)
	}
}
