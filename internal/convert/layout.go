package convert

import (
	"fmt"
	"reflect"
	"sync"

	"marker/internal/host"
	"marker/pkg/ast"
)

type layoutKind uint8

const (
	layoutCrateId layoutKind = iota
	layoutSymbolId
	layoutItemId
	layoutGenericId
	layoutTyDefId
	layoutBodyId
	layoutVarId
	layoutExprId
	layoutLetStmtId
	layoutSpanId
	numLayouts
)

type layoutPair struct {
	host     reflect.Type
	portable reflect.Type
}

func pairOf[H, P any]() layoutPair {
	return layoutPair{host: reflect.TypeFor[H](), portable: reflect.TypeFor[P]()}
}

// idLayouts lists every host id that is rebuilt as a portable id.
var idLayouts = [numLayouts]layoutPair{
	layoutCrateId:   pairOf[host.CrateNum, ast.CrateId](),
	layoutSymbolId:  pairOf[host.Symbol, ast.SymbolId](),
	layoutItemId:    pairOf[host.DefId, ast.ItemId](),
	layoutGenericId: pairOf[host.DefId, ast.GenericId](),
	layoutTyDefId:   pairOf[host.DefId, ast.TyDefId](),
	layoutBodyId:    pairOf[host.BodyId, ast.BodyId](),
	layoutVarId:     pairOf[host.HirId, ast.VarId](),
	layoutExprId:    pairOf[host.HirId, ast.ExprId](),
	layoutLetStmtId: pairOf[host.HirId, ast.LetStmtId](),
	layoutSpanId:    pairOf[host.Span, ast.SpanId](),
}

// layoutTable holds the check result per id kind, nil meaning compatible.
type layoutTable [numLayouts]error

// checkLayout compares size, field count, field offsets and field sizes.
func checkLayout(p layoutPair) error {
	h, q := p.host, p.portable
	mismatch := func(format string, args ...any) error {
		return &LayoutMismatchError{Host: h.String(), Portable: q.String(), Detail: fmt.Sprintf(format, args...)}
	}
	if h.Size() != q.Size() {
		return mismatch("size %d != %d", h.Size(), q.Size())
	}
	if (h.Kind() == reflect.Struct) != (q.Kind() == reflect.Struct) {
		return mismatch("kind %s != %s", h.Kind(), q.Kind())
	}
	if h.Kind() != reflect.Struct {
		if h.Kind() != q.Kind() {
			return mismatch("kind %s != %s", h.Kind(), q.Kind())
		}
		return nil
	}
	if h.NumField() != q.NumField() {
		return mismatch("field count %d != %d", h.NumField(), q.NumField())
	}
	for i := range h.NumField() {
		hf, qf := h.Field(i), q.Field(i)
		if hf.Offset != qf.Offset {
			return mismatch("field %d (%s/%s) offset %d != %d", i, hf.Name, qf.Name, hf.Offset, qf.Offset)
		}
		if hf.Type.Size() != qf.Type.Size() {
			return mismatch("field %d (%s/%s) size %d != %d", i, hf.Name, qf.Name, hf.Type.Size(), qf.Type.Size())
		}
	}
	return nil
}

func verifyLayouts(pairs *[numLayouts]layoutPair) (layoutTable, error) {
	var table layoutTable
	var first error
	for k := range pairs {
		if err := checkLayout(pairs[k]); err != nil {
			table[k] = err
			if first == nil {
				first = err
			}
		}
	}
	return table, first
}

var hostLayouts = sync.OnceValues(func() (layoutTable, error) {
	return verifyLayouts(&idLayouts)
})

// CheckLayouts verifies every host id layout against its portable id.
func CheckLayouts() error {
	_, err := hostLayouts()
	return err
}

// requireLayout guards a single id reinterpretation site.
func (c *Converter) requireLayout(k layoutKind) {
	if err := c.layouts[k]; err != nil {
		c.fail(err)
	}
}
