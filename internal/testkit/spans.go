// Package testkit holds checks shared by tests of the conversion engine's
// users.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"marker/internal/convert"
	"marker/pkg/ast"
)

// CheckSpanInvariants walks every item of crate and checks:
// 1) the item span resolves and is non-empty
// 2) the span lies inside its source file
// 3) items of a named module lie inside the module's span when both come
// from the same file
func CheckSpanInvariants(c *convert.Converter, crate *ast.Crate) error {
	if c == nil || crate == nil || crate.Root() == nil {
		return fmt.Errorf("nil converter or crate")
	}
	var walk func(items []ast.Item, parent *ast.Span) error
	walk = func(items []ast.Item, parent *ast.Span) error {
		for _, it := range items {
			sp, err := checkItem(c, it)
			if err != nil {
				return err
			}
			if parent != nil && parent.Source() == sp.Source() && !parent.Contains(*sp) {
				return fmt.Errorf("item %s span %v is outside its module %v", it.Kind(), sp, parent)
			}
			switch it := it.(type) {
			case *ast.ModItem:
				if err := walk(it.Items(), sp); err != nil {
					return err
				}
			case *ast.ImplItem:
				for _, assoc := range it.Items() {
					if _, err := checkItem(c, assoc); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	return walk(crate.Root().Items(), nil)
}

func checkItem(c *convert.Converter, it ast.Item) (*ast.Span, error) {
	sp, err := c.ResolveSpan(ast.SpanOwnerOfItem(it.ID()))
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", it.Kind(), err)
	}
	if sp == nil || sp.IsEmpty() {
		return nil, fmt.Errorf("item %s has an empty span", it.Kind())
	}
	f, ok := c.SourceFile(sp.Source())
	if !ok {
		return nil, fmt.Errorf("item %s span %v has no source file", it.Kind(), sp)
	}
	size, err := safecast.Conv[uint32](len(f.Src))
	if err != nil {
		return nil, fmt.Errorf("source length overflow: %w", err)
	}
	if f.HasSrc && sp.End() > size {
		return nil, fmt.Errorf("item %s span end beyond content: %d > %d", it.Kind(), sp.End(), size)
	}
	return sp, nil
}
