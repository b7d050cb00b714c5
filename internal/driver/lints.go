package driver

import (
	"fmt"

	"marker/pkg/lint"
)

// Lints collects the lints declared by passes in declaration order. Names
// must be non-empty and unique across all passes.
func Lints(passes []lint.Pass) ([]*lint.Lint, error) {
	var out []*lint.Lint
	seen := make(map[string]int)
	for i, p := range passes {
		for _, l := range p.Info().Lints {
			if l == nil || l.Name == "" {
				return nil, fmt.Errorf("pass %d declares a lint without a name", i)
			}
			if prev, ok := seen[l.Name]; ok {
				return nil, fmt.Errorf("lint %q declared by pass %d and pass %d", l.Name, prev, i)
			}
			seen[l.Name] = i
			out = append(out, l)
		}
	}
	return out, nil
}

// checkers splits passes by the hooks they implement.
type checkers struct {
	crates []lint.CrateChecker
	items  []lint.ItemChecker
	bodies []lint.BodyChecker
	stmts  []lint.StmtChecker
	exprs  []lint.ExprChecker
}

func dispatch(passes []lint.Pass) checkers {
	var c checkers
	for _, p := range passes {
		if x, ok := p.(lint.CrateChecker); ok {
			c.crates = append(c.crates, x)
		}
		if x, ok := p.(lint.ItemChecker); ok {
			c.items = append(c.items, x)
		}
		if x, ok := p.(lint.BodyChecker); ok {
			c.bodies = append(c.bodies, x)
		}
		if x, ok := p.(lint.StmtChecker); ok {
			c.stmts = append(c.stmts, x)
		}
		if x, ok := p.(lint.ExprChecker); ok {
			c.exprs = append(c.exprs, x)
		}
	}
	return c
}
