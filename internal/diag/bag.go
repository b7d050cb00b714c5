package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a limit.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag returns a bag holding at most limit diagnostics.
func NewBag(limit int) *Bag {
	if limit < 0 {
		limit = 0
	}
	n, err := safecast.Conv[uint16](limit)
	if err != nil {
		n = ^uint16(0)
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(limit, 64)),
		max:   n,
	}
}

// Add reports false when the bag is full and d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics with severity sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the bag's own slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends other's diagnostics, raising the limit when needed.
func (b *Bag) Merge(other *Bag) {
	total := len(b.items) + len(other.items)
	if total > int(b.max) {
		if limit, err := safecast.Conv[uint16](total); err == nil {
			b.max = limit
		} else {
			b.max = ^uint16(0)
		}
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file, start, end, severity (desc), lint and code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.HasSpan != dj.HasSpan {
			return !di.HasSpan
		}
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		if di.Lint != dj.Lint {
			return di.Lint < dj.Lint
		}
		return di.Code < dj.Code
	})
}

// Dedup drops diagnostics repeating code, lint and primary span.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	items := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%s", d.Code.ID(), d.Lint, d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, d)
	}
	b.items = items
}
