package diag

import (
	"sort"
)

// Bag collects diagnostics for one file or one run, up to a cap.
type Bag struct {
	items []*Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	hint := max
	if hint <= 0 || hint > 64 {
		hint = 64
	}
	return &Bag{
		items: make([]*Diagnostic, 0, hint),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если лимит уже достигнут.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil {
		return false
	}
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// Full reports whether further Adds will be dropped.
func (b *Bag) Full() bool {
	return b.max > 0 && len(b.items) >= b.max
}

// HasErrors возвращает true, если есть хотя бы одна ошибка.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть предупреждения или ошибки.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the backing slice. Callers must not modify it.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Filter returns diagnostics of the given stage kind, in bag order.
func (b *Bag) Filter(kind Kind) []*Diagnostic {
	var out []*Diagnostic
	for _, d := range b.items {
		if d.Code.Kind() == kind {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends everything from other, growing the cap if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if b.max > 0 && len(b.items)+len(other.items) > b.max {
		b.max = len(b.items) + len(other.items)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file, start, end, severity (desc), code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
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
		return di.Code < dj.Code
	})
}

type bagKey struct {
	code  Code
	span  [3]uint32
	msg   string
}

// Dedup drops repeats with the same code, span and message.
func (b *Bag) Dedup() {
	seen := make(map[bagKey]struct{}, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		k := bagKey{code: d.Code, span: [3]uint32{uint32(d.Primary.File), d.Primary.Start, d.Primary.End}, msg: d.Message}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}
