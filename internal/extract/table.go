package extract

import (
	"slices"

	"glsles/internal/ast"
)

// DefaultPrecision is a `precision <p> <type>;` statement.
type DefaultPrecision struct {
	Type      string
	Precision ast.PrecisionQual
}

// Extension is an `#extension name : behavior` line.
type Extension struct {
	Name     string
	Behavior string
}

// Table holds the global declarations of one translation unit in source
// order. Version and Extensions are filled from the directive lines by the
// caller; extraction itself never sees them.
type Table struct {
	Version    int
	Extensions []Extension

	entries    []Entry
	precisions []DefaultPrecision
	byName     map[string][]int
}

func newTable(capHint int) *Table {
	return &Table{
		entries: make([]Entry, 0, capHint),
		byName:  make(map[string][]int, capHint),
	}
}

// Restore rebuilds a table from entries saved by Entries/Precisions.
func Restore(entries []Entry, precisions []DefaultPrecision) *Table {
	t := newTable(len(entries))
	for _, e := range entries {
		t.add(e)
	}
	t.precisions = slices.Clone(precisions)
	return t
}

func (t *Table) add(e Entry) int {
	idx := len(t.entries)
	t.entries = append(t.entries, e)
	t.byName[e.Name] = append(t.byName[e.Name], idx)
	return idx
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns all entries in source order. The slice must not be modified.
func (t *Table) Entries() []Entry { return t.entries }

// Lookup returns the first entry declared under name; for an overloaded
// function that is the first overload.
func (t *Table) Lookup(name string) (Entry, bool) {
	idx, ok := t.byName[name]
	if !ok || len(idx) == 0 {
		return Entry{}, false
	}
	return t.entries[idx[0]], true
}

// Functions returns every overload of name in source order.
func (t *Table) Functions(name string) []Entry {
	var out []Entry
	for _, i := range t.byName[name] {
		if t.entries[i].Kind == KindFunction {
			out = append(out, t.entries[i])
		}
	}
	return out
}

// ByKind returns the entries of one kind in source order.
func (t *Table) ByKind(kind Kind) []Entry {
	var out []Entry
	for _, e := range t.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// HasMain reports whether `void main()` is defined.
func (t *Table) HasMain() bool {
	for _, e := range t.Functions("main") {
		if e.Defined && len(e.Type.Params) == 0 && e.Type.Return != nil && e.Type.Return.Base == BaseVoid {
			return true
		}
	}
	return false
}

// Precisions returns the default precision statements in source order.
func (t *Table) Precisions() []DefaultPrecision { return t.precisions }

// DefaultPrecisionOf returns the precision last set for typeName, if any.
func (t *Table) DefaultPrecisionOf(typeName string) (ast.PrecisionQual, bool) {
	for i := len(t.precisions) - 1; i >= 0; i-- {
		if t.precisions[i].Type == typeName {
			return t.precisions[i].Precision, true
		}
	}
	return ast.PrecisionNone, false
}

// entry gives the extractor write access for merging and late flags.
func (t *Table) entry(idx int) *Entry { return &t.entries[idx] }

func (t *Table) indices(name string) []int { return t.byName[name] }
