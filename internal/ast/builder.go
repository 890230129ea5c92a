package ast

import (
	"fmt"

	"glsles/internal/source"
)

type Hints struct{ Units, Decls, Stmts, Exprs, Types uint }

type Builder struct {
	Units *Units
	Decls *Decls
	Stmts *Stmts
	Exprs *Exprs
	Types *Types

	arenas [markSlots]truncater
}

type truncater interface {
	Len() uint32
	Truncate(n uint32)
}

// markSlots is the number of arenas a Builder owns.
const markSlots = 33

// Mark is a snapshot of every arena length; see Builder.Rollback.
type Mark struct {
	lens [markSlots]uint32
}

func NewBuilder(hints Hints) *Builder {
	if hints.Units == 0 {
		hints.Units = 1 << 2
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	b := &Builder{
		Units: NewUnits(hints.Units),
		Decls: NewDecls(hints.Decls),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
		Types: NewTypes(hints.Types),
	}
	all := []truncater{
		b.Units.Arena,
		b.Decls.Arena, b.Decls.Functions, b.Decls.Params, b.Decls.VarLists,
		b.Decls.Precisions, b.Decls.Structs, b.Decls.Invariants,
		b.Stmts.Arena, b.Stmts.Blocks, b.Stmts.Decls, b.Stmts.Exprs, b.Stmts.Ifs,
		b.Stmts.Whiles, b.Stmts.DoWhiles, b.Stmts.Fors, b.Stmts.Returns,
		b.Exprs.Arena, b.Exprs.Idents, b.Exprs.Literals, b.Exprs.Calls, b.Exprs.Indices,
		b.Exprs.Fields, b.Exprs.Postfixes, b.Exprs.Unaries, b.Exprs.Binaries,
		b.Exprs.Ternaries, b.Exprs.Assigns, b.Exprs.Commas, b.Exprs.Groups,
		b.Types.Arena, b.Types.Structs, b.Types.Fields,
	}
	if len(all) != markSlots {
		panic(fmt.Sprintf("ast: builder tracks %d arenas, want %d", len(all), markSlots))
	}
	copy(b.arenas[:], all)
	return b
}

// Mark records the current size of every arena.
func (b *Builder) Mark() Mark {
	var m Mark
	for i, a := range b.arenas {
		m.lens[i] = a.Len()
	}
	return m
}

// Rollback discards every node allocated since m was taken. IDs handed out
// after the mark become invalid.
func (b *Builder) Rollback(m Mark) {
	for i, a := range b.arenas {
		a.Truncate(m.lens[i])
	}
}

// Nodes returns the total number of allocated nodes across all arenas.
func (b *Builder) Nodes() int {
	n := 0
	for _, a := range b.arenas {
		n += int(a.Len())
	}
	return n
}

func (b *Builder) NewUnit(sp source.Span, decls []DeclID) UnitID {
	return b.Units.New(sp, decls)
}
