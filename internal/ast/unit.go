package ast

import (
	"glsles/internal/source"
)

// TranslationUnit is the ordered list of top-level declarations of one file.
type TranslationUnit struct {
	Span  source.Span
	Decls []DeclID
}

type Units struct {
	Arena *Arena[TranslationUnit]
}

func NewUnits(capHint uint) *Units {
	return &Units{Arena: NewArena[TranslationUnit](capHint)}
}

func (u *Units) New(sp source.Span, decls []DeclID) UnitID {
	return UnitID(u.Arena.Allocate(TranslationUnit{Span: sp, Decls: decls}))
}

func (u *Units) Get(id UnitID) *TranslationUnit {
	return u.Arena.Get(uint32(id))
}
