package ast

import (
	"glsles/internal/source"
)

type DeclKind uint8

const (
	// DeclFunction is a prototype (Body invalid) or a definition.
	DeclFunction DeclKind = iota
	// DeclVariables is an init-declarator list; it may have no declarators (`float;`).
	DeclVariables
	// DeclPrecision is `precision <p> <type>;`.
	DeclPrecision
	// DeclStruct is a bare `struct S { ... };`.
	DeclStruct
	// DeclInvariant is `invariant a, b;`.
	DeclInvariant
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "Function"
	case DeclVariables:
		return "Variables"
	case DeclPrecision:
		return "Precision"
	case DeclStruct:
		return "Struct"
	case DeclInvariant:
		return "Invariant"
	default:
		return "?"
	}
}

type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload PayloadID
}

// Param is one function parameter. Name is empty in unnamed prototype
// parameters (`float f(float);`).
type Param struct {
	Qualifiers Qualifiers
	Type       TypeID
	Name       string
	NameSpan   source.Span
	Array      ArraySpec
	Span       source.Span
}

type FunctionDecl struct {
	Return   TypeID
	Name     string
	NameSpan source.Span
	Params   []ParamID
	Void     bool   // explicit (void) parameter list
	Body     StmtID // NoStmtID for a prototype
}

// IsDefinition reports whether the function has a body.
func (f *FunctionDecl) IsDefinition() bool { return f.Body.IsValid() }

// Declarator is one `name[size] = init` element of a variable list.
type Declarator struct {
	Name     string
	NameSpan source.Span
	Array    ArraySpec
	Init     ExprID
	Span     source.Span
}

type VariablesDecl struct {
	Qualifiers  Qualifiers
	Type        TypeID
	Declarators []Declarator
}

// PrecisionDecl: Type is NoTypeID when the statement names no type.
type PrecisionDecl struct {
	Precision     PrecisionQual
	PrecisionSpan source.Span
	Type          TypeID
}

type StructDecl struct {
	Qualifiers Qualifiers
	Type       TypeID // always TypeStruct
}

type InvariantName struct {
	Name string
	Span source.Span
}

type InvariantDecl struct {
	Names []InvariantName
}

type Decls struct {
	Arena      *Arena[Decl]
	Functions  *Arena[FunctionDecl]
	Params     *Arena[Param]
	VarLists   *Arena[VariablesDecl]
	Precisions *Arena[PrecisionDecl]
	Structs    *Arena[StructDecl]
	Invariants *Arena[InvariantDecl]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 7
	}
	small := capHint / 4
	return &Decls{
		Arena:      NewArena[Decl](capHint),
		Functions:  NewArena[FunctionDecl](small),
		Params:     NewArena[Param](small),
		VarLists:   NewArena[VariablesDecl](capHint),
		Precisions: NewArena[PrecisionDecl](small),
		Structs:    NewArena[StructDecl](small),
		Invariants: NewArena[InvariantDecl](small),
	}
}

func (d *Decls) new(kind DeclKind, span source.Span, payload uint32) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) payload(id DeclID, kind DeclKind) (uint32, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != kind {
		return 0, false
	}
	return uint32(decl.Payload), true
}

func (d *Decls) NewParam(p Param) ParamID {
	return ParamID(d.Params.Allocate(p))
}

func (d *Decls) Param(id ParamID) *Param {
	return d.Params.Get(uint32(id))
}

func (d *Decls) NewFunction(span source.Span, fn FunctionDecl) DeclID {
	return d.new(DeclFunction, span, d.Functions.Allocate(fn))
}

func (d *Decls) Function(id DeclID) (*FunctionDecl, bool) {
	p, ok := d.payload(id, DeclFunction)
	if !ok {
		return nil, false
	}
	return d.Functions.Get(p), true
}

func (d *Decls) NewVariables(span source.Span, v VariablesDecl) DeclID {
	return d.new(DeclVariables, span, d.VarLists.Allocate(v))
}

func (d *Decls) Variables(id DeclID) (*VariablesDecl, bool) {
	p, ok := d.payload(id, DeclVariables)
	if !ok {
		return nil, false
	}
	return d.VarLists.Get(p), true
}

func (d *Decls) NewPrecision(span source.Span, p PrecisionDecl) DeclID {
	return d.new(DeclPrecision, span, d.Precisions.Allocate(p))
}

func (d *Decls) Precision(id DeclID) (*PrecisionDecl, bool) {
	p, ok := d.payload(id, DeclPrecision)
	if !ok {
		return nil, false
	}
	return d.Precisions.Get(p), true
}

func (d *Decls) NewStruct(span source.Span, s StructDecl) DeclID {
	return d.new(DeclStruct, span, d.Structs.Allocate(s))
}

func (d *Decls) Struct(id DeclID) (*StructDecl, bool) {
	p, ok := d.payload(id, DeclStruct)
	if !ok {
		return nil, false
	}
	return d.Structs.Get(p), true
}

func (d *Decls) NewInvariant(span source.Span, inv InvariantDecl) DeclID {
	return d.new(DeclInvariant, span, d.Invariants.Allocate(inv))
}

func (d *Decls) Invariant(id DeclID) (*InvariantDecl, bool) {
	p, ok := d.payload(id, DeclInvariant)
	if !ok {
		return nil, false
	}
	return d.Invariants.Get(p), true
}
