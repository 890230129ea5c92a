package ast

import (
	"glsles/internal/source"
	"glsles/internal/token"
)

// TypeKind says which form a type specifier took.
type TypeKind uint8

const (
	// TypeBuiltin is a keyword type: void, scalars, vectors, matrices, samplers.
	TypeBuiltin TypeKind = iota
	// TypeStruct is an inline struct specifier `struct S? { ... }`.
	TypeStruct
	// TypeNamed is an identifier used as a type (a previously declared struct).
	TypeNamed
)

func (k TypeKind) String() string {
	switch k {
	case TypeBuiltin:
		return "builtin"
	case TypeStruct:
		return "struct"
	case TypeNamed:
		return "named"
	default:
		return "?"
	}
}

// TypeSpec is a type specifier with its optional precision qualifier.
type TypeSpec struct {
	Kind      TypeKind
	Span      source.Span
	Builtin   token.Kind // TypeBuiltin only
	Name      string     // TypeNamed, or the tag of a TypeStruct (may be empty)
	Struct    PayloadID  // TypeStruct only
	Precision PrecisionQual
}

// ArraySpec is the optional `[size]` suffix of a declarator.
// Size is NoExprID for `[]`.
type ArraySpec struct {
	Present bool
	Size    ExprID
	Span    source.Span
}

// StructSpec is the body of a struct specifier.
type StructSpec struct {
	Name     string
	NameSpan source.Span
	Members  []StructMember
}

// StructMember is one `type a, b[2];` line inside a struct body.
type StructMember struct {
	Type   TypeID
	Span   source.Span
	Fields []FieldID
}

// Field is a single struct field declarator.
type Field struct {
	Name  string
	Span  source.Span
	Array ArraySpec
}

// Types manages allocation of type specifiers and struct bodies.
type Types struct {
	Arena   *Arena[TypeSpec]
	Structs *Arena[StructSpec]
	Fields  *Arena[Field]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Types{
		Arena:   NewArena[TypeSpec](capHint),
		Structs: NewArena[StructSpec](capHint / 8),
		Fields:  NewArena[Field](capHint / 4),
	}
}

func (t *Types) Get(id TypeID) *TypeSpec {
	return t.Arena.Get(uint32(id))
}

// NewBuiltin allocates a keyword type.
func (t *Types) NewBuiltin(span source.Span, kw token.Kind, prec PrecisionQual) TypeID {
	return TypeID(t.Arena.Allocate(TypeSpec{Kind: TypeBuiltin, Span: span, Builtin: kw, Precision: prec}))
}

// NewNamed allocates a reference to a type by name.
func (t *Types) NewNamed(span source.Span, name string, prec PrecisionQual) TypeID {
	return TypeID(t.Arena.Allocate(TypeSpec{Kind: TypeNamed, Span: span, Name: name, Precision: prec}))
}

// NewStruct allocates an inline struct specifier.
func (t *Types) NewStruct(span source.Span, spec StructSpec, prec PrecisionQual) TypeID {
	payload := t.Structs.Allocate(spec)
	return TypeID(t.Arena.Allocate(TypeSpec{
		Kind:      TypeStruct,
		Span:      span,
		Name:      spec.Name,
		Struct:    PayloadID(payload),
		Precision: prec,
	}))
}

// Struct returns the struct body of a TypeStruct specifier.
func (t *Types) Struct(id TypeID) (*StructSpec, bool) {
	ts := t.Get(id)
	if ts == nil || ts.Kind != TypeStruct {
		return nil, false
	}
	return t.Structs.Get(uint32(ts.Struct)), true
}

func (t *Types) NewField(f Field) FieldID {
	return FieldID(t.Fields.Allocate(f))
}

func (t *Types) Field(id FieldID) *Field {
	return t.Fields.Get(uint32(id))
}

// TypeName renders a type specifier the way it was written, without precision.
func (t *Types) TypeName(id TypeID) string {
	ts := t.Get(id)
	if ts == nil {
		return "<invalid>"
	}
	switch ts.Kind {
	case TypeBuiltin:
		return ts.Builtin.Spelling()
	case TypeStruct:
		if ts.Name == "" {
			return "struct <anonymous>"
		}
		return "struct " + ts.Name
	default:
		return ts.Name
	}
}
