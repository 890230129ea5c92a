package extract

import (
	"strconv"
	"strings"

	"glsles/internal/source"
	"glsles/internal/token"
)

// Kind classifies a table entry by how it was declared.
type Kind uint8

const (
	KindUniform Kind = iota
	KindAttribute
	KindVarying
	KindConst
	KindStructType
	KindFunction
	// KindInput and KindOutput are globals declared with `in` / `out`.
	KindInput
	KindOutput
	// KindGlobal is a global variable without a storage qualifier.
	KindGlobal
)

func (k Kind) String() string {
	switch k {
	case KindUniform:
		return "Uniform"
	case KindAttribute:
		return "Attribute"
	case KindVarying:
		return "Varying"
	case KindConst:
		return "Const"
	case KindStructType:
		return "StructType"
	case KindFunction:
		return "Function"
	case KindInput:
		return "Input"
	case KindOutput:
		return "Output"
	case KindGlobal:
		return "Global"
	default:
		return "?"
	}
}

// Base is the category of a described type.
type Base uint8

const (
	BaseInvalid Base = iota
	BaseVoid
	BaseScalar
	BaseVector
	BaseMatrix
	BaseSampler
	BaseStruct
	// BaseNamed is a type name that does not resolve to a known struct.
	BaseNamed
	BaseFunction
)

func (b Base) String() string {
	switch b {
	case BaseVoid:
		return "void"
	case BaseScalar:
		return "scalar"
	case BaseVector:
		return "vector"
	case BaseMatrix:
		return "matrix"
	case BaseSampler:
		return "sampler"
	case BaseStruct:
		return "struct"
	case BaseNamed:
		return "named"
	case BaseFunction:
		return "function"
	default:
		return "invalid"
	}
}

func baseOf(k token.Kind) Base {
	switch {
	case k == token.KwVoid:
		return BaseVoid
	case k == token.KwFloat, k == token.KwInt, k == token.KwBool:
		return BaseScalar
	case k >= token.KwVec2 && k <= token.KwIvec4:
		return BaseVector
	case k >= token.KwMat2 && k <= token.KwMat4:
		return BaseMatrix
	case k.IsSampler():
		return BaseSampler
	}
	return BaseInvalid
}

// ArraySize records the `[...]` suffix of a declarator. The size is known
// only when it was written as a single integer constant; any other
// expression is kept as "non-literal" and never evaluated.
type ArraySize struct {
	Present bool
	Literal bool
	Size    int
}

func (a ArraySize) String() string {
	switch {
	case !a.Present:
		return ""
	case a.Literal:
		return "[" + strconv.Itoa(a.Size) + "]"
	default:
		return "[?]"
	}
}

// Field is one expanded struct member.
type Field struct {
	Name string
	Type TypeDesc
	Span source.Span
}

// Param is one function parameter; Name is empty for unnamed prototype
// parameters.
type Param struct {
	Name       string
	Type       TypeDesc
	Qualifiers QualifierSet
}

// TypeDesc describes the type of an entry. For BaseStruct the field list
// is shared between every entry that names the same struct.
type TypeDesc struct {
	Base    Base
	Name    string
	Builtin token.Kind
	Array   ArraySize
	Fields  []Field
	Params  []Param
	Return  *TypeDesc
}

// String renders the type the way it would be spelled in source, with
// non-literal array sizes shown as `[?]`.
func (t TypeDesc) String() string {
	var sb strings.Builder
	switch t.Base {
	case BaseFunction:
		if t.Return != nil {
			sb.WriteString(t.Return.String())
		}
		sb.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Type.String())
		}
		sb.WriteByte(')')
		return sb.String()
	case BaseStruct:
		if t.Name == "" {
			sb.WriteString("struct <anonymous>")
		} else {
			sb.WriteString(t.Name)
		}
	case BaseInvalid:
		sb.WriteString("<invalid>")
	default:
		sb.WriteString(t.Name)
	}
	sb.WriteString(t.Array.String())
	return sb.String()
}

// Entry is one global declaration.
type Entry struct {
	Name       string
	Kind       Kind
	Type       TypeDesc
	Qualifiers QualifierSet
	// Span covers the declarator (or the whole prototype for functions);
	// NameSpan covers just the name.
	Span     source.Span
	NameSpan source.Span
	// Defined is set on function entries once a body has been seen.
	Defined bool
}
