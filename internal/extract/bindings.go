package extract

import (
	"strconv"

	"glsles/internal/source"
)

// BindingKind says how the host program attaches data to a binding.
type BindingKind uint8

const (
	// BindUniform is looked up as a uniform location.
	BindUniform BindingKind = iota
	// BindVertexInput is looked up as a vertex attribute location.
	BindVertexInput
)

func (k BindingKind) String() string {
	if k == BindVertexInput {
		return "vertex-input"
	}
	return "uniform"
}

// Binding is one name the host program resolves to a location. Struct
// uniforms are flattened to their leaf members (`light.color`,
// `lights[1].color`); arrays of known size of structs are expanded per
// element.
type Binding struct {
	Name  string
	Kind  BindingKind
	Type  TypeDesc
	Entry string // имя глобальной декларации
	Span  source.Span
}

// Bindings lists the bindable globals of t in source order: uniforms
// (flattened) and vertex inputs (attribute and `in` globals).
func Bindings(t *Table) []Binding {
	var out []Binding
	for _, e := range t.Entries() {
		switch e.Kind {
		case KindUniform:
			out = flatten(out, e, e.Name, e.Type)
		case KindAttribute, KindInput:
			out = append(out, Binding{Name: e.Name, Kind: BindVertexInput, Type: e.Type, Entry: e.Name, Span: e.NameSpan})
		}
	}
	return out
}

func flatten(out []Binding, e Entry, path string, t TypeDesc) []Binding {
	if t.Base != BaseStruct || len(t.Fields) == 0 {
		return append(out, Binding{Name: path, Kind: BindUniform, Type: t, Entry: e.Name, Span: e.NameSpan})
	}
	switch {
	case !t.Array.Present:
		for _, f := range t.Fields {
			out = flatten(out, e, path+"."+f.Name, f.Type)
		}
	case t.Array.Literal:
		for i := range t.Array.Size {
			elem := path + "[" + strconv.Itoa(i) + "]"
			for _, f := range t.Fields {
				out = flatten(out, e, elem+"."+f.Name, f.Type)
			}
		}
	default:
		// размер неизвестен до компиляции: отдаём массив целиком
		out = append(out, Binding{Name: path, Kind: BindUniform, Type: t, Entry: e.Name, Span: e.NameSpan})
	}
	return out
}
