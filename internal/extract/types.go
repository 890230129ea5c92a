package extract

import (
	"fmt"
	"strconv"

	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/source"
)

// typeDesc describes a type specifier. A struct specifier is expanded and,
// when it has a name, registered as a StructType entry; depth > 0 means
// the specifier sits inside another struct body.
func (ex *extractor) typeDesc(id ast.TypeID, depth int) TypeDesc {
	ts := ex.b.Types.Get(id)
	if ts == nil {
		return TypeDesc{Base: BaseInvalid}
	}
	switch ts.Kind {
	case ast.TypeBuiltin:
		return TypeDesc{Base: baseOf(ts.Builtin), Name: ts.Builtin.Spelling(), Builtin: ts.Builtin}
	case ast.TypeNamed:
		if fields, ok := ex.structs[ts.Name]; ok {
			return TypeDesc{Base: BaseStruct, Name: ts.Name, Fields: fields}
		}
		return TypeDesc{Base: BaseNamed, Name: ts.Name}
	case ast.TypeStruct:
		spec, ok := ex.b.Types.Struct(id)
		if !ok {
			return TypeDesc{Base: BaseInvalid}
		}
		// слот занимаем до разбора полей, чтобы вложенные структуры шли после внешней
		slot := -1
		if spec.Name != "" {
			slot = ex.reserveStruct(ts.Span, spec, depth > 0)
		}
		desc := TypeDesc{Base: BaseStruct, Name: spec.Name, Fields: ex.expandFields(spec, depth)}
		if slot >= 0 {
			ex.structs[spec.Name] = desc.Fields
			ex.table.entry(slot).Type = desc
		}
		return desc
	default:
		panic(fmt.Sprintf("extract: unhandled type kind %v", ts.Kind))
	}
}

func (ex *extractor) expandFields(spec *ast.StructSpec, depth int) []Field {
	var fields []Field
	for _, m := range spec.Members {
		mt := ex.typeDesc(m.Type, depth+1)
		for _, fid := range m.Fields {
			f := ex.b.Types.Field(fid)
			if f == nil {
				continue
			}
			ft := mt
			ft.Array = ex.arraySize(f.Array)
			fields = append(fields, Field{Name: f.Name, Type: ft, Span: f.Span})
		}
	}
	return fields
}

// reserveStruct adds the StructType entry for a named struct the first
// time it is specified and returns its index; the type is filled in once
// the fields are expanded. It returns -1 for a redefinition.
func (ex *extractor) reserveStruct(sp source.Span, spec *ast.StructSpec, nested bool) int {
	if prev := ex.table.indices(spec.Name); len(prev) > 0 {
		first := ex.table.entry(prev[0])
		code := diag.ExtDuplicateGlobal
		if first.Kind == KindStructType {
			code = diag.ExtDuplicateStruct
		}
		ex.errorAt(code, spec.NameSpan, first.NameSpan, fmt.Sprintf("redefinition of struct '%s'", spec.Name))
		return -1
	}
	if nested {
		ex.warn(diag.ExtNestedStruct, spec.NameSpan,
			fmt.Sprintf("struct '%s' is declared inside another struct; it is registered at global scope", spec.Name))
	}
	return ex.table.add(Entry{
		Name:     spec.Name,
		Kind:     KindStructType,
		Type:     TypeDesc{Base: BaseStruct, Name: spec.Name},
		Span:     sp,
		NameSpan: spec.NameSpan,
	})
}

func (ex *extractor) precisionOf(id ast.TypeID) ast.PrecisionQual {
	if ts := ex.b.Types.Get(id); ts != nil {
		return ts.Precision
	}
	return ast.PrecisionNone
}

// arraySize reads the size only when it is a bare integer constant.
func (ex *extractor) arraySize(a ast.ArraySpec) ArraySize {
	if !a.Present {
		return ArraySize{}
	}
	out := ArraySize{Present: true}
	lit, ok := ex.b.Exprs.Literal(a.Size)
	if !ok || lit.Kind != ast.LitInt {
		return out
	}
	n, err := strconv.ParseInt(lit.Text, 0, 32)
	if err != nil || n < 0 {
		return out
	}
	out.Literal = true
	out.Size = int(n)
	return out
}
