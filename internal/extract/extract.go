package extract

import (
	"fmt"
	"strings"

	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/source"
)

// Extract builds the declaration table of unit. Declarations that fail to
// extract are reported and omitted; everything else is still collected.
func Extract(b *ast.Builder, unit ast.UnitID, opts Options) (*Table, []ExtractError) {
	tu := b.Units.Get(unit)
	if tu == nil {
		return newTable(0), nil
	}
	ex := extractor{
		b:       b,
		opts:    opts,
		table:   newTable(len(tu.Decls)),
		structs: make(map[string][]Field),
	}
	for _, id := range tu.Decls {
		ex.handleDecl(id)
	}
	if opts.RequireMain && !ex.table.HasMain() {
		ex.warn(diag.ExtNoMain, tu.Span.EndPoint(), "no definition of 'void main()'")
	}
	return ex.table, ex.errs
}

type extractor struct {
	b       *ast.Builder
	opts    Options
	table   *Table
	structs map[string][]Field // развёрнутые поля по имени структуры
	errs    []ExtractError
}

func (ex *extractor) handleDecl(id ast.DeclID) {
	d := ex.b.Decls.Get(id)
	if d == nil {
		return
	}
	switch d.Kind {
	case ast.DeclVariables:
		if v, ok := ex.b.Decls.Variables(id); ok {
			ex.declareVariables(v)
		}
	case ast.DeclFunction:
		if fn, ok := ex.b.Decls.Function(id); ok {
			ex.declareFunction(d.Span, fn)
		}
	case ast.DeclPrecision:
		if p, ok := ex.b.Decls.Precision(id); ok {
			ex.declarePrecision(d.Span, p)
		}
	case ast.DeclStruct:
		if s, ok := ex.b.Decls.Struct(id); ok {
			ex.typeDesc(s.Type, 0)
		}
	case ast.DeclInvariant:
		if inv, ok := ex.b.Decls.Invariant(id); ok {
			ex.markInvariant(inv)
		}
	default:
		panic(fmt.Sprintf("extract: unhandled declaration kind %v", d.Kind))
	}
}

func kindOf(s ast.StorageQual) Kind {
	switch s {
	case ast.StorageUniform:
		return KindUniform
	case ast.StorageAttribute:
		return KindAttribute
	case ast.StorageVarying:
		return KindVarying
	case ast.StorageConst:
		return KindConst
	case ast.StorageIn:
		return KindInput
	case ast.StorageOut:
		return KindOutput
	default:
		return KindGlobal
	}
}

func (ex *extractor) declareVariables(v *ast.VariablesDecl) {
	ty := ex.typeDesc(v.Type, 0)
	quals := qualifierSet(v.Qualifiers, ex.precisionOf(v.Type))
	kind := kindOf(v.Qualifiers.Storage)
	for _, d := range v.Declarators {
		t := ty
		t.Array = ex.arraySize(d.Array)
		ex.declareGlobal(Entry{
			Name:       d.Name,
			Kind:       kind,
			Type:       t,
			Qualifiers: quals,
			Span:       d.Span,
			NameSpan:   d.NameSpan,
		})
	}
}

// declareGlobal adds e unless its name is already taken at global scope.
func (ex *extractor) declareGlobal(e Entry) bool {
	if prev := ex.table.indices(e.Name); len(prev) > 0 {
		first := ex.table.entry(prev[0])
		ex.errorAt(diag.ExtDuplicateGlobal, e.NameSpan, first.NameSpan,
			fmt.Sprintf("redeclaration of '%s' (already declared as %s)", e.Name, strings.ToLower(first.Kind.String())))
		return false
	}
	ex.table.add(e)
	return true
}

func (ex *extractor) declarePrecision(sp source.Span, p *ast.PrecisionDecl) {
	if !p.Type.IsValid() {
		ex.errorAt(diag.ExtPrecisionNoType, sp, source.Span{},
			fmt.Sprintf("precision statement '%s' has no type", p.Precision))
		return
	}
	ex.table.precisions = append(ex.table.precisions, DefaultPrecision{
		Type:      ex.b.Types.TypeName(p.Type),
		Precision: p.Precision,
	})
}

// markInvariant applies `invariant a, b;` to already declared outputs.
// Names that are not in the table are built-ins such as gl_Position.
func (ex *extractor) markInvariant(inv *ast.InvariantDecl) {
	for _, n := range inv.Names {
		for _, idx := range ex.table.indices(n.Name) {
			e := ex.table.entry(idx)
			if e.Kind == KindVarying || e.Kind == KindOutput {
				e.Qualifiers |= QualInvariant
			}
		}
	}
}

func (ex *extractor) declareFunction(sp source.Span, fn *ast.FunctionDecl) {
	ret := ex.typeDesc(fn.Return, 0)
	desc := TypeDesc{
		Base:   BaseFunction,
		Name:   fn.Name,
		Return: &ret,
	}
	for _, pid := range fn.Params {
		p := ex.b.Decls.Param(pid)
		if p == nil {
			continue
		}
		pt := ex.typeDesc(p.Type, 0)
		pt.Array = ex.arraySize(p.Array)
		desc.Params = append(desc.Params, Param{
			Name:       p.Name,
			Type:       pt,
			Qualifiers: qualifierSet(p.Qualifiers, ex.precisionOf(p.Type)),
		})
	}
	e := Entry{
		Name:       fn.Name,
		Kind:       KindFunction,
		Type:       desc,
		Qualifiers: qualifierSet(ast.Qualifiers{}, ex.precisionOf(fn.Return)),
		Span:       sp,
		NameSpan:   fn.NameSpan,
		Defined:    fn.IsDefinition(),
	}

	sig := signature(desc)
	for _, idx := range ex.table.indices(fn.Name) {
		prev := ex.table.entry(idx)
		if prev.Kind != KindFunction {
			ex.errorAt(diag.ExtDuplicateGlobal, fn.NameSpan, prev.NameSpan,
				fmt.Sprintf("function '%s' redeclares a %s", fn.Name, strings.ToLower(prev.Kind.String())))
			return
		}
		if signature(prev.Type) != sig {
			continue
		}
		switch {
		case prev.Type.Return.String() != ret.String():
			ex.errorAt(diag.ExtDuplicateFunction, fn.NameSpan, prev.NameSpan,
				fmt.Sprintf("'%s%s' differs from an earlier declaration only in return type", fn.Name, sig))
		case prev.Defined && e.Defined:
			ex.errorAt(diag.ExtDuplicateFunction, fn.NameSpan, prev.NameSpan,
				fmt.Sprintf("redefinition of '%s%s'", fn.Name, sig))
		case e.Defined:
			// прототип + определение: одна запись, имена параметров из определения
			prev.Defined = true
			for i := range prev.Type.Params {
				if prev.Type.Params[i].Name == "" {
					prev.Type.Params[i].Name = desc.Params[i].Name
				}
			}
		}
		return
	}
	ex.table.add(e)
}

// signature is the overload key: parameter types only.
func signature(t TypeDesc) string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
