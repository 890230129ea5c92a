package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"glsles/internal/ast"
	"glsles/internal/source"
)

// ASTNodeOutput is one node of the JSON tree dump.
type ASTNodeOutput struct {
	Type     string            `json:"type"`
	Kind     string            `json:"kind"`
	Span     source.Span       `json:"span"`
	Text     string            `json:"text,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Children []ASTNodeOutput   `json:"children,omitempty"`
}

// nodeInfo собирает kind, текст и доп. поля узла.
type nodeInfo struct {
	kind   string
	text   string
	span   source.Span
	fields map[string]string
}

func describeNode(b *ast.Builder, n ast.NodeRef) nodeInfo {
	switch n.Kind {
	case ast.NodeUnit:
		if u := b.Units.Get(ast.UnitID(n.ID)); u != nil {
			return nodeInfo{kind: "TranslationUnit", span: u.Span}
		}
	case ast.NodeDecl:
		return describeDecl(b, ast.DeclID(n.ID))
	case ast.NodeStmt:
		if st := b.Stmts.Get(ast.StmtID(n.ID)); st != nil {
			info := nodeInfo{kind: st.Kind.String(), span: st.Span}
			if blk := b.Stmts.Block(ast.StmtID(n.ID)); blk != nil && !blk.NewScope {
				info.fields = map[string]string{"scope": "function"}
			}
			return info
		}
	case ast.NodeExpr:
		return describeExpr(b, ast.ExprID(n.ID))
	case ast.NodeType:
		if ts := b.Types.Get(ast.TypeID(n.ID)); ts != nil {
			info := nodeInfo{kind: "Type", text: b.Types.TypeName(ast.TypeID(n.ID)), span: ts.Span}
			if ts.Precision != ast.PrecisionNone {
				info.fields = map[string]string{"precision": ts.Precision.String()}
			}
			return info
		}
	case ast.NodeParam:
		if p := b.Decls.Param(ast.ParamID(n.ID)); p != nil {
			info := nodeInfo{kind: "Param", text: p.Name, span: p.Span}
			if !p.Qualifiers.Empty() {
				info.fields = map[string]string{"qualifiers": p.Qualifiers.String()}
			}
			return info
		}
	case ast.NodeField:
		if f := b.Types.Field(ast.FieldID(n.ID)); f != nil {
			info := nodeInfo{kind: "Field", text: f.Name, span: f.Span}
			if f.Array.Present {
				info.fields = map[string]string{"array": "true"}
			}
			return info
		}
	}
	return nodeInfo{kind: "<invalid>"}
}

func describeDecl(b *ast.Builder, id ast.DeclID) nodeInfo {
	d := b.Decls.Get(id)
	if d == nil {
		return nodeInfo{kind: "<invalid>"}
	}
	info := nodeInfo{kind: d.Kind.String(), span: d.Span}
	switch d.Kind {
	case ast.DeclFunction:
		fn, _ := b.Decls.Function(id)
		info.text = fn.Name
		if fn.IsDefinition() {
			info.fields = map[string]string{"form": "definition"}
		} else {
			info.fields = map[string]string{"form": "prototype"}
		}
	case ast.DeclVariables:
		v, _ := b.Decls.Variables(id)
		names := make([]string, len(v.Declarators))
		for i, dcl := range v.Declarators {
			names[i] = dcl.Name
			if dcl.Array.Present {
				names[i] += "[]"
			}
		}
		info.text = strings.Join(names, ", ")
		if !v.Qualifiers.Empty() {
			info.fields = map[string]string{"qualifiers": v.Qualifiers.String()}
		}
	case ast.DeclPrecision:
		p, _ := b.Decls.Precision(id)
		info.text = p.Precision.String()
	case ast.DeclStruct:
		s, _ := b.Decls.Struct(id)
		info.text = b.Types.TypeName(s.Type)
		if !s.Qualifiers.Empty() {
			info.fields = map[string]string{"qualifiers": s.Qualifiers.String()}
		}
	case ast.DeclInvariant:
		inv, _ := b.Decls.Invariant(id)
		names := make([]string, len(inv.Names))
		for i, nm := range inv.Names {
			names[i] = nm.Name
		}
		info.text = strings.Join(names, ", ")
	}
	return info
}

func describeExpr(b *ast.Builder, id ast.ExprID) nodeInfo {
	e := b.Exprs.Get(id)
	if e == nil {
		return nodeInfo{kind: "<invalid>"}
	}
	info := nodeInfo{kind: e.Kind.String(), span: e.Span}
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		info.text = data.Name
	case ast.ExprLit:
		data, _ := b.Exprs.Literal(id)
		info.text = data.Text
		info.fields = map[string]string{"lit": data.Kind.String()}
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		info.text = data.Callee()
		if data.IsConstructor() {
			info.fields = map[string]string{"constructor": "true"}
		}
	case ast.ExprField:
		data, _ := b.Exprs.Field(id)
		info.text = data.Field
	case ast.ExprPostfix:
		data, _ := b.Exprs.Postfix(id)
		info.text = data.Op.String()
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		info.text = data.Op.String()
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		info.text = data.Op.String()
	case ast.ExprAssign:
		data, _ := b.Exprs.Assign(id)
		info.text = data.Op.String()
	}
	return info
}

// FormatASTPretty печатает дерево разбора с отступами ├─ / └─.
func FormatASTPretty(w io.Writer, b *ast.Builder, unit ast.UnitID, fs *source.FileSet) error {
	root := ast.UnitRef(unit)
	info := describeNode(b, root)
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", info.kind, formatSpan(info.span, fs)); err != nil {
		return err
	}
	children := b.Children(root)
	for i, child := range children {
		if err := formatNodePretty(w, b, child, fs, "", i == len(children)-1); err != nil {
			return err
		}
	}
	return nil
}

func formatNodePretty(w io.Writer, b *ast.Builder, n ast.NodeRef, fs *source.FileSet, prefix string, last bool) error {
	marker, childPrefix := "├─ ", prefix+"│  "
	if last {
		marker, childPrefix = "└─ ", prefix+"   "
	}
	info := describeNode(b, n)

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(marker)
	sb.WriteString(info.kind)
	if info.text != "" {
		sb.WriteByte(' ')
		sb.WriteString(info.text)
	}
	for _, k := range sortedKeys(info.fields) {
		fmt.Fprintf(&sb, " %s=%s", k, info.fields[k])
	}
	fmt.Fprintf(&sb, " (span: %s)\n", formatSpan(info.span, fs))
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	children := b.Children(n)
	for i, child := range children {
		if err := formatNodePretty(w, b, child, fs, childPrefix, i == len(children)-1); err != nil {
			return err
		}
	}
	return nil
}

// BuildASTOutput строит JSON-дерево без сериализации.
func BuildASTOutput(b *ast.Builder, n ast.NodeRef) ASTNodeOutput {
	info := describeNode(b, n)
	out := ASTNodeOutput{
		Type:   n.Kind.String(),
		Kind:   info.kind,
		Span:   info.span,
		Text:   info.text,
		Fields: info.fields,
	}
	for _, child := range b.Children(n) {
		out.Children = append(out.Children, BuildASTOutput(b, child))
	}
	return out
}

// FormatASTJSON выводит дерево в JSON.
func FormatASTJSON(w io.Writer, b *ast.Builder, unit ast.UnitID) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(b, ast.UnitRef(unit)))
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
