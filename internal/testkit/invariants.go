package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"glsles/internal/ast"
	"glsles/internal/source"
)

// CheckSpanInvariants runs span sanity checks on a parsed translation unit:
// 1) the unit span points at sf and lies within its content
// 2) every top-level declaration has a non-empty span inside the unit span
// 3) every node reachable from the unit points at sf and lies within content
func CheckSpanInvariants(b *ast.Builder, unit ast.UnitID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	u := b.Units.Get(unit)
	if u == nil {
		return fmt.Errorf("unit node not found")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if err := inBounds("unit", u.Span, sf.ID, size); err != nil {
		return err
	}
	if len(u.Decls) > 0 && u.Span.Empty() {
		return fmt.Errorf("unit span is empty with %d decls", len(u.Decls))
	}

	for _, id := range u.Decls {
		d := b.Decls.Get(id)
		if d == nil {
			return fmt.Errorf("nil decl for id=%d", id)
		}
		if d.Span.Empty() {
			return fmt.Errorf("empty decl span: %v", d.Span)
		}
		if d.Span.Start < u.Span.Start || d.Span.End > u.Span.End {
			return fmt.Errorf("decl span %v is outside unit span %v", d.Span, u.Span)
		}
	}

	var walkErr error
	b.Walk(ast.UnitRef(unit), func(n ast.NodeRef, _ int) bool {
		if walkErr != nil {
			return false
		}
		sp, ok := spanOf(b, n)
		if !ok {
			walkErr = fmt.Errorf("dangling %s node id=%d", n.Kind, n.ID)
			return false
		}
		walkErr = inBounds(n.Kind.String(), sp, sf.ID, size)
		return walkErr == nil
	})
	return walkErr
}

func inBounds(what string, sp source.Span, file source.FileID, size uint32) error {
	if sp.File != file {
		return fmt.Errorf("%s span points to different file id: got=%d want=%d", what, sp.File, file)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("%s span is inverted: %v", what, sp)
	}
	if sp.End > size {
		return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, size)
	}
	return nil
}

func spanOf(b *ast.Builder, n ast.NodeRef) (source.Span, bool) {
	switch n.Kind {
	case ast.NodeUnit:
		if u := b.Units.Get(ast.UnitID(n.ID)); u != nil {
			return u.Span, true
		}
	case ast.NodeDecl:
		if d := b.Decls.Get(ast.DeclID(n.ID)); d != nil {
			return d.Span, true
		}
	case ast.NodeStmt:
		if s := b.Stmts.Get(ast.StmtID(n.ID)); s != nil {
			return s.Span, true
		}
	case ast.NodeExpr:
		if e := b.Exprs.Get(ast.ExprID(n.ID)); e != nil {
			return e.Span, true
		}
	case ast.NodeType:
		if t := b.Types.Get(ast.TypeID(n.ID)); t != nil {
			return t.Span, true
		}
	case ast.NodeParam:
		if p := b.Decls.Param(ast.ParamID(n.ID)); p != nil {
			return p.Span, true
		}
	case ast.NodeField:
		if f := b.Types.Field(ast.FieldID(n.ID)); f != nil {
			return f.Span, true
		}
	}
	return source.Span{}, false
}
