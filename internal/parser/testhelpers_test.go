package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/lexer"
	"glsles/internal/source"
)

type parsed struct {
	b      *ast.Builder
	res    Result
	bag    *diag.Bag
	fs     *source.FileSet
	unit   *ast.TranslationUnit
	source string
}

func parseWith(t *testing.T, src string, opts Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.frag", []byte(src)))
	bag := diag.NewBag(100)
	opts.Reporter = &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(context.Background(), fs, lx, b, opts)
	return parsed{b: b, res: res, bag: bag, fs: fs, unit: b.Units.Get(res.Unit), source: src}
}

// parseOK parses src and fails the test on any diagnostic.
func parseOK(t *testing.T, src string) parsed {
	t.Helper()
	p := parseWith(t, src, Options{})
	if p.bag.Len() != 0 || len(p.res.Errors) != 0 {
		t.Fatalf("unexpected diagnostics for:\n%s\n%s", src, diagnosticsSummary(p.bag))
	}
	return p
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func (p parsed) decl(t *testing.T, i int) ast.DeclID {
	t.Helper()
	if i >= len(p.unit.Decls) {
		t.Fatalf("want decl #%d, unit has %d", i, len(p.unit.Decls))
	}
	return p.unit.Decls[i]
}

// body returns the statements of the first function definition.
func (p parsed) body(t *testing.T) []ast.StmtID {
	t.Helper()
	for _, d := range p.unit.Decls {
		if fn, ok := p.b.Decls.Function(d); ok && fn.IsDefinition() {
			return p.b.Stmts.Block(fn.Body).Stmts
		}
	}
	t.Fatal("no function definition")
	return nil
}

// exprOf parses `void main() { <src>; }` and returns the statement expression.
func exprOf(t *testing.T, src string) (parsed, ast.ExprID) {
	t.Helper()
	p := parseOK(t, "void main() { "+src+"; }")
	stmts := p.body(t)
	if len(stmts) != 1 {
		t.Fatalf("%q: %d statements", src, len(stmts))
	}
	es := p.b.Stmts.Expr(stmts[0])
	if es == nil {
		t.Fatalf("%q: statement is %v, not an expression", src, p.b.Stmts.Get(stmts[0]).Kind)
	}
	return p, es.Expr
}

// sexpr renders an expression tree as an s-expression.
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return d.Name
	case ast.ExprLit:
		d, _ := b.Exprs.Literal(id)
		return d.Text
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		parts := []string{"call", d.Callee()}
		if d.Void {
			parts = append(parts, "void")
		}
		for _, a := range d.Args {
			parts = append(parts, sexpr(b, a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprIndex:
		d, _ := b.Exprs.Index(id)
		return "([] " + sexpr(b, d.Base) + " " + sexpr(b, d.Index) + ")"
	case ast.ExprField:
		d, _ := b.Exprs.Field(id)
		return "(. " + sexpr(b, d.Base) + " " + d.Field + ")"
	case ast.ExprPostfix:
		d, _ := b.Exprs.Postfix(id)
		return "(post" + d.Op.String() + " " + sexpr(b, d.Operand) + ")"
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return "(" + d.Op.String() + " " + sexpr(b, d.Operand) + ")"
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return "(" + d.Op.String() + " " + sexpr(b, d.Left) + " " + sexpr(b, d.Right) + ")"
	case ast.ExprTernary:
		d, _ := b.Exprs.Ternary(id)
		return "(? " + sexpr(b, d.Cond) + " " + sexpr(b, d.Then) + " " + sexpr(b, d.Else) + ")"
	case ast.ExprAssign:
		d, _ := b.Exprs.Assign(id)
		return "(" + d.Op.String() + " " + sexpr(b, d.Target) + " " + sexpr(b, d.Value) + ")"
	case ast.ExprComma:
		d, _ := b.Exprs.Comma(id)
		parts := []string{","}
		for _, it := range d.Items {
			parts = append(parts, sexpr(b, it))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprGroup:
		d, _ := b.Exprs.Group(id)
		return "(group " + sexpr(b, d.Inner) + ")"
	}
	return "?"
}

// countTreeNodes walks the unit and checks it reaches every allocated node
// exactly once: no orphans from failed trials, no shared children.
func countTreeNodes(t *testing.T, p parsed) {
	t.Helper()
	seen := map[ast.NodeRef]int{}
	p.b.Walk(ast.UnitRef(p.res.Unit), func(n ast.NodeRef, _ int) bool {
		seen[n]++
		return true
	})
	for n, c := range seen {
		if c != 1 {
			t.Errorf("%v reached %d times", n, c)
		}
	}
	allocated := int(p.b.Units.Arena.Len() + p.b.Decls.Arena.Len() + p.b.Decls.Params.Len() +
		p.b.Stmts.Arena.Len() + p.b.Exprs.Arena.Len() + p.b.Types.Arena.Len() + p.b.Types.Fields.Len())
	if len(seen) != allocated {
		t.Errorf("tree reaches %d nodes, arenas hold %d", len(seen), allocated)
	}
}
