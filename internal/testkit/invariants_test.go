package testkit

import (
	"context"
	"testing"

	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/lexer"
	"glsles/internal/parser"
	"glsles/internal/source"
)

func parse(t *testing.T, src string) (*ast.Builder, ast.UnitID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.frag", []byte(src)))
	rep := &diag.BagReporter{Bag: diag.NewBag(0)}
	toks := lexer.All(file, lexer.Options{Reporter: rep, SkipUnknown: true})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseTokens(context.Background(), fs, file, toks, b, parser.Options{Reporter: rep})
	return b, res.Unit, file
}

func TestCheckSpanInvariants(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"globals", "precision mediump float;\nuniform vec4 c[2];\nstruct S { float a, b[3]; } s;\n"},
		{"function", "float f(in float x) { return x * 2.0; }\nvoid main() { for (int i = 0; i < 2; i++) gl_FragColor = vec4(f(1.0)); }\n"},
		{"recovered", "uniform float x\nvoid main() { y = ; }\nvarying vec2 uv;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, unit, file := parse(t, tt.src)
			if err := CheckSpanInvariants(b, unit, file); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestCheckSpanInvariantsDetectsBadSpan(t *testing.T) {
	b, unit, file := parse(t, "uniform float x;\n")
	u := b.Units.Get(unit)
	b.Decls.Get(u.Decls[0]).Span.End = 1 << 20
	if err := CheckSpanInvariants(b, unit, file); err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
	if err := CheckSpanInvariants(nil, unit, file); err == nil {
		t.Fatal("expected nil builder error")
	}
}
