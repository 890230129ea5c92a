package extract_test

import (
	"context"
	"testing"

	"glsles/internal/ast"
	"glsles/internal/diag"
	"glsles/internal/extract"
	"glsles/internal/lexer"
	"glsles/internal/parser"
	"glsles/internal/source"
)

type extracted struct {
	table *extract.Table
	errs  []extract.ExtractError
	bag   *diag.Bag
	b     *ast.Builder
	unit  ast.UnitID
	src   string
}

func run(t *testing.T, src string, opts extract.Options) extracted {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.vert", []byte(src)))
	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(context.Background(), fs, lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	opts.Reporter = rep
	table, errs := extract.Extract(b, res.Unit, opts)
	return extracted{table: table, errs: errs, bag: bag, b: b, unit: res.Unit, src: src}
}

// clean runs extraction and fails on any diagnostic.
func clean(t *testing.T, src string) *extract.Table {
	t.Helper()
	x := run(t, src, extract.Options{})
	if x.bag.Len() != 0 {
		for _, d := range x.bag.Items() {
			t.Errorf("[%s] %s", d.Code.ID(), d.Message)
		}
		t.FailNow()
	}
	return x.table
}

func names(entries []extract.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func errCodes(errs []extract.ExtractError) []diag.Code {
	out := make([]diag.Code, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}
