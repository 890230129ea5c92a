package directive

import (
	"slices"
	"testing"

	"glsles/internal/diag"
	"glsles/internal/lexer"
	"glsles/internal/source"
	"glsles/internal/token"
)

func trivia(text string) token.Trivia {
	return token.Trivia{Kind: token.TriviaDirective, Span: source.Span{Start: 0, End: uint32(len(text))}, Text: text}
}

func TestParse(t *testing.T) {
	tests := []struct {
		text   string
		kind   Kind
		name   string
		number int
		value  string
		args   []string
	}{
		{"#version 100", KindVersion, "version", 100, "", nil},
		{"#  version 300 es", KindVersion, "version", 300, "es", nil},
		{"#version 100 // comment", KindVersion, "version", 100, "", nil},
		{"#extension GL_OES_standard_derivatives : enable", KindExtension, "GL_OES_standard_derivatives", 0, "enable", nil},
		{"#extension all:warn", KindExtension, "all", 0, "warn", nil},
		{"#pragma optimize(off)", KindPragma, "optimize", 0, "", []string{"(", "off", ")"}},
		{"#pragma STDGL invariant(all)", KindPragma, "STDGL", 0, "", []string{"invariant", "(", "all", ")"}},
		{"#line 42", KindLine, "line", 42, "", nil},
		{"#line 7 2", KindLine, "line", 7, "2", nil},
		{"#define HIGH", KindDefine, "HIGH", 0, "", nil},
		{"#define SCALE 2 * x", KindDefine, "SCALE", 0, "", []string{"2", "*", "x"}},
		{"#ifdef GL_ES", KindOther, "ifdef", 0, "", []string{"GL_ES"}},
		{"#endif", KindOther, "endif", 0, "", nil},
		{"#", KindEmpty, "", 0, "", nil},
		{"#   ", KindEmpty, "", 0, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, err := Parse(trivia(tt.text))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if d.Kind != tt.kind || d.Name != tt.name || d.Number != tt.number || d.Value != tt.value {
				t.Errorf("got %v %q %d %q", d.Kind, d.Name, d.Number, d.Value)
			}
			if !slices.Equal(d.Args, tt.args) {
				t.Errorf("args = %q, want %q", d.Args, tt.args)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
	}{
		{"#version", KindVersion},
		{"#version es", KindVersion},
		{"#version 100 es 2", KindVersion},
		{"#extension GL_foo", KindExtension},
		{"#extension : enable", KindExtension},
		{"#line x", KindLine},
		{"#define", KindDefine},
		{"#pragma", KindPragma},
		{"#42", KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, err := Parse(trivia(tt.text))
			if err == nil {
				t.Fatalf("expected an error, got %+v", d)
			}
			if !IsMalformed(err) {
				t.Errorf("error does not wrap ErrMalformed: %v", err)
			}
			if d.Kind != tt.kind || d.Text != tt.text {
				t.Errorf("kept %v %q", d.Kind, d.Text)
			}
		})
	}
}

func TestLineSource(t *testing.T) {
	d, _ := Parse(trivia("#line 10 3"))
	if n, ok := d.Source(); !ok || n != 3 {
		t.Errorf("source = %d %v", n, ok)
	}
	d, _ = Parse(trivia("#line 10"))
	if _, ok := d.Source(); ok {
		t.Error("no source string given")
	}
}

type collected struct {
	set  *Set
	bag  *diag.Bag
	file *source.File
}

func collect(t *testing.T, src string) collected {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.frag", []byte(src)))
	bag := diag.NewBag(20)
	toks := lexer.All(file, lexer.Options{})
	return collected{set: Collect(toks, Options{Reporter: &diag.BagReporter{Bag: bag}}), bag: bag, file: file}
}

func TestCollect(t *testing.T) {
	src := `// leading comment
#version 100
#extension GL_OES_standard_derivatives : enable
#extension GL_EXT_frag_depth : require
precision mediump float;
#ifdef GL_ES
uniform float a;
#endif
void main() {
#pragma debug(on)
}
`
	c := collect(t, src)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items()[0].Message)
	}
	if c.set.Len() != 6 {
		t.Fatalf("directives = %d", c.set.Len())
	}
	if v, ok := c.set.Version(); !ok || v != 100 {
		t.Errorf("version = %d %v", v, ok)
	}
	exts := c.set.Extensions()
	if len(exts) != 2 || exts[0].Name != "GL_OES_standard_derivatives" || exts[1].Value != "require" {
		t.Errorf("extensions = %+v", exts)
	}
	other := c.set.Filter(KindOther)
	if len(other) != 2 || other[0].Name != "ifdef" || other[1].Name != "endif" {
		t.Errorf("other = %+v", other)
	}
	prag := c.set.Filter(KindPragma)[0]
	if got := string(c.file.Content[prag.Span.Start:prag.Span.End]); got != "#pragma debug(on)" {
		t.Errorf("span text = %q", got)
	}
	if len(c.set.Filter()) != 6 {
		t.Error("Filter() should return everything")
	}
}

func TestCollectWarnings(t *testing.T) {
	src := "precision mediump float;\n#version 100\n#extension GL_foo : maybe\n#version\n"
	c := collect(t, src)
	var got []diag.Code
	for _, d := range c.bag.Items() {
		if d.Severity != diag.SevWarning {
			t.Errorf("%s is not a warning", d.Code.ID())
		}
		got = append(got, d.Code)
	}
	want := []diag.Code{diag.DirVersionNotFirst, diag.DirUnknownBehavior, diag.DirMalformed}
	if !slices.Equal(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	if c.set.Len() != 3 {
		t.Errorf("malformed directives are still kept: %d", c.set.Len())
	}
}

func TestDefaultVersion(t *testing.T) {
	c := collect(t, "void main() {}")
	if v, ok := c.set.Version(); ok || v != 100 {
		t.Errorf("version = %d %v", v, ok)
	}
}
