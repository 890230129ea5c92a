package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"glsles/internal/diag"
	"glsles/internal/lexer"
	"glsles/internal/source"
	"glsles/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return out
}

func lexAll(t *testing.T, input string, opts lexer.Options) ([]token.Token, *testReporter, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.frag", []byte(input)))
	rep := &testReporter{}
	opts.Reporter = rep
	return lexer.All(file, opts), rep, file
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, rep, _ := lexAll(t, input, lexer.Options{})
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", input, rep.messages())
	}
	want = append(want, token.EOF)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestDeclarations(t *testing.T) {
	expectKinds(t, "uniform sampler2D tex;",
		token.KwUniform, token.KwSampler2D, token.Ident, token.Semicolon)
	expectKinds(t, "attribute vec3 position;",
		token.KwAttribute, token.KwVec3, token.Ident, token.Semicolon)
	expectKinds(t, "precision mediump float;",
		token.KwPrecision, token.KwMediump, token.KwFloat, token.Semicolon)
	expectKinds(t, "invariant varying highp vec4 v;",
		token.KwInvariant, token.KwVarying, token.KwHighp, token.KwVec4, token.Ident, token.Semicolon)
	expectKinds(t, "void main(void){}",
		token.KwVoid, token.KwMain, token.LParen, token.KwVoid, token.RParen, token.LBrace, token.RBrace)
}

func TestKeywordsAreWholeWords(t *testing.T) {
	toks := expectKinds(t, "uniforms vec3x mainLoop _if if",
		token.Ident, token.Ident, token.Ident, token.Ident, token.KwIf)
	if toks[2].Text != "mainLoop" {
		t.Errorf("text = %q", toks[2].Text)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"42", token.IntLit},
		{"017", token.IntLit},
		{"0x1F", token.IntLit},
		{"0XaB", token.IntLit},
		{"1.0", token.FloatLit},
		{"1.", token.FloatLit},
		{".5", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5E-3", token.FloatLit},
		{".5e+2", token.FloatLit},
		{"09.5", token.FloatLit},
		{"true", token.BoolLit},
		{"false", token.BoolLit},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks := expectKinds(t, tt.src, tt.kind)
			if toks[0].Text != tt.src {
				t.Errorf("text = %q, want %q", toks[0].Text, tt.src)
			}
		})
	}
}

func TestBadNumbers(t *testing.T) {
	for _, src := range []string{"0x", "1e", "09", "1.5e+"} {
		t.Run(src, func(t *testing.T) {
			toks, rep, _ := lexAll(t, src, lexer.Options{})
			if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
				t.Fatalf("diagnostics = %v", rep.messages())
			}
			if !toks[0].Kind.IsLiteral() {
				t.Errorf("still expected a literal token, got %v", toks[0].Kind)
			}
		})
	}
}

func TestOperatorsGreedy(t *testing.T) {
	expectKinds(t, "a<=b>=c==d!=e&&f^^g||h",
		token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.EqEq,
		token.Ident, token.BangEq, token.Ident, token.AndAnd, token.Ident, token.XorXor,
		token.Ident, token.OrOr, token.Ident)
	expectKinds(t, "i++ --j x+=1 y-=2 z*=3 w/=4",
		token.Ident, token.PlusPlus, token.MinusMinus, token.Ident,
		token.Ident, token.PlusAssign, token.IntLit, token.Ident, token.MinusAssign, token.IntLit,
		token.Ident, token.StarAssign, token.IntLit, token.Ident, token.SlashAssign, token.IntLit)
	expectKinds(t, "a%b ~c d&e f|g h^i j%=2",
		token.Ident, token.Percent, token.Ident, token.Tilde, token.Ident,
		token.Ident, token.Amp, token.Ident, token.Ident, token.Pipe, token.Ident,
		token.Ident, token.Caret, token.Ident, token.Ident, token.PercentAssign, token.IntLit)
	expectKinds(t, "a<<b>>c d<<=1 e>>=2 f&=g h|=i j^=k",
		token.Ident, token.ShiftLeft, token.Ident, token.ShiftRight, token.Ident,
		token.Ident, token.ShlAssign, token.IntLit, token.Ident, token.ShrAssign, token.IntLit,
		token.Ident, token.AmpAssign, token.Ident, token.Ident, token.PipeAssign, token.Ident,
		token.Ident, token.CaretAssign, token.Ident)
	expectKinds(t, "a<<", token.Ident, token.ShiftLeft)
	expectKinds(t, "s.xyz[0] ? 1 : 2",
		token.Ident, token.Dot, token.Ident, token.LBracket, token.IntLit, token.RBracket,
		token.Question, token.IntLit, token.Colon, token.IntLit)
}

func TestHiddenChannel(t *testing.T) {
	src := "#version 100\n// line\nuniform /* inline\n*/ float\tx;\n"
	toks := expectKinds(t, src, token.KwUniform, token.KwFloat, token.Ident, token.Semicolon)

	var lead []token.TriviaKind
	for _, tr := range toks[0].Leading {
		lead = append(lead, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaDirective, token.TriviaNewline, token.TriviaLineComment, token.TriviaNewline}
	if fmt.Sprint(lead) != fmt.Sprint(want) {
		t.Fatalf("leading = %v, want %v", lead, want)
	}
	if toks[0].Leading[0].Text != "#version 100" {
		t.Errorf("directive text = %q", toks[0].Leading[0].Text)
	}
	if toks[1].Leading[1].Kind != token.TriviaBlockComment || toks[1].Leading[1].Text != "/* inline\n*/" {
		t.Errorf("block comment trivia = %+v", toks[1].Leading)
	}
	// trailing newline ends up on EOF
	eof := toks[len(toks)-1]
	if len(eof.Leading) != 1 || eof.Leading[0].Kind != token.TriviaNewline {
		t.Errorf("EOF leading = %+v", eof.Leading)
	}
}

func TestBlockCommentIsNonGreedy(t *testing.T) {
	expectKinds(t, "/* a */ x /* b */", token.Ident)
}

func TestUnterminatedBlockComment(t *testing.T) {
	src := "uniform float x; /* never closed"
	toks, rep, file := lexAll(t, src, lexer.Options{})

	got := kinds(toks)
	want := []token.Kind{token.KwUniform, token.KwFloat, token.Ident, token.Semicolon, token.Invalid, token.EOF}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if len(rep.diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", rep.messages())
	}
	d := rep.diagnostics[0]
	if d.Code != diag.LexUnterminatedBlockComment || d.Severity != diag.SevError {
		t.Fatalf("got %s", d.Code.ID())
	}
	end := uint32(len(file.Content))
	if d.Primary.Start != end || d.Primary.End != end {
		t.Errorf("diagnostic not at end of input: %v", d.Primary)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("notes = %+v", d.Notes)
	}
	note := d.Notes[0].Span
	if note.File != file.ID || src[note.Start:note.End] != "/*" {
		t.Errorf("note span %v does not cover the opening /*", note)
	}
}

func TestUnknownCharacterEndsStream(t *testing.T) {
	toks, rep, _ := lexAll(t, "float a; @ float b;", lexer.Options{})
	got := kinds(toks)
	want := []token.Kind{token.KwFloat, token.Ident, token.Semicolon, token.Invalid, token.EOF}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %v", rep.messages())
	}
	if toks[3].Text != "@" {
		t.Errorf("invalid token text = %q", toks[3].Text)
	}
}

func TestUnknownCharacterSkipMode(t *testing.T) {
	toks, rep, _ := lexAll(t, "float a; $ float b;", lexer.Options{SkipUnknown: true})
	got := kinds(toks)
	want := []token.Kind{token.KwFloat, token.Ident, token.Semicolon, token.Invalid,
		token.KwFloat, token.Ident, token.Semicolon, token.EOF}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if len(rep.diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", rep.messages())
	}
}

func TestUnicodeOutsideComment(t *testing.T) {
	toks, rep, _ := lexAll(t, "float π;", lexer.Options{})
	if toks[1].Kind != token.Invalid || toks[1].Text != "π" {
		t.Fatalf("got %v %q", toks[1].Kind, toks[1].Text)
	}
	if !strings.Contains(rep.diagnostics[0].Message, "π") {
		t.Errorf("message = %q", rep.diagnostics[0].Message)
	}
}

func TestRoundTripSignificantCharacters(t *testing.T) {
	src := `
// header comment
#version 100
precision mediump float;
uniform sampler2D tex; /* sampler */
varying vec2 uv;
void main() {
	gl_FragColor = texture2D(tex, uv) * 0.5;
}
`
	toks, rep, _ := lexAll(t, src, lexer.Options{})
	if len(rep.diagnostics) != 0 {
		t.Fatalf("diagnostics: %v", rep.messages())
	}

	// Every significant byte is covered by a token span; every other byte by trivia.
	var sig, rebuilt strings.Builder
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			rebuilt.WriteString(tr.Text)
		}
		rebuilt.WriteString(tok.Text)
		sig.WriteString(tok.Text)
	}
	if rebuilt.String() != src {
		t.Fatalf("tokens+trivia do not reproduce the source:\n%q\n%q", rebuilt.String(), src)
	}

	// Relexing the significant-only reconstruction gives the same token kinds.
	again, _, _ := lexAll(t, token.Reconstruct(toks), lexer.Options{})
	if fmt.Sprint(kinds(again)) != fmt.Sprint(kinds(toks)) {
		t.Fatalf("reconstruction changed token kinds")
	}
	if strings.ContainsAny(sig.String(), " \t\n#") {
		t.Fatalf("hidden characters leaked into tokens: %q", sig.String())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("p.vert", []byte("a b"))), lexer.Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("second peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	for range 3 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("expected EOF forever, got %v", n.Kind)
		}
	}
}
