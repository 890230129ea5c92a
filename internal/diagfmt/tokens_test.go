package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"glsles/internal/lexer"
	"glsles/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.vert", []byte("// c\nuniform float a;")))
	toks := lexer.All(file, lexer.Options{})

	tests := []struct {
		name    string
		hidden  bool
		want    []string
		notWant []string
	}{
		{
			name: "compact",
			want: []string{
				`  1: KwUniform       "uniform" at 2:1-2:8 (leading: LineComment, Newline)`,
				`  3: Ident           "a" at 2:15-2:16`,
				`  5: EOF`,
			},
			notWant: []string{"~ LineComment"},
		},
		{
			name:   "hidden",
			hidden: true,
			want: []string{
				`     ~ LineComment     "// c" at 1:1`,
				`  1: KwUniform       "uniform" at 2:1-2:8`,
			},
			notWant: []string{"(leading:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := FormatTokensPretty(&buf, toks, fs, tt.hidden); err != nil {
				t.Fatalf("FormatTokensPretty: %v", err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q in:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("unexpected %q in:\n%s", w, out)
				}
			}
		})
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.vert", []byte("/* x */ float a;")))
	toks := lexer.All(file, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, true); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d tokens, want 4", len(out))
	}
	if out[0].Kind != "KwFloat" || out[0].Channel != "default" {
		t.Errorf("first token = %+v", out[0])
	}
	if len(out[0].Leading) == 0 || out[0].Leading[0].Kind != "BlockComment" || out[0].Leading[0].Text != "/* x */" {
		t.Errorf("leading trivia = %+v", out[0].Leading)
	}
	if out[3].Kind != "EOF" {
		t.Errorf("last token = %q", out[3].Kind)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, false); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	if strings.Contains(buf.String(), "leading") {
		t.Errorf("trivia emitted without hidden:\n%s", buf.String())
	}
}
