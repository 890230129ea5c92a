package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"glsles/internal/diag"
	"glsles/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/shaders/basic.vert", []byte("float a = 1.0 @;\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 14, End: 15}, "unknown character '@'"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/shaders/basic.vert:1:15:"},
		{"Basename only", PathModeBasename, "basic.vert:1:15:"},
		{"Auto keeps short virtual path", PathModeAuto, "/home/user/project/shaders/basic.vert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1001:") {
				t.Errorf("expected severity and code, got:\n%s", output)
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	src := "float a;\nfloat b = 1.0 @@;\n"
	fileID := fs.AddVirtual("u.frag", []byte(src))
	start := uint32(strings.Index(src, "@@"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: start, End: start + 2}, "bad"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("too few lines:\n%s", buf.String())
	}
	if lines[0] != "u.frag:2:15: ERROR LEX1001: bad" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "2 | float b = 1.0 @@;" {
		t.Errorf("source line = %q", lines[1])
	}
	if want := "  | " + strings.Repeat(" ", 14) + "^~"; lines[2] != want {
		t.Errorf("underline = %q, want %q", lines[2], want)
	}
}

func TestPrettyContextAndTabs(t *testing.T) {
	fs := source.NewFileSet()
	src := "void main() {\n\tx = 1 $;\n}\n"
	fileID := fs.AddVirtual("t.vert", []byte(src))
	start := uint32(strings.Index(src, "$"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: start, End: start + 1}, "bad"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	out := buf.String()
	if !strings.Contains(out, "1 | void main() {") {
		t.Errorf("context line missing:\n%s", out)
	}
	if !strings.Contains(out, "  | \t      ^") {
		t.Errorf("tab should be kept in underline padding:\n%q", out)
	}
}

func TestPrettyNotesAndEmptySpan(t *testing.T) {
	fs := source.NewFileSet()
	src := "f(1.0\n"
	fileID := fs.AddVirtual("n.vert", []byte(src))

	d := diag.New(diag.SevError, diag.SynExpectSemicolon, source.Span{File: fileID, Start: 5, End: 5}, "expected ';'").
		WithNote(source.Span{File: fileID, Start: 1, End: 2}, "to match this '('")
	bag := diag.NewBag(10)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()
	if !strings.Contains(out, "note: n.vert:1:2: to match this '('") {
		t.Errorf("note missing:\n%s", out)
	}
	// пустой span всё равно получает одну каретку
	if !strings.Contains(out, "  |      ^\n") {
		t.Errorf("caret for empty span missing:\n%q", out)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyWidthClipsLongLines(t *testing.T) {
	fs := source.NewFileSet()
	src := "uniform float aVeryLongUniformNameThatKeepsGoing;\n"
	fileID := fs.AddVirtual("w.vert", []byte(src))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.ExtDuplicateGlobal, source.Span{File: fileID, Start: 0, End: 7}, "dup"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Width: 12})
	if !strings.Contains(buf.String(), "1 | uniform f...\n") {
		t.Errorf("line not clipped:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "WARNING EXT3001:") {
		t.Errorf("warning header missing:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.vert", []byte("x\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "bad"))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("escape codes with colour off:\n%q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("no escape codes with colour on:\n%q", colored.String())
	}
}
