package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("shader.frag", []byte("void main() {}"), 0)
	id2 := fs.Add("shader.frag", []byte("void main() { discard; }"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("shader.frag")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "void main() {}" {
		t.Errorf("old content lost: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.vert", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestResolveAndPosition(t *testing.T) {
	fs := NewFileSet()
	src := "uniform float x;\nattribute vec3 p;\n"
	id := fs.AddVirtual("s.vert", []byte(src))

	tests := []struct {
		off       uint32
		line, col uint32
	}{
		{0, 1, 1},
		{8, 1, 9},
		{16, 1, 17}, // the newline itself
		{17, 2, 1},
		{27, 2, 11},
		{uint32(len(src)), 3, 1},
	}
	for _, tt := range tests {
		pos := fs.Position(Span{File: id, Start: tt.off, End: tt.off})
		if pos.Line != tt.line || pos.Col != tt.col || pos.Offset != tt.off {
			t.Errorf("Position(%d) = %+v, want %d:%d", tt.off, pos, tt.line, tt.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("s.frag", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.frag")
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("float a;\r\nfloat b;\r\n")...)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "float a;\nfloat b;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF", f.Flags)
	}
	if got := f.FormatPath("relative", dir); got != "bom.frag" {
		t.Errorf("FormatPath(relative) = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "bom.frag" {
		t.Errorf("FormatPath(basename) = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.vert")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
