package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"glsles/internal/diag"
	"glsles/internal/extract"
	"glsles/internal/token"
)

const fragSample = `#version 100
#extension GL_OES_standard_derivatives : enable
precision mediump float;
uniform vec4 tint;
varying vec2 uv;
void main() { gl_FragColor = tint; }
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func entryNames(table *extract.Table) []string {
	var names []string
	for _, e := range table.Entries() {
		names = append(names, e.Name)
	}
	return names
}

func TestStageFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Stage
	}{
		{"a.vert", StageVertex},
		{"dir/b.VS", StageVertex},
		{"c.frag", StageFragment},
		{"d.fs", StageFragment},
		{"e.geom", StageGeometry},
		{"f.glsl", StageUnknown},
		{"noext", StageUnknown},
	}
	for _, tt := range tests {
		if got := StageFromPath(tt.path); got != tt.want {
			t.Errorf("StageFromPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestAnalyzeSource(t *testing.T) {
	res, err := AnalyzeSource(context.Background(), "s.frag", []byte(fragSample), Options{MaxDiagnostics: 50})
	if err != nil {
		t.Fatalf("AnalyzeSource: %v", err)
	}
	if res.Bag.Len() != 0 {
		for _, d := range res.Bag.Items() {
			t.Errorf("[%s] %s", d.Code.ID(), d.Message)
		}
	}
	if res.Stage != StageFragment || res.Cached || res.Incomplete {
		t.Errorf("stage=%s cached=%v incomplete=%v", res.Stage, res.Cached, res.Incomplete)
	}
	if got := entryNames(res.Table); !slices.Equal(got, []string{"tint", "uv", "main"}) {
		t.Errorf("entries = %v", got)
	}
	if res.Table.Version != 100 || len(res.Table.Extensions) != 1 ||
		res.Table.Extensions[0].Name != "GL_OES_standard_derivatives" || res.Table.Extensions[0].Behavior != "enable" {
		t.Errorf("version/extensions = %d %+v", res.Table.Version, res.Table.Extensions)
	}
	if res.Tokens[len(res.Tokens)-1].Kind != token.EOF || res.Builder == nil || res.Directives.Len() != 2 {
		t.Errorf("pipeline artifacts missing")
	}

	var phases []string
	for _, p := range res.Timing.Phases {
		phases = append(phases, p.Name)
	}
	if strings.Join(phases, ",") != "lex,parse,directives,extract" {
		t.Errorf("phases = %v", phases)
	}
}

func TestAnalyzeReportsAllStages(t *testing.T) {
	src := "#version 100 es garbage\nuniform float a;\nuniform int a;\nfloat b = ;\n"
	res, err := AnalyzeSource(context.Background(), "bad.glsl", []byte(src), Options{RequireMain: true})
	if err != nil {
		t.Fatal(err)
	}
	kinds := map[diag.Kind]bool{}
	for _, d := range res.Bag.Items() {
		kinds[d.Code.Kind()] = true
	}
	if !kinds[diag.KindSyntactic] || !kinds[diag.KindExtraction] {
		t.Errorf("kinds = %v", kinds)
	}
	if !res.Bag.HasErrors() {
		t.Error("expected errors")
	}
	// повтор uniform a отбрасывается, первая декларация остаётся
	if a, ok := res.Table.Lookup("a"); !ok || a.Type.Name != "float" {
		t.Errorf("lookup a = %+v %v", a, ok)
	}
}

func TestAnalyzeStopsAtLexError(t *testing.T) {
	src := "uniform float a;\n@\nuniform float b;\n"
	res, err := AnalyzeSource(context.Background(), "lex.frag", []byte(src), Options{})
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexUnknownChar {
		for _, d := range items {
			t.Errorf("[%s] %s", d.Code.ID(), d.Message)
		}
		t.Fatal("want exactly one LexUnknownChar")
	}
	if _, ok := res.Table.Lookup("a"); !ok {
		t.Error("declaration before the bad byte is missing")
	}
	if b, ok := res.Table.Lookup("b"); ok {
		t.Errorf("declaration after the bad byte was extracted: %+v", b)
	}
	n := len(res.Tokens)
	if n < 2 || res.Tokens[n-2].Kind != token.Invalid || res.Tokens[n-1].Kind != token.EOF {
		t.Errorf("stream must end with Invalid, EOF: %v", res.Tokens)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	if _, err := Analyze(context.Background(), filepath.Join(t.TempDir(), "nope.vert"), Options{}); err == nil {
		t.Fatal("expected load error")
	}
}

func TestParseAndTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.vert")
	writeFile(t, path, "attribute vec4 pos;\nvoid main() { gl_Position = pos; }\n")

	res, err := Parse(context.Background(), path, 10)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Builder == nil || res.Table != nil || res.Bag.Len() != 0 {
		t.Errorf("parse result = %+v", res)
	}

	tr := TokenizeSource("t.frag", []byte("float a = 1.0; @ b;"), 10)
	if tr.Tokens[len(tr.Tokens)-1].Kind != token.EOF {
		t.Fatalf("stream does not end with EOF")
	}
	if tr.Bag.Len() != 1 || tr.Bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("diagnostics = %v", tr.Bag.Items())
	}
	// лексер продолжает после неизвестного символа
	last := tr.Tokens[len(tr.Tokens)-3]
	if last.Text != "b" {
		t.Errorf("token before ';' = %q", last.Text)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "light.vert")
	writeFile(t, path, "struct L { vec3 c; float p; };\nuniform L light[2];\nvec3 f(in vec3 x, float y);\n")

	opts := Options{RequireMain: true, Cache: cache}
	first, err := Analyze(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first run cannot be cached")
	}
	second, err := Analyze(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Builder != nil {
		t.Fatalf("second run cached=%v", second.Cached)
	}

	a, b := first.Table.Entries(), second.Table.Entries()
	if len(a) != len(b) {
		t.Fatalf("entries %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Kind != b[i].Kind || a[i].Type.String() != b[i].Type.String() ||
			a[i].Span != b[i].Span || a[i].Qualifiers != b[i].Qualifiers {
			t.Errorf("entry %d: %+v vs %+v", i, a[i], b[i])
		}
	}
	light, _ := second.Table.Lookup("light")
	if len(light.Type.Fields) != 2 || light.Type.Fields[1].Span.File != second.File.ID {
		t.Errorf("restored fields = %+v", light.Type.Fields)
	}

	codes := func(r *Result) []diag.Code {
		var out []diag.Code
		for _, d := range r.Bag.Items() {
			out = append(out, d.Code)
		}
		return out
	}
	if !slices.Equal(codes(first), codes(second)) || !slices.Contains(codes(second), diag.ExtNoMain) {
		t.Errorf("diagnostics %v vs %v", codes(first), codes(second))
	}

	// другие опции дают другой ключ
	third, err := Analyze(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached {
		t.Error("RequireMain must be part of the cache key")
	}

	keep, err := Analyze(context.Background(), path, Options{RequireMain: true, Cache: cache, KeepAST: true})
	if err != nil {
		t.Fatal(err)
	}
	if keep.Cached || keep.Builder == nil {
		t.Error("KeepAST must bypass the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	again, _ := Analyze(context.Background(), path, opts)
	if again.Cached {
		t.Error("cache not dropped")
	}
}

func TestDiskCacheCorruptEntryIsWarning(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "x.frag")
	writeFile(t, path, "uniform float a;\n")
	first, err := Analyze(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey(first.File, Options{Cache: cache})
	writeFile(t, cache.pathFor(key), "not msgpack at all")

	res, err := Analyze(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached || len(res.Bag.Filter(diag.KindIO)) != 1 {
		t.Errorf("cached=%v diags=%v", res.Cached, res.Bag.Items())
	}
	if res.Bag.HasErrors() {
		t.Error("cache failure must not be an error")
	}
}

type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func TestAnalyzeDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.vert"), "attribute vec4 p;\nvoid main() { gl_Position = p; }\n")
	writeFile(t, filepath.Join(root, "sub", "b.frag"), "precision mediump float;\nuniform float x\n")
	writeFile(t, filepath.Join(root, "notes.txt"), "not a shader")
	writeFile(t, filepath.Join(root, ".hidden", "c.vert"), "void main() {}\n")

	sink := &collectSink{}
	report, err := AnalyzeDir(context.Background(), []string{root}, DirOptions{
		Extensions: []string{".vert", ".frag"},
		Jobs:       2,
		Options:    Options{MaxDiagnostics: 20, Progress: sink},
	})
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if len(report.Files) != 2 {
		t.Fatalf("files = %d", len(report.Files))
	}
	a, b := report.Files[0], report.Files[1]
	if filepath.Base(a.Path) != "a.vert" || filepath.Base(b.Path) != "b.frag" {
		t.Errorf("order = %s, %s", a.Path, b.Path)
	}
	if a.Result.Stage != StageVertex || a.Bag.HasErrors() {
		t.Errorf("a.vert = %s %v", a.Result.Stage, a.Bag.Items())
	}
	if !b.Bag.HasErrors() || !report.HasErrors() {
		t.Error("b.frag should fail to parse")
	}

	// события одного файла идут из одной горутины: последнее и есть итог
	final := map[string]Status{}
	for _, e := range sink.events {
		if e.Phase == PhaseExtract {
			final[filepath.Base(e.File)] = e.Status
		}
	}
	if final["a.vert"] != StatusDone || final["b.frag"] != StatusError {
		t.Errorf("final statuses = %v", final)
	}
	if len(report.Timing.Phases) == 0 {
		t.Error("timing missing")
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	fs, results, err := TokenizeDir(context.Background(), []string{t.TempDir()}, DirOptions{Extensions: []string{".vert"}})
	if err != nil || results != nil || fs == nil {
		t.Errorf("empty dir: %v %v %v", fs, results, err)
	}
}

func TestAnalyzeDirCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.vert"), "void main() {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := AnalyzeDir(ctx, []string{root}, DirOptions{Extensions: []string{".vert"}}); err == nil {
		t.Error("expected context error")
	}
}
