package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"glsles/internal/extract"
)

const declsSample = `precision mediump float;
struct Light { vec3 color; float power; };
uniform Light light;
attribute vec4 position;
varying vec2 uv;
float shade(in float x);
float shade(in float x) { return x; }
void main() { gl_Position = position; }
`

func declsTable(t *testing.T) (parsed, *extract.Table) {
	t.Helper()
	p := parseSource(t, "d.vert", declsSample)
	p.table.Version = 100
	p.table.Extensions = []extract.Extension{{Name: "GL_OES_standard_derivatives", Behavior: "enable"}}
	return p, p.table
}

func TestBuildDeclsOutput(t *testing.T) {
	p, table := declsTable(t)
	out := BuildDeclsOutput(table, p.fs, p.file, DeclsOpts{Stage: "vertex", Bindings: true})

	if out.File != "d.vert" || out.Stage != "vertex" || out.Version != 100 || !out.HasMain {
		t.Fatalf("header = %+v", out)
	}
	if len(out.Precisions) != 1 || out.Precisions[0].Precision != "mediump" || out.Precisions[0].Type != "float" {
		t.Errorf("precisions = %+v", out.Precisions)
	}

	var got []string
	for _, d := range out.Decls {
		got = append(got, d.Kind+" "+d.Name)
	}
	want := []string{"StructType Light", "Uniform light", "Attribute position", "Varying uv", "Function shade", "Function main"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("decls = %v, want %v", got, want)
	}

	light := out.Decls[1]
	if light.Line != 3 || light.Col != 15 || len(light.Fields) != 2 || light.Fields[0].Name != "color" {
		t.Errorf("light = %+v", light)
	}
	shade := out.Decls[4]
	if !shade.Defined || len(shade.Params) != 1 || shade.Params[0].Qualifiers[0] != "in" {
		t.Errorf("shade = %+v", shade)
	}

	var bindings []string
	for _, b := range out.Bindings {
		bindings = append(bindings, b.Kind+":"+b.Name)
	}
	if strings.Join(bindings, ",") != "uniform:light.color,uniform:light.power,vertex-input:position" {
		t.Errorf("bindings = %v", bindings)
	}
}

func TestFormatDeclsJSONAndYAML(t *testing.T) {
	p, table := declsTable(t)

	var jbuf bytes.Buffer
	if err := FormatDeclsJSON(&jbuf, table, p.fs, p.file, DeclsOpts{}); err != nil {
		t.Fatalf("FormatDeclsJSON: %v", err)
	}
	var fromJSON DeclsOutput
	if err := json.Unmarshal(jbuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json: %v", err)
	}

	var ybuf bytes.Buffer
	if err := FormatDeclsYAML(&ybuf, table, p.fs, p.file, DeclsOpts{}); err != nil {
		t.Fatalf("FormatDeclsYAML: %v", err)
	}
	if !strings.Contains(ybuf.String(), "has_main: true") {
		t.Errorf("yaml missing has_main:\n%s", ybuf.String())
	}
	var fromYAML DeclsOutput
	if err := yaml.Unmarshal(ybuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml: %v", err)
	}

	if len(fromJSON.Decls) != len(fromYAML.Decls) || len(fromJSON.Decls) != 6 {
		t.Fatalf("decls json=%d yaml=%d", len(fromJSON.Decls), len(fromYAML.Decls))
	}
	for i := range fromJSON.Decls {
		j, y := fromJSON.Decls[i], fromYAML.Decls[i]
		if j.Name != y.Name || j.Type != y.Type || j.Line != y.Line {
			t.Errorf("decl %d differs: json=%+v yaml=%+v", i, j, y)
		}
	}
	if fromYAML.Bindings != nil {
		t.Errorf("bindings emitted without option: %+v", fromYAML.Bindings)
	}
}

func TestFormatDeclsPretty(t *testing.T) {
	p, table := declsTable(t)

	var buf bytes.Buffer
	if err := FormatDeclsPretty(&buf, table, p.fs, p.file, DeclsOpts{Stage: "vertex", Bindings: true}); err != nil {
		t.Fatalf("FormatDeclsPretty: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "d.vert (version 100, vertex)" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "  #extension GL_OES_standard_derivatives : enable" || lines[2] != "  precision mediump float" {
		t.Errorf("preamble = %q / %q", lines[1], lines[2])
	}

	// колонки выровнены: позиция имени одинакова во всех строках
	rows := lines[3:9]
	col := strings.Index(rows[0], "Light")
	for _, row := range rows[1:] {
		fields := strings.Fields(row)
		if idx := strings.Index(row, fields[1]); idx != col {
			t.Errorf("name column at %d, want %d: %q", idx, col, row)
		}
	}
	if !strings.Contains(rows[0], "Light { vec3 color; float power; }") {
		t.Errorf("struct row = %q", rows[0])
	}
	if !strings.HasSuffix(rows[5], "8:6") {
		t.Errorf("main row = %q", rows[5])
	}
	if !strings.Contains(buf.String(), "  bindings:\n    uniform      light.color vec3\n") {
		t.Errorf("bindings block missing:\n%s", buf.String())
	}
}
