package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"glsles/internal/extract"
	"glsles/internal/source"
)

// FieldOutput is one struct member in a declaration dump.
type FieldOutput struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// ParamOutput is one function parameter in a declaration dump.
type ParamOutput struct {
	Name       string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string   `json:"type" yaml:"type"`
	Qualifiers []string `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
}

// DeclOutput is one declaration table entry.
type DeclOutput struct {
	Name       string        `json:"name" yaml:"name"`
	Kind       string        `json:"kind" yaml:"kind"`
	Type       string        `json:"type" yaml:"type"`
	Qualifiers []string      `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
	Line       uint32        `json:"line" yaml:"line"`
	Col        uint32        `json:"col" yaml:"col"`
	Defined    bool          `json:"defined,omitempty" yaml:"defined,omitempty"`
	Fields     []FieldOutput `json:"fields,omitempty" yaml:"fields,omitempty"`
	Params     []ParamOutput `json:"params,omitempty" yaml:"params,omitempty"`
}

// PrecisionOutput is one `precision p type;` statement.
type PrecisionOutput struct {
	Type      string `json:"type" yaml:"type"`
	Precision string `json:"precision" yaml:"precision"`
}

// ExtensionOutput is one `#extension` line.
type ExtensionOutput struct {
	Name     string `json:"name" yaml:"name"`
	Behavior string `json:"behavior" yaml:"behavior"`
}

// BindingOutput is one bindable name.
type BindingOutput struct {
	Name  string `json:"name" yaml:"name"`
	Kind  string `json:"kind" yaml:"kind"`
	Type  string `json:"type" yaml:"type"`
	Entry string `json:"entry" yaml:"entry"`
}

// DeclsOutput is the root of a machine-readable table dump.
type DeclsOutput struct {
	File       string            `json:"file" yaml:"file"`
	Stage      string            `json:"stage,omitempty" yaml:"stage,omitempty"`
	Version    int               `json:"version" yaml:"version"`
	Extensions []ExtensionOutput `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Precisions []PrecisionOutput `json:"precisions,omitempty" yaml:"precisions,omitempty"`
	Decls      []DeclOutput      `json:"decls" yaml:"decls"`
	Bindings   []BindingOutput   `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	HasMain    bool              `json:"has_main" yaml:"has_main"`
}

// DeclsOpts configures table output.
type DeclsOpts struct {
	PathMode PathMode
	Stage    string
	Bindings bool // добавить плоский список привязок
}

// BuildDeclsOutput converts a table; file is used for path and positions.
func BuildDeclsOutput(t *extract.Table, fs *source.FileSet, file source.FileID, opts DeclsOpts) DeclsOutput {
	out := DeclsOutput{
		File:    formatPath(fs, file, opts.PathMode),
		Stage:   opts.Stage,
		Version: t.Version,
		Decls:   make([]DeclOutput, 0, t.Len()),
		HasMain: t.HasMain(),
	}
	for _, ext := range t.Extensions {
		out.Extensions = append(out.Extensions, ExtensionOutput{Name: ext.Name, Behavior: ext.Behavior})
	}
	for _, p := range t.Precisions() {
		out.Precisions = append(out.Precisions, PrecisionOutput{Type: p.Type, Precision: p.Precision.String()})
	}
	for _, e := range t.Entries() {
		out.Decls = append(out.Decls, buildDecl(e, fs))
	}
	if opts.Bindings {
		for _, b := range extract.Bindings(t) {
			out.Bindings = append(out.Bindings, BindingOutput{
				Name:  b.Name,
				Kind:  b.Kind.String(),
				Type:  b.Type.String(),
				Entry: b.Entry,
			})
		}
	}
	return out
}

func buildDecl(e extract.Entry, fs *source.FileSet) DeclOutput {
	start, _ := fs.Resolve(e.NameSpan)
	d := DeclOutput{
		Name:       e.Name,
		Kind:       e.Kind.String(),
		Type:       e.Type.String(),
		Qualifiers: e.Qualifiers.Names(),
		Line:       start.Line,
		Col:        start.Col,
		Defined:    e.Defined,
	}
	for _, f := range e.Type.Fields {
		d.Fields = append(d.Fields, FieldOutput{Name: f.Name, Type: f.Type.String()})
	}
	for _, p := range e.Type.Params {
		d.Params = append(d.Params, ParamOutput{Name: p.Name, Type: p.Type.String(), Qualifiers: p.Qualifiers.Names()})
	}
	return d
}

// FormatDeclsJSON выводит таблицу деклараций в JSON.
func FormatDeclsJSON(w io.Writer, t *extract.Table, fs *source.FileSet, file source.FileID, opts DeclsOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDeclsOutput(t, fs, file, opts))
}

// FormatDeclsYAML выводит таблицу деклараций в YAML.
func FormatDeclsYAML(w io.Writer, t *extract.Table, fs *source.FileSet, file source.FileID, opts DeclsOpts) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildDeclsOutput(t, fs, file, opts)); err != nil {
		return err
	}
	return encoder.Close()
}

// FormatDeclsPretty печатает таблицу колонками: kind, name, type, qualifiers, position.
func FormatDeclsPretty(w io.Writer, t *extract.Table, fs *source.FileSet, file source.FileID, opts DeclsOpts) error {
	out := BuildDeclsOutput(t, fs, file, opts)

	header := fmt.Sprintf("%s (version %d", out.File, out.Version)
	if out.Stage != "" {
		header += ", " + out.Stage
	}
	header += ")\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for _, ext := range out.Extensions {
		if _, err := fmt.Fprintf(w, "  #extension %s : %s\n", ext.Name, ext.Behavior); err != nil {
			return err
		}
	}
	for _, p := range out.Precisions {
		if _, err := fmt.Fprintf(w, "  precision %s %s\n", p.Precision, p.Type); err != nil {
			return err
		}
	}

	rows := make([][4]string, len(out.Decls))
	var widths [4]int
	for i, d := range out.Decls {
		typ := d.Type
		if len(d.Fields) > 0 {
			parts := make([]string, len(d.Fields))
			for j, f := range d.Fields {
				parts[j] = f.Type + " " + f.Name
			}
			typ += " { " + strings.Join(parts, "; ") + " }"
		}
		rows[i] = [4]string{d.Kind, d.Name, typ, strings.Join(d.Qualifiers, " ")}
		for c, cell := range rows[i] {
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}
	for i, row := range rows {
		var sb strings.Builder
		sb.WriteString("  ")
		for c, cell := range row {
			sb.WriteString(runewidth.FillRight(cell, widths[c]))
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%d:%d", out.Decls[i].Line, out.Decls[i].Col)
		if out.Decls[i].Kind == extract.KindFunction.String() && !out.Decls[i].Defined {
			sb.WriteString(" (prototype)")
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}

	if len(out.Bindings) > 0 {
		if _, err := io.WriteString(w, "  bindings:\n"); err != nil {
			return err
		}
		for _, b := range out.Bindings {
			if _, err := fmt.Fprintf(w, "    %-12s %s %s\n", b.Kind, b.Name, b.Type); err != nil {
				return err
			}
		}
	}
	return nil
}
