package diag

import (
	"testing"

	"glsles/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	frag := fs.Add("/workspace/testdata/golden/sample.frag", []byte("a\nb\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevWarning,
			Code:     ExtNestedStruct,
			Message:  "another",
			Primary:  source.Span{File: frag, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: frag, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: frag, Start: 2, End: 3}, Msg: "note line"},
				{Span: source.Span{File: 42, Start: 0, End: 0}, Msg: "dangling file"},
			},
		},
	}

	expected := "error SYN2001 testdata/golden/sample.frag:1:1 first line second\n" +
		"note SYN2001 testdata/golden/sample.frag:2:1 note line\n" +
		"warning EXT3005 testdata/golden/sample.frag:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
	if got := FormatGoldenDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
