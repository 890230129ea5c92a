package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"glsles/internal/diag"
	"glsles/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("s.vert", []byte("uniform float a\nuniform float a;\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SynExpectSemicolon, source.Span{File: fileID, Start: 15, End: 15}, "expected ';'").
		WithNote(source.Span{File: fileID, Start: 0, End: 7}, "declaration starts here"))
	bag.Add(diag.New(diag.SevWarning, diag.ExtDuplicateGlobal, source.Span{File: fileID, Start: 30, End: 31}, "duplicate 'a'"))
	return bag, fs
}

func TestJSONRoundTrip(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d, len = %d", out.Count, len(out.Diagnostics))
	}

	first := out.Diagnostics[0]
	if first.Severity != "ERROR" || first.Code != "SYN2002" {
		t.Errorf("first = %s %s", first.Severity, first.Code)
	}
	if first.Location.StartLine != 1 || first.Location.StartCol != 16 {
		t.Errorf("position = %d:%d, want 1:16", first.Location.StartLine, first.Location.StartCol)
	}
	if len(first.Notes) != 1 || first.Notes[0].Message != "declaration starts here" {
		t.Errorf("notes = %+v", first.Notes)
	}

	second := out.Diagnostics[1]
	if second.Severity != "WARNING" || second.Location.StartLine != 2 {
		t.Errorf("second = %+v", second)
	}
}

func TestJSONOptions(t *testing.T) {
	bag, fs := sampleBag(t)

	tests := []struct {
		name      string
		opts      JSONOpts
		count     int
		positions bool
		notes     bool
	}{
		{"bare", JSONOpts{}, 2, false, false},
		{"max", JSONOpts{Max: 1}, 1, false, false},
		{"positions", JSONOpts{IncludePositions: true}, 2, true, false},
		{"notes", JSONOpts{IncludeNotes: true}, 2, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BuildDiagnosticsOutput(bag, fs, tt.opts)
			if out.Count != tt.count {
				t.Fatalf("count = %d, want %d", out.Count, tt.count)
			}
			first := out.Diagnostics[0]
			if got := first.Location.StartLine != 0; got != tt.positions {
				t.Errorf("positions present = %v", got)
			}
			if got := len(first.Notes) > 0; got != tt.notes {
				t.Errorf("notes present = %v", got)
			}
			if first.Location.StartByte != 15 || first.Location.File != "s.vert" {
				t.Errorf("location = %+v", first.Location)
			}
		})
	}
}
