package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("detail"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(detail) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
	if m, err := ParseMode("BOTH"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(BOTH) = %v, %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}

func TestStreamTracerFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "diag", 0)
	file := Begin(tr, ScopeFile, "file:a.vert", root.ID())
	file.End("")
	root.WithExtra("files", "1").End("ok")

	out := buf.String()
	if strings.Contains(out, "a.vert") {
		t.Errorf("file scope leaked at phase level:\n%s", out)
	}
	if !strings.Contains(out, "→ diag") || !strings.Contains(out, "← diag (ok) {files=1}") {
		t.Errorf("driver span missing:\n%s", out)
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "decl", 0, "uniform light")

	var ev map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if ev["kind"] != "point" || ev["scope"] != "node" || ev["detail"] != "uniform light" {
		t.Errorf("event = %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopePhase, name, 0, "")
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Errorf("order = %v", names)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestRingRecordsAtErrorLevel(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	Begin(ring, ScopeFile, "file:x", 0).End("")
	Point(ring, ScopeNode, "decl", 0, "")
	if n := len(ring.Snapshot()); n != 2 {
		t.Errorf("ring kept %d events, want 2 (file begin/end)", n)
	}
}

func TestStartPropagatesParent(t *testing.T) {
	ring := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := Start(ctx, ScopeDriver, "run")
	_, inner := Start(ctx, ScopePhase, "parse")
	inner.End("")
	outer.End("")

	snap := ring.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("events = %d", len(snap))
	}
	if snap[1].Name != "parse" || snap[1].ParentID != outer.ID() {
		t.Errorf("inner parent = %d, want %d", snap[1].ParentID, outer.ID())
	}
}

func TestNewAndMulti(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer: %v %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePhase, "lex", 0).End("")
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("tracer type %T", tr)
	}
	ring, ok := multi.Ring()
	if !ok || len(ring.Snapshot()) != 2 {
		t.Errorf("ring missing events")
	}
	if strings.Count(buf.String(), "lex") != 2 {
		t.Errorf("stream output:\n%s", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("expected Nop")
	}
	_, sp := Start(context.Background(), ScopePhase, "x")
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Error("nop span should be inert")
	}
}
