package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	endLex := tm.Measure("lex")
	endLex("12 tokens")
	idx := tm.Begin("parse")
	tm.End(idx, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "lex" || rep.Phases[0].Note != "12 tokens" {
		t.Fatalf("report = %+v", rep)
	}
	if rep.TotalMS < rep.Phases[0].DurationMS {
		t.Errorf("total %f < phase %f", rep.TotalMS, rep.Phases[0].DurationMS)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "lex") || !strings.Contains(sum, "// 12 tokens") || !strings.Contains(sum, "total") {
		t.Errorf("summary:\n%s", sum)
	}
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "lex", DurationMS: 1}, {Name: "parse", DurationMS: 2}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "parse", DurationMS: 4}, {Name: "extract", DurationMS: 1}}}
	a.Merge(b)
	if a.TotalMS != 8 || len(a.Phases) != 3 || a.Phases[1].DurationMS != 6 || a.Phases[2].Name != "extract" {
		t.Errorf("merged = %+v", a)
	}
}

func TestEmptyTimer(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || rep.Phases != nil {
		t.Errorf("empty report = %+v", rep)
	}
}
