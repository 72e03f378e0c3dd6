package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/js216/morsefocus/internal/charset"
	"github.com/js216/morsefocus/internal/model"
)

func TestCharErrors(t *testing.T) {
	var w model.Weights
	w[charset.Index('a')] = 2
	w[charset.Index('q')] = 5
	w[charset.Index('?')] = 2

	errs := CharErrors(&w)
	if len(errs) != 3 {
		t.Fatalf("CharErrors returned %d entries, want 3", len(errs))
	}
	if errs[0].Char != 'q' || errs[0].Count != 5 {
		t.Errorf("worst entry = %+v, want q/5", errs[0])
	}
	// Equal counts sort by character.
	if errs[1].Char != '?' || errs[2].Char != 'a' {
		t.Errorf("tie order = %c, %c, want '?' then 'a'", errs[1].Char, errs[2].Char)
	}
}

func TestCharErrorsEmpty(t *testing.T) {
	var w model.Weights
	if errs := CharErrors(&w); errs != nil {
		t.Errorf("CharErrors of zero weights = %v, want nil", errs)
	}
}

func TestRenderCharErrors(t *testing.T) {
	errs := []CharError{{Char: 'q', Count: 3}, {Char: 'a', Count: 1.5}}
	lines := RenderCharErrors(errs, 0)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "'q' : 3" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "'a' : 1.500" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func historyRecords() []model.Record {
	var recs []model.Record
	dists := []float64{50, 30, 10}
	for i, d := range dists {
		recs = append(recs, model.Record{
			Time:   time.Date(2025, 3, 14, 10+i, 0, 0, 0, time.Local),
			Speed1: 25,
			Speed2: 20,
			Dist:   d,
			Len:    250,
		})
	}
	return recs
}

func TestBuildHistory(t *testing.T) {
	h := BuildHistory(historyRecords(), 2)
	want := []float64{20, 12, 4}
	for i, p := range want {
		if h.ErrorPct[i] != p {
			t.Errorf("ErrorPct[%d] = %v, want %v", i, h.ErrorPct[i], p)
		}
	}
	if len(h.Smoothed) != 3 {
		t.Errorf("Smoothed has %d entries, want 3", len(h.Smoothed))
	}
}

func TestHistoryRender(t *testing.T) {
	h := BuildHistory(historyRecords(), 2)
	lines := h.Render(80)
	if len(lines) < 4 {
		t.Fatalf("Render produced %d lines: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "date") || !strings.Contains(lines[0], "err%") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2025-03-14 10:00") {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.Contains(lines[1], "20.0") {
		t.Errorf("first row missing error percent: %q", lines[1])
	}
	last := lines[len(lines)-1]
	if len(last) != 3 {
		t.Errorf("sparkline %q, want 3 glyphs", last)
	}
}
