package stats

import (
	"math"
	"testing"
)

func TestErrorPercent(t *testing.T) {
	if got := ErrorPercent(25, 250); math.Abs(got-10) > 1e-9 {
		t.Errorf("ErrorPercent(25, 250) = %v, want 10", got)
	}
	if got := ErrorPercent(5, 0); got != 0 {
		t.Errorf("ErrorPercent with zero length = %v, want 0", got)
	}
}

func TestAdaptSpeed(t *testing.T) {
	// At exactly the target error rate the speed stays put.
	if got := AdaptSpeed(20, 25, 250); math.Abs(got-20) > 1e-9 {
		t.Errorf("AdaptSpeed at target = %v, want 20", got)
	}
	// Too many errors slows the spacing down.
	if got := AdaptSpeed(20, 50, 250); got >= 20 {
		t.Errorf("AdaptSpeed above target = %v, want below 20", got)
	}
	// A clean session speeds it up.
	if got := AdaptSpeed(20, 0, 250); got <= 20 {
		t.Errorf("AdaptSpeed below target = %v, want above 20", got)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("MovingAverage[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got = MovingAverage(values, 1)
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("window 1 should copy values, got %v", got)
			break
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Errorf("Sparkline(nil) = %q, want empty", got)
	}

	flat := Sparkline([]float64{3, 3, 3})
	if len(flat) != 3 || flat[0] != flat[1] || flat[1] != flat[2] {
		t.Errorf("flat series rendered as %q", flat)
	}

	ramp := Sparkline([]float64{0, 1, 2, 3})
	if len(ramp) != 4 {
		t.Fatalf("Sparkline length %d, want 4", len(ramp))
	}
	if ramp[0] != ' ' || ramp[3] != '@' {
		t.Errorf("ramp endpoints %q, want lowest and highest glyphs", ramp)
	}
}
