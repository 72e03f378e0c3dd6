// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
	"time"

	"github.com/js216/morsefocus/internal/charset"
)

// Weights holds one accumulated error count per supported character,
// indexed by charset.Index.
type Weights [charset.Size]float64

// Add accumulates other into w entry by entry.
func (w *Weights) Add(other *Weights) {
	for i := range w {
		w[i] += other[i]
	}
}

// Clamp replaces negative entries with zero.
func (w *Weights) Clamp() {
	for i := range w {
		if w[i] < 0 {
			w[i] = 0
		}
	}
}

// Sum returns the total of all entries.
func (w *Weights) Sum() float64 {
	var sum float64
	for i := range w {
		sum += w[i]
	}
	return sum
}

// Scale raises each entry to the power g, so that larger weights shrink
// more than smaller ones. Negative entries are clamped to zero first.
// g must be in (0.01, 1.0].
func (w *Weights) Scale(g float64) error {
	if g <= 0.01 || g > 1.0 {
		return fmt.Errorf("scale %.3e out of range", g)
	}
	w.Clamp()
	for i := range w {
		w[i] = math.Pow(w[i], g)
	}
	return nil
}

// Fill sets every entry to v.
func (w *Weights) Fill(v float64) {
	for i := range w {
		w[i] = v
	}
}

// Record is one line of the practice history: session metadata plus the
// per-character weight vector carried into the next session.
type Record struct {
	Time    time.Time
	Scale   float64
	Speed1  float64 // character speed, WPM
	Speed2  float64 // Farnsworth (spacing) speed, WPM
	Dist    float64 // edit distance of the session
	Len     float64 // generated text length of the session
	Charset string  // free-form label, not a generation constraint
	Weights Weights
}
