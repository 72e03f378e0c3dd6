package diff

import (
	"testing"

	"github.com/js216/morsefocus/internal/charset"
	"github.com/js216/morsefocus/internal/model"
)

func wantWeights(t *testing.T, w *model.Weights, counts map[byte]float64) {
	t.Helper()
	for i := 0; i < charset.Size; i++ {
		ch := charset.Char(i)
		want := counts[ch]
		if w[i] != want {
			t.Errorf("weight[%q] = %v, want %v", ch, w[i], want)
		}
	}
}

func TestIdentical(t *testing.T) {
	var w model.Weights
	d, err := Distance(&w, "hello world", "hello world")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 0 {
		t.Errorf("distance = %d, want 0", d)
	}
	wantWeights(t, &w, nil)
}

func TestSingleSubstitution(t *testing.T) {
	var w model.Weights
	d, err := Distance(&w, "a", "b")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 1 {
		t.Errorf("distance = %d, want 1", d)
	}
	wantWeights(t, &w, map[byte]float64{'a': 1, 'b': 1})
}

func TestMixedEdits(t *testing.T) {
	var w model.Weights
	d, err := Distance(&w, "abc test hey", "abd tests hey")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 2 {
		t.Errorf("distance = %d, want 2", d)
	}
	wantWeights(t, &w, map[byte]float64{'c': 1, 'd': 1, 's': 1})
}

func TestSubstitutionChargesBoth(t *testing.T) {
	var w model.Weights
	d, err := Distance(&w, "hello", "hullo")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 1 {
		t.Errorf("distance = %d, want 1", d)
	}
	wantWeights(t, &w, map[byte]float64{'e': 1, 'u': 1})
}

func TestTwoSubstitutions(t *testing.T) {
	var w model.Weights
	d, err := Distance(&w, "morse code", "horse rode")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 2 {
		t.Errorf("distance = %d, want 2", d)
	}
	wantWeights(t, &w, map[byte]float64{'m': 1, 'h': 1, 'c': 1, 'r': 1})
}

func TestDistanceIsSymmetric(t *testing.T) {
	// Attribution depends on argument order; the distance itself does not.
	pairs := [][2]string{
		{"abc test hey", "abd tests hey"},
		{"kitten", "sitting"},
		{"a", "abcdef"},
	}
	for _, p := range pairs {
		var w1, w2 model.Weights
		d1, err := Distance(&w1, p[0], p[1])
		if err != nil {
			t.Fatalf("Distance(%q, %q): %v", p[0], p[1], err)
		}
		d2, err := Distance(&w2, p[1], p[0])
		if err != nil {
			t.Fatalf("Distance(%q, %q): %v", p[1], p[0], err)
		}
		if d1 != d2 {
			t.Errorf("distance(%q,%q) = %d but reversed = %d", p[0], p[1], d1, d2)
		}
	}
}

func TestDeletionAndInsertion(t *testing.T) {
	var w model.Weights
	d, err := Distance(&w, "abc", "ac")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 1 {
		t.Errorf("distance = %d, want 1", d)
	}
	wantWeights(t, &w, map[byte]float64{'b': 1})

	var w2 model.Weights
	d, err = Distance(&w2, "ac", "abc")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 1 {
		t.Errorf("distance = %d, want 1", d)
	}
	wantWeights(t, &w2, map[byte]float64{'b': 1})
}

func TestAccumulation(t *testing.T) {
	var w model.Weights
	if _, err := Distance(&w, "a", "b"); err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if _, err := Distance(&w, "a", "b"); err != nil {
		t.Fatalf("Distance: %v", err)
	}
	wantWeights(t, &w, map[byte]float64{'a': 2, 'b': 2})
}

func TestEmptyInput(t *testing.T) {
	var w model.Weights
	if _, err := Distance(&w, "", "abc"); err == nil {
		t.Error("accepted empty expected string")
	}
	if _, err := Distance(&w, "abc", ""); err == nil {
		t.Error("accepted empty received string")
	}
}

func TestUnsupportedCharacterInEdit(t *testing.T) {
	var w model.Weights
	if _, err := Distance(&w, "aBc", "abc"); err == nil {
		t.Error("accepted uppercase character in an edit")
	}
	if _, err := Distance(&w, "abc", "ab#"); err == nil {
		t.Error("accepted unsupported punctuation in an edit")
	}
	// A failed call must leave the weights untouched.
	wantWeights(t, &w, nil)
}

func TestMatchingSpacesPassThrough(t *testing.T) {
	// Spaces have no weight index but never take part in an edit here.
	var w model.Weights
	d, err := Distance(&w, "ab cd", "ab ce")
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if d != 1 {
		t.Errorf("distance = %d, want 1", d)
	}
	wantWeights(t, &w, map[byte]float64{'d': 1, 'e': 1})
}
