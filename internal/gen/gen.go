// Package gen produces weighted pseudo-random practice text.
package gen

import (
	"errors"
	"fmt"

	"github.com/js216/morsefocus/internal/charset"
	"github.com/js216/morsefocus/internal/model"
)

// Max bounds requested text and word lengths to keep buffers sane.
const Max = 100000

// Generator produces randomized practice text from an owned PRNG.
type Generator struct {
	rng *Source
}

// New returns a Generator seeded from the wall clock.
func New() *Generator {
	return &Generator{rng: newTimeSource()}
}

// NewSeeded returns a Generator with a fixed seed for reproducible output.
func NewSeeded(seed uint32) *Generator {
	return &Generator{rng: NewSource(seed)}
}

// Chars generates up to numChar-1 characters of space-separated words with
// lengths drawn uniformly from [minWord, maxWord]. Characters come from cs
// (or the default charset when cs is empty), sampled uniformly when weights
// is nil and by weight otherwise. The final word may be truncated below
// minWord when the length budget runs out.
func (g *Generator) Chars(numChar, minWord, maxWord int, weights *model.Weights, cs string) (string, error) {
	if err := validateParams(numChar, minWord, maxWord); err != nil {
		return "", err
	}

	if cs == "" {
		cs = charset.Default
	}
	if err := validateCharset(cs); err != nil {
		return "", err
	}

	var cdf []float64
	if weights != nil {
		var err error
		cdf, err = buildCDF(weights, cs)
		if err != nil {
			return "", err
		}
	}

	out := make([]byte, 0, numChar-1)
	for len(out) < numChar-1 {
		wlen := minWord + int(g.rng.Float32()*float32(maxWord-minWord+1))
		if wlen > numChar-1-len(out) {
			wlen = numChar - 1 - len(out)
		}

		for i := 0; i < wlen && len(out) < numChar-2; i++ {
			if weights == nil {
				out = append(out, g.pickUniform(cs))
			} else {
				out = append(out, g.pickWeighted(cs, cdf))
			}
		}

		if len(out) < numChar-2 {
			out = append(out, ' ')
		} else {
			break
		}
	}

	// A word boundary landing exactly at the budget leaves a dangling
	// separator. Trim it after the fact so the draw sequence is unchanged.
	if n := len(out); n > 0 && out[n-1] == ' ' {
		out = out[:n-1]
	}

	return string(out), nil
}

func validateParams(numChar, minWord, maxWord int) error {
	if minWord < 1 || maxWord < 1 || minWord > maxWord {
		return fmt.Errorf("invalid word size range: min=%d, max=%d", minWord, maxWord)
	}
	if numChar < 2 {
		return errors.New("refuse to generate < 2 characters")
	}
	if numChar > Max {
		return errors.New("too many characters requested")
	}
	if minWord > Max || maxWord > Max {
		return errors.New("word length bound too large")
	}
	return nil
}

// validateCharset only requires printable non-space characters. Whether a
// character also has a weight index matters solely to the weighted path,
// which checks during CDF construction.
func validateCharset(cs string) error {
	if len(cs) == 0 {
		return errors.New("empty charset")
	}
	for i := 0; i < len(cs); i++ {
		if cs[i] <= 32 || cs[i] > 126 {
			return fmt.Errorf("charset contains unprintable byte %#x", cs[i])
		}
	}
	return nil
}

// buildCDF computes normalized prefix sums of the per-character weights
// over the charset. Every charset character needs a weight index here,
// unlike in the uniform path.
func buildCDF(weights *model.Weights, cs string) ([]float64, error) {
	w := make([]float64, len(cs))
	var sum float64
	for j := 0; j < len(cs); j++ {
		k := charset.Index(cs[j])
		if k < 0 {
			return nil, fmt.Errorf("character %q has no weight index", cs[j])
		}
		w[j] = weights[k]
		sum += w[j]
	}
	if sum == 0 {
		return nil, errors.New("weights sum to zero")
	}

	cdf := make([]float64, len(cs))
	var accum float64
	for j := range w {
		accum += w[j]
		cdf[j] = accum / sum
	}
	return cdf, nil
}

func (g *Generator) pickUniform(cs string) byte {
	idx := int(g.rng.Float32() * float32(len(cs)))
	if idx >= len(cs) {
		idx = len(cs) - 1
	}
	return cs[idx]
}

// pickWeighted draws r in [0,1) and finds the first CDF entry >= r by
// lower-bound binary search.
func (g *Generator) pickWeighted(cs string, cdf []float64) byte {
	r := float64(g.rng.Float32())
	lo, hi := 0, len(cs)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cdf[mid] < r {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return cs[lo]
}
