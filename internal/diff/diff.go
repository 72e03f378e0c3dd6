// Package diff computes edit distances and attributes edits to characters.
package diff

import (
	"errors"
	"fmt"

	"github.com/js216/morsefocus/internal/charset"
	"github.com/js216/morsefocus/internal/model"
)

// Distance returns the Levenshtein distance between expected and received
// and adds one to the weight of every character involved in an edit. A
// substitution charges both characters, a deletion charges the expected
// character, an insertion charges the received character.
//
// Both strings must be non-empty. Characters that only ever match (such as
// the spaces separating words) are never looked up; a character without a
// weight index taking part in an edit aborts the whole call and leaves w
// untouched. Weights accumulate across calls.
func Distance(w *model.Weights, expected, received string) (int, error) {
	len1 := len(expected)
	len2 := len(received)

	if len1 == 0 || len2 == 0 {
		return 0, errors.New("cannot compare zero-length strings")
	}

	dp := make([][]int, len1+1)
	for i := range dp {
		dp[i] = make([]int, len2+1)
	}
	for i := 0; i <= len1; i++ {
		dp[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			min := dp[i-1][j] + 1
			if ins := dp[i][j-1] + 1; ins < min {
				min = ins
			}
			if sub := dp[i-1][j-1] + cost(expected[i-1], received[j-1]); sub < min {
				min = sub
			}
			dp[i][j] = min
		}
	}

	// Backtrack to attribute each edit. The move order (diagonal, then
	// deletion, then insertion) fixes which of several equally valid
	// attributions is produced and must not change.
	var tally model.Weights
	i, j := len1, len2
	for i > 0 || j > 0 {
		if i > 0 && j > 0 && dp[i][j] == dp[i-1][j-1]+cost(expected[i-1], received[j-1]) {
			if expected[i-1] != received[j-1] {
				if err := charge(&tally, expected[i-1]); err != nil {
					return 0, err
				}
				if err := charge(&tally, received[j-1]); err != nil {
					return 0, err
				}
			}
			i--
			j--
		} else if i > 0 && dp[i][j] == dp[i-1][j]+1 {
			if err := charge(&tally, expected[i-1]); err != nil {
				return 0, err
			}
			i--
		} else {
			if err := charge(&tally, received[j-1]); err != nil {
				return 0, err
			}
			j--
		}
	}
	w.Add(&tally)

	return dp[len1][len2], nil
}

func charge(w *model.Weights, ch byte) error {
	k := charset.Index(ch)
	if k < 0 {
		return fmt.Errorf("unsupported character %q in edit", ch)
	}
	w[k]++
	return nil
}

func cost(a, b byte) int {
	if a != b {
		return 1
	}
	return 0
}
