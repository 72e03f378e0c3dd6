// Package morse expands text into dot/dash symbol streams and computes
// their timing.
package morse

import (
	"fmt"
	"strings"
)

// Symbol stream alphabet: '.' and '-' carry tone, '|' separates characters
// within a word, '/' separates words.
const (
	ditUnits     = 1
	dahUnits     = 3
	interGap     = 1 // between elements of one character
	charGap      = 3 // at a '|' marker
	wordGapUnits = 7 // at a '/' marker
)

// table is the International Morse Code table. It covers more punctuation
// than carries practice weights; the extra symbols play fine but are never
// scored.
var table = map[byte]string{
	'a': ".-", 'b': "-...", 'c': "-.-.", 'd': "-..",
	'e': ".", 'f': "..-.", 'g': "--.", 'h': "....",
	'i': "..", 'j': ".---", 'k': "-.-", 'l': ".-..",
	'm': "--", 'n': "-.", 'o': "---", 'p': ".--.",
	'q': "--.-", 'r': ".-.", 's': "...", 't': "-",
	'u': "..-", 'v': "...-", 'w': ".--", 'x': "-..-",
	'y': "-.--", 'z': "--..",

	'0': "-----", '1': ".----", '2': "..---", '3': "...--",
	'4': "....-", '5': ".....", '6': "-....", '7': "--...",
	'8': "---..", '9': "----.",

	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.",
	'!': "-.-.--", '/': "-..-.", '(': "-.--.", ')': "-.--.-",
	'&': ".-...", ':': "---...", ';': "-.-.-.", '=': "-...-",
	'+': ".-.-.", '-': "-....-", '_': "..--.-", '"': ".-..-.",
	'$': "...-..-", '@': ".--.-.",
}

// Expand converts text to a symbol stream. Lookup is case-insensitive,
// unknown characters are skipped, and gap markers are only ever placed
// between non-empty words or characters.
func Expand(text string) string {
	var out strings.Builder
	first := true
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == ' ' {
			if !first {
				out.WriteByte('/')
			}
			first = true
			continue
		}
		if ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		mc, ok := table[ch]
		if !ok {
			continue
		}
		if !first {
			out.WriteByte('|')
		}
		out.WriteString(mc)
		first = false
	}
	s := out.String()
	// A trailing word marker can be left behind when the text ends in
	// spaces followed by only unknown characters.
	return strings.TrimSuffix(s, "/")
}

// CountUnits returns the total duration of the stream in dot units: dot 1,
// dash 3, one unit between elements, 3 at a character gap, 7 at a word gap
// (not charged when final).
func CountUnits(stream string) (int, error) {
	units := 0
	for i := 0; i < len(stream); i++ {
		switch stream[i] {
		case '.':
			units += ditUnits
			if tonesFollow(stream, i) {
				units += interGap
			}
		case '-':
			units += dahUnits
			if tonesFollow(stream, i) {
				units += interGap
			}
		case '|':
			units += charGap
		case '/':
			if i != len(stream)-1 {
				units += wordGapUnits
			}
		default:
			return 0, fmt.Errorf("invalid symbol %q in stream", stream[i])
		}
	}
	return units, nil
}

// Duration returns the wall-clock duration of text in seconds. Tones and
// the gaps inside a character run at speed1 WPM; character and word gaps
// run at speed2 WPM (Farnsworth timing). One dot lasts 60/(50*wpm) seconds,
// 50 being the dot-unit length of the standard word "PARIS".
func Duration(text string, speed1, speed2 float64) (float64, error) {
	if speed1 <= 0 || speed2 <= 0 {
		return 0, fmt.Errorf("speeds must be positive, got %.1f/%.1f", speed1, speed2)
	}
	if speed1 < speed2 {
		return 0, fmt.Errorf("character speed %.1f below Farnsworth speed %.1f", speed1, speed2)
	}

	stream := Expand(text)
	dotDur := 60.0 / (50.0 * speed1)
	gapDur := 60.0 / (50.0 * speed2)

	var total float64
	for i := 0; i < len(stream); i++ {
		switch stream[i] {
		case '.':
			total += dotDur
			if tonesFollow(stream, i) {
				total += dotDur
			}
		case '-':
			total += 3 * dotDur
			if tonesFollow(stream, i) {
				total += dotDur
			}
		case '|':
			total += 3 * gapDur
		case '/':
			if i != len(stream)-1 {
				total += 7 * gapDur
			}
		default:
			return 0, fmt.Errorf("invalid symbol %q in stream", stream[i])
		}
	}
	return total, nil
}

func tonesFollow(stream string, i int) bool {
	return i+1 < len(stream) && (stream[i+1] == '.' || stream[i+1] == '-')
}
