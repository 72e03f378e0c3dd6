// Package charset maps supported practice characters to dense weight indexes.
package charset

import "fmt"

// Size is the number of supported characters: digits, lowercase letters,
// and the punctuation . = , / ? '
const Size = 42

// MaxLen caps the length of a charset string or record label.
const MaxLen = 50

// Default is the practice character set in Koch-method order.
const Default = "kmuresnaptlwi.jz=foy,vg5/q92h38b?47c1d60x"

const lookup = "0123456789abcdefghijklmnopqrstuvwxyz.=,/?'"

// Index returns the weight index of ch, or -1 if ch is unsupported.
func Index(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'z':
		return 10 + int(ch-'a')
	}
	switch ch {
	case '.':
		return 36
	case '=':
		return 37
	case ',':
		return 38
	case '/':
		return 39
	case '?':
		return 40
	case '\'':
		return 41
	}
	return -1
}

// Char returns the character at the given weight index, or 0 if the index
// is out of range.
func Char(i int) byte {
	if i < 0 || i >= Size {
		return 0
	}
	return lookup[i]
}

// Clean lowercases printable ASCII and replaces every other byte with a
// space. The result has the same length as s.
func Clean(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 32 && ch <= 126 {
			if ch >= 'A' && ch <= 'Z' {
				ch += 'a' - 'A'
			}
			out[i] = ch
		} else {
			out[i] = ' '
		}
	}
	return string(out)
}

// Validate checks that every byte of s is a supported character.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		if Index(s[i]) < 0 {
			return fmt.Errorf("unsupported character %q at position %d", s[i], i)
		}
	}
	return nil
}
