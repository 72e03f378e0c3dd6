package charset

import "testing"

func TestRoundTrip(t *testing.T) {
	for i := 0; i < Size; i++ {
		ch := Char(i)
		if ch == 0 {
			t.Fatalf("Char(%d) returned 0", i)
		}
		if got := Index(ch); got != i {
			t.Errorf("Index(Char(%d)) = %d", i, got)
		}
	}
}

func TestIndexRejectsUnsupported(t *testing.T) {
	supported := map[byte]bool{}
	for i := 0; i < Size; i++ {
		supported[Char(i)] = true
	}
	for b := 0; b < 256; b++ {
		ch := byte(b)
		got := Index(ch)
		if supported[ch] {
			if got < 0 || got >= Size {
				t.Errorf("Index(%q) = %d, want valid index", ch, got)
			}
		} else if got != -1 {
			t.Errorf("Index(%q) = %d, want -1", ch, got)
		}
	}
}

func TestCharOutOfRange(t *testing.T) {
	for _, i := range []int{-1, Size, 1000} {
		if got := Char(i); got != 0 {
			t.Errorf("Char(%d) = %q, want 0", i, got)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello world"},
		{"ABC123", "abc123"},
		{"a\tb\nc", "a b c"},
		{"", ""},
		{"mixed CASE, with. punct?", "mixed case, with. punct?"},
	}
	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Default); err != nil {
		t.Errorf("Validate(Default) = %v", err)
	}
	if err := Validate("abc xyz"); err == nil {
		t.Error("Validate accepted a space")
	}
	if err := Validate("ABC"); err == nil {
		t.Error("Validate accepted uppercase")
	}
}
