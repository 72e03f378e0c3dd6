package gen

import "time"

// defaultSeed replaces a zero seed, which would lock xorshift at zero.
const defaultSeed = 0xdeadbeef

// Source is a xorshift32 pseudorandom number generator. It is fast and
// statistically adequate for text generation, and not cryptographically
// secure.
type Source struct {
	state uint32
}

// NewSource returns a Source seeded with the given value. A zero seed is
// replaced with a fixed default.
func NewSource(seed uint32) *Source {
	if seed == 0 {
		seed = defaultSeed
	}
	return &Source{state: seed}
}

// newTimeSource returns a Source seeded from the wall clock.
func newTimeSource() *Source {
	return NewSource(uint32(time.Now().UnixNano()))
}

// Uint32 advances the generator and returns the next value.
func (s *Source) Uint32() uint32 {
	x := s.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.state = x
	return x
}

// Float32 returns a uniformly distributed value in [0, 1).
func (s *Source) Float32() float32 {
	return float32(s.Uint32()) / 4294967296.0
}
