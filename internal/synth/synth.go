// Package synth renders a Morse symbol stream into PCM samples.
package synth

import (
	"fmt"
	"math"

	"github.com/js216/morsefocus/internal/morse"
)

// FadeLen is the length of the linear fade applied to both ends of every
// tone, in samples. Without it the tone edges click audibly.
const FadeLen = 100

// Config holds playback parameters. SampleRate and PeriodFrames describe
// the audio sink driving the synthesizer.
type Config struct {
	CharSpeed       float64 // WPM of the tones themselves
	FarnsworthSpeed float64 // WPM of character and word spacing
	Freq            float64 // tone frequency, Hz
	Amp             float64 // tone amplitude, 0..1
	Delay           float64 // initial silence, seconds
	SampleRate      int
	PeriodFrames    int
}

// Synth generates the sample stream for one playback of a text. It is
// mutated only by Fill, which the audio sink calls from its own callback
// context; the controlling side may poll Done.
type Synth struct {
	stream []byte
	pos    int

	toneSamples int // samples of tone left in the current symbol
	toneLen     int // full tone length of the current symbol
	gapSamples  int // samples of silence left after the current symbol

	dotLen   int // dot duration in samples, from CharSpeed
	intraGap int // gap between elements of one character
	interGap int // one Farnsworth unit in samples

	freq, amp    float64
	delayCalls   int // whole Fill invocations of leading silence
	totalSamples uint64
	sampleRate   int
}

// New validates cfg, expands text, and returns a synthesizer ready for its
// first Fill call. Every configuration error is reported here; Fill itself
// cannot fail.
func New(text string, cfg Config) (*Synth, error) {
	if cfg.CharSpeed <= 0 || cfg.FarnsworthSpeed <= 0 {
		return nil, fmt.Errorf("speeds must be positive, got %.1f/%.1f",
			cfg.CharSpeed, cfg.FarnsworthSpeed)
	}
	if cfg.CharSpeed < cfg.FarnsworthSpeed {
		return nil, fmt.Errorf("character speed %.1f below Farnsworth speed %.1f",
			cfg.CharSpeed, cfg.FarnsworthSpeed)
	}
	if cfg.Freq <= 0 {
		return nil, fmt.Errorf("frequency must be positive, got %.1f", cfg.Freq)
	}
	if cfg.Amp <= 0 {
		return nil, fmt.Errorf("amplitude must be positive, got %.3f", cfg.Amp)
	}
	if cfg.SampleRate <= 0 || cfg.PeriodFrames <= 0 {
		return nil, fmt.Errorf("invalid sink parameters: rate %d, period %d",
			cfg.SampleRate, cfg.PeriodFrames)
	}

	rate := float64(cfg.SampleRate)
	dotDur := 60.0 / (50.0 * cfg.CharSpeed)
	gapDur := 60.0 / (50.0 * cfg.FarnsworthSpeed)

	s := &Synth{
		stream:     []byte(morse.Expand(text)),
		dotLen:     int(dotDur * rate),
		interGap:   int(gapDur * rate),
		freq:       cfg.Freq,
		amp:        cfg.Amp,
		sampleRate: cfg.SampleRate,
	}
	s.intraGap = s.dotLen
	if cfg.Delay > 0 {
		s.delayCalls = int(cfg.Delay * rate / float64(cfg.PeriodFrames))
	}
	return s, nil
}

// Fill writes frames interleaved stereo samples into out, which must hold
// at least 2*frames values. Once the stream is exhausted it keeps writing
// silence.
func (s *Synth) Fill(out []float32, frames int) {
	if s.delayCalls > 0 {
		s.delayCalls--
		for i := 0; i < 2*frames; i++ {
			out[i] = 0
		}
		return
	}

	for i := 0; i < frames; i++ {
		var sample float32

		switch {
		case s.toneSamples > 0:
			played := s.toneLen - s.toneSamples
			fade := 1.0
			if played < FadeLen {
				fade = float64(played) / FadeLen
			} else if s.toneSamples < FadeLen {
				fade = float64(s.toneSamples) / FadeLen
			}

			// Phase comes from the running sample counter so the sine
			// stays continuous across Fill boundaries.
			r := float64(s.totalSamples%uint64(s.sampleRate)) / float64(s.sampleRate)
			sample = float32(fade * s.amp * math.Sin(2*math.Pi*s.freq*r))
			s.toneSamples--

		case s.gapSamples > 0:
			s.gapSamples--

		case s.pos < len(s.stream):
			s.startSymbol(s.stream[s.pos])
			s.pos++
		}

		out[2*i] = sample
		out[2*i+1] = sample
		s.totalSamples++
	}
}

// startSymbol loads the tone and gap sample budgets for the next symbol.
func (s *Synth) startSymbol(sym byte) {
	switch sym {
	case '.':
		s.toneSamples = s.dotLen
		s.gapSamples = s.intraGap
	case '-':
		s.toneSamples = 3 * s.dotLen
		s.gapSamples = s.intraGap
	case '|':
		s.toneSamples = 0
		s.gapSamples = 3 * s.interGap
	case '/':
		s.toneSamples = 0
		s.gapSamples = 7 * s.interGap
	default:
		s.toneSamples = 0
		s.gapSamples = s.intraGap
	}
	s.toneLen = s.toneSamples
}

// Done reports whether all symbols have been played out.
func (s *Synth) Done() bool {
	return s.pos >= len(s.stream) && s.toneSamples == 0 && s.gapSamples == 0
}

// ElapsedMs returns the playback position in milliseconds.
func (s *Synth) ElapsedMs() int {
	return int(s.totalSamples * 1000 / uint64(s.sampleRate))
}
