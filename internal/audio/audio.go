// Package audio plays synthesized Morse code through the default output
// device.
package audio

import (
	"fmt"
	"time"
	"unsafe"

	"github.com/gen2brain/malgo"

	"github.com/js216/morsefocus/internal/synth"
)

// Sink parameters. The synthesizer is configured to match.
const (
	SampleRate   = 48000
	Channels     = 2
	PeriodFrames = 64
)

// pollInterval is how often the controlling side checks for completion
// while the device callback drains the synthesizer.
const pollInterval = 10 * time.Millisecond

// Play renders text as Morse code on the default playback device and
// blocks until the last symbol has been played. It returns the elapsed
// playback time in milliseconds. All parameter and device errors surface
// before any audio is produced.
func Play(text string, cfg synth.Config) (int, error) {
	cfg.SampleRate = SampleRate
	cfg.PeriodFrames = PeriodFrames

	s, err := synth.New(text, cfg)
	if err != nil {
		return 0, err
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to init malgo context: %v", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = Channels
	deviceConfig.SampleRate = SampleRate
	deviceConfig.PeriodSizeInFrames = PeriodFrames
	deviceConfig.Alsa.NoMMap = 1

	onSendFrames := func(pOutputSamples, pInputSamples []byte, framecount uint32) {
		if len(pOutputSamples) == 0 {
			return
		}
		out := unsafe.Slice((*float32)(unsafe.Pointer(&pOutputSamples[0])),
			int(framecount)*Channels)
		s.Fill(out, int(framecount))
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSendFrames,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to init playback device: %v", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return 0, fmt.Errorf("failed to start playback device: %v", err)
	}

	// The callback owns the synthesizer state; this side only polls the
	// finished flag. Sessions are short, so a busy wait is fine.
	for !s.Done() {
		time.Sleep(pollInterval)
	}

	if err := device.Stop(); err != nil {
		return s.ElapsedMs(), fmt.Errorf("failed to stop playback device: %v", err)
	}

	return s.ElapsedMs(), nil
}
