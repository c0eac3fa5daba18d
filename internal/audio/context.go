// Package audio plays synthesized effects and an optional music loop.
package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const DefaultSampleRate = 44100

var (
	ctxOnce       sync.Once
	ctx           *oto.Context
	ctxSampleRate int
	ctxErr        error
)

// Context opens the shared output device once. Later calls return the same
// context regardless of sampleRate.
func Context(sampleRate int) (*oto.Context, int, error) {
	ctxOnce.Do(func() {
		if sampleRate <= 0 {
			sampleRate = DefaultSampleRate
		}
		c, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			ctxErr = fmt.Errorf("open audio device: %w", err)
			return
		}
		<-ready
		ctx = c
		ctxSampleRate = sampleRate
	})
	return ctx, ctxSampleRate, ctxErr
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// VolumeFromPercent maps 0..100 onto 0..1.
func VolumeFromPercent(value int) float64 {
	return clampVolume(float64(value) / 100)
}
