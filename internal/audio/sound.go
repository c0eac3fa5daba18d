package audio

import (
	"bytes"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

type Event int

const (
	Lock Event = iota
	Line1
	Line2
	Line3
	Line4
	Rotate
	Move
	Drop
	Hold
	LevelUp
	MenuMove
	MenuSelect
	GameOver
)

// Effects renders short tone sequences per game event.
type Effects struct {
	mu         sync.RWMutex
	enabled    bool
	sampleRate int
	ctx        *oto.Context
	volume     float64
}

// NewEffects returns a player bound to ctx. A nil ctx yields a silent player.
func NewEffects(ctx *oto.Context, sampleRate int, enabled bool) *Effects {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Effects{
		enabled:    enabled,
		sampleRate: sampleRate,
		ctx:        ctx,
		volume:     0.7,
	}
}

func (e *Effects) SetEnabled(enabled bool) {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.enabled = enabled
	e.mu.Unlock()
}

func (e *Effects) SetVolume(volume float64) {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.volume = clampVolume(volume)
	e.mu.Unlock()
}

// Play starts event in the background and returns immediately.
func (e *Effects) Play(event Event) {
	if e == nil {
		return
	}
	e.mu.RLock()
	ctx := e.ctx
	enabled := e.enabled
	volume := e.volume
	e.mu.RUnlock()
	if !enabled || ctx == nil {
		return
	}
	sequence := tonesFor(event)
	if len(sequence) == 0 {
		return
	}
	go func() {
		buffer := renderSequence(sequence, e.sampleRate, volume)
		player := ctx.NewPlayer(bytes.NewReader(buffer))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

type tone struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

func tonesFor(event Event) []tone {
	switch event {
	case Lock:
		return []tone{{frequency: 220, duration: 70 * time.Millisecond, volume: 0.3}}
	case Line1:
		return []tone{{frequency: 440, duration: 90 * time.Millisecond, volume: 0.3}}
	case Line2:
		return []tone{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case Line3:
		return []tone{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case Line4:
		return []tone{
			{frequency: 660, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 990, duration: 120 * time.Millisecond, volume: 0.3},
		}
	case Rotate:
		return []tone{{frequency: 520, duration: 40 * time.Millisecond, volume: 0.25}}
	case Move:
		return []tone{{frequency: 380, duration: 25 * time.Millisecond, volume: 0.18}}
	case Drop:
		return []tone{{frequency: 240, duration: 55 * time.Millisecond, volume: 0.22}}
	case Hold:
		return []tone{
			{frequency: 330, duration: 35 * time.Millisecond, volume: 0.2},
			{frequency: 495, duration: 35 * time.Millisecond, volume: 0.2},
		}
	case LevelUp:
		return []tone{
			{frequency: 523, duration: 60 * time.Millisecond, volume: 0.25},
			{frequency: 659, duration: 60 * time.Millisecond, volume: 0.25},
			{frequency: 784, duration: 60 * time.Millisecond, volume: 0.25},
			{frequency: 1047, duration: 110 * time.Millisecond, volume: 0.25},
		}
	case MenuMove:
		return []tone{{frequency: 260, duration: 24 * time.Millisecond, volume: 0.16}}
	case MenuSelect:
		return []tone{{frequency: 520, duration: 70 * time.Millisecond, volume: 0.2}}
	case GameOver:
		return []tone{
			{frequency: 330, duration: 120 * time.Millisecond, volume: 0.28},
			{frequency: 247, duration: 120 * time.Millisecond, volume: 0.28},
			{frequency: 180, duration: 220 * time.Millisecond, volume: 0.28},
		}
	default:
		return nil
	}
}

const (
	bytesPerFrame = 4
	toneGap       = 10 * time.Millisecond
)

func samplesFor(d time.Duration, sampleRate int) int {
	return int(float64(sampleRate) * d.Seconds())
}

// renderSequence produces interleaved stereo int16 PCM for sequence.
func renderSequence(sequence []tone, sampleRate int, master float64) []byte {
	gapSamples := samplesFor(toneGap, sampleRate)
	total := 0
	for i, t := range sequence {
		total += samplesFor(t.duration, sampleRate)
		if i < len(sequence)-1 {
			total += gapSamples
		}
	}
	buffer := make([]byte, total*bytesPerFrame)
	index := 0
	for i, t := range sequence {
		volume := t.volume * clampVolume(master)
		renderTone(buffer, index, t, sampleRate, volume)
		index += samplesFor(t.duration, sampleRate) * bytesPerFrame
		if i < len(sequence)-1 {
			index += gapSamples * bytesPerFrame
		}
	}
	return buffer
}

func renderTone(buffer []byte, start int, t tone, sampleRate int, volume float64) {
	const maxInt16 = 1<<15 - 1
	samples := samplesFor(t.duration, sampleRate)
	fade := int(float64(sampleRate) * 0.003)
	for i := 0; i < samples; i++ {
		env := 1.0
		if fade > 0 {
			if i < fade {
				env = float64(i) / float64(fade)
			} else if i > samples-fade {
				env = float64(samples-i) / float64(fade)
			}
			if env < 0 {
				env = 0
			}
		}
		sample := math.Sin(2 * math.Pi * t.frequency * float64(i) / float64(sampleRate))
		value := int16(sample * volume * env * maxInt16)
		off := start + i*bytesPerFrame
		buffer[off] = byte(value)
		buffer[off+1] = byte(value >> 8)
		buffer[off+2] = byte(value)
		buffer[off+3] = byte(value >> 8)
	}
}
