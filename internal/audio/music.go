package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

// Music loops a single mp3 file while a game is on screen.
type Music struct {
	ctx    *oto.Context
	data   []byte
	mu     sync.Mutex
	player *oto.Player
	stop   chan struct{}
	volume float64
}

// ProbeSampleRate reports the sample rate of the mp3 at path so the output
// device can be opened to match it.
func ProbeSampleRate(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read music %s: %w", path, err)
	}
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode music %s: %w", path, err)
	}
	return dec.SampleRate(), nil
}

// NewMusic loads the mp3 at path. It returns nil without error when ctx is
// nil or path is empty.
func NewMusic(ctx *oto.Context, path string, volume float64) (*Music, error) {
	if ctx == nil || path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read music %s: %w", path, err)
	}
	if _, err := mp3.NewDecoder(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("decode music %s: %w", path, err)
	}
	return &Music{ctx: ctx, data: data, volume: clampVolume(volume)}, nil
}

func (m *Music) SetVolume(volume float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.volume = clampVolume(volume)
	m.mu.Unlock()
}

func (m *Music) Playing() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.player != nil
}

// Start begins the loop. It is a no-op while already playing.
func (m *Music) Start() {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.player != nil {
		m.mu.Unlock()
		return
	}
	dec, err := newLoopDecoder(m.data)
	if err != nil {
		m.mu.Unlock()
		return
	}
	player := m.ctx.NewPlayer(&volumeReader{reader: dec, volume: m.volumeValue})
	player.Play()
	m.player = player
	m.stop = make(chan struct{})
	stop := m.stop
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !player.IsPlaying() {
					_ = dec.rewind()
					player.Play()
				}
			}
		}
	}()
}

func (m *Music) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}
}

func (m *Music) volumeValue() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

type loopDecoder struct {
	mu  sync.Mutex
	dec *mp3.Decoder
}

func newLoopDecoder(data []byte) (*loopDecoder, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &loopDecoder{dec: dec}, nil
}

func (l *loopDecoder) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dec.Read(p)
}

func (l *loopDecoder) rewind() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.dec.Seek(0, io.SeekStart)
	return err
}

// volumeReader scales 16-bit little-endian samples on the way through.
type volumeReader struct {
	reader io.Reader
	volume func() float64
}

func (v *volumeReader) Read(p []byte) (int, error) {
	n, err := v.reader.Read(p)
	volume := clampVolume(v.volume())
	if volume >= 0.999 {
		return n, err
	}
	for i := 0; i+1 < n; i += 2 {
		sample := int16(binary.LittleEndian.Uint16(p[i:]))
		scaled := int16(float64(sample) * volume)
		binary.LittleEndian.PutUint16(p[i:], uint16(scaled))
	}
	return n, err
}
