package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryEventHasTones(t *testing.T) {
	for event := Lock; event <= GameOver; event++ {
		assert.NotEmpty(t, tonesFor(event), "event %d", event)
	}
	assert.Nil(t, tonesFor(Event(-1)))
}

func TestRenderSequenceLength(t *testing.T) {
	const rate = 1000
	sequence := tonesFor(Line2)
	buf := renderSequence(sequence, rate, 1)
	want := (samplesFor(sequence[0].duration, rate) + samplesFor(toneGap, rate) + samplesFor(sequence[1].duration, rate)) * bytesPerFrame
	assert.Len(t, buf, want)
}

func TestRenderSequenceSilentAtZeroVolume(t *testing.T) {
	buf := renderSequence(tonesFor(Rotate), 8000, 0)
	assert.Equal(t, make([]byte, len(buf)), buf)
}

func TestVolumeFromPercent(t *testing.T) {
	assert.Equal(t, 0.0, VolumeFromPercent(-5))
	assert.Equal(t, 0.5, VolumeFromPercent(50))
	assert.Equal(t, 1.0, VolumeFromPercent(150))
}

func TestVolumeReaderScales(t *testing.T) {
	src := make([]byte, 4)
	binary.LittleEndian.PutUint16(src[0:], uint16(int16(1000)))
	neg := int16(-1000)
	binary.LittleEndian.PutUint16(src[2:], uint16(neg))
	r := &volumeReader{reader: bytes.NewReader(src), volume: func() float64 { return 0.5 }}

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, int16(500), int16(binary.LittleEndian.Uint16(out[0:])))
	assert.Equal(t, int16(-500), int16(binary.LittleEndian.Uint16(out[2:])))
}

func TestNilPlayersAreSilent(t *testing.T) {
	var fx *Effects
	fx.Play(Lock)
	fx.SetVolume(1)

	var m *Music
	m.Start()
	m.Stop()
	assert.False(t, m.Playing())

	silent := NewEffects(nil, 0, true)
	silent.Play(GameOver)
}

func TestNewMusicWithoutFile(t *testing.T) {
	m, err := NewMusic(nil, "", 1)
	assert.NoError(t, err)
	assert.Nil(t, m)
}
