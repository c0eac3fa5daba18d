package snapshot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hihaluemen/tetris-claude/internal/tetris"
)

func testFrame() Frame {
	g := tetris.NewGame(tetris.SequenceKinds(tetris.O, tetris.T))
	g.QuickDrop()
	cur := g.Current()
	return Frame{Board: g.Board(), Current: &cur, Score: g.Score(), Level: g.Level(), Lines: g.Lines()}
}

func TestRenderSize(t *testing.T) {
	img, err := Render(testFrame())
	require.NoError(t, err)
	b := img.Bounds()
	assert.Equal(t, tetris.Cols*cellSize+2*margin, b.Dx())
	assert.Equal(t, tetris.Rows*cellSize+2*margin+captionGap, b.Dy())

	// bottom-left cell of the locked O
	px := margin + 4*cellSize + cellSize/2
	py := margin + (tetris.Rows-1)*cellSize + cellSize/2
	r, g, bl, _ := img.At(px, py).RGBA()
	want := palette[tetris.O]
	assert.Equal(t, uint32(want.R)*0x101, r)
	assert.Equal(t, uint32(want.G)*0x101, g)
	assert.Equal(t, uint32(want.B)*0x101, bl)
}

func TestRenderRejectsEmptyBoard(t *testing.T) {
	_, err := Render(Frame{})
	assert.Error(t, err)
}

func TestExportWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	at := time.Date(2026, 10, 18, 15, 4, 5, 0, time.UTC)
	path, err := Export(dir, testFrame(), at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tetris-20261018-150405.png"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	_, err = png.Decode(file)
	assert.NoError(t, err)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Score 1240  Level 2  Lines 5", Summary(1240, 2, 5))
}
