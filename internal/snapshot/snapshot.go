// Package snapshot exports the well as a PNG image and formats the result
// line shared to the clipboard.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/hihaluemen/tetris-claude/internal/tetris"
)

const (
	cellSize   = 24
	margin     = 12
	captionGap = 28
)

// Frame is what gets drawn: the locked cells plus the falling piece.
type Frame struct {
	Board   [][]tetris.Kind
	Current *tetris.Piece
	Score   int
	Level   int
	Lines   int
}

var palette = map[tetris.Kind]color.RGBA{
	tetris.I: {0x00, 0xd7, 0xff, 0xff},
	tetris.J: {0x00, 0x5f, 0xff, 0xff},
	tetris.L: {0xff, 0x87, 0x00, 0xff},
	tetris.O: {0xff, 0xd7, 0x00, 0xff},
	tetris.S: {0x00, 0xd7, 0x5f, 0xff},
	tetris.T: {0x87, 0x00, 0xff, 0xff},
	tetris.Z: {0xff, 0x00, 0x00, 0xff},
}

// Render draws f at a fixed cell size with a caption underneath.
func Render(f Frame) (image.Image, error) {
	rows := len(f.Board)
	cols := 0
	if rows > 0 {
		cols = len(f.Board[0])
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("empty board")
	}
	width := cols*cellSize + 2*margin
	height := rows*cellSize + 2*margin + captionGap
	dc := gg.NewContext(width, height)
	dc.SetRGB255(16, 16, 24)
	dc.Clear()

	grid := make([][]tetris.Kind, rows)
	for y := range grid {
		grid[y] = append([]tetris.Kind(nil), f.Board[y]...)
	}
	if f.Current != nil {
		for _, c := range f.Current.Cells() {
			if c.Y >= 0 && c.Y < rows && c.X >= 0 && c.X < cols {
				grid[c.Y][c.X] = f.Current.Kind
			}
		}
	}

	dc.SetRGB255(60, 60, 72)
	dc.SetLineWidth(1)
	dc.DrawRectangle(margin-0.5, margin-0.5, float64(cols*cellSize)+1, float64(rows*cellSize)+1)
	dc.Stroke()
	for y, row := range grid {
		for x, kind := range row {
			if kind == tetris.None {
				continue
			}
			px := float64(margin + x*cellSize)
			py := float64(margin + y*cellSize)
			dc.SetColor(palette[kind])
			dc.DrawRectangle(px+1, py+1, cellSize-2, cellSize-2)
			dc.Fill()
		}
	}

	face, err := captionFace()
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	dc.SetColor(color.White)
	dc.DrawString(Summary(f.Score, f.Level, f.Lines), margin, float64(height-margin))
	return dc.Image(), nil
}

// Export writes f as a timestamped PNG in dir and returns the file path.
func Export(dir string, f Frame, now time.Time) (string, error) {
	img, err := Render(f)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, "tetris-"+now.Format("20060102-150405")+".png")
	if err := gg.SavePNG(path, img); err != nil {
		return "", fmt.Errorf("save png %s: %w", path, err)
	}
	return path, nil
}

func Summary(score, level, lines int) string {
	return fmt.Sprintf("Score %d  Level %d  Lines %d", score, level, lines)
}

// CopySummary puts the result line on the system clipboard.
func CopySummary(score, level, lines int) error {
	if err := clipboard.WriteAll(Summary(score, level, lines)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

func captionFace() (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
