package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hihaluemen/tetris-claude/internal/config"
	"github.com/hihaluemen/tetris-claude/internal/tetris"
)

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("TETRIS", m.menuItems(), m.menuIndex, "Enter to select, Esc to quit", theme)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	preview := renderThemePreview(theme.forLevel(1))
	menu := renderMenu("Themes", items, m.themeIndex, "Enter to apply, Esc to back", theme)
	content := lipgloss.JoinVertical(lipgloss.Left, preview, "", menu)
	return center(m.width, m.height, content)
}

func renderThemePreview(theme Theme) string {
	pieces := make([]string, 0, len(tetris.Kinds))
	for _, kind := range tetris.Kinds {
		p := tetris.Piece{Kind: kind, Shape: tetris.ShapeOf(kind)}
		pieces = append(pieces, lipgloss.NewStyle().MarginRight(1).Render(renderMiniPiece(p, theme, 1, false)))
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle(theme).Render("Preview"),
		lipgloss.JoinHorizontal(lipgloss.Top, pieces...),
	)
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(configItems))
	for i, item := range configItems {
		switch i {
		case 0:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Sound)))
		case 1:
			state := onOff(m.config.Music)
			if m.config.MusicFile == "" {
				state += " (no music_file)"
			}
			items = append(items, fmt.Sprintf("%s: %s", item, state))
		case 2:
			items = append(items, fmt.Sprintf("%s: %d%%", item, config.ClampVolume(m.config.Volume)))
		case 3:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Shadow)))
		case 4:
			items = append(items, fmt.Sprintf("%s: %dx", item, config.ClampScale(m.config.Scale)))
		}
	}
	content := renderMenu("Config", items, m.configIndex, "Enter to toggle, Left/Right to adjust, Esc to back", theme)
	if m.status != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", warningStyle().Render(m.status))
	}
	return center(m.width, m.height, content)
}

func viewGame(m Model) string {
	if m.game == nil {
		return ""
	}
	theme := themes[m.themeIndex].forLevel(m.game.Level())
	scale := config.ClampScale(m.config.Scale)
	minWidth, minHeight := minGameSize(scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	board := renderBoard(m.game, theme, scale, m.config.Shadow)
	info := renderInfo(m.game, theme, scale, m.lastDelta)
	info = lipgloss.JoinVertical(lipgloss.Left, info, "", lipgloss.NewStyle().PaddingLeft(2).Render(m.help.View(gameKeys(m.keys))))
	if m.status != "" {
		info = lipgloss.JoinVertical(lipgloss.Left, info, "", lipgloss.NewStyle().PaddingLeft(2).Render(helpStyle(theme).Render(m.status)))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	return center(m.width, m.height, content)
}

func viewOver(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Game Over"))
	b.WriteString("\n\n")
	if m.game != nil {
		b.WriteString(fmt.Sprintf("Final score: %s\n", highlightStyle(theme).Render(fmt.Sprint(m.finalScore))))
		b.WriteString(fmt.Sprintf("Level: %d  Lines: %d\n", m.game.Level(), m.game.Lines()))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle(theme).Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(overKeys(m.keys)))
	return center(m.width, m.height, b.String())
}

// renderBoard projects the locked cells, the ghost and the falling piece.
func renderBoard(g *tetris.Game, theme Theme, scale int, showShadow bool) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellText := strings.Repeat(" ", cellWidth(scale))
	ghostText := strings.Repeat(".", cellWidth(scale))
	board := g.Board()
	rows, cols := g.Rows(), g.Cols()
	cur := g.Current()

	ghost := make(map[tetris.Point]bool)
	if showShadow && !g.Over() {
		shadow := cur
		shadow.Y = g.GhostY()
		if shadow.Y != cur.Y {
			for _, c := range shadow.Cells() {
				if c.Y >= 0 && c.Y < rows && c.X >= 0 && c.X < cols && board[c.Y][c.X] == tetris.None {
					ghost[c] = true
				}
			}
		}
	}
	if !g.Over() {
		for _, c := range cur.Cells() {
			if c.Y >= 0 && c.Y < rows && c.X >= 0 && c.X < cols {
				board[c.Y][c.X] = cur.Kind
			}
		}
	}

	var b strings.Builder
	edge := border.Render("+" + strings.Repeat("-", cols*cellWidth(scale)) + "+")
	b.WriteString(edge)
	b.WriteString("\n")
	for y := 0; y < rows; y++ {
		for repeat := 0; repeat < scale; repeat++ {
			b.WriteString(border.Render("|"))
			for x := 0; x < cols; x++ {
				kind := board[y][x]
				if kind == tetris.None {
					if ghost[tetris.Point{X: x, Y: y}] {
						b.WriteString(lipgloss.NewStyle().Foreground(theme.colorOf(cur.Kind)).Faint(true).Render(ghostText))
					} else {
						b.WriteString(cellText)
					}
					continue
				}
				b.WriteString(lipgloss.NewStyle().Background(theme.colorOf(kind)).Render(cellText))
			}
			b.WriteString(border.Render("|"))
			b.WriteString("\n")
		}
	}
	b.WriteString(edge)
	return b.String()
}

func renderInfo(g *tetris.Game, theme Theme, scale int, lastDelta int) string {
	var b strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	b.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	b.WriteString("\n")
	b.WriteString(pad.Render(renderMiniPiece(g.Next(), theme, scale, false)))
	b.WriteString("\n\n")
	b.WriteString(pad.Render(titleStyle(theme).Render("Hold")))
	b.WriteString("\n")
	if held, ok := g.Held(); ok {
		b.WriteString(pad.Render(renderMiniPiece(held, theme, scale, !g.CanHold())))
	} else {
		b.WriteString(pad.Render("(empty)"))
	}
	b.WriteString("\n\n")
	b.WriteString(pad.Render(fmt.Sprintf("Score: %d", g.Score())))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Level: %d", g.Level())))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Lines: %d", g.Lines())))
	if lastDelta > 0 {
		b.WriteString("\n\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render(fmt.Sprintf("+%d", lastDelta))))
	}
	if g.Paused() {
		b.WriteString("\n\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("Paused")))
	}
	return b.String()
}

// renderMiniPiece draws a piece's shape in a box four cells wide. Locked
// pieces are drawn faint.
func renderMiniPiece(p tetris.Piece, theme Theme, scale int, faint bool) string {
	const boxWidth = 4
	cellText := strings.Repeat(" ", cellWidth(scale))
	style := lipgloss.NewStyle().Background(theme.colorOf(p.Kind)).Faint(faint)
	var b strings.Builder
	for _, row := range p.Shape {
		for repeat := 0; repeat < scale; repeat++ {
			for x := 0; x < boxWidth; x++ {
				if x < len(row) && row[x] {
					b.WriteString(style.Render(cellText))
					continue
				}
				b.WriteString(cellText)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		if width := lipgloss.Width(item); width > maxWidth {
			maxWidth = width
		}
	}
	if width := lipgloss.Width(footer); width > maxWidth {
		maxWidth = width
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, item := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(item)))
		} else {
			b.WriteString(lineStyle.Render(item))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}

func minGameSize(scale int) (int, int) {
	width := tetris.Cols*cellWidth(scale) + 4
	height := tetris.Rows*scale + 4
	return width, height
}

func cellWidth(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return 2 * scale
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
