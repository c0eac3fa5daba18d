package ui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hihaluemen/tetris-claude/internal/audio"
	"github.com/hihaluemen/tetris-claude/internal/config"
	"github.com/hihaluemen/tetris-claude/internal/tetris"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestModel(t *testing.T, kinds ...tetris.Kind) (Model, *clock) {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	cfg.Sound = false
	m := NewModel(cfg, nil, nil)
	if len(kinds) == 0 {
		kinds = []tetris.Kind{tetris.O}
	}
	m.source = tetris.SequenceKinds(kinds...)
	c := &clock{now: time.Unix(1700000000, 0)}
	m.now = c.Now
	return m, c
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = send(t, m, keyMsg(k))
	}
	return m
}

func TestMenuStartsGame(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, []string{"New Game", "Themes", "Config", "Quit"}, m.menuItems())

	m, cmd := send(t, m, keyMsg("enter"))
	assert.NotNil(t, cmd)
	assert.Equal(t, screenGame, m.screen)
	require.NotNil(t, m.game)
	assert.Equal(t, tetris.Running, m.game.State())
	assert.Equal(t, 1, m.session)
	assert.Equal(t, 1, m.tickGen)
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := send(t, m, keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMovementKeys(t *testing.T) {
	m, _ := newTestModel(t, tetris.T)
	m = press(t, m, "enter")
	start := m.game.Current()

	m = press(t, m, "left")
	assert.Equal(t, start.X-1, m.game.Current().X)
	m = press(t, m, "right", "right")
	assert.Equal(t, start.X+1, m.game.Current().X)
	m = press(t, m, "down")
	assert.Equal(t, start.Y+1, m.game.Current().Y)

	m = press(t, m, "up")
	assert.False(t, start.Shape.Equal(m.game.Current().Shape))

	m = press(t, m, "q")
	assert.Equal(t, 0, m.game.Current().Y)
	board := m.game.Board()
	assert.NotEqual(t, tetris.None, board[tetris.Rows-1][start.X+1])
}

func TestTickAdvancesOnlyCurrentGeneration(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter")
	y := m.game.Current().Y

	m, cmd := send(t, m, tickMsg{gen: m.tickGen - 1})
	assert.Nil(t, cmd)
	assert.Equal(t, y, m.game.Current().Y)

	m, cmd = send(t, m, tickMsg{gen: m.tickGen})
	assert.NotNil(t, cmd)
	assert.Equal(t, y+1, m.game.Current().Y)
}

func TestTickWhilePausedKeepsPiece(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter", "p")
	require.True(t, m.game.Paused())
	y := m.game.Current().Y

	m, cmd := send(t, m, tickMsg{gen: m.tickGen})
	assert.Nil(t, cmd)
	assert.Equal(t, y, m.game.Current().Y)

	m = press(t, m, "left")
	assert.Equal(t, y, m.game.Current().Y)

	gen := m.tickGen
	m, cmd = send(t, m, keyMsg("p"))
	assert.NotNil(t, cmd)
	assert.Equal(t, tetris.Running, m.game.State())
	assert.Equal(t, gen+1, m.tickGen)
}

func TestHoldIgnoresKeyRepeat(t *testing.T) {
	m, c := newTestModel(t, tetris.T, tetris.I, tetris.O, tetris.S)
	m = press(t, m, "enter")

	m = press(t, m, "e")
	held, ok := m.game.Held()
	require.True(t, ok)
	assert.Equal(t, tetris.T, held.Kind)
	assert.False(t, m.game.CanHold())

	// Lock without a key event so the hold key is still considered down.
	m.game.QuickDrop()
	require.True(t, m.game.CanHold())
	c.Advance(50 * time.Millisecond)
	m = press(t, m, "e")
	assert.True(t, m.game.CanHold())
	held, _ = m.game.Held()
	assert.Equal(t, tetris.T, held.Kind)

	// Any other key releases hold.
	current := m.game.Current().Kind
	m = press(t, m, "left", "e")
	assert.False(t, m.game.CanHold())
	held, _ = m.game.Held()
	assert.Equal(t, current, held.Kind)
}

func TestHoldAfterRepeatWindow(t *testing.T) {
	m, c := newTestModel(t, tetris.T, tetris.I, tetris.O, tetris.S)
	m = press(t, m, "enter", "e")
	m.game.QuickDrop()

	c.Advance(m.config.RepeatWindow)
	m = press(t, m, "e")
	assert.False(t, m.game.CanHold())
}

func TestEscPausesAndResumes(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter", "esc")
	assert.Equal(t, screenMenu, m.screen)
	assert.True(t, m.game.Paused())
	assert.Equal(t, "Resume", m.menuItems()[0])
	gen := m.tickGen

	m, cmd := send(t, m, keyMsg("enter"))
	assert.NotNil(t, cmd)
	assert.Equal(t, screenGame, m.screen)
	assert.Equal(t, tetris.Running, m.game.State())
	assert.Equal(t, gen+1, m.tickGen)
}

func TestGameOverFlow(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter")
	for i := 0; i < tetris.Rows && !m.game.Over(); i++ {
		m = press(t, m, "q")
	}
	require.True(t, m.game.Over())

	_, cmd := send(t, m, tickMsg{gen: m.tickGen})
	assert.Nil(t, cmd)

	msg := waitForGameOver(m.game.Done(), m.session)()
	over, ok := msg.(gameOverMsg)
	require.True(t, ok)
	assert.Equal(t, m.game.Score(), over.score)

	stale, _ := send(t, m, gameOverMsg{session: m.session - 1, score: 99})
	assert.Equal(t, screenGame, stale.screen)

	m, _ = send(t, m, over)
	assert.Equal(t, screenOver, m.screen)
	assert.Equal(t, over.score, m.finalScore)
	assert.Contains(t, m.View(), "Game Over")

	m = press(t, m, "n")
	assert.Equal(t, screenGame, m.screen)
	assert.Equal(t, tetris.Running, m.game.State())
	assert.Equal(t, 0, m.game.Score())
}

func TestRestartClosesPreviousNotification(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter")
	done := m.game.Done()
	session := m.session

	m = press(t, m, "n")
	assert.Equal(t, session+1, m.session)
	assert.Nil(t, waitForGameOver(done, session)())
}

func TestThemeSelectionIsSaved(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "down", "enter")
	require.Equal(t, screenThemes, m.screen)

	m = press(t, m, "down", "down", "enter")
	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, themes[2].Name, m.config.Theme)

	saved, err := config.Load(m.config.Path())
	require.NoError(t, err)
	assert.Equal(t, themes[2].Name, saved.Theme)
}

func TestConfigScreenAdjustsSettings(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "down", "down", "enter")
	require.Equal(t, screenConfig, m.screen)

	m = press(t, m, "enter")
	assert.True(t, m.config.Sound)

	m = press(t, m, "down", "down")
	volume := m.config.Volume
	m = press(t, m, "left")
	assert.Equal(t, volume-5, m.config.Volume)

	m = press(t, m, "down", "down", "right", "right", "right")
	assert.Equal(t, 3, m.config.Scale)

	saved, err := config.Load(m.config.Path())
	require.NoError(t, err)
	assert.True(t, saved.Sound)
	assert.Equal(t, volume-5, saved.Volume)
	assert.Equal(t, 3, saved.Scale)

	m = press(t, m, "esc")
	assert.Equal(t, screenMenu, m.screen)
}

func TestExportFromGame(t *testing.T) {
	m, _ := newTestModel(t)
	m.config.ExportDir = t.TempDir()
	m = press(t, m, "enter")

	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	msg, ok := cmd().(exportedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.FileExists(t, msg.path)

	m, _ = send(t, m, msg)
	assert.Contains(t, m.status, msg.path)
}

func TestEffectsFor(t *testing.T) {
	tests := []struct {
		name string
		res  tetris.Result
		want []audio.Event
	}{
		{"move", tetris.Result{Moved: true}, nil},
		{"rotate", tetris.Result{Rotated: true}, []audio.Event{audio.Rotate}},
		{"hold", tetris.Result{Held: true}, []audio.Event{audio.Hold}},
		{"lock", tetris.Result{Locked: true}, []audio.Event{audio.Lock}},
		{"drop", tetris.Result{Locked: true, Dropped: 12}, []audio.Event{audio.Drop}},
		{"single", tetris.Result{Locked: true, Cleared: 1}, []audio.Event{audio.Line1}},
		{"tetris", tetris.Result{Locked: true, Cleared: 4, LevelUp: true}, []audio.Event{audio.Line4, audio.LevelUp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, effectsFor(tt.res))
		})
	}
}

func TestViewsRender(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "New Game")

	m = press(t, m, "enter")
	view := m.View()
	assert.Contains(t, view, "Score: 0")
	assert.Contains(t, view, "Next")

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	assert.Contains(t, m.View(), "Terminal too small")
}
