// Package ui is the terminal front end. It owns the game session, feeds it
// timer ticks and key presses, and renders its state after every change.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hihaluemen/tetris-claude/internal/audio"
	"github.com/hihaluemen/tetris-claude/internal/config"
	"github.com/hihaluemen/tetris-claude/internal/debuglog"
	"github.com/hihaluemen/tetris-claude/internal/snapshot"
	"github.com/hihaluemen/tetris-claude/internal/tetris"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenConfig
	screenOver
)

type tickMsg struct {
	gen int
}

type gameOverMsg struct {
	session int
	score   int
}

type exportedMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	err error
}

const holdKey = "hold"

var configItems = []string{
	"Sound Effects",
	"Music",
	"Volume",
	"Shadow",
	"Game Scale",
}

type Model struct {
	screen      Screen
	width       int
	height      int
	menuIndex   int
	configIndex int
	themeIndex  int
	config      config.Config
	keys        keyMap
	help        help.Model
	press       *pressTracker
	sound       *audio.Effects
	music       *audio.Music
	source      tetris.KindSource
	game        *tetris.Game
	session     int
	tickGen     int
	tickLevel   int
	finalScore  int
	lastDelta   int
	status      string
	now         func() time.Time
}

// NewModel builds the front end. sound and music may be nil.
func NewModel(cfg config.Config, sound *audio.Effects, music *audio.Music) Model {
	index := themeIndexByName(cfg.Theme)
	if index < 0 {
		index = 0
		cfg.Theme = themes[index].Name
	}
	return Model{
		screen:     screenMenu,
		config:     cfg,
		themeIndex: index,
		keys:       defaultKeyMap(),
		help:       help.New(),
		press:      newPressTracker(cfg.RepeatWindow),
		sound:      sound,
		music:      music,
		now:        time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		cmd := m.onTick(msg)
		return m, cmd
	case gameOverMsg:
		if msg.session != m.session {
			return m, nil
		}
		m.finalScore = msg.score
		debuglog.Logf("game over session=%d score=%d level=%d lines=%d", m.session, msg.score, m.game.Level(), m.game.Lines())
		m.setScreen(screenOver)
		return m, m.play(audio.GameOver)
	case exportedMsg:
		if msg.err != nil {
			debuglog.Logf("export error: %v", msg.err)
			m.status = "Export failed."
			return m, nil
		}
		debuglog.Logf("exported %s", msg.path)
		m.status = "Saved " + msg.path
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			debuglog.Logf("clipboard error: %v", msg.err)
			m.status = "Clipboard unavailable."
			return m, nil
		}
		m.status = "Result copied."
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.music.Stop()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.screen {
		case screenMenu:
			cmd = m.updateMenu(msg)
		case screenGame:
			cmd = m.updateGame(msg)
		case screenThemes:
			cmd = m.updateThemes(msg)
		case screenConfig:
			cmd = m.updateConfig(msg)
		case screenOver:
			cmd = m.updateOver(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenConfig:
		return viewConfig(m)
	case screenOver:
		return viewOver(m)
	default:
		return ""
	}
}

func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// waitForGameOver blocks on the session's notification channel. A closed
// channel means the session was restarted and yields no message.
func waitForGameOver(done <-chan int, session int) tea.Cmd {
	return func() tea.Msg {
		score, ok := <-done
		if !ok {
			return nil
		}
		return gameOverMsg{session: session, score: score}
	}
}

// armTick starts a fresh gravity timer for the current level. Ticks from any
// earlier timer are discarded by generation. A tick that finds the game
// paused ends its chain; unpausing arms a new one.
func (m *Model) armTick() tea.Cmd {
	m.tickGen++
	m.tickLevel = m.game.Level()
	return tickCmd(m.game.FallInterval(), m.tickGen)
}

func (m *Model) onTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.tickGen || m.game == nil || m.screen != screenGame || m.game.Over() {
		return nil
	}
	if m.game.Paused() {
		return nil
	}
	cmd := m.afterAction(m.game.Tick())
	if msg.gen == m.tickGen && !m.game.Over() {
		cmd = tea.Batch(cmd, tickCmd(m.game.FallInterval(), msg.gen))
	}
	return cmd
}

func (m *Model) startGame() tea.Cmd {
	if m.game == nil {
		m.game = tetris.NewGame(m.source)
	} else {
		m.game.Start()
	}
	m.session++
	m.finalScore = 0
	m.lastDelta = 0
	m.status = ""
	m.press.Reset()
	debuglog.Logf("session %d start", m.session)
	m.setScreen(screenGame)
	return tea.Batch(m.armTick(), waitForGameOver(m.game.Done(), m.session), m.play(audio.MenuSelect))
}

func (m *Model) resumeGame() tea.Cmd {
	if m.game.Paused() {
		m.game.TogglePause()
	}
	m.setScreen(screenGame)
	return m.armTick()
}

func (m *Model) inProgress() bool {
	return m.game != nil && !m.game.Over()
}

func (m *Model) menuItems() []string {
	if m.inProgress() {
		return []string{"Resume", "New Game", "Themes", "Config", "Quit"}
	}
	return []string{"New Game", "Themes", "Config", "Quit"}
}

func (m *Model) setScreen(screen Screen) {
	m.screen = screen
	m.syncMusic()
}

func (m *Model) syncMusic() {
	if m.music == nil {
		return
	}
	if m.config.Music && m.screen == screenGame {
		m.music.Start()
		return
	}
	m.music.Stop()
}

// afterAction turns an engine result into sounds, bookkeeping and, when the
// level moved, a re-armed timer.
func (m *Model) afterAction(res tetris.Result) tea.Cmd {
	if res.Locked {
		debuglog.Logf("lock cleared=%d delta=%d score=%d level=%d", res.Cleared, res.ScoreDelta, m.game.Score(), m.game.Level())
		if res.ScoreDelta > 0 {
			m.lastDelta = res.ScoreDelta
		}
	}
	cmds := []tea.Cmd{m.play(effectsFor(res)...)}
	if !m.game.Over() && m.game.Level() != m.tickLevel {
		debuglog.Logf("level %d interval=%s", m.game.Level(), m.game.FallInterval())
		cmds = append(cmds, m.armTick())
	}
	return tea.Batch(cmds...)
}

// effectsFor picks the sounds for a result. Plain moves and game over are
// voiced by their callers.
func effectsFor(res tetris.Result) []audio.Event {
	var events []audio.Event
	switch {
	case res.Cleared >= 4:
		events = append(events, audio.Line4)
	case res.Cleared == 3:
		events = append(events, audio.Line3)
	case res.Cleared == 2:
		events = append(events, audio.Line2)
	case res.Cleared == 1:
		events = append(events, audio.Line1)
	case res.Locked && res.Dropped > 0:
		events = append(events, audio.Drop)
	case res.Locked:
		events = append(events, audio.Lock)
	case res.Held:
		events = append(events, audio.Hold)
	case res.Rotated:
		events = append(events, audio.Rotate)
	}
	if res.LevelUp {
		events = append(events, audio.LevelUp)
	}
	return events
}

func (m *Model) play(events ...audio.Event) tea.Cmd {
	if !m.config.Sound || m.sound == nil || len(events) == 0 {
		return nil
	}
	sound := m.sound
	return func() tea.Msg {
		for _, event := range events {
			sound.Play(event)
		}
		return nil
	}
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	items := m.menuItems()
	if m.menuIndex >= len(items) {
		m.menuIndex = len(items) - 1
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
			return m.play(audio.MenuMove)
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuIndex < len(items)-1 {
			m.menuIndex++
			return m.play(audio.MenuMove)
		}
	case key.Matches(msg, m.keys.Select):
		switch items[m.menuIndex] {
		case "Resume":
			return m.resumeGame()
		case "New Game":
			m.menuIndex = 0
			return m.startGame()
		case "Themes":
			m.setScreen(screenThemes)
			return m.play(audio.MenuSelect)
		case "Config":
			m.setScreen(screenConfig)
			return m.play(audio.MenuSelect)
		case "Quit":
			m.music.Stop()
			return tea.Quit
		}
	case key.Matches(msg, m.keys.Menu), msg.String() == "q":
		m.music.Stop()
		return tea.Quit
	}
	return nil
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, m.keys.Hold) {
		m.press.Release(holdKey)
	}
	switch {
	case key.Matches(msg, m.keys.Left):
		return m.shift(-1)
	case key.Matches(msg, m.keys.Right):
		return m.shift(1)
	case key.Matches(msg, m.keys.SoftDrop):
		return m.afterAction(m.game.Move(0, 1))
	case key.Matches(msg, m.keys.Rotate):
		return m.afterAction(m.game.Rotate())
	case key.Matches(msg, m.keys.Hold):
		if !m.press.Press(holdKey, m.now()) {
			return nil
		}
		return m.afterAction(m.game.Hold())
	case key.Matches(msg, m.keys.Drop):
		return m.afterAction(m.game.QuickDrop())
	case key.Matches(msg, m.keys.Pause):
		m.game.TogglePause()
		if m.game.State() == tetris.Running {
			return m.armTick()
		}
		return nil
	case key.Matches(msg, m.keys.Restart):
		return m.startGame()
	case key.Matches(msg, m.keys.Export):
		return m.exportCmd()
	case key.Matches(msg, m.keys.Menu):
		if m.game.State() == tetris.Running {
			m.game.TogglePause()
		}
		m.menuIndex = 0
		m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) shift(dx int) tea.Cmd {
	res := m.game.Move(dx, 0)
	if !res.Moved {
		return nil
	}
	return m.play(audio.Move)
}

func (m *Model) updateOver(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Restart):
		return m.startGame()
	case key.Matches(msg, m.keys.Copy):
		return copyCmd(m.finalScore, m.game.Level(), m.game.Lines())
	case key.Matches(msg, m.keys.Export):
		return m.exportCmd()
	case key.Matches(msg, m.keys.Menu):
		m.menuIndex = 0
		m.status = ""
		m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeIndex > 0 {
			m.themeIndex--
			return m.play(audio.MenuMove)
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
			return m.play(audio.MenuMove)
		}
	case key.Matches(msg, m.keys.Select):
		m.config.Theme = themes[m.themeIndex].Name
		m.saveConfig()
		m.setScreen(screenMenu)
		return m.play(audio.MenuSelect)
	case key.Matches(msg, m.keys.Menu):
		if i := themeIndexByName(m.config.Theme); i >= 0 {
			m.themeIndex = i
		}
		m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.configIndex > 0 {
			m.configIndex--
			return m.play(audio.MenuMove)
		}
	case key.Matches(msg, m.keys.Down):
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
			return m.play(audio.MenuMove)
		}
	case key.Matches(msg, m.keys.Select):
		switch m.configIndex {
		case 0:
			m.config.Sound = !m.config.Sound
			m.sound.SetEnabled(m.config.Sound)
		case 1:
			m.config.Music = !m.config.Music
			m.syncMusic()
		case 2:
			m.adjustVolume(10)
		case 3:
			m.config.Shadow = !m.config.Shadow
		case 4:
			m.adjustScale(1)
		}
		m.saveConfig()
		return m.play(audio.MenuSelect)
	case key.Matches(msg, m.keys.Left):
		return m.adjustSelected(-1)
	case key.Matches(msg, m.keys.Right):
		return m.adjustSelected(1)
	case key.Matches(msg, m.keys.Menu):
		m.status = ""
		m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) adjustSelected(dir int) tea.Cmd {
	switch m.configIndex {
	case 2:
		m.adjustVolume(5 * dir)
	case 4:
		m.adjustScale(dir)
	default:
		return nil
	}
	m.saveConfig()
	return m.play(audio.MenuMove)
}

func (m *Model) adjustVolume(delta int) {
	volume := m.config.Volume + delta
	if volume > 100 && delta > 0 && m.config.Volume == 100 {
		volume = 0
	}
	m.config.Volume = config.ClampVolume(volume)
	m.sound.SetVolume(audio.VolumeFromPercent(m.config.Volume))
	m.music.SetVolume(audio.VolumeFromPercent(m.config.Volume))
}

func (m *Model) adjustScale(delta int) {
	m.config.Scale = config.ClampScale(m.config.Scale + delta)
}

func (m *Model) saveConfig() {
	if err := m.config.Save(); err != nil {
		debuglog.Logf("config save error: %v", err)
		m.status = "Settings not saved."
	}
}

func (m *Model) exportCmd() tea.Cmd {
	if m.game == nil {
		return nil
	}
	frame := snapshot.Frame{
		Board: m.game.Board(),
		Score: m.game.Score(),
		Level: m.game.Level(),
		Lines: m.game.Lines(),
	}
	if !m.game.Over() {
		cur := m.game.Current()
		frame.Current = &cur
	}
	dir := m.config.ExportDir
	at := m.now()
	return func() tea.Msg {
		path, err := snapshot.Export(dir, frame, at)
		return exportedMsg{path: path, err: err}
	}
}

func copyCmd(score, level, lines int) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: snapshot.CopySummary(score, level, lines)}
	}
}
