package tui

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-hackslash/internal/config"
	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/leaderboard"
	"github.com/vovakirdan/tui-hackslash/internal/storage"
	"github.com/vovakirdan/tui-hackslash/internal/ui"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config.Arena.Width == 0 {
		opts.Config = config.Default()
	}
	opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}
	return NewModel(opts)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHeldKeys(t *testing.T) {
	var h HeldKeys
	t0 := time.Unix(100, 0)

	h.Press(dirUp, t0)
	assert.Equal(t, core.V(0, -1), h.Move(t0))
	assert.Equal(t, core.V(0, -1), h.Move(t0.Add(400*time.Millisecond)), "first press survives the repeat delay")
	assert.Equal(t, core.Vec2{}, h.Move(t0.Add(firstHold)), "released after the window")

	h.Press(dirRight, t0)
	h.Press(dirRight, t0.Add(400*time.Millisecond))
	assert.Equal(t, core.V(1, 0), h.Move(t0.Add(500*time.Millisecond)), "autorepeat extends the hold")

	h.Press(dirLeft, t0.Add(time.Second))
	assert.Equal(t, core.V(-1, 0), h.Move(t0.Add(time.Second)), "opposite press releases")

	h.Press(dirDown, t0.Add(time.Second))
	mv := h.Move(t0.Add(time.Second))
	assert.InDelta(t, 1, mv.Len(), 1e-9, "diagonals are normalized")

	h.Release()
	assert.Equal(t, core.Vec2{}, h.Move(t0.Add(time.Second)))
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.SetColored(2, 0, 'c', core.ColorBlue)
	s.DrawTextColored(0, 1, "xyz", core.ColorDefault)

	assert.Equal(t, "abc\nxyz", RenderScreen(s))
}

func TestMenuFlow(t *testing.T) {
	m := newTestModel(t, Options{})
	require.Equal(t, ui.ScreenMainMenu, m.Screen())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ui.ScreenPlaying, m.Screen())

	m = send(t, m, runes("p"))
	assert.Equal(t, ui.ScreenPaused, m.Screen())
	assert.True(t, m.Game().Paused())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ui.ScreenPlaying, m.Screen())
	assert.False(t, m.Game().Paused())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ui.ScreenMainMenu, m.Screen(), "pause menu back to main")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ui.ScreenScores, m.Screen())
	assert.Contains(t, m.View(), "HIGH SCORES")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Options{})
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestTicksFollowWallClock(t *testing.T) {
	cfg := config.Default()
	cfg.Clock.Step = 1.0 / 64
	m := newTestModel(t, Options{Config: cfg})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	t0 := time.Unix(1000, 0)
	m = send(t, m, TickMsg(t0))
	assert.Zero(t, m.Game().Stats().Ticks, "first frame only starts the clock")

	m = send(t, m, TickMsg(t0.Add(125*time.Millisecond)))
	assert.Equal(t, 8, m.Game().Stats().Ticks)

	m = send(t, m, runes("p"))
	m = send(t, m, TickMsg(t0.Add(time.Second)))
	assert.Equal(t, 8, m.Game().Stats().Ticks, "paused clock is not fed")
}

func TestMenuIgnoresTicks(t *testing.T) {
	m := newTestModel(t, Options{})
	t0 := time.Unix(1000, 0)
	m = send(t, m, TickMsg(t0))
	m = send(t, m, TickMsg(t0.Add(time.Second)))
	assert.Zero(t, m.Game().Stats().Ticks)
}

func TestAttackInputs(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.True(t, m.attack)
	m = send(t, m, TickMsg(time.Unix(1, 0)))
	assert.False(t, m.attack, "a frame consumes the press")

	m = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	assert.False(t, m.attack)
	assert.Equal(t, pointer{x: 10, y: 5, ok: true}, m.pointer)

	m = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.attack)
}

func TestAimFollowsPointer(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Equal(t, m.Game().PlayerPosition(), m.aim(), "no pointer yet")

	m = send(t, m, tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionMotion})
	aim := m.aim()
	assert.Less(t, aim.X, 20.0)
	assert.Less(t, aim.Y, 40.0)
}

func TestMovementKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.now = func() time.Time { return time.Unix(50, 0) }

	m = send(t, m, runes("d"))
	assert.Equal(t, core.V(1, 0), m.held.Move(time.Unix(50, 0)))
}

func TestClickMenuButton(t *testing.T) {
	m := newTestModel(t, Options{})
	play := m.ctl.Root().Find("play")
	require.NotNil(t, play)

	m = send(t, m, tea.MouseMsg{X: play.Rect.X + 1, Y: play.Rect.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, ui.ScreenPlaying, m.Screen())
}

func TestGameOverSavesScore(t *testing.T) {
	dir := t.TempDir()
	board := leaderboard.NewFile(filepath.Join(dir, leaderboard.DefaultFileName))
	store, err := storage.Open(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	m := newTestModel(t, Options{Store: store, Board: board})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.finishRun(time.Unix(2000, 0))
	require.Equal(t, ui.ScreenGameOver, m.Screen())
	require.NotEmpty(t, m.runID)
	assert.Contains(t, m.status, "high score", "an empty board takes any score")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ui.ScreenGameOver, m.Screen(), "name incomplete")

	m = send(t, m, runes("A"))
	m = send(t, m, runes("B"))
	m = send(t, m, runes("C"))
	m = send(t, m, runes("D"))
	assert.Equal(t, "ABC", m.ctl.Name())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ui.ScreenScores, m.Screen())
	assert.Equal(t, "ABC takes #1", m.status)

	entries, err := board.Load()
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.Entry{{Score: 0, Name: "ABC"}}, entries)

	run, err := store.RunByID(m.runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "ABC", run.Name)
	assert.Equal(t, int64(1), run.Seed, "first round uses the configured seed")
	snap := m.Game().Snapshot()
	assert.Equal(t, fmt.Sprintf("%016x", snap.Hash()), run.StateHash)
}

func TestGameOverWithoutPersistence(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.finishRun(time.Unix(2000, 0))

	for _, r := range "XYZ" {
		m = send(t, m, runes(string(r)))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ui.ScreenScores, m.Screen())
	assert.Contains(t, m.View(), "No scores yet")
}

func TestResizeKeepsFooterRow(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 29, m.screen.Height())
}
