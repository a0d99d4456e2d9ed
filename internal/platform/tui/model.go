package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hackslash/internal/config"
	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/games/hackslash"
	"github.com/vovakirdan/tui-hackslash/internal/leaderboard"
	"github.com/vovakirdan/tui-hackslash/internal/storage"
	"github.com/vovakirdan/tui-hackslash/internal/ui"
)

// Options configures a Model.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store    // run history, optional
	Board   *leaderboard.File // high score file, optional
	Logger  *log.Logger
	Player  string // SSH user, empty when local
}

// pointer is the last mouse position in screen cells.
type pointer struct {
	x, y int
	ok   bool
}

// Model is the Bubble Tea model for one player: menus, the arena and the
// score screens.
type Model struct {
	opts    Options
	logger  *log.Logger
	game    *hackslash.Game
	ctl     *ui.Controller
	screen  *core.Screen
	scores  *Scoreboard
	keys    KeyMap
	help    help.Model
	name    textinput.Model
	held    *HeldKeys
	pointer pointer
	now     func() time.Time

	width, height int
	attack        bool
	last          time.Time
	rounds        int
	seed          int64
	runID         string
	status        string
	quitting      bool
}

// NewModel creates a model sitting on the main menu.
func NewModel(opts Options) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Player != "" {
		logger = logger.With("player", opts.Player)
	}

	name := textinput.New()
	name.CharLimit = leaderboard.NameLen
	name.Prompt = ""

	game := hackslash.New(opts.Config, hackslash.WithLogger(logger))
	game.Reset(opts.Runtime)

	m := Model{
		opts:   opts,
		logger: logger,
		game:   game,
		ctl:    ui.NewController(),
		screen: core.NewScreen(1, 1),
		scores: NewScoreboard(opts.Board, opts.Store),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		name:   name,
		held:   &HeldKeys{},
		now:    time.Now,
	}
	m.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// resize keeps the last row for the footer.
func (m *Model) resize(w, h int) {
	w, h = max(w, 1), max(h, 2)
	m.width, m.height = w, h
	m.opts.Runtime.ScreenW = w
	m.opts.Runtime.ScreenH = h - 1
	m.screen.Resize(w, h-1)
	m.game.Resize(w, h-1)
	m.ctl.Resize(w, h-1)
	m.help.Width = w
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.run(ui.CmdQuit)
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.ctl.Screen() {
	case ui.ScreenPlaying:
		return m.playKey(msg)
	case ui.ScreenGameOver:
		return m.gameOverKey(msg)
	default:
		return m.menuKey(msg)
	}
}

func (m Model) playKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d, ok := m.keys.direction(msg); ok {
		m.held.Press(d, m.now())
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Attack):
		m.attack = true
	case key.Matches(msg, m.keys.Pause):
		return m.run(ui.CmdPause)
	case key.Matches(msg, m.keys.Debug):
		m.game.ToggleDebug()
	case key.Matches(msg, m.keys.Quit):
		return m.run(ui.CmdQuit)
	}
	return m, nil
}

func (m Model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.run(ui.CmdQuit)
	case key.Matches(msg, m.keys.Prev):
		m.ctl.MoveFocus(-1)
	case key.Matches(msg, m.keys.Next):
		m.ctl.MoveFocus(1)
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Attack):
		return m.run(m.ctl.Activate())
	case key.Matches(msg, m.keys.Pause) && m.ctl.Screen() == ui.ScreenPaused:
		return m.run(ui.CmdResume)
	case key.Matches(msg, m.keys.Back):
		return m.run(m.backCommand())
	case key.Matches(msg, m.keys.Restart) && m.ctl.Screen() == ui.ScreenScores:
		return m.run(ui.CmdStart)
	}
	return m, nil
}

// gameOverKey routes typing to the name field while it has focus.
func (m Model) gameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inField := m.ctl.FocusID() == ui.IDNameField

	switch {
	case msg.Type == tea.KeyTab || msg.Type == tea.KeyDown:
		m.ctl.MoveFocus(1)
		return m, nil
	case msg.Type == tea.KeyShiftTab || msg.Type == tea.KeyUp:
		m.ctl.MoveFocus(-1)
		return m, nil
	case msg.Type == tea.KeyEsc:
		return m.run(ui.CmdMainMenu)
	case msg.Type == tea.KeyEnter:
		if inField {
			return m.run(ui.CmdSaveScore)
		}
		return m.run(m.ctl.Activate())
	case inField:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		m.ctl.SetName(m.name.Value())
		if m.name.Value() != m.ctl.Name() {
			m.name.SetValue(m.ctl.Name())
		}
		return m, cmd
	case key.Matches(msg, m.keys.Restart):
		return m.run(ui.CmdStart)
	case key.Matches(msg, m.keys.Quit):
		return m.run(ui.CmdQuit)
	case msg.Type == tea.KeySpace:
		return m.run(m.ctl.Activate())
	}
	return m, nil
}

func (m Model) backCommand() ui.Command {
	switch m.ctl.Screen() {
	case ui.ScreenPaused:
		return ui.CmdResume
	case ui.ScreenScores, ui.ScreenGameOver:
		return ui.CmdMainMenu
	default:
		return ui.CmdNone
	}
}

// handleMouse tracks the pointer for aiming. A left press attacks while
// playing and clicks buttons on menus.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.pointer = pointer{x: msg.X, y: msg.Y, ok: true}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch m.ctl.Screen() {
	case ui.ScreenPlaying:
		m.attack = true
		return m, nil
	case ui.ScreenScores:
		// The scoreboard is laid out by lipgloss; buttons there are keyboard only.
		return m, nil
	default:
		return m.run(m.ctl.Click(msg.X, msg.Y))
	}
}

// handleTick feeds the wall-clock time since the previous frame to the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := 0.0
	if !m.last.IsZero() {
		dt = now.Sub(m.last).Seconds()
	}
	m.last = now

	if m.ctl.Screen() == ui.ScreenPlaying {
		in := core.NewInputFrame()
		in.Move = m.held.Move(now)
		in.Aim = m.aim()
		if m.attack {
			in.Set(core.ActionAttack)
			m.attack = false
		}
		if res := m.game.Update(in, dt); res.State.GameOver {
			m.finishRun(now)
		}
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// aim returns the pointer in world coordinates. Without a pointer the aim
// is the player itself, which keeps the current direction.
func (m Model) aim() core.Vec2 {
	if !m.pointer.ok {
		return m.game.PlayerPosition()
	}
	return m.game.Viewport().ToWorld(m.pointer.x, m.pointer.y)
}

// run dispatches cmd to the controller and applies its side effects.
func (m Model) run(cmd ui.Command) (tea.Model, tea.Cmd) {
	from := m.ctl.Screen()
	if cmd == ui.CmdNone || !m.ctl.Dispatch(cmd) {
		return m, nil
	}

	switch cmd {
	case ui.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	case ui.CmdStart:
		m.startRun()
	case ui.CmdPause:
		m.game.SetPaused(true)
		m.held.Release()
	case ui.CmdResume:
		m.game.SetPaused(false)
		m.held.Release()
	case ui.CmdMainMenu:
		if from == ui.ScreenPaused {
			m.logger.Debug("run abandoned", "score", m.game.Stats().Score)
			m.game.SetPaused(false)
		}
		m.name.Blur()
		m.status = ""
	case ui.CmdShowScores:
		m.status = ""
		m.scores.Reload(-1)
	case ui.CmdSaveScore:
		m.saveScore()
	}
	return m, nil
}

func (m *Model) startRun() {
	rt := m.opts.Runtime
	if m.rounds > 0 || rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	m.rounds++
	m.seed = rt.Seed
	m.game.Reset(rt)
	m.held.Release()
	m.attack = false
	m.runID = ""
	m.status = ""
	m.name.Blur()
	m.logger.Debug("run started", "seed", rt.Seed)
}

// finishRun records the run and opens the name prompt.
func (m *Model) finishRun(now time.Time) {
	st := m.game.Stats()
	m.ctl.GameOver(st.Score)
	m.held.Release()
	m.name.SetValue("")
	m.name.Focus()

	snap := m.game.Snapshot()
	hash := fmt.Sprintf("%016x", snap.Hash())
	m.logger.Info("run finished", "score", st.Score, "kills", st.Kills, "waves", st.Waves, "seed", m.seed, "hash", hash)

	if m.opts.Store != nil {
		id, err := m.opts.Store.SaveRun(storage.Run{
			Score:     st.Score,
			Kills:     st.Kills,
			Waves:     st.Waves,
			Ticks:     st.Ticks,
			Duration:  time.Duration(float64(st.Ticks) * m.opts.Config.Clock.Step * float64(time.Second)),
			Seed:      m.seed,
			StateHash: hash,
			CreatedAt: now,
		})
		if err != nil {
			m.logger.Warn("could not save run", "error", err)
		} else {
			m.runID = id
		}
	}

	m.status = "Enter your initials"
	if m.opts.Board != nil {
		if ok, err := m.opts.Board.Qualifies(st.Score); err == nil && ok {
			m.status = "New high score! Enter your initials"
		}
	}
}

// saveScore writes the name and score to the leaderboard and history.
func (m *Model) saveScore() {
	name, score := m.ctl.Name(), m.ctl.Score()
	rank := -1
	m.status = ""

	if m.opts.Board != nil {
		r, err := m.opts.Board.Submit(score, name)
		if err != nil {
			m.logger.Warn("could not save score", "error", err)
			m.status = "Could not save score"
		} else {
			rank = r
		}
	}
	if m.opts.Store != nil && m.runID != "" {
		if err := m.opts.Store.SetName(m.runID, name); err != nil {
			m.logger.Warn("could not name run", "run", m.runID, "error", err)
		}
	}

	if m.status == "" {
		if rank >= 0 {
			m.status = fmt.Sprintf("%s takes #%d", name, rank+1)
		} else {
			m.status = "Not enough for the board this time"
		}
	}
	m.name.Blur()
	m.scores.Reload(rank)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	dir := config.UserDir()
	if dir == "" {
		return
	}
	dir = filepath.Join(dir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot dir", "error", err)
		return
	}
	m.game.Render(m.screen)
	path := filepath.Join(dir, fmt.Sprintf("hackslash_%s.txt", m.now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.status = "Saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.ctl.Screen() {
	case ui.ScreenScores:
		return m.scoresView()
	case ui.ScreenMainMenu:
		m.screen.Clear()
		ui.Draw(m.screen, m.ctl.Root(), m.ctl.FocusID())
	case ui.ScreenPlaying:
		m.game.Render(m.screen)
	default:
		m.game.Render(m.screen)
		ui.Draw(m.screen, m.ctl.Root(), m.ctl.FocusID())
	}
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) scoresView() string {
	root := m.ctl.Root()
	ui.Layout(root, 0, 0)
	buttons := core.NewScreen(root.Rect.W, root.Rect.H)
	ui.Draw(buttons, root, m.ctl.FocusID())

	body := lipgloss.JoinVertical(lipgloss.Center,
		m.scores.View(m.now()),
		"",
		RenderScreen(buttons),
	)
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body) + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	if m.ctl.Screen() == ui.ScreenPlaying {
		return m.help.View(m.keys)
	}
	return m.help.View(menuKeys{m.keys})
}

// Screen returns the current screen.
func (m Model) Screen() ui.Screen { return m.ctl.Screen() }

// Game returns the game driven by this model.
func (m Model) Game() *hackslash.Game { return m.game }

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
