package ui

import (
	"fmt"

	"github.com/vovakirdan/tui-hackslash/internal/leaderboard"
)

// Screen identifies what the player is looking at.
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
	ScreenScores
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "main-menu"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "game-over"
	case ScreenScores:
		return "scores"
	default:
		return "unknown"
	}
}

// Command is a menu action. Buttons carry one; the host also issues them
// for events that come from the game itself.
type Command int

const (
	CmdNone Command = iota
	CmdStart
	CmdResume
	CmdPause
	CmdMainMenu
	CmdShowScores
	CmdSaveScore
	CmdGameOver
	CmdQuit
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdStart:
		return "start"
	case CmdResume:
		return "resume"
	case CmdPause:
		return "pause"
	case CmdMainMenu:
		return "main-menu"
	case CmdShowScores:
		return "show-scores"
	case CmdSaveScore:
		return "save-score"
	case CmdGameOver:
		return "game-over"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// transitions lists the commands each screen accepts and where they lead.
// CmdQuit is accepted everywhere and leaves the screen unchanged.
var transitions = map[Screen]map[Command]Screen{
	ScreenMainMenu: {
		CmdStart:      ScreenPlaying,
		CmdShowScores: ScreenScores,
	},
	ScreenPlaying: {
		CmdPause:    ScreenPaused,
		CmdGameOver: ScreenGameOver,
	},
	ScreenPaused: {
		CmdResume:   ScreenPlaying,
		CmdMainMenu: ScreenMainMenu,
	},
	ScreenGameOver: {
		CmdSaveScore: ScreenScores,
		CmdStart:     ScreenPlaying,
		CmdMainMenu:  ScreenMainMenu,
	},
	ScreenScores: {
		CmdStart:    ScreenPlaying,
		CmdMainMenu: ScreenMainMenu,
	},
}

// Widget IDs the host may look up.
const (
	IDNameField  = "name"
	IDSaveButton = "save"
	IDScoreLabel = "score"
)

// Controller is the menu state machine.
type Controller struct {
	screen Screen
	menus  map[Screen]*Widget
	focus  int
	score  int
	width  int
	height int
}

// NewController starts on the main menu.
func NewController() *Controller {
	c := &Controller{
		screen: ScreenMainMenu,
		menus: map[Screen]*Widget{
			ScreenMainMenu: Container("main", "HACK & SLASH",
				Button("play", "Play", CmdStart),
				Button("scores", "High Scores", CmdShowScores),
				Button("quit", "Quit", CmdQuit),
			),
			ScreenPaused: Container("pause", "PAUSED",
				Button("resume", "Resume", CmdResume),
				Button("menu", "Main Menu", CmdMainMenu),
				Button("quit", "Quit", CmdQuit),
			),
			ScreenGameOver: Container("gameover", "GAME OVER",
				Label(IDScoreLabel, "Score: 0"),
				Label("prompt", "Enter your initials"),
				TextField(IDNameField, leaderboard.NameLen),
				Button(IDSaveButton, "Save", CmdSaveScore),
				Button("again", "Play Again", CmdStart),
				Button("menu", "Main Menu", CmdMainMenu),
			),
			ScreenScores: Container("scores", "HIGH SCORES",
				Button("play", "Play", CmdStart),
				Button("menu", "Back", CmdMainMenu),
			),
		},
	}
	c.syncSave()
	return c
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen { return c.screen }

// Root returns the widget tree of the current screen, or nil while playing.
func (c *Controller) Root() *Widget { return c.menus[c.screen] }

// Resize lays every menu out for a screen of the given size.
func (c *Controller) Resize(w, h int) {
	c.width, c.height = w, h
	for _, m := range c.menus {
		Layout(m, w, h)
	}
}

// Dispatch applies cmd. It returns false, changing nothing, when the current
// screen does not accept cmd or, for CmdSaveScore, the name is incomplete.
func (c *Controller) Dispatch(cmd Command) bool {
	if cmd == CmdQuit {
		return true
	}
	next, ok := transitions[c.screen][cmd]
	if !ok {
		return false
	}
	if cmd == CmdSaveScore && len(c.Name()) != leaderboard.NameLen {
		return false
	}
	c.screen = next
	c.focus = 0
	return true
}

// GameOver records the final score, clears the name field and switches to
// the game-over screen.
func (c *Controller) GameOver(score int) bool {
	if !c.Dispatch(CmdGameOver) {
		return false
	}
	c.score = score
	m := c.menus[ScreenGameOver]
	m.Find(IDScoreLabel).Text = fmt.Sprintf("Score: %d", score)
	c.SetName("")
	c.Resize(c.width, c.height)
	return true
}

// Score returns the score shown on the game-over screen.
func (c *Controller) Score() int { return c.score }

// Name returns the initials typed so far.
func (c *Controller) Name() string {
	return c.menus[ScreenGameOver].Find(IDNameField).Text
}

// SetName replaces the name, dropping characters outside the accepted
// range and truncating to the field length.
func (c *Controller) SetName(name string) {
	f := c.menus[ScreenGameOver].Find(IDNameField)
	out := make([]rune, 0, f.MaxLen)
	for _, r := range name {
		if len(out) == f.MaxLen {
			break
		}
		if leaderboard.ValidNameChar(r) {
			out = append(out, r)
		}
	}
	f.Text = string(out)
	f.Cursor = len(out)
	c.syncSave()
}

// syncSave enables Save only once the name is complete.
func (c *Controller) syncSave() {
	m := c.menus[ScreenGameOver]
	m.Find(IDSaveButton).Disabled = len(m.Find(IDNameField).Text) != leaderboard.NameLen
}

// Focused returns the focused widget of the current menu.
func (c *Controller) Focused() *Widget {
	root := c.Root()
	if root == nil {
		return nil
	}
	items := root.Focusable()
	if len(items) == 0 {
		return nil
	}
	return items[c.focus%len(items)]
}

// FocusID returns the ID of the focused widget, or "".
func (c *Controller) FocusID() string {
	if f := c.Focused(); f != nil {
		return f.ID
	}
	return ""
}

// MoveFocus shifts focus by delta, wrapping around.
func (c *Controller) MoveFocus(delta int) {
	root := c.Root()
	if root == nil {
		return
	}
	cur := c.Focused()
	items := root.Focusable()
	if len(items) == 0 {
		return
	}
	idx := 0
	for i, w := range items {
		if w == cur {
			idx = i
		}
	}
	c.focus = ((idx+delta)%len(items) + len(items)) % len(items)
}

// Activate returns the command of the focused button.
func (c *Controller) Activate() Command {
	if f := c.Focused(); f != nil && f.Kind == KindButton && !f.Disabled {
		return f.Command
	}
	return CmdNone
}

// Click returns the command of the enabled button at (x, y), focusing it.
func (c *Controller) Click(x, y int) Command {
	root := c.Root()
	if root == nil {
		return CmdNone
	}
	hit := HitTest(root, x, y)
	if hit == nil || hit.Kind != KindButton || hit.Disabled {
		return CmdNone
	}
	for i, w := range root.Focusable() {
		if w == hit {
			c.focus = i
		}
	}
	return hit.Command
}
