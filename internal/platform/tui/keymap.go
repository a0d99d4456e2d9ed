package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hackslash/internal/core"
)

// KeyMap defines the key bindings for play and menus.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Attack  key.Binding
	Pause   key.Binding
	Debug   key.Binding
	Prev    key.Binding
	Next    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Attack, k.Pause, k.Debug, k.Quit}
}

// menuKeys is the help shown on menu screens.
type menuKeys struct{ KeyMap }

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Confirm, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Attack, k.Pause, k.Debug},
		{k.Prev, k.Next, k.Confirm, k.Back, k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("wasd", "move"),
		),
		Down:  key.NewBinding(key.WithKeys("s", "down")),
		Left:  key.NewBinding(key.WithKeys("a", "left")),
		Right: key.NewBinding(key.WithKeys("d", "right")),
		Attack: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space/click", "attack"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Debug: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grid"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("up/k", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("down/j", "next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc/b", "back"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Terminals report presses but not releases. A direction counts as held
// until its deadline; autorepeat keeps pushing the deadline forward.
const (
	firstHold  = 450 * time.Millisecond // covers the autorepeat start delay
	repeatHold = 120 * time.Millisecond
)

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	numDirs
)

func (d direction) opposite() direction {
	switch d {
	case dirUp:
		return dirDown
	case dirDown:
		return dirUp
	case dirLeft:
		return dirRight
	default:
		return dirLeft
	}
}

// HeldKeys tracks which direction keys are currently held.
type HeldKeys struct {
	until [numDirs]time.Time
}

// Press records a press of d at now. Pressing a direction releases its
// opposite at once.
func (h *HeldKeys) Press(d direction, now time.Time) {
	hold := firstHold
	if h.held(d, now) {
		hold = repeatHold
	}
	if deadline := now.Add(hold); deadline.After(h.until[d]) {
		h.until[d] = deadline
	}
	h.until[d.opposite()] = time.Time{}
}

// Release drops every held direction.
func (h *HeldKeys) Release() {
	h.until = [numDirs]time.Time{}
}

func (h *HeldKeys) held(d direction, now time.Time) bool {
	return now.Before(h.until[d])
}

// Move returns the normalized move vector at now.
func (h *HeldKeys) Move(now time.Time) core.Vec2 {
	return core.MoveVector(
		h.held(dirUp, now),
		h.held(dirDown, now),
		h.held(dirLeft, now),
		h.held(dirRight, now),
	)
}

// direction maps a key to a movement direction.
func (k KeyMap) direction(msg tea.KeyMsg) (direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return dirUp, true
	case key.Matches(msg, k.Down):
		return dirDown, true
	case key.Matches(msg, k.Left):
		return dirLeft, true
	case key.Matches(msg, k.Right):
		return dirRight, true
	}
	return 0, false
}
