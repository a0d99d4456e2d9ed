// Package ui holds the menu layer: a small closed set of widgets drawn onto
// a core.Screen and a Controller that moves between screens in response to
// Commands. Nothing here touches the terminal, so transitions are testable
// without a window.
package ui

import (
	"strings"

	"github.com/vovakirdan/tui-hackslash/internal/core"
)

// Kind tags a Widget.
type Kind int

const (
	KindContainer Kind = iota
	KindButton
	KindLabel
	KindTextField
)

// Widget is a node of a menu tree. Which fields matter depends on Kind:
// containers use Children and Title, buttons use Text and Command, labels use
// Text, text fields use Text, MaxLen and Cursor.
type Widget struct {
	Kind     Kind
	ID       string
	Rect     core.Rect
	Title    string
	Text     string
	Command  Command
	Disabled bool
	MaxLen   int
	Cursor   int
	Color    core.Color
	Children []*Widget
}

// Container groups children under an optional boxed title.
func Container(id, title string, children ...*Widget) *Widget {
	return &Widget{Kind: KindContainer, ID: id, Title: title, Children: children}
}

// Button creates a button issuing cmd.
func Button(id, text string, cmd Command) *Widget {
	return &Widget{Kind: KindButton, ID: id, Text: text, Command: cmd}
}

// Label creates static text.
func Label(id, text string) *Widget {
	return &Widget{Kind: KindLabel, ID: id, Text: text}
}

// TextField creates an empty input of at most maxLen characters.
func TextField(id string, maxLen int) *Widget {
	return &Widget{Kind: KindTextField, ID: id, MaxLen: maxLen}
}

// Find returns the widget with the given ID in the tree rooted at w.
func (w *Widget) Find(id string) *Widget {
	if w.ID == id {
		return w
	}
	for _, c := range w.Children {
		if f := c.Find(id); f != nil {
			return f
		}
	}
	return nil
}

// Focusable returns the enabled buttons and text fields in tree order.
func (w *Widget) Focusable() []*Widget {
	var out []*Widget
	var walk func(*Widget)
	walk = func(n *Widget) {
		switch n.Kind {
		case KindButton, KindTextField:
			if !n.Disabled {
				out = append(out, n)
			}
		case KindContainer:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(w)
	return out
}

// width is the number of cells a leaf needs.
func (w *Widget) width() int {
	switch w.Kind {
	case KindButton:
		return len(w.Text) + 4
	case KindTextField:
		return w.MaxLen + 2
	case KindLabel:
		return len([]rune(w.Text))
	default:
		n := len(w.Title) + 4
		for _, c := range w.Children {
			n = max(n, c.width()+4)
		}
		return n
	}
}

// Layout stacks the children of a container vertically, one blank row
// apart, and centres the whole box on a screen of the given size.
func Layout(root *Widget, screenW, screenH int) {
	w := root.width()
	h := 2*len(root.Children) + 3
	x := max((screenW-w)/2, 0)
	y := max((screenH-h)/2, 0)
	root.Rect = core.NewRect(x, y, w, h)

	row := y + 2
	for _, c := range root.Children {
		cw := c.width()
		c.Rect = core.NewRect(x+(w-cw)/2, row, cw, 1)
		row += 2
	}
}

// Draw renders the tree rooted at w. The widget whose ID equals focus is
// highlighted.
func Draw(dst *core.Screen, w *Widget, focus string) {
	r := w.Rect
	focused := focus != "" && w.ID == focus

	switch w.Kind {
	case KindContainer:
		dst.DrawRect(r, ' ', core.ColorDefault)
		dst.DrawBox(r, core.ColorGray)
		if w.Title != "" {
			title := " " + w.Title + " "
			dst.DrawTextColored(r.X+(r.W-len(title))/2, r.Y, title, core.ColorBrightWhite)
		}
		for _, c := range w.Children {
			Draw(dst, c, focus)
		}

	case KindButton:
		color := core.ColorWhite
		text := "  " + w.Text + "  "
		switch {
		case w.Disabled:
			color = core.ColorGray
		case focused:
			color = core.ColorBrightYellow
			text = "[ " + w.Text + " ]"
		}
		dst.DrawTextColored(r.X, r.Y, text, color)

	case KindLabel:
		color := w.Color
		if color == core.ColorDefault {
			color = core.ColorWhite
		}
		dst.DrawTextColored(r.X, r.Y, w.Text, color)

	case KindTextField:
		color := core.ColorWhite
		if focused {
			color = core.ColorBrightCyan
		}
		body := w.Text + strings.Repeat("_", max(w.MaxLen-len(w.Text), 0))
		dst.DrawTextColored(r.X, r.Y, "["+body+"]", color)
		if focused && w.Cursor < w.MaxLen {
			cell := dst.GetCell(r.X+1+w.Cursor, r.Y)
			dst.SetColored(r.X+1+w.Cursor, r.Y, cell.Rune, core.ColorBrightYellow)
		}
	}
}

// HitTest returns the deepest widget under (x, y), or nil.
func HitTest(w *Widget, x, y int) *Widget {
	if !w.Rect.Contains(x, y) {
		return nil
	}
	for _, c := range w.Children {
		if hit := HitTest(c, x, y); hit != nil {
			return hit
		}
	}
	return w
}
