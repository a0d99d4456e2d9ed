package hackslash

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/grid"
)

// Glyphs and colours per body kind.
const (
	PlayerChar    = '@'
	MeleeChar     = 'M'
	RangedChar    = 'R'
	BulletChar    = '•'
	DeflectedChar = '*'
	WeaponChar    = '/'
	SwingChar     = '#'
	GridChar      = '·'
	HeartChar     = '♥'
)

// HUDHeight is the number of rows above the arena.
const HUDHeight = 1

// Viewport maps world coordinates onto the screen area below the HUD.
type Viewport struct {
	ScaleX, ScaleY float64
	OffsetY        int
}

// NewViewport fits a w x h world into a screen of cols x rows cells.
func NewViewport(w, h float64, cols, rows int) Viewport {
	arenaRows := max(rows-HUDHeight, 1)
	return Viewport{
		ScaleX:  float64(cols) / w,
		ScaleY:  float64(arenaRows) / h,
		OffsetY: HUDHeight,
	}
}

// ToScreen converts a world point to fractional cell coordinates.
func (vp Viewport) ToScreen(p core.Vec2) (float64, float64) {
	return p.X * vp.ScaleX, p.Y*vp.ScaleY + float64(vp.OffsetY)
}

// ToWorld converts a cell to the world point at its centre.
func (vp Viewport) ToWorld(x, y int) core.Vec2 {
	return core.V(
		(float64(x)+0.5)/vp.ScaleX,
		(float64(y-vp.OffsetY)+0.5)/vp.ScaleY,
	)
}

// Viewport returns the mapping for the current screen size.
func (g *Game) Viewport() Viewport {
	return NewViewport(g.cfg.Arena.Width, g.cfg.Arena.Height, g.runtime.ScreenW, g.runtime.ScreenH)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := g.sim.View()
	vp := NewViewport(v.Width, v.Height, dst.Width(), dst.Height())

	if g.debug {
		renderGrid(dst, vp, g.sim.Grid())
	}

	for _, b := range v.Bodies[1:] {
		glyph, color := bodyStyle(b.Kind)
		cx, cy := vp.ToScreen(b.Position)
		dst.FillEllipse(cx, cy, b.Radius*vp.ScaleX, b.Radius*vp.ScaleY, glyph, color)
	}

	// Player and weapon last so they stay visible in a crowd.
	p := v.Bodies[0]
	cx, cy := vp.ToScreen(p.Position)
	dst.FillEllipse(cx, cy, p.Radius*vp.ScaleX, p.Radius*vp.ScaleY, PlayerChar, core.ColorBrightGreen)

	wx, wy := vp.ToScreen(v.Weapon.Center)
	if v.Swinging {
		dst.FillEllipse(wx, wy, v.Weapon.Radius*vp.ScaleX, v.Weapon.Radius*vp.ScaleY, SwingChar, core.ColorBrightYellow)
	} else {
		dst.SetColored(int(wx), int(wy), WeaponChar, core.ColorYellow)
	}

	renderHUD(dst, v)
	if g.debug {
		renderDebug(dst, g.sim.Grid(), p.Position, g.clock.Alpha())
	}
}

func bodyStyle(k RenderKind) (rune, core.Color) {
	switch k {
	case RenderMelee:
		return MeleeChar, core.ColorRed
	case RenderRanged:
		return RangedChar, core.ColorMagenta
	case RenderBullet:
		return BulletChar, core.ColorOrange
	case RenderDeflected:
		return DeflectedChar, core.ColorBrightCyan
	default:
		return PlayerChar, core.ColorBrightGreen
	}
}

// renderGrid shades occupied cells and labels them with their population.
func renderGrid(dst *core.Screen, vp Viewport, g *grid.Grid) {
	g.Occupied(func(c grid.Cell, n int) {
		lo, hi := g.Bounds(c)
		x0, y0 := vp.ToScreen(lo)
		x1, y1 := vp.ToScreen(hi)
		for y := int(y0); y < int(y1); y++ {
			for x := int(x0); x < int(x1); x++ {
				dst.SetColored(x, y, GridChar, core.ColorGray)
			}
		}
		dst.DrawTextColored(int(x0), int(y0), fmt.Sprint(n), core.ColorGray)
	})
}

// renderDebug writes grid and clock diagnostics on the bottom row: the grid
// size, how many bodies share the player's cell and the unconsumed fraction
// of a step.
func renderDebug(dst *core.Screen, g *grid.Grid, player core.Vec2, alpha float64) {
	c := g.CellOf(player)
	line := fmt.Sprintf("grid %dx%d  cell %d,%d: %d  alpha %.2f", g.Cols(), g.Rows(), c.Col, c.Row, len(g.At(c)), alpha)
	dst.DrawTextColored(1, dst.Height()-1, line, core.ColorGray)
}

// renderHUD draws score, HP bar and wave on the top row.
func renderHUD(dst *core.Screen, v View) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)

	score := fmt.Sprintf("Score: %d", v.Score)
	dst.DrawTextColored(1, 0, score, core.ColorBrightWhite)

	hp := max(v.HP, 0)
	bar := strings.Repeat(string(HeartChar), hp) + strings.Repeat("·", max(v.MaxHP-hp, 0))
	dst.DrawTextCentered(0, bar, core.ColorBrightRed)

	wave := fmt.Sprintf("Wave %d  Speed %d", v.Waves, v.SpeedTier)
	dst.DrawTextColored(dst.Width()-len(wave)-1, 0, wave, core.ColorCyan)
}
