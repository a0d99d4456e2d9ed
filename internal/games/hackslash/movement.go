package hackslash

import "github.com/vovakirdan/tui-hackslash/internal/core"

// Seek moves c straight at target.
func Seek(c *Character, target core.Vec2, dt float64) {
	dir := target.Sub(c.Position).Normalize()
	c.Position = c.Position.Add(dir.Mul(c.Velocity).Scale(dt))
}

// SeekStandoff moves c toward target, at half the displacement once within
// safeDistance. The mob keeps drifting in rather than stopping.
func SeekStandoff(c *Character, target core.Vec2, safeDistance, dt float64) {
	if core.DistSq(c.Position, target) <= safeDistance*safeDistance {
		dt /= 2
	}
	Seek(c, target, dt)
}

// Straight moves c along dir.
func Straight(c *Character, dir core.Vec2, dt float64) {
	c.Position = c.Position.Add(dir.Normalize().Mul(c.Velocity).Scale(dt))
}

// OutOfBounds reports whether a body has entirely left the w x h area.
func OutOfBounds(c *Character, w, h float64) bool {
	p, r := c.Position, c.Radius
	return p.X+r < 0 || p.Y+r < 0 || p.X-r > w || p.Y-r > h
}
