package hackslash

import (
	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/ecs"
)

// RenderKind picks the glyph and colour of a body.
type RenderKind int

const (
	RenderPlayer RenderKind = iota
	RenderMelee
	RenderRanged
	RenderBullet
	RenderDeflected
)

// Body is one drawable character.
type Body struct {
	Position core.Vec2
	Radius   float64
	Kind     RenderKind
}

// View is the read-only state a renderer needs for one frame.
type View struct {
	Width, Height float64
	Bodies        []Body // player first
	Weapon        core.Circle
	Swinging      bool
	Stats
}

// View captures the arena for rendering.
func (s *Sim) View() View {
	p := s.characters.MustGet(s.player)
	w := s.weapons.MustGet(s.weapon)

	v := View{
		Width:    s.cfg.Arena.Width,
		Height:   s.cfg.Arena.Height,
		Bodies:   make([]Body, 0, s.characters.Len()),
		Weapon:   w.Circle(),
		Swinging: !s.timers.MustGet(s.swing).Ready(),
		Stats:    s.Stats(),
	}
	v.Bodies = append(v.Bodies, Body{Position: p.Position, Radius: p.Radius, Kind: RenderPlayer})

	s.mobs.Each(func(e ecs.Entity, m *Mob) {
		ch := s.characters.MustGet(e)
		v.Bodies = append(v.Bodies, Body{Position: ch.Position, Radius: ch.Radius, Kind: renderKind(m.Kind)})
	})
	return v
}

func renderKind(k MobKind) RenderKind {
	switch k {
	case MobMelee:
		return RenderMelee
	case MobRanged:
		return RenderRanged
	case MobBullet:
		return RenderBullet
	default:
		return RenderDeflected
	}
}
