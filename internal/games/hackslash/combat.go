package hackslash

import (
	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/ecs"
)

// trySwing swings the weapon if the cooldown has elapsed. Every live mob
// under the weapon is killed and every hostile bullet deflected. The
// cooldown restarts whether or not anything was hit.
func (s *Sim) trySwing() bool {
	cd := s.timers.MustGet(s.cooldown)
	if !cd.Ready() {
		return false
	}
	cd.Reset()
	s.timers.MustGet(s.swing).Reset()

	w := s.weapons.MustGet(s.weapon)
	hitbox := w.Circle()
	for _, e := range s.characters.Entities() {
		if e == s.player {
			continue
		}
		ch, ok := s.characters.Get(e)
		if !ok || !hitbox.Collides(ch.Circle()) {
			continue
		}
		switch s.mobs.MustGet(e).Kind {
		case MobMelee, MobRanged:
			s.kill(e)
		case MobBullet:
			s.deflect(e, w.AimDir)
		}
	}
	return true
}

// deflect turns a hostile bullet into a deflected one in place.
func (s *Sim) deflect(e ecs.Entity, aimDir core.Vec2) {
	mob := s.mobs.MustGet(e)
	if mob.Kind != MobBullet {
		return
	}
	mob.Kind = MobDeflected

	ch := s.characters.MustGet(e)
	ch.Velocity = ch.Velocity.Scale(s.cfg.Weapon.DeflectMultiplier)

	sm := s.straight.MustGet(e)
	sm.Direction = DeflectDirection(aimDir, sm.Direction)
}

// DeflectDirection blends the aim direction with the reversed incoming
// direction. When the two cancel out the aim direction wins.
func DeflectDirection(aimDir, incoming core.Vec2) core.Vec2 {
	aim := aimDir.Normalize()
	back := incoming.Normalize().Neg()
	if d := aim.Add(back).Normalize(); !d.IsZero() {
		return d
	}
	if !aim.IsZero() {
		return aim
	}
	return back
}

// kill destroys e and credits its score.
func (s *Sim) kill(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	points := 0
	if sc, ok := s.scores.Get(e); ok {
		points = sc.Points
	}
	s.session.credit(points)
	s.world.Destroy(e)
}

// hitPlayer handles a mob or hostile bullet touching the player. Either way
// it is destroyed and costs one HP; mobs also credit their score.
func (s *Sim) hitPlayer(e ecs.Entity, mob *Mob) {
	if mob.Kind.Active() {
		s.kill(e)
	} else {
		s.world.Destroy(e)
	}
	s.players.MustGet(s.player).HP--
}

// resolvePair handles two bodies sharing a grid cell. The same pair may be
// seen once per shared cell; every branch tolerates repeats.
func (s *Sim) resolvePair(a, b ecs.Entity) {
	if a == s.player || b == s.player || !s.world.Alive(a) || !s.world.Alive(b) {
		return
	}
	ma, mb := s.mobs.MustGet(a), s.mobs.MustGet(b)
	if ma.Kind == MobBullet || mb.Kind == MobBullet {
		return
	}

	ca, cb := s.characters.MustGet(a), s.characters.MustGet(b)
	if !ca.Circle().Collides(cb.Circle()) {
		return
	}

	switch {
	case ma.Kind == MobDeflected && mb.Kind == MobDeflected:
	case ma.Kind == MobDeflected:
		s.kill(b)
		s.world.Destroy(a)
	case mb.Kind == MobDeflected:
		s.kill(a)
		s.world.Destroy(b)
	default:
		separate(ca, cb, s.cfg.Mobs.SeparationStep)
	}
}

// separate pushes two overlapping bodies step units apart each along the
// line between their centres. Coincident bodies are left in place.
func separate(a, b *Character, step float64) {
	dir := b.Position.Sub(a.Position).Normalize()
	a.Position = a.Position.Sub(dir.Scale(step))
	b.Position = b.Position.Add(dir.Scale(step))
}
