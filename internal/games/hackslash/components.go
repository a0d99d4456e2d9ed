// Package hackslash implements the arena simulation: a player fending off
// waves of melee and ranged mobs with a melee weapon that can deflect
// projectiles back at their owners.
//
// All state lives in an ecs.World owned by a Sim. A Game wraps the Sim with a
// fixed-timestep Clock so the platform can feed it wall-clock frame deltas.
package hackslash

import (
	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/grid"
)

// Character is attached to every simulated body.
// Velocity is a per-axis scale applied to the unit direction of travel, not
// a velocity vector: movement multiplies direction and Velocity component
// by component.
type Character struct {
	Position core.Vec2
	Velocity core.Vec2
	Radius   float64
	Cells    []grid.Cell // overlapped grid cells, recomputed every tick
}

// Circle returns the hitbox.
func (c *Character) Circle() core.Circle {
	return core.Circle{Center: c.Position, Radius: c.Radius}
}

// MobKind selects movement, collision and render rules for a mob.
type MobKind int

const (
	MobMelee MobKind = iota
	MobRanged
	MobBullet
	MobDeflected // only reachable from MobBullet through a weapon hit
)

// String returns the kind name.
func (k MobKind) String() string {
	switch k {
	case MobMelee:
		return "melee"
	case MobRanged:
		return "ranged"
	case MobBullet:
		return "bullet"
	case MobDeflected:
		return "deflected"
	default:
		return "unknown"
	}
}

// Active reports whether the kind counts toward spawner population.
func (k MobKind) Active() bool {
	return k == MobMelee || k == MobRanged
}

// Mob tags a non-player character.
type Mob struct {
	Kind          MobKind
	SpawnPosition core.Vec2
}

// Timer counts down from Max. Tick stops decrementing once Remaining
// reaches zero, so Remaining never drops more than one tick below zero.
type Timer struct {
	Max       float64
	Remaining float64
}

// NewTimer creates a timer that starts full.
func NewTimer(max float64) Timer {
	return Timer{Max: max, Remaining: max}
}

// Tick advances the countdown by dt.
func (t *Timer) Tick(dt float64) {
	if t.Remaining > 0 {
		t.Remaining -= dt
	}
}

// Ready reports whether the countdown has elapsed.
func (t *Timer) Ready() bool { return t.Remaining <= 0 }

// Reset restarts the countdown.
func (t *Timer) Reset() { t.Remaining = t.Max }

// Expire elapses the countdown immediately.
func (t *Timer) Expire() { t.Remaining = 0 }

// StraightMovement carries the fixed travel direction of a projectile.
// Its presence also marks the entity for out-of-bounds removal.
type StraightMovement struct {
	Direction core.Vec2
}

// Player marks the player character.
type Player struct {
	HP int
}

// ScoreOnKill is credited when the entity is killed by the player.
type ScoreOnKill struct {
	Points int
}

// Weapon is the swing hitbox, tracked at Reach from the player toward the
// aim point.
type Weapon struct {
	Position core.Vec2
	Radius   float64
	Reach    float64
	AimDir   core.Vec2 // last non-zero aim direction
}

// Circle returns the swing hitbox.
func (w *Weapon) Circle() core.Circle {
	return core.Circle{Center: w.Position, Radius: w.Radius}
}
