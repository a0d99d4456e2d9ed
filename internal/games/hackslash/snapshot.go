package hackslash

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tui-hackslash/internal/ecs"
)

// BodySnapshot is the state of one non-player character.
type BodySnapshot struct {
	Serial uint64 // creation order within the arena
	Kind   MobKind
	X, Y   float64
	VX, VY float64
	Timer  float64 // fire countdown, zero when the mob has none
}

// Snapshot contains the complete arena state for determinism checks and
// run summaries. Bodies are ordered by creation.
type Snapshot struct {
	Tick      int
	Score     int
	Kills     int
	HP        int
	GameOver  bool
	Required  int
	Waves     int
	SpeedTier int

	PlayerX, PlayerY float64
	WeaponX, WeaponY float64
	Cooldown         float64
	Swing            float64

	Bodies []BodySnapshot
}

// Snapshot returns the current arena state.
func (s *Sim) Snapshot() Snapshot {
	p := s.characters.MustGet(s.player)
	w := s.weapons.MustGet(s.weapon)

	snap := Snapshot{
		Tick:      s.session.Ticks,
		Score:     s.session.Score,
		Kills:     s.session.Kills,
		HP:        s.players.MustGet(s.player).HP,
		GameOver:  s.session.GameOver,
		Required:  s.spawner.Required,
		Waves:     s.spawner.Cycles,
		SpeedTier: s.spawner.SpeedTier,
		PlayerX:   p.Position.X,
		PlayerY:   p.Position.Y,
		WeaponX:   w.Position.X,
		WeaponY:   w.Position.Y,
		Cooldown:  s.timers.MustGet(s.cooldown).Remaining,
		Swing:     s.timers.MustGet(s.swing).Remaining,
	}

	s.mobs.Each(func(e ecs.Entity, m *Mob) {
		ch := s.characters.MustGet(e)
		b := BodySnapshot{
			Serial: s.world.Serial(e),
			Kind:   m.Kind,
			X:      ch.Position.X,
			Y:      ch.Position.Y,
			VX:     ch.Velocity.X,
			VY:     ch.Velocity.Y,
		}
		if t, ok := s.timers.Get(e); ok {
			b.Timer = t.Remaining
		}
		snap.Bodies = append(snap.Bodies, b)
	})
	sort.Slice(snap.Bodies, func(i, j int) bool {
		return snap.Bodies[i].Serial < snap.Bodies[j].Serial
	})
	return snap
}

// Hash returns an xxhash digest of the snapshot. Floats are hashed by their
// bit patterns, so equal hashes mean bit-identical state.
func (snap *Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 128+len(snap.Bodies)*56)
	putInt := func(v int) { buf = binary.LittleEndian.AppendUint64(buf, uint64(v)) } //#nosec G115 -- hash input
	putF := func(v float64) { buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)) }

	putInt(snap.Tick)
	putInt(snap.Score)
	putInt(snap.Kills)
	putInt(snap.HP)
	if snap.GameOver {
		putInt(1)
	} else {
		putInt(0)
	}
	putInt(snap.Required)
	putInt(snap.Waves)
	putInt(snap.SpeedTier)
	putF(snap.PlayerX)
	putF(snap.PlayerY)
	putF(snap.WeaponX)
	putF(snap.WeaponY)
	putF(snap.Cooldown)
	putF(snap.Swing)

	putInt(len(snap.Bodies))
	for _, b := range snap.Bodies {
		buf = binary.LittleEndian.AppendUint64(buf, b.Serial)
		putInt(int(b.Kind))
		putF(b.X)
		putF(b.Y)
		putF(b.VX)
		putF(b.VY)
		putF(b.Timer)
	}

	return xxhash.Sum64(buf)
}
