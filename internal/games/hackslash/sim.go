package hackslash

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hackslash/internal/config"
	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/ecs"
	"github.com/vovakirdan/tui-hackslash/internal/grid"
)

// Sim is one arena: the entity world, the spatial grid and the round
// counters. Tick advances it by exactly one fixed step.
type Sim struct {
	cfg    config.Config
	rng    *rand.Rand
	logger *log.Logger

	world      *ecs.World
	characters *ecs.Table[Character]
	mobs       *ecs.Table[Mob]
	timers     *ecs.Table[Timer]
	straight   *ecs.Table[StraightMovement]
	players    *ecs.Table[Player]
	scores     *ecs.Table[ScoreOnKill]
	weapons    *ecs.Table[Weapon]

	grid *grid.Grid

	// Singletons, created once and never destroyed.
	player   ecs.Entity
	weapon   ecs.Entity
	cooldown ecs.Entity
	swing    ecs.Entity

	spawner Spawner
	session Session
}

// NewSim builds an arena from cfg. A nil logger discards output.
func NewSim(cfg config.Config, seed int64, logger *log.Logger) *Sim {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := ecs.NewWorld()
	s := &Sim{
		cfg:        cfg,
		logger:     logger,
		world:      w,
		characters: ecs.NewTable[Character](w),
		mobs:       ecs.NewTable[Mob](w),
		timers:     ecs.NewTable[Timer](w),
		straight:   ecs.NewTable[StraightMovement](w),
		players:    ecs.NewTable[Player](w),
		scores:     ecs.NewTable[ScoreOnKill](w),
		weapons:    ecs.NewTable[Weapon](w),
		grid:       grid.New(cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.CellSize),
	}

	s.player = w.Create()
	s.characters.Add(s.player, Character{Radius: cfg.Player.Radius})
	s.players.Add(s.player, Player{})

	s.weapon = w.Create()
	s.weapons.Add(s.weapon, Weapon{Radius: cfg.Weapon.Radius, Reach: cfg.Weapon.Reach})

	s.cooldown = w.Create()
	s.timers.Add(s.cooldown, Timer{Max: cfg.Weapon.Cooldown})

	s.swing = w.Create()
	s.timers.Add(s.swing, Timer{Max: cfg.Weapon.SwingTime})

	s.Reset(seed)
	return s
}

// Reset starts a new round. Mobs and bullets are destroyed; the player,
// weapon and timers are reset in place.
func (s *Sim) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness, determinism required

	for _, e := range s.mobs.Entities() {
		s.world.Destroy(e)
	}
	s.world.Flush()
	s.grid.Clear()

	centre := core.V(s.cfg.Arena.Width/2, s.cfg.Arena.Height/2)
	p := s.characters.MustGet(s.player)
	p.Position = centre
	p.Velocity = core.Vec2{}
	p.Cells = p.Cells[:0]
	s.players.MustGet(s.player).HP = s.cfg.Player.HP

	w := s.weapons.MustGet(s.weapon)
	w.AimDir = core.V(1, 0)
	w.Position = centre.Add(w.AimDir.Scale(w.Reach))

	s.timers.MustGet(s.cooldown).Expire()
	s.timers.MustGet(s.swing).Expire()

	s.spawner = NewSpawner(s.cfg.Spawner)
	s.session = Session{}
}

// Tick runs one fixed step. It is a no-op once the round is over.
func (s *Sim) Tick(in core.InputFrame) {
	if s.session.GameOver {
		return
	}
	dt := s.cfg.Clock.Step
	s.session.Ticks++

	s.grid.Clear()

	s.timers.MustGet(s.cooldown).Tick(dt)
	s.timers.MustGet(s.swing).Tick(dt)

	player := s.characters.MustGet(s.player)
	s.movePlayer(player, in.Move, dt)
	s.trackWeapon(player.Position, in.Aim)

	if in.Has(core.ActionAttack) {
		s.trySwing()
	}

	s.checkSpawner()

	// Entities returns a copy, so bullets fired below are not visited
	// until the next tick.
	for _, e := range s.characters.Entities() {
		if e == s.player || !s.world.Alive(e) {
			continue
		}
		s.updateMob(e, player, dt)
	}

	s.grid.ForEachPair(s.resolvePair)

	s.world.Flush()

	if s.players.MustGet(s.player).HP <= 0 {
		s.session.GameOver = true
		s.logger.Debug("game over",
			"score", s.session.Score,
			"kills", s.session.Kills,
			"waves", s.spawner.Cycles,
			"ticks", s.session.Ticks)
	}
}

func (s *Sim) movePlayer(p *Character, move core.Vec2, dt float64) {
	step := move.Normalize().Scale(s.cfg.Player.MoveSpeed * dt)
	p.Position = core.V(
		core.ClampF(p.Position.X+step.X, p.Radius, s.cfg.Arena.Width-p.Radius),
		core.ClampF(p.Position.Y+step.Y, p.Radius, s.cfg.Arena.Height-p.Radius),
	)
}

// trackWeapon places the weapon at reach toward aim. An aim point on the
// player keeps the previous direction.
func (s *Sim) trackWeapon(playerPos, aim core.Vec2) {
	w := s.weapons.MustGet(s.weapon)
	if dir := aim.Sub(playerPos).Normalize(); !dir.IsZero() {
		w.AimDir = dir
	}
	w.Position = playerPos.Add(w.AimDir.Scale(w.Reach))
}

func (s *Sim) checkSpawner() {
	if !s.spawner.Due(s.activeMobs()) {
		return
	}
	n := s.spawner.Trigger()
	for range n {
		s.spawnMob()
	}
	s.logger.Debug("wave spawned",
		"wave", s.spawner.Cycles,
		"mobs", n,
		"speed_tier", s.spawner.SpeedTier)
}

func (s *Sim) activeMobs() int {
	n := 0
	s.mobs.Each(func(_ ecs.Entity, m *Mob) {
		if m.Kind.Active() {
			n++
		}
	})
	return n
}

// spawnMob creates one random melee or ranged mob just off an edge.
func (s *Sim) spawnMob() ecs.Entity {
	kind := MobMelee
	speed := s.cfg.Mobs.MeleeSpeed
	if s.rng.Intn(2) == 1 {
		kind = MobRanged
		speed = s.cfg.Mobs.RangedSpeed
	}

	pos := EdgePosition(s.rng, s.cfg.Arena.Width, s.cfg.Arena.Height, s.cfg.Spawner.Offset)
	bonus := s.spawner.SpeedBonus()
	vel := core.V(uniform(s.rng, speed)+bonus, uniform(s.rng, speed)+bonus)

	e := s.addMob(kind, pos, vel)
	if kind == MobRanged {
		b := s.cfg.Mobs.Bullet
		period := b.FireInterval - b.FireJitter + s.rng.Float64()*2*b.FireJitter
		s.timers.Add(e, NewTimer(max(period, s.cfg.Clock.Step)))
	}
	return e
}

// addMob creates a melee or ranged mob with the standard components.
func (s *Sim) addMob(kind MobKind, pos, vel core.Vec2) ecs.Entity {
	e := s.world.Create()
	s.characters.Add(e, Character{Position: pos, Velocity: vel, Radius: s.cfg.Mobs.Radius})
	s.mobs.Add(e, Mob{Kind: kind, SpawnPosition: pos})
	s.scores.Add(e, ScoreOnKill{Points: s.cfg.Mobs.ScorePerKill})
	return e
}

// fire launches a bullet from a ranged mob toward target.
func (s *Sim) fire(from core.Vec2, target core.Vec2) ecs.Entity {
	b := s.cfg.Mobs.Bullet
	e := s.world.Create()
	s.characters.Add(e, Character{Position: from, Velocity: core.V(b.Speed, b.Speed), Radius: b.Radius})
	s.mobs.Add(e, Mob{Kind: MobBullet, SpawnPosition: from})
	s.straight.Add(e, StraightMovement{Direction: target.Sub(from).Normalize()})
	return e
}

// updateMob runs the per-character part of a tick and, if the mob survives,
// files it into the grid at its new position.
func (s *Sim) updateMob(e ecs.Entity, player *Character, dt float64) {
	ch := s.characters.MustGet(e)
	mob := s.mobs.MustGet(e)

	switch mob.Kind {
	case MobMelee:
		Seek(ch, player.Position, dt)
	case MobRanged:
		if t, ok := s.timers.Get(e); ok {
			t.Tick(dt)
			if t.Ready() {
				s.fire(ch.Position, player.Position)
				t.Reset()
			}
		}
		SeekStandoff(ch, player.Position, s.cfg.Mobs.SafeDistance, dt)
	case MobBullet, MobDeflected:
		Straight(ch, s.straight.MustGet(e).Direction, dt)
	}

	if s.straight.Has(e) && OutOfBounds(ch, s.cfg.Arena.Width, s.cfg.Arena.Height) {
		s.world.Destroy(e)
		return
	}

	if mob.Kind != MobDeflected && ch.Circle().Collides(player.Circle()) {
		s.hitPlayer(e, mob)
		return
	}

	ch.Cells = s.grid.Classify(ch.Position, ch.Radius, ch.Cells[:0])
	s.grid.Insert(e, ch.Cells)
}

// Stats returns the round counters.
func (s *Sim) Stats() Stats {
	return Stats{
		Score:     s.session.Score,
		Kills:     s.session.Kills,
		Ticks:     s.session.Ticks,
		Waves:     s.spawner.Cycles,
		SpeedTier: s.spawner.SpeedTier,
		HP:        s.players.MustGet(s.player).HP,
		MaxHP:     s.cfg.Player.HP,
		GameOver:  s.session.GameOver,
	}
}

// Grid exposes the spatial grid as filled by the last tick.
func (s *Sim) Grid() *grid.Grid { return s.grid }

// PlayerPosition returns the player's centre.
func (s *Sim) PlayerPosition() core.Vec2 {
	return s.characters.MustGet(s.player).Position
}

// Config returns the config the arena was built with.
func (s *Sim) Config() config.Config { return s.cfg }
