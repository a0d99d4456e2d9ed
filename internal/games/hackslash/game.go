package hackslash

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hackslash/internal/config"
	"github.com/vovakirdan/tui-hackslash/internal/core"
)

// Game drives a Sim from wall-clock frames. It owns the fixed-step clock,
// latches attack presses until a tick consumes them and tracks pause and
// the grid overlay.
type Game struct {
	cfg     config.Config
	logger  *log.Logger
	runtime core.RuntimeConfig

	sim   *Sim
	clock *Clock

	attack bool // attack pressed, waiting for the next tick
	paused bool
	debug  bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger passed to the simulation.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New creates a game from cfg. Call Reset before the first Update.
func New(cfg config.Config, opts ...Option) *Game {
	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "hackslash" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Hack & Slash" }

// Reset initializes or restarts the round with the runtime seed.
// The arena is kept across resets.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.sim == nil {
		g.sim = NewSim(g.cfg, runtime.Seed, g.logger)
		g.clock = NewClock(g.cfg.Clock.Step, g.cfg.Clock.MaxFrame)
	} else {
		g.sim.Reset(runtime.Seed)
		g.clock.Reset()
	}
	g.attack = false
	g.paused = false
}

// Resize records a new terminal size.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// Update feeds one rendered frame of dt seconds. Zero or more fixed ticks
// run; an attack press is held until a tick can use it.
func (g *Game) Update(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionAttack) {
		g.attack = true
	}
	if g.paused || g.sim.session.GameOver {
		return core.StepResult{State: g.State()}
	}

	withAttack := in.Clone()
	withAttack.Set(core.ActionAttack)
	without := in.Clone()
	delete(without.Actions, core.ActionAttack)

	ticks := g.clock.Advance(dt, func() {
		if g.attack {
			g.attack = false
			g.sim.Tick(withAttack)
			return
		}
		g.sim.Tick(without)
	})
	return core.StepResult{State: g.State(), Ticks: ticks}
}

// Step advances the game by exactly one tick, bypassing the clock.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	g.sim.Tick(in)
	return core.StepResult{State: g.State(), Ticks: 1}
}

// SetPaused freezes or resumes the clock. Time spent paused is never fed to
// the accumulator.
func (g *Game) SetPaused(p bool) {
	g.paused = p
	g.attack = false
}

// Paused reports whether the clock is frozen.
func (g *Game) Paused() bool { return g.paused }

// ToggleDebug switches the grid overlay.
func (g *Game) ToggleDebug() { g.debug = !g.debug }

// Debug reports whether the grid overlay is on.
func (g *Game) Debug() bool { return g.debug }

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.sim.Stats()
	return core.GameState{
		Score:    st.Score,
		HP:       st.HP,
		GameOver: st.GameOver,
		Paused:   g.paused,
	}
}

// Stats returns the round counters.
func (g *Game) Stats() Stats { return g.sim.Stats() }

// View captures the arena for rendering.
func (g *Game) View() View { return g.sim.View() }

// Snapshot returns the complete arena state.
func (g *Game) Snapshot() Snapshot { return g.sim.Snapshot() }

// PlayerPosition returns the player's centre in world coordinates.
func (g *Game) PlayerPosition() core.Vec2 { return g.sim.PlayerPosition() }

// Sim exposes the underlying arena.
func (g *Game) Sim() *Sim { return g.sim }
