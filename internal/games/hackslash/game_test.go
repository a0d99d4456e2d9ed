package hackslash

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-hackslash/internal/config"
	"github.com/vovakirdan/tui-hackslash/internal/core"
	"github.com/vovakirdan/tui-hackslash/internal/grid"
)

func runtimeCfg(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// scriptedInput moves in a slow square, sweeps the aim around the player
// and attacks every 15 frames.
func scriptedInput(i int) core.InputFrame {
	in := core.NewInputFrame()
	switch (i / 25) % 4 {
	case 0:
		in.Move = core.MoveVector(true, false, false, true)
	case 1:
		in.Move = core.MoveVector(false, true, false, true)
	case 2:
		in.Move = core.MoveVector(false, true, true, false)
	default:
		in.Move = core.MoveVector(true, false, true, false)
	}
	angle := float64(i) * 0.1
	in.Aim = core.V(640+200*math.Cos(angle), 360+200*math.Sin(angle))
	if i%15 == 0 {
		in.Set(core.ActionAttack)
	}
	return in
}

func TestGameDeterminism(t *testing.T) {
	const frames = 100
	run := func(seed int64) Snapshot {
		g := New(config.Default())
		g.Reset(runtimeCfg(seed))
		for i := range frames {
			g.Update(scriptedInput(i), 1.0/60.0)
		}
		return g.Snapshot()
	}

	a, b := run(12345), run(12345)
	require.Equal(t, frames, a.Tick)
	assert.Equal(t, a.Hash(), b.Hash(), "same seed and inputs must give bit-identical state")
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a.Bodies)

	c := run(54321)
	assert.NotEqual(t, a.Hash(), c.Hash(), "different seeds should diverge")
}

func TestUpdateRunsWholeSteps(t *testing.T) {
	cfg := config.Default()
	cfg.Clock.Step = 1.0 / 64 // exact in binary, so sums below carry no rounding
	g := New(cfg)
	g.Reset(runtimeCfg(1))
	step := cfg.Clock.Step

	res := g.Update(core.NewInputFrame(), step/2)
	assert.Equal(t, 0, res.Ticks)
	res = g.Update(core.NewInputFrame(), step/2)
	assert.Equal(t, 1, res.Ticks)

	res = g.Update(core.NewInputFrame(), 3*step)
	assert.Equal(t, 3, res.Ticks)
	assert.Zero(t, g.clock.Alpha())

	// A long stall is capped at MaxFrame.
	res = g.Update(core.NewInputFrame(), 10)
	assert.Equal(t, 16, res.Ticks)
}

func TestAttackLatchedUntilTick(t *testing.T) {
	g := New(quietConfig())
	g.Reset(runtimeCfg(1))

	in := core.NewInputFrame()
	in.Set(core.ActionAttack)
	g.Update(in, 0)
	assert.Zero(t, g.Snapshot().Cooldown, "no tick ran, no swing yet")

	g.Update(core.NewInputFrame(), g.cfg.Clock.Step)
	assert.Positive(t, g.Snapshot().Cooldown, "latched attack should swing on the next tick")
}

func TestAttackUsedOncePerFrame(t *testing.T) {
	cfg := quietConfig()
	cfg.Weapon.Cooldown = 0
	g := New(cfg)
	g.Reset(runtimeCfg(1))

	in := core.NewInputFrame()
	in.Set(core.ActionAttack)

	// Two ticks run in this frame; only the first swings, so the swing
	// animation has been ticked once since it restarted.
	g.Update(in, 2*cfg.Clock.Step)
	assert.InDelta(t, cfg.Weapon.SwingTime-cfg.Clock.Step, g.Snapshot().Swing, 1e-9)
}

func TestPauseFreezesClock(t *testing.T) {
	g := New(config.Default())
	g.Reset(runtimeCfg(1))
	g.Update(core.NewInputFrame(), g.cfg.Clock.Step)
	before := g.Snapshot()

	g.SetPaused(true)
	res := g.Update(core.NewInputFrame(), 1)
	assert.Equal(t, 0, res.Ticks)
	assert.True(t, res.State.Paused)
	assert.Equal(t, before.Hash(), g.Snapshot().Hash())

	g.SetPaused(false)
	res = g.Update(core.NewInputFrame(), g.cfg.Clock.Step)
	assert.Equal(t, 1, res.Ticks, "paused time must not be replayed")
}

func TestGameStateReflectsSim(t *testing.T) {
	g := New(config.Default())
	g.Reset(runtimeCfg(1))
	st := g.State()
	assert.Equal(t, 10, st.HP)
	assert.Zero(t, st.Score)
	assert.False(t, st.GameOver)
}

func TestRender(t *testing.T) {
	g := New(config.Default())
	g.Reset(runtimeCfg(1))
	for i := range 30 {
		g.Update(scriptedInput(i), 1.0/60.0)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, string(PlayerChar))
	assert.Contains(t, out, "Wave 1")

	g.ToggleDebug()
	require.True(t, g.Debug())
	g.Render(screen)
	out = screen.String()
	assert.True(t, strings.ContainsRune(out, GridChar), "grid overlay should show occupied cells")

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[len(lines)-1], "grid 20x12")
	assert.Contains(t, lines[len(lines)-1], "alpha 0.00")
}

func TestDebugLineCountsPlayerCell(t *testing.T) {
	g := New(config.Default())
	g.Reset(runtimeCfg(1))
	g.Update(core.NewInputFrame(), 1.0/120.0)

	s := g.Sim()
	centre := s.PlayerPosition()
	cell := s.Grid().CellOf(centre)
	s.Grid().Insert(s.player, []grid.Cell{cell})

	g.ToggleDebug()
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	lines := strings.Split(screen.String(), "\n")
	want := fmt.Sprintf("cell %d,%d: 1  alpha 0.50", cell.Col, cell.Row)
	assert.Contains(t, lines[len(lines)-1], want)
}

func TestViewportRoundTrip(t *testing.T) {
	vp := NewViewport(1280, 720, 80, 25)
	x, y := vp.ToScreen(core.V(640, 360))
	assert.InDelta(t, 40, x, 1e-9)
	assert.InDelta(t, 13, y, 1e-9)

	p := vp.ToWorld(40, 13)
	cx, cy := vp.ToScreen(p)
	assert.Equal(t, 40, int(cx))
	assert.Equal(t, 13, int(cy))
}
