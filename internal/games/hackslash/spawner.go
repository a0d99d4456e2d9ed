package hackslash

import (
	"math/rand"

	"github.com/vovakirdan/tui-hackslash/internal/config"
	"github.com/vovakirdan/tui-hackslash/internal/core"
)

// Spawner tracks wave escalation. It decides when a wave is due and how big
// it is; the Sim creates the entities.
type Spawner struct {
	Required          int // population the next trigger is measured against
	Increment         int
	Cycles            int // waves spawned so far
	SpeedTier         int
	SpeedTierInterval int
	SpeedBonusPerTier float64
}

// NewSpawner creates a spawner from config.
func NewSpawner(cfg config.SpawnerConfig) Spawner {
	return Spawner{
		Required:          cfg.InitialRequired,
		Increment:         cfg.Increment,
		SpeedTierInterval: cfg.SpeedTierInterval,
		SpeedBonusPerTier: cfg.SpeedBonusPerTier,
	}
}

// Due reports whether the active population has fallen to a quarter of the
// required count.
func (s *Spawner) Due(active int) bool {
	return float64(active) <= float64(s.Required)/4
}

// Trigger records one wave and returns how many mobs it holds.
func (s *Spawner) Trigger() int {
	s.Cycles++
	if s.SpeedTierInterval > 0 && s.Cycles%s.SpeedTierInterval == 0 {
		s.SpeedTier++
	}
	n := s.Required + s.Increment
	s.Required += s.Increment
	return n
}

// SpeedBonus is added to each velocity axis of newly spawned mobs.
func (s *Spawner) SpeedBonus() float64 {
	return float64(s.SpeedTier) * s.SpeedBonusPerTier
}

// EdgePosition picks a uniform point in the w x h area and pushes it offset
// units past the nearer edge along a randomly chosen axis.
func EdgePosition(rng *rand.Rand, w, h, offset float64) core.Vec2 {
	p := core.V(rng.Float64()*w, rng.Float64()*h)
	if rng.Intn(2) == 0 {
		if p.X < w/2 {
			p.X = -offset
		} else {
			p.X = w + offset
		}
	} else {
		if p.Y < h/2 {
			p.Y = -offset
		} else {
			p.Y = h + offset
		}
	}
	return p
}

// uniform samples [r.Min, r.Max].
func uniform(rng *rand.Rand, r config.Range) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
