package hackslash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-hackslash/internal/config"
)

func TestSpawnerEscalation(t *testing.T) {
	for _, interval := range []int{1, 2, 3, 5} {
		s := NewSpawner(config.SpawnerConfig{
			InitialRequired:   5,
			Increment:         2,
			SpeedTierInterval: interval,
			SpeedBonusPerTier: 10,
		})
		for k := 1; k <= 20; k++ {
			s.Trigger()
			assert.Equal(t, k/interval, s.SpeedTier, "interval %d after %d triggers", interval, k)
			assert.Equal(t, float64(k/interval)*10, s.SpeedBonus())
		}
	}
}

func TestSpawnerWaveGrowth(t *testing.T) {
	s := NewSpawner(config.SpawnerConfig{InitialRequired: 5, Increment: 2, SpeedTierInterval: 3})
	assert.Equal(t, 7, s.Trigger())
	assert.Equal(t, 9, s.Trigger())
	assert.Equal(t, 11, s.Trigger())
	assert.Equal(t, 11, s.Required)
	assert.Equal(t, 3, s.Cycles)
}

func TestSpawnerDue(t *testing.T) {
	s := Spawner{Required: 10}
	assert.True(t, s.Due(0))
	assert.True(t, s.Due(2))
	assert.False(t, s.Due(3), "2.5 is the quarter mark")

	s.Required = 8
	assert.True(t, s.Due(2))
	assert.False(t, s.Due(3))
}

func TestEdgePosition(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const w, h, off = 1280.0, 720.0, 20.0
	edges := map[string]int{}
	for range 2000 {
		p := EdgePosition(rng, w, h, off)
		switch {
		case p.X == -off:
			edges["left"]++
			assert.True(t, p.Y >= 0 && p.Y <= h)
		case p.X == w+off:
			edges["right"]++
			assert.True(t, p.Y >= 0 && p.Y <= h)
		case p.Y == -off:
			edges["top"]++
			assert.True(t, p.X >= 0 && p.X <= w)
		case p.Y == h+off:
			edges["bottom"]++
			assert.True(t, p.X >= 0 && p.X <= w)
		default:
			t.Fatalf("point %v is not on an edge", p)
		}
	}
	assert.Len(t, edges, 4, "every edge should be used")
}
