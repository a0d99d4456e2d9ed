package hackslash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-hackslash/internal/core"
)

func TestSnapshotBodiesInCreationOrder(t *testing.T) {
	s := NewSim(quietConfig(), 1, nil)
	first := s.addMob(MobMelee, core.V(100, 100), core.Vec2{})
	s.addMob(MobRanged, core.V(200, 100), core.Vec2{})
	s.addMob(MobMelee, core.V(300, 100), core.Vec2{})

	s.kill(first)
	s.world.Flush()
	s.addMob(MobRanged, core.V(400, 100), core.Vec2{})
	s.fire(core.V(500, 100), core.V(0, 100))

	snap := s.Snapshot()
	require.Len(t, snap.Bodies, 4)
	assert.Equal(t, MobRanged, snap.Bodies[0].Kind)
	assert.Equal(t, MobBullet, snap.Bodies[3].Kind)
	for i := 1; i < len(snap.Bodies); i++ {
		assert.Less(t, snap.Bodies[i-1].Serial, snap.Bodies[i].Serial, "body %d", i)
	}
}

func TestSnapshotHashTracksBodies(t *testing.T) {
	s := NewSim(quietConfig(), 1, nil)
	mob := s.addMob(MobMelee, core.V(100, 100), core.Vec2{})
	before := s.Snapshot().Hash()

	s.characters.MustGet(mob).Position.X++
	assert.NotEqual(t, before, s.Snapshot().Hash())

	s.characters.MustGet(mob).Position.X--
	assert.Equal(t, before, s.Snapshot().Hash())
}
