package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictZBands(t *testing.T) {
	cases := []struct {
		name    string
		z       float64
		advance float64
		want    float64
	}{
		{"near", 2, 1, 1.8},
		{"near_behind", -3, 1, -3.2},
		{"mid", 10, 1, 9.5},
		{"far", 30, 1, 29},
		{"band_edge", 5, 1, 4.5},
		{"no_motion", 12, 0, 12},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, PredictZ(c.z, c.advance), 1e-9)
		})
	}
}

func newObstacleWorld(t *testing.T) (*ecs.World, *ObstacleSystem) {
	t.Helper()
	w := ecs.NewWorld()
	ecs.SetResource(w, &Frame{Delta: tick})
	s := NewObstacleSystem(loadTuning(t), nil, rand.New(rand.NewSource(11)))
	return w, s
}

func TestObstacleSpawnStaggersDepth(t *testing.T) {
	w, s := newObstacleWorld(t)
	ents := s.Spawn(w)
	require.Len(t, ents, 4)

	want := []float64{20, 40, 60, 80}
	for i, e := range ents {
		o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind())
		require.True(t, ok)
		assert.Equal(t, want[i], o.Z)
		assert.Equal(t, component.ObstacleSpawned, o.State)
		assert.GreaterOrEqual(t, o.X, -8.0)
		assert.LessOrEqual(t, o.X, 8.0)
	}
}

func TestObstacleRecycle(t *testing.T) {
	w, s := newObstacleWorld(t)
	s.Spawn(w)
	o := firstObstacle(t, w)
	o.Z = -4.9

	s.Update(w)

	assert.Equal(t, 80.0, o.Z)
	assert.Equal(t, component.ObstacleSpawned, o.State)
	assert.Equal(t, 2, o.Spawns)
	assert.GreaterOrEqual(t, o.X, -8.0)
	assert.LessOrEqual(t, o.X, 8.0)

	s.Update(w)
	assert.Equal(t, component.ObstacleAdvancing, o.State)
	assert.InDelta(t, 80-0.35, o.Z, 1e-9)
}

func TestObstacleReportsPredictedPosition(t *testing.T) {
	w, s := newObstacleWorld(t)
	s.Spawn(w)
	s.Update(w)

	frame := frameOf(w)
	require.Len(t, frame.Reports, 4)
	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(e ecs.Entity, o *component.Obstacle) {
		found := false
		for _, r := range frame.Reports {
			if r.Entity == uint64(e) {
				found = true
				assert.Equal(t, component.HazardTree, r.Kind)
				assert.Equal(t, o.X, r.Pos.X)
				assert.Equal(t, o.PredictedZ, r.Pos.Y)
				assert.Less(t, o.PredictedZ, o.Z)
			}
		}
		assert.True(t, found, "no report for %v", e)
	})
}

func TestObstacleReshuffle(t *testing.T) {
	tuning := loadTuning(t)
	tuning.Obstacles.ReshuffleChance = 1
	w := ecs.NewWorld()
	ecs.SetResource(w, &Frame{Delta: tick})
	s := NewObstacleSystem(tuning, UniformPlacement{MinX: 5, MaxX: 5}, rand.New(rand.NewSource(1)))
	ents := s.Spawn(w)
	s.Schedule(w)

	for _, e := range ents {
		o, _ := ecs.Get(w, e, component.ObstacleComponent.Kind())
		o.X = -5
	}
	near, _ := ecs.Get(w, ents[0], component.ObstacleComponent.Kind())
	far, _ := ecs.Get(w, ents[2], component.ObstacleComponent.Kind())
	far.Z = 50

	w.Timeline().Advance(tuning.Obstacles.ReshuffleInterval, w)

	assert.Equal(t, -5.0, near.X, "trees at or inside reshuffle_min_z stay put")
	assert.Equal(t, 5.0, far.X)
	assert.Equal(t, 80.0, far.Z)
	assert.True(t, w.Timeline().Pending(reshuffleTimerID))
}
