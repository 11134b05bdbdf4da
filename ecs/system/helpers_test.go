package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/milk9111/yetislope/prefabs"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

type keyState map[Intent]bool

func (k keyState) Pressed(intent Intent) bool {
	return k[intent]
}

// randomKeys mashes steering keys from a seeded source.
type randomKeys struct {
	rng *rand.Rand
}

func (r randomKeys) Pressed(intent Intent) bool {
	return r.rng.Intn(3) == 0
}

func loadTuning(t *testing.T) prefabs.TuningSpec {
	t.Helper()
	spec, err := prefabs.LoadTuning(prefabs.TuningFile)
	require.NoError(t, err)
	return *spec
}

func loadYeti(t *testing.T) prefabs.YetiSpec {
	t.Helper()
	spec, err := prefabs.LoadYeti(prefabs.YetiFile)
	require.NoError(t, err)
	return *spec
}

// newTestSimulation keeps every tree in a column at x=8, well clear of a
// skier who does not steer.
func newTestSimulation(t *testing.T, keys KeySource) *Simulation {
	t.Helper()
	sim, err := NewSimulation(Options{
		Tuning:    loadTuning(t),
		Yeti:      loadYeti(t),
		Keys:      keys,
		Seed:      7,
		Placement: UniformPlacement{MinX: 8, MaxX: 8},
	})
	require.NoError(t, err)
	t.Cleanup(sim.Close)
	return sim
}

func stepFor(sim *Simulation, seconds float64) {
	for i := 0; i < int(seconds*60); i++ {
		sim.Step(tick)
	}
}

func firstObstacle(t *testing.T, w *ecs.World) *component.Obstacle {
	t.Helper()
	e, ok := ecs.First(w, component.ObstacleComponent.Kind())
	require.True(t, ok)
	o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind())
	require.True(t, ok)
	return o
}

func yetiOf(t *testing.T, w *ecs.World) *component.Yeti {
	t.Helper()
	e, ok := ecs.First(w, component.YetiComponent.Kind())
	require.True(t, ok)
	y, ok := ecs.Get(w, e, component.YetiComponent.Kind())
	require.True(t, ok)
	return y
}
