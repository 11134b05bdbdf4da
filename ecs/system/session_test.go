package system

import (
	"math"
	"testing"
	"time"

	"github.com/milk9111/yetislope/ecs"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAccrues(t *testing.T) {
	sim := newTestSimulation(t, nil)
	stepFor(sim, 1)

	sess := sim.Session()
	assert.False(t, sess.Crashed)
	assert.InDelta(t, 10, sess.Score, 1)
}

func crashInto(t *testing.T, sim *Simulation) {
	t.Helper()
	o := firstObstacle(t, sim.World())
	o.X = sim.Snapshot().PlayerX
	o.Z = -0.5
	sim.Step(tick)
	require.Equal(t, OutcomeCrash, sim.Frame().Collision.Outcome)
}

func TestCrashResetsScoreUntilRecovery(t *testing.T) {
	sim := newTestSimulation(t, nil)
	stepFor(sim, 1)
	require.Greater(t, sim.Session().Score, 0)

	crashInto(t, sim)
	sess := sim.Session()
	assert.True(t, sess.Crashed)
	assert.Equal(t, 0, sess.Score)
	assert.Equal(t, 1, sess.Crashes)
	assert.True(t, sim.Snapshot().Crashed)

	stepFor(sim, 1.9)
	sess = sim.Session()
	assert.True(t, sess.Crashed, "still down before the recovery delay")
	assert.Equal(t, 0, sess.Score, "score is frozen while crashed")

	stepFor(sim, 0.5)
	sess = sim.Session()
	assert.False(t, sess.Crashed)
	assert.Greater(t, sess.Score, 0)

	_, player, _, ok := playerOf(sim.World())
	require.True(t, ok)
	assert.False(t, player.Crashed)
}

func TestCrashIsNotRepeatedWhileDown(t *testing.T) {
	sim := newTestSimulation(t, nil)
	crashInto(t, sim)

	o := firstObstacle(t, sim.World())
	o.X = 0
	o.Z = -0.5
	sim.Step(tick)

	assert.Equal(t, OutcomeNone, sim.Frame().Collision.Outcome)
	assert.Equal(t, 1, sim.Session().Crashes)
}

func TestYetiTriggerIsIdempotent(t *testing.T) {
	sim := newTestSimulation(t, nil)
	sim.TriggerYeti()
	sim.TriggerYeti()

	count := 0
	ecs.ForEach(sim.World(), component.YetiComponent.Kind(), func(ecs.Entity, *component.Yeti) { count++ })
	assert.Equal(t, 1, count)

	sess := sim.Session()
	assert.True(t, sess.YetiTriggered)
	assert.True(t, sess.WarningVisible)
	assert.False(t, sess.YetiAttacking)
	assert.False(t, yetiOf(t, sim.World()).Active)
}

func TestYetiTriggeredByScore(t *testing.T) {
	tuning := loadTuning(t)
	tuning.Session.YetiTriggerScore = 5
	sim, err := NewSimulation(Options{
		Tuning:    tuning,
		Yeti:      loadYeti(t),
		Placement: UniformPlacement{MinX: 8, MaxX: 8},
	})
	require.NoError(t, err)
	defer sim.Close()

	stepFor(sim, 0.4)
	assert.False(t, sim.Session().YetiTriggered)

	stepFor(sim, 0.2)
	require.True(t, sim.Session().YetiTriggered)
	assert.True(t, sim.World().Timeline().Pending(yetiTimerID))

	stepFor(sim, 1)
	assert.True(t, sim.World().Timeline().Pending(yetiTimerID), "later crossings do not reschedule")
}

func TestYetiReleasedAfterDelay(t *testing.T) {
	sim := newTestSimulation(t, nil)
	sim.TriggerYeti()
	start := yetiOf(t, sim.World()).State

	stepFor(sim, 2.9)
	assert.False(t, sim.Session().YetiAttacking)
	assert.Equal(t, start.Z, yetiOf(t, sim.World()).State.Z, "dormant yeti does not move")

	stepFor(sim, 0.2)
	sess := sim.Session()
	assert.True(t, sess.YetiAttacking)
	assert.False(t, sess.WarningVisible)
	assert.True(t, yetiOf(t, sim.World()).Active)
	assert.Greater(t, yetiOf(t, sim.World()).State.Z, start.Z)
}

func TestCaughtIsTerminal(t *testing.T) {
	sim := newTestSimulation(t, nil)
	sim.TriggerYeti()
	stepFor(sim, 3.1)
	require.True(t, sim.Session().YetiAttacking)

	y := yetiOf(t, sim.World())
	y.State.Phase = component.PursuitAttack
	y.State.X = 0
	y.State.TargetX = 0
	y.State.Z = -0.5
	sim.Step(tick)
	require.Equal(t, OutcomeCaught, sim.Frame().Collision.Outcome)

	score := sim.Session().Score
	stepFor(sim, 5)
	sess := sim.Session()
	assert.True(t, sess.Caught)
	assert.True(t, sess.Crashed)
	assert.True(t, sim.Over())
	assert.Equal(t, score, sess.Score)
	assert.False(t, sim.World().Timeline().Pending(scoreTimerID))
	assert.False(t, sim.World().Timeline().Pending(recoverTimerID))
}

func TestRecoverySuppressedDuringAttack(t *testing.T) {
	sim := newTestSimulation(t, nil)
	sim.TriggerYeti()
	stepFor(sim, 3.1)

	y := yetiOf(t, sim.World())
	y.State.Phase = component.PursuitAttack
	y.State.Z = -30
	y.State.X = 9

	sess, ok := sessionOf(sim.World())
	require.True(t, ok)
	sess.Crashed = true
	sim.session.recover(sim.World())
	assert.True(t, sess.Crashed)

	y.State.Phase = component.PursuitChase
	sim.session.recover(sim.World())
	assert.False(t, sess.Crashed)
}

func TestCloseClearsSession(t *testing.T) {
	sim := newTestSimulation(t, nil)
	stepFor(sim, 0.5)
	sim.Close()

	assert.Equal(t, 0, sim.World().Timeline().Len())
	assert.Empty(t, ecs.Entities(sim.World()))

	now := sim.Now()
	delta := tick
	sim.Step(delta)
	assert.Equal(t, now+time.Duration(delta*float64(time.Second)), sim.Now())
	assert.Equal(t, 0, sim.Session().Score)
}

func TestStepCapsClock(t *testing.T) {
	sim := newTestSimulation(t, nil)
	sim.Step(5)
	assert.Equal(t, MaxClockStep, sim.Now())
	assert.Equal(t, 0.05, sim.Frame().Delta)

	sim.Step(-1)
	assert.Equal(t, MaxClockStep, sim.Now())

	sim.Step(math.Inf(1))
	assert.Equal(t, 2*MaxClockStep, sim.Now())
}

func TestStepIgnoresNaNDelta(t *testing.T) {
	sim := newTestSimulation(t, nil)
	sim.Step(math.NaN())
	assert.Equal(t, time.Duration(0), sim.Now())
	assert.Equal(t, 0.0, sim.Frame().Delta)

	stepFor(sim, 10)
	for _, tree := range sim.Snapshot().Trees {
		require.False(t, math.IsNaN(tree.Z), "tree depth went NaN")
		assert.LessOrEqual(t, tree.Z, 80.0)
	}
}
