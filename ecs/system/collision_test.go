package system

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/yetislope/ecs/component"
	"github.com/stretchr/testify/assert"
)

func tree(x, z float64) component.HazardReport {
	return component.HazardReport{Kind: component.HazardTree, Entity: 1, Pos: cp.Vector{X: x, Y: z}}
}

func yeti(x, z float64) component.HazardReport {
	return component.HazardReport{Kind: component.HazardYeti, Entity: 2, Pos: cp.Vector{X: x, Y: z}}
}

func TestDetectCollision(t *testing.T) {
	spec := loadTuning(t).Collision

	cases := []struct {
		name string
		in   CollisionInput
		want Outcome
	}{
		{"tree_dead_ahead", CollisionInput{Reports: []component.HazardReport{tree(0, -1)}}, OutcomeCrash},
		{"tree_two_units_off", CollisionInput{Reports: []component.HazardReport{tree(2, -1)}}, OutcomeNone},
		{"tree_just_inside", CollisionInput{PlayerX: 3, Reports: []component.HazardReport{tree(3.79, -1)}}, OutcomeCrash},
		{"tree_not_reached", CollisionInput{Reports: []component.HazardReport{tree(0, 0.5)}}, OutcomeNone},
		{"tree_at_zero", CollisionInput{Reports: []component.HazardReport{tree(0, 0)}}, OutcomeNone},
		{"tree_passed", CollisionInput{Reports: []component.HazardReport{tree(0, -2.5)}}, OutcomeNone},
		{"tree_while_crashed", CollisionInput{Crashed: true, HasCrashed: true, Reports: []component.HazardReport{tree(0, -1)}}, OutcomeNone},
		{"tree_in_grace", CollisionInput{
			HasCrashed: true,
			LastCrash:  2 * time.Second,
			Now:        2*time.Second + 300*time.Millisecond,
			Reports:    []component.HazardReport{tree(0, -1)},
		}, OutcomeNone},
		{"tree_after_grace", CollisionInput{
			HasCrashed: true,
			LastCrash:  2 * time.Second,
			Now:        2*time.Second + 600*time.Millisecond,
			Reports:    []component.HazardReport{tree(0, -1)},
		}, OutcomeCrash},
		{"grace_needs_prior_crash", CollisionInput{Now: 100 * time.Millisecond, Reports: []component.HazardReport{tree(0, -1)}}, OutcomeCrash},
		{"yeti_ignored_until_attacking", CollisionInput{Reports: []component.HazardReport{yeti(0, -0.5)}}, OutcomeNone},
		{"yeti_attacking", CollisionInput{YetiAttacking: true, Reports: []component.HazardReport{yeti(1, -1)}}, OutcomeCaught},
		{"yeti_too_far_behind", CollisionInput{YetiAttacking: true, Reports: []component.HazardReport{yeti(0, -3)}}, OutcomeNone},
		{"yeti_too_far_aside", CollisionInput{YetiAttacking: true, Reports: []component.HazardReport{yeti(2, -1)}}, OutcomeNone},
		{"yeti_catches_crashed_skier", CollisionInput{Crashed: true, YetiAttacking: true, Reports: []component.HazardReport{yeti(0, -1)}}, OutcomeCaught},
		{"caught_dominates_crash", CollisionInput{YetiAttacking: true, Reports: []component.HazardReport{tree(0, -1), yeti(0, -1)}}, OutcomeCaught},
		{"already_caught", CollisionInput{Caught: true, YetiAttacking: true, Reports: []component.HazardReport{yeti(0, -1)}}, OutcomeNone},
		{"nan_ignored", CollisionInput{Reports: []component.HazardReport{tree(math.NaN(), -1)}}, OutcomeNone},
		{"inf_ignored", CollisionInput{YetiAttacking: true, Reports: []component.HazardReport{yeti(0, math.Inf(-1))}}, OutcomeNone},
		{"unknown_kind_ignored", CollisionInput{Reports: []component.HazardReport{{Pos: cp.Vector{X: 0, Y: -1}}}}, OutcomeNone},
		{"no_reports", CollisionInput{}, OutcomeNone},
		{"yeti_offset_from_moved_skier", CollisionInput{PlayerX: 5, YetiAttacking: true, Reports: []component.HazardReport{yeti(5.5, -1)}}, OutcomeCaught},
		{"yeti_beside_moved_skier", CollisionInput{PlayerX: 5, YetiAttacking: true, Reports: []component.HazardReport{yeti(3, -1)}}, OutcomeNone},
		{"tree_offset_from_moved_skier", CollisionInput{PlayerX: -6, Reports: []component.HazardReport{tree(-6.5, -1)}}, OutcomeCrash},
		{"yeti_catches_in_grace", CollisionInput{
			Crashed:       true,
			HasCrashed:    true,
			LastCrash:     time.Second,
			Now:           time.Second + 100*time.Millisecond,
			YetiAttacking: true,
			Reports:       []component.HazardReport{tree(0, -1), yeti(0, -1)},
		}, OutcomeCaught},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DetectCollision(c.in, spec)
			assert.Equal(t, c.want, got.Outcome, "got %s", got.Outcome)
		})
	}
}

func TestDetectCollisionFirstTreeWins(t *testing.T) {
	spec := loadTuning(t).Collision
	first := tree(0.1, -1)
	first.Entity = 10
	second := tree(0, -0.5)
	second.Entity = 11

	got := DetectCollision(CollisionInput{Reports: []component.HazardReport{first, second}}, spec)
	assert.Equal(t, OutcomeCrash, got.Outcome)
	assert.Equal(t, uint64(10), got.Hazard.Entity)
}
