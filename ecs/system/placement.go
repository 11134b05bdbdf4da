package system

import (
	"fmt"
	"log"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/yetislope/common"
	"github.com/milk9111/yetislope/prefabs"
)

// Placement picks the lateral position of a freshly spawned tree. roll is a
// uniform draw in [0,1) supplied by the caller so placement stays
// reproducible under a seeded source.
type Placement interface {
	NextX(roll, prevX float64, spawn int) float64
}

// NewPlacement builds the policy named by the tuning's obstacles.placement.
func NewPlacement(tuning prefabs.TuningSpec) (Placement, error) {
	lo, hi := tuning.SpawnBounds()
	switch tuning.Obstacles.Placement {
	case prefabs.PlacementUniform, "":
		return UniformPlacement{MinX: lo, MaxX: hi}, nil
	case prefabs.PlacementLanes:
		return NewLanePlacement(tuning.Obstacles.Lanes, lo, hi), nil
	case prefabs.PlacementScript:
		return NewScriptPlacement(tuning.Obstacles.Script, lo, hi)
	default:
		return nil, fmt.Errorf("placement: unknown policy %q", tuning.Obstacles.Placement)
	}
}

// UniformPlacement draws continuously across the spawn range.
type UniformPlacement struct {
	MinX float64
	MaxX float64
}

func (u UniformPlacement) NextX(roll, _ float64, _ int) float64 {
	return common.Clamp(u.MinX+roll*(u.MaxX-u.MinX), u.MinX, u.MaxX)
}

// LanePlacement picks one of a fixed set of lateral lanes.
type LanePlacement struct {
	lanes []float64
}

func NewLanePlacement(lanes []float64, lo, hi float64) LanePlacement {
	clamped := make([]float64, 0, len(lanes))
	for _, x := range lanes {
		clamped = append(clamped, common.Clamp(x, lo, hi))
	}
	return LanePlacement{lanes: clamped}
}

func (l LanePlacement) NextX(roll, _ float64, _ int) float64 {
	if len(l.lanes) == 0 {
		return 0
	}
	idx := int(roll * float64(len(l.lanes)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(l.lanes) {
		idx = len(l.lanes) - 1
	}
	return l.lanes[idx]
}

// ScriptPlacement delegates to a tengo script that reads roll, min_x, max_x,
// prev_x and spawn and assigns x. Failed runs fall back to uniform placement.
type ScriptPlacement struct {
	path     string
	compiled *tengo.Compiled
	fallback UniformPlacement
	failed   bool
}

func NewScriptPlacement(path string, lo, hi float64) (*ScriptPlacement, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("placement: load %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	for name, value := range map[string]any{
		"roll":   0.0,
		"min_x":  lo,
		"max_x":  hi,
		"prev_x": 0.0,
		"spawn":  0,
		"x":      0.0,
	} {
		if err := script.Add(name, value); err != nil {
			return nil, fmt.Errorf("placement: declare %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("placement: compile %s: %w", path, err)
	}

	return &ScriptPlacement{
		path:     path,
		compiled: compiled,
		fallback: UniformPlacement{MinX: lo, MaxX: hi},
	}, nil
}

func (s *ScriptPlacement) NextX(roll, prevX float64, spawn int) float64 {
	x, err := s.run(roll, prevX, spawn)
	if err != nil {
		if !s.failed {
			log.Printf("placement: script %s: %v; using uniform placement", s.path, err)
			s.failed = true
		}
		return s.fallback.NextX(roll, prevX, spawn)
	}
	return common.Clamp(x, s.fallback.MinX, s.fallback.MaxX)
}

func (s *ScriptPlacement) run(roll, prevX float64, spawn int) (float64, error) {
	if err := s.compiled.Set("roll", roll); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("prev_x", prevX); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("spawn", spawn); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}
	v := s.compiled.Get("x")
	switch v.ValueType() {
	case "float", "int":
	default:
		return 0, fmt.Errorf("x is %s, want a number", v.ValueType())
	}
	x := v.Float()
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("x is not finite")
	}
	return x, nil
}
