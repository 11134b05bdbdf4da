package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidTuning = errors.New("prefabs: invalid tuning")

const (
	TuningFile = "tuning.yaml"
	YetiFile   = "yeti.yaml"
)

// Obstacle placement policies.
const (
	PlacementUniform = "uniform"
	PlacementLanes   = "lanes"
	PlacementScript  = "script"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// TuningSpec holds every gameplay constant of a session except the yeti's.
type TuningSpec struct {
	Name       string        `yaml:"name"`
	SlopeWidth float64       `yaml:"slope_width"`
	Player     PlayerSpec    `yaml:"player"`
	Obstacles  ObstacleSpec  `yaml:"obstacles"`
	Collision  CollisionSpec `yaml:"collision"`
	Session    SessionSpec   `yaml:"session"`
	Palette    PaletteSpec   `yaml:"palette"`
}

type PlayerSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	Blend     float64 `yaml:"blend"`
	Lean      float64 `yaml:"lean"`
}

type ObstacleSpec struct {
	Count             int           `yaml:"count"`
	Speed             float64       `yaml:"speed"`
	SpawnDistance     float64       `yaml:"spawn_distance"`
	RecycleBelow      float64       `yaml:"recycle_below"`
	EdgeMargin        float64       `yaml:"edge_margin"`
	Placement         string        `yaml:"placement"`
	Lanes             []float64     `yaml:"lanes"`
	Script            string        `yaml:"script"`
	ReshuffleInterval time.Duration `yaml:"reshuffle_interval"`
	ReshuffleChance   float64       `yaml:"reshuffle_chance"`
	ReshuffleMinZ     float64       `yaml:"reshuffle_min_z"`
}

type CollisionSpec struct {
	TreeDistance float64       `yaml:"tree_distance"`
	TreeDepth    float64       `yaml:"tree_depth"`
	YetiDistance float64       `yaml:"yeti_distance"`
	YetiDepth    float64       `yaml:"yeti_depth"`
	Grace        time.Duration `yaml:"grace"`
}

type SessionSpec struct {
	ScoreInterval    time.Duration `yaml:"score_interval"`
	ScoreIncrement   int           `yaml:"score_increment"`
	RecoveryDelay    time.Duration `yaml:"recovery_delay"`
	YetiTriggerScore int           `yaml:"yeti_trigger_score"`
	YetiDelay        time.Duration `yaml:"yeti_delay"`
}

type PaletteSpec struct {
	Snow    *YAMLColor `yaml:"snow"`
	Tree    *YAMLColor `yaml:"tree"`
	Skier   *YAMLColor `yaml:"skier"`
	Crashed *YAMLColor `yaml:"crashed"`
	Yeti    *YAMLColor `yaml:"yeti"`
}

// PlayerBounds returns the lateral range the skier may occupy.
func (t TuningSpec) PlayerBounds() (lo, hi float64) {
	half := t.SlopeWidth / 2
	return -half + 1, half - 1
}

// SpawnBounds returns the lateral range trees may spawn in.
func (t TuningSpec) SpawnBounds() (lo, hi float64) {
	half := t.SlopeWidth / 2
	return -half + t.Obstacles.EdgeMargin, half - t.Obstacles.EdgeMargin
}

func (t TuningSpec) Validate() error {
	if t.SlopeWidth <= 2 {
		return fmt.Errorf("%w: slope_width must exceed 2, got %v", ErrInvalidTuning, t.SlopeWidth)
	}
	if t.Player.MoveSpeed <= 0 {
		return fmt.Errorf("%w: player.move_speed must be positive", ErrInvalidTuning)
	}
	if t.Player.Blend <= 0 || t.Player.Blend > 1 {
		return fmt.Errorf("%w: player.blend must be in (0,1], got %v", ErrInvalidTuning, t.Player.Blend)
	}

	o := t.Obstacles
	if o.Count < 1 {
		return fmt.Errorf("%w: obstacles.count must be at least 1", ErrInvalidTuning)
	}
	if o.Speed <= 0 || o.SpawnDistance <= 0 {
		return fmt.Errorf("%w: obstacles.speed and spawn_distance must be positive", ErrInvalidTuning)
	}
	if o.RecycleBelow >= 0 || o.RecycleBelow > -t.Collision.TreeDepth {
		return fmt.Errorf("%w: obstacles.recycle_below must be below -collision.tree_depth, got %v", ErrInvalidTuning, o.RecycleBelow)
	}
	if lo, hi := t.SpawnBounds(); lo > hi {
		return fmt.Errorf("%w: obstacles.edge_margin %v leaves no room on a %v wide slope", ErrInvalidTuning, o.EdgeMargin, t.SlopeWidth)
	}
	switch o.Placement {
	case PlacementUniform:
	case PlacementLanes:
		if len(o.Lanes) == 0 {
			return fmt.Errorf("%w: lanes placement needs obstacles.lanes", ErrInvalidTuning)
		}
	case PlacementScript:
		if strings.TrimSpace(o.Script) == "" {
			return fmt.Errorf("%w: script placement needs obstacles.script", ErrInvalidTuning)
		}
	default:
		return fmt.Errorf("%w: unknown obstacles.placement %q", ErrInvalidTuning, o.Placement)
	}
	if o.ReshuffleChance < 0 || o.ReshuffleChance > 1 {
		return fmt.Errorf("%w: obstacles.reshuffle_chance must be in [0,1]", ErrInvalidTuning)
	}

	c := t.Collision
	if c.TreeDistance <= 0 || c.TreeDepth <= 0 || c.YetiDistance <= 0 || c.YetiDepth <= 0 {
		return fmt.Errorf("%w: collision thresholds must be positive", ErrInvalidTuning)
	}

	s := t.Session
	if s.ScoreInterval <= 0 || s.RecoveryDelay <= 0 {
		return fmt.Errorf("%w: session.score_interval and recovery_delay must be positive", ErrInvalidTuning)
	}
	if s.YetiTriggerScore <= 0 {
		return fmt.Errorf("%w: session.yeti_trigger_score must be positive", ErrInvalidTuning)
	}
	return nil
}

// LoadTuning reads and validates a tuning prefab.
func LoadTuning(filename string) (*TuningSpec, error) {
	spec, err := LoadSpec[TuningSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// YetiSpec tunes the pursuit. Phases are listed in order: approach, chase,
// attack.
type YetiSpec struct {
	Name          string             `yaml:"name"`
	SpawnDistance float64            `yaml:"spawn_distance"`
	LateralOffset float64            `yaml:"lateral_offset"`
	EmergeFrom    float64            `yaml:"emerge_from"`
	EmergeRate    float64            `yaml:"emerge_rate"`
	XBlend        float64            `yaml:"x_blend"`
	AnimRate      float64            `yaml:"anim_rate"`
	Phases        []PursuitPhaseSpec `yaml:"phases"`
}

type PursuitPhaseSpec struct {
	Name       string  `yaml:"name"`
	TargetZ    float64 `yaml:"target_z"`
	TrackBlend float64 `yaml:"track_blend"`
	SpeedStart float64 `yaml:"speed_start"`
	SpeedRamp  float64 `yaml:"speed_ramp"`
	SpeedMax   float64 `yaml:"speed_max"`
	ExitWithin float64 `yaml:"exit_within"`
}

var pursuitPhaseOrder = []string{"approach", "chase", "attack"}

func (y YetiSpec) Validate() error {
	if y.SpawnDistance <= 0 {
		return fmt.Errorf("%w: yeti spawn_distance must be positive", ErrInvalidTuning)
	}
	if y.XBlend <= 0 || y.XBlend > 1 {
		return fmt.Errorf("%w: yeti x_blend must be in (0,1], got %v", ErrInvalidTuning, y.XBlend)
	}
	if y.EmergeFrom > 0 || y.EmergeRate <= 0 {
		return fmt.Errorf("%w: yeti must emerge from at or below ground at a positive rate", ErrInvalidTuning)
	}
	if len(y.Phases) != len(pursuitPhaseOrder) {
		return fmt.Errorf("%w: yeti needs exactly %d phases, got %d", ErrInvalidTuning, len(pursuitPhaseOrder), len(y.Phases))
	}
	prevExit := y.SpawnDistance
	for i, p := range y.Phases {
		if p.Name != pursuitPhaseOrder[i] {
			return fmt.Errorf("%w: yeti phase %d must be %q, got %q", ErrInvalidTuning, i, pursuitPhaseOrder[i], p.Name)
		}
		if p.SpeedMax <= 0 || p.SpeedMax > 1 || p.SpeedStart < 0 || p.SpeedStart > p.SpeedMax {
			return fmt.Errorf("%w: yeti phase %s speeds must satisfy 0 <= start <= max <= 1", ErrInvalidTuning, p.Name)
		}
		if p.TrackBlend < 0 || p.TrackBlend > 1 {
			return fmt.Errorf("%w: yeti phase %s track_blend must be in [0,1]", ErrInvalidTuning, p.Name)
		}
		if p.TargetZ > 0 || -p.TargetZ > y.SpawnDistance {
			return fmt.Errorf("%w: yeti phase %s target_z must lie between the spawn point and the player", ErrInvalidTuning, p.Name)
		}
		if i == len(y.Phases)-1 {
			continue
		}
		if p.ExitWithin <= 0 || p.ExitWithin >= prevExit {
			return fmt.Errorf("%w: yeti phase %s exit_within must shrink toward the player, got %v", ErrInvalidTuning, p.Name, p.ExitWithin)
		}
		if -p.TargetZ >= p.ExitWithin {
			return fmt.Errorf("%w: yeti phase %s target_z %v never reaches exit_within %v", ErrInvalidTuning, p.Name, p.TargetZ, p.ExitWithin)
		}
		prevExit = p.ExitWithin
	}
	return nil
}

// LoadYeti reads and validates a yeti prefab.
func LoadYeti(filename string) (*YetiSpec, error) {
	spec, err := LoadSpec[YetiSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c was not set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
