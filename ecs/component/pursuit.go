package component

// PursuitPhase is the yeti's behavioral stage. Phases only move forward.
type PursuitPhase int

const (
	PursuitApproach PursuitPhase = iota
	PursuitChase
	PursuitAttack
)

func (p PursuitPhase) String() string {
	switch p {
	case PursuitApproach:
		return "approach"
	case PursuitChase:
		return "chase"
	case PursuitAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// PursuitState is the yeti's full state for one tick. It is produced fresh by
// each pursuit step rather than mutated in place.
type PursuitState struct {
	Phase      PursuitPhase
	X          float64
	Y          float64 // emergence height, negative while still below ground
	Z          float64
	TargetX    float64
	TargetZ    float64
	ChaseSpeed float64
	AnimTime   float64
	ArmAngle   float64
	JumpHeight float64
}

// Yeti wraps the pursuit record. Active is false between the trigger and the
// moment the yeti starts attacking.
type Yeti struct {
	State  PursuitState
	Active bool
}

var YetiComponent = NewComponent[Yeti]()
