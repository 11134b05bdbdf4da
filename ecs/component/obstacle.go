package component

// ObstacleState is the lifecycle stage of a tree.
type ObstacleState int

const (
	ObstacleSpawned ObstacleState = iota
	ObstacleAdvancing
)

func (s ObstacleState) String() string {
	switch s {
	case ObstacleSpawned:
		return "spawned"
	case ObstacleAdvancing:
		return "advancing"
	default:
		return "unknown"
	}
}

// Obstacle is a recycled tree. X is fixed for one pass; Z counts down from the
// spawn distance until the tree is behind the player.
type Obstacle struct {
	X          float64
	Z          float64
	PredictedZ float64
	State      ObstacleState
	Spawns     int
}

var ObstacleComponent = NewComponent[Obstacle]()
