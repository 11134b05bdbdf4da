package component

// Player holds the skier's steering state. Transform.X is the rendered
// position that trails TargetX.
type Player struct {
	TargetX    float64
	LookBehind bool
	Crashed    bool
}

type PlayerTag struct{}

var PlayerComponent = NewComponent[Player]()
var PlayerTagComponent = NewComponent[PlayerTag]()
