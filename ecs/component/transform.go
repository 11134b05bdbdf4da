package component

// Transform places an entity on the slope. X is lateral, Z is depth along the
// fall line (the player sits at Z=0, uphill is negative) and Y is height.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
