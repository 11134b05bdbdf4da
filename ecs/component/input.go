package component

// Input stores the intents polled for this tick.
type Input struct {
	SteerLeft  bool
	SteerRight bool
	LookBehind bool
}

// SteerX returns -1, 0 or 1.
func (in Input) SteerX() float64 {
	x := 0.0
	if in.SteerLeft {
		x -= 1
	}
	if in.SteerRight {
		x += 1
	}
	return x
}

var InputComponent = NewComponent[Input]()
