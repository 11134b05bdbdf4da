package component

import "github.com/jakecoffman/cp"

// HazardKind distinguishes what a report came from.
type HazardKind int

const (
	HazardTree HazardKind = iota + 1
	HazardYeti
)

func (k HazardKind) String() string {
	switch k {
	case HazardTree:
		return "tree"
	case HazardYeti:
		return "yeti"
	default:
		return "unknown"
	}
}

// HazardReport is one hazard's position for the current tick. Pos.X is
// lateral and Pos.Y holds slope depth (world Z). Trees report their predicted
// depth.
type HazardReport struct {
	Kind   HazardKind
	Entity uint64
	Pos    cp.Vector
}
