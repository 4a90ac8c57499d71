// Package walker finds seam arcs by walking the border neighbour graph between anchors.
package walker

import (
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/seam"
)

// Outcome tags the result of one directional walk.
type Outcome int

const (
	Reached   Outcome = iota // the target was reached before any stop point
	Blocked                  // a stop point, or the start itself, was reached first
	Exhausted                // the step limit ran out or the graph broke off
)

func (o Outcome) String() string {
	switch o {
	case Reached:
		return "reached"
	case Blocked:
		return "blocked"
	}
	return "exhausted"
}

// Step is the result of one directional walk.  Path is set only when Reached.
type Step struct {
	Outcome Outcome
	Path    []seam.UVID
}

// ShellMap assigns UV ids to shells.
type ShellMap interface {
	Shell(uv seam.UVID) seam.ShellID
}

// Walker walks one NeighborGraph.
type Walker struct {
	Graph     *neighbor.Graph
	Shells    ShellMap
	StepLimit int
}

// New returns a Walker over g using opts.WalkStepLimit.
func New(g *neighbor.Graph, shells ShellMap, opts seam.Opts) *Walker {
	return &Walker{
		Graph:     g,
		Shells:    shells,
		StepLimit: opts.Normalize().WalkStepLimit,
	}
}
