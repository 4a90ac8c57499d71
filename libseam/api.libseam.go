// Package libseam runs the seam analysis of a posed mesh: it finds the UV border, the
// seam anchors and the perimeter curves of the flattened shells, and pairs the curves
// that sit on the two sides of one cut.
package libseam

import (
	"github.com/fine-structures/seamtopo/libseam/cache"
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
)

// Result is everything one Analyze call produced.  The caller owns it.
type Result struct {
	Posed *topo.Snapshot
	Flat  *topo.Snapshot

	Border      seam.BorderSet  // UV border of the posed mesh
	Graph       *neighbor.Graph // border neighbours on the posed mesh
	Anchors     seam.CoordTable // anchors of the posed mesh
	FlatAnchors seam.CoordTable // anchors re-found on the flattened mesh

	Arcs   []seam.Arc
	Curves []*seam.PerimeterCurve // built on the flattened mesh
	Pairs  []seam.CurvePair

	Cached bool // arcs and pairs came from the cache
}

// Unpaired returns the curves left without a partner.
func (res *Result) Unpaired() []*seam.PerimeterCurve {
	var out []*seam.PerimeterCurve
	for _, pc := range res.Curves {
		if pc.PairID == seam.NoPair {
			out = append(out, pc)
		}
	}
	return out
}

// Engine runs analyses.  It holds no state between calls other than the optional cache.
type Engine struct {
	Opts    seam.Opts
	Builder seam.CurveBuilder // nil builds polylines
	Cache   *cache.Store      // nil disables caching
}

func NewEngine(opts seam.Opts) *Engine {
	return &Engine{
		Opts: opts.Normalize(),
	}
}
