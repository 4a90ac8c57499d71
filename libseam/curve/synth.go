// Package curve turns walked border arcs into seam curves.
package curve

import (
	"github.com/fine-structures/seamtopo/libseam/anchor"
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/libseam/walker"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Synthesizer walks every arc between the anchors of one snapshot and covers what is
// left of the border with closed loops.
type Synthesizer struct {
	X       *topo.Snapshot
	Border  seam.BorderSet
	Graph   *neighbor.Graph
	Walker  *walker.Walker
	Builder seam.CurveBuilder

	LoopRetryLimit int
}

// NewSynthesizer returns a Synthesizer building Polylines.
func NewSynthesizer(X *topo.Snapshot, bs seam.BorderSet, g *neighbor.Graph, opts seam.Opts) *Synthesizer {
	opts = opts.Normalize()
	return &Synthesizer{
		X:              X,
		Border:         bs,
		Graph:          g,
		Walker:         walker.New(g, X, opts),
		Builder:        Polylines{},
		LoopRetryLimit: opts.LoopRetryLimit,
	}
}

// Arcs returns every arc of the border, in shell order then anchor order, followed by
// the closed loops that cover border UVs no anchor pair reached.
//
// The union of the returned arcs is exactly the set of border UV ids.
func (syn *Synthesizer) Arcs(anchors seam.UVSet) ([]seam.Arc, error) {
	var arcs []seam.Arc
	covered := make(seam.UVSet)

	byShell := anchor.ByShell(syn.X, anchors)
	shells := make(seam.IDSet[seam.ShellID], len(byShell))
	for shell := range byShell {
		shells.Add(shell)
	}
	for _, shell := range shells.Sorted() {
		ids := byShell[shell].Sorted()
		for i, a := range ids {
			for _, b := range ids[i+1:] {
				stops := byShell[shell].Clone()
				delete(stops, a)
				delete(stops, b)
				found, err := syn.Walker.Paths(a, b, stops)
				if err != nil {
					return nil, err
				}
				for _, arc := range found {
					covered.Union(arc.Members())
					klog.V(3).Infof("arc %d..%d on shell %d: %d uvs", a, b, shell, len(arc.Path))
				}
				arcs = append(arcs, found...)
			}
		}
	}

	borderUVs := syn.Graph.Keys()
	for tries := 0; ; tries++ {
		left := borderUVs.Minus(covered)
		if left.Len() == 0 {
			break
		}
		if tries >= syn.LoopRetryLimit {
			lo, _ := left.Min()
			return nil, &seam.IterationLimitError{Op: "cover", Start: lo, End: lo, Limit: syn.LoopRetryLimit}
		}

		// a loop through one anchor starts at that anchor
		start, ok := left.Intersect(anchors).Min()
		if !ok {
			start, _ = left.Min()
		}
		found, err := syn.Walker.Paths(start, start, nil)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, &seam.TopologyError{Reason: "border uv on no closed loop", UVs: []seam.UVID{start}}
		}
		covered.Union(found[0].Members())
		arcs = append(arcs, found[0])
	}

	klog.V(2).Infof("%s: %d arcs over %d border uvs, %d anchors", syn.X.Name(), len(arcs), borderUVs.Len(), anchors.Len())
	return arcs, nil
}

// Curves walks the arcs of the border and builds a curve for each.
func (syn *Synthesizer) Curves(anchors seam.UVSet) ([]*seam.PerimeterCurve, error) {
	arcs, err := syn.Arcs(anchors)
	if err != nil {
		return nil, err
	}
	return syn.Build(arcs, anchors)
}

// Build makes one PerimeterCurve per arc, numbered in arc order.
func (syn *Synthesizer) Build(arcs []seam.Arc, anchors seam.UVSet) ([]*seam.PerimeterCurve, error) {
	curves := make([]*seam.PerimeterCurve, 0, len(arcs))
	for i, arc := range arcs {
		pts := make([]r3.Vector, len(arc.Path))
		for j, uv := range arc.Path {
			pts[j] = syn.X.Position(syn.X.UVVertex(uv))
		}
		c, err := syn.Builder.BuildCurve(pts, arc.Closed())
		if err != nil {
			return nil, errors.Wrapf(err, "arc %d..%d", arc.Start, arc.End)
		}
		members := arc.Members()
		curves = append(curves, &seam.PerimeterCurve{
			ID:      seam.CurveID(i),
			Arc:     arc,
			Anchors: members.Intersect(anchors),
			Edges:   syn.X.UVToEdges(members, syn.Border.Edges),
			Curve:   c,
			PairID:  seam.NoPair,
		})
	}
	return curves, nil
}

// EdgeLoops returns the border edges of each arc instead of building curves.
func (syn *Synthesizer) EdgeLoops(anchors seam.UVSet) ([]seam.IDSet[seam.EdgeID], error) {
	arcs, err := syn.Arcs(anchors)
	if err != nil {
		return nil, err
	}
	loops := make([]seam.IDSet[seam.EdgeID], len(arcs))
	for i, arc := range arcs {
		loops[i] = syn.X.UVToEdges(arc.Members(), syn.Border.Edges)
	}
	return loops, nil
}
