package walker

import (
	"github.com/fine-structures/seamtopo/seam"
)

// Walk follows the border from start, leaving through its neighbour first, until target
// is reached.  Reaching a stop point or coming back to start ends the walk as Blocked.
//
// For a closed walk (target == start) the returned path does not repeat start.
func (w *Walker) Walk(start, first, target seam.UVID, stops seam.UVSet) Step {
	path := []seam.UVID{start}
	prev, cur := start, first
	for steps := 0; steps < w.StepLimit; steps++ {
		if cur == target {
			if target != start {
				path = append(path, cur)
			}
			return Step{Outcome: Reached, Path: path}
		}
		if cur == start || stops.Has(cur) {
			return Step{Outcome: Blocked}
		}
		path = append(path, cur)
		next, ok := w.Graph.Next(prev, cur)
		if !ok {
			break
		}
		prev, cur = cur, next
	}
	return Step{Outcome: Exhausted}
}

// Paths returns the arcs joining start and end that touch no stop point.
//
// UV ids on different shells never connect and yield no arcs.  For start != end each of
// the two directions out of start is walked independently, so 0, 1 or 2 arcs come back.
// For start == end a single direction is walked and a closed loop is returned only if it
// gets back to start without meeting a stop point.
func (w *Walker) Paths(start, end seam.UVID, stops seam.UVSet) ([]seam.Arc, error) {
	if !w.Graph.Has(start) || !w.Graph.Has(end) {
		return nil, &seam.TopologyError{Reason: "walk endpoints without border neighbours", UVs: []seam.UVID{start, end}}
	}
	shell := w.Shells.Shell(start)
	if shell != w.Shells.Shell(end) {
		return nil, nil
	}
	if stops.Has(start) || stops.Has(end) {
		stops = stops.Clone()
		delete(stops, start)
		delete(stops, end)
	}

	p, _ := w.Graph.Neighbors(start)
	firsts := p[:]
	if start == end {
		firsts = p[:1]
	}

	var arcs []seam.Arc
	for _, first := range firsts {
		step := w.Walk(start, first, end, stops)
		switch step.Outcome {
		case Reached:
			arcs = append(arcs, seam.Arc{
				Start: start,
				End:   end,
				Path:  step.Path,
				Shell: shell,
			})
		case Exhausted:
			op := "walk"
			if start == end {
				op = "loop"
			}
			return nil, &seam.IterationLimitError{Op: op, Start: start, End: end, Limit: w.StepLimit}
		}
	}
	return arcs, nil
}
