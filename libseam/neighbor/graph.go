// Package neighbor builds the cyclic two-neighbour adjacency over border UV points.
package neighbor

import (
	"github.com/fine-structures/seamtopo/seam"
)

// Pair holds the two border neighbours of a UV point in ascending order.
type Pair [2]seam.UVID

func makePair(a, b seam.UVID) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{a, b}
}

// Has reports if uv is one of the two neighbours.
func (p Pair) Has(uv seam.UVID) bool {
	return p[0] == uv || p[1] == uv
}

// Graph maps every border UV id to its two border neighbours.
//
// A Graph is immutable once built: every key has two distinct neighbours, each neighbour
// is itself a key, and adjacency is symmetric, so the graph is a disjoint union of
// simple cycles.
type Graph struct {
	adj map[seam.UVID]Pair
}

// New validates adj and wraps it in a Graph.  adj is copied.
func New(adj map[seam.UVID]Pair) (*Graph, error) {
	g := &Graph{
		adj: make(map[seam.UVID]Pair, len(adj)),
	}
	for uv, p := range adj {
		g.adj[uv] = makePair(p[0], p[1])
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) validate() error {
	degenerate := make(seam.UVSet)
	dangling := make(seam.UVSet)
	asymmetric := make(seam.UVSet)
	for uv, p := range g.adj {
		if p[0] == p[1] || p.Has(uv) {
			degenerate.Add(uv)
			continue
		}
		for _, n := range p {
			np, ok := g.adj[n]
			switch {
			case !ok:
				dangling.Add(uv)
			case !np.Has(uv):
				asymmetric.Add(uv)
			}
		}
	}
	switch {
	case degenerate.Len() > 0:
		return &seam.TopologyError{Reason: "uvs without two distinct neighbours", UVs: degenerate.Sorted()}
	case dangling.Len() > 0:
		return &seam.TopologyError{Reason: "uvs with a neighbour off the border", UVs: dangling.Sorted()}
	case asymmetric.Len() > 0:
		return &seam.TopologyError{Reason: "uvs with one-way neighbours", UVs: asymmetric.Sorted()}
	}
	return nil
}

// Len returns the number of border UV ids in this graph.
func (g *Graph) Len() int { return len(g.adj) }

func (g *Graph) Has(uv seam.UVID) bool {
	_, ok := g.adj[uv]
	return ok
}

// Neighbors returns the two border neighbours of uv.
func (g *Graph) Neighbors(uv seam.UVID) (Pair, bool) {
	p, ok := g.adj[uv]
	return p, ok
}

// Next returns the neighbour of cur that is not prev.
func (g *Graph) Next(prev, cur seam.UVID) (seam.UVID, bool) {
	p, ok := g.adj[cur]
	switch {
	case !ok:
		return 0, false
	case p[0] == prev:
		return p[1], true
	case p[1] == prev:
		return p[0], true
	}
	return 0, false
}

// Keys returns every UV id of this graph.
func (g *Graph) Keys() seam.UVSet {
	keys := make(seam.UVSet, len(g.adj))
	for uv := range g.adj {
		keys.Add(uv)
	}
	return keys
}

// Cycles decomposes the graph into its simple cycles.  Each cycle starts at its lowest
// UV id and heads toward that id's lower neighbour; cycles are ordered by their first id.
func (g *Graph) Cycles() [][]seam.UVID {
	seen := make(seam.UVSet, len(g.adj))
	var cycles [][]seam.UVID
	for _, start := range g.Keys().Sorted() {
		if seen.Has(start) {
			continue
		}
		cycle := []seam.UVID{start}
		seen.Add(start)
		prev, cur := start, g.adj[start][0]
		for cur != start {
			cycle = append(cycle, cur)
			seen.Add(cur)
			prev, cur = cur, g.mustNext(prev, cur)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

func (g *Graph) mustNext(prev, cur seam.UVID) seam.UVID {
	next, ok := g.Next(prev, cur)
	if !ok {
		panic("neighbor: validated graph lost symmetry")
	}
	return next
}
