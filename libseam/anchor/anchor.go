// Package anchor flags the border UV points that seam arcs are organised around.
package anchor

import (
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
)

// Detect returns the master point map of X: every border UV id flagged as a seam anchor,
// together with every other UV id on the same vertex, mapped to its UV coordinate.
//
// A border UV id u with neighbours (a, b) is an anchor if its vertex carries three or more
// UV ids, if its vertex carries more UV ids than the vertex of a or of b, or if its vertex
// is on meshBorder while the vertex of a or of b is not.
func Detect(X *topo.Snapshot, g *neighbor.Graph, meshBorder seam.IDSet[seam.VtxID]) seam.CoordTable {
	anchors := make(seam.CoordTable)
	for _, uv := range g.Keys().Sorted() {
		if _, done := anchors[uv]; done {
			continue
		}
		p, _ := g.Neighbors(uv)
		if !IsAnchor(X, uv, p, meshBorder) {
			continue
		}
		for _, sibling := range X.VertexUVs(X.UVVertex(uv)) {
			anchors[sibling] = X.UV(sibling)
		}
	}
	return anchors
}

// IsAnchor applies the anchor rule to one border UV id and its two neighbours.
func IsAnchor(X *topo.Snapshot, uv seam.UVID, p neighbor.Pair, meshBorder seam.IDSet[seam.VtxID]) bool {
	deg := X.UVDegree(uv)
	if deg >= 3 || deg > X.UVDegree(p[0]) || deg > X.UVDegree(p[1]) {
		return true
	}
	if !meshBorder.Has(X.UVVertex(uv)) {
		return false
	}
	return !meshBorder.Has(X.UVVertex(p[0])) || !meshBorder.Has(X.UVVertex(p[1]))
}

// ByShell groups anchor UV ids by the shell they belong to in X.
func ByShell(X *topo.Snapshot, anchors seam.UVSet) map[seam.ShellID]seam.UVSet {
	out := make(map[seam.ShellID]seam.UVSet)
	for uv := range anchors {
		shell := X.Shell(uv)
		if out[shell] == nil {
			out[shell] = make(seam.UVSet)
		}
		out[shell].Add(uv)
	}
	return out
}
