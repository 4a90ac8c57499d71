// Package topo holds the read-only connectivity view of one mesh instance that every
// engine call works from.
package topo

import (
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// NoUV marks a face corner without a UV point.
const NoUV seam.UVID = -1

// Corner binds one face corner to its vertex and UV point.
type Corner struct {
	Vtx seam.VtxID
	UV  seam.UVID
}

// MeshDef is the raw description a Snapshot is built from.
type MeshDef struct {
	Name      string
	Positions []r3.Vector // world-space position per vertex
	UVs       []r2.Point  // coordinate per UV id
	Faces     [][]Corner  // ordered corner loop per face
}

// EdgeDef is an unordered vertex pair with A < B.
type EdgeDef struct {
	A, B seam.VtxID
}

func makeEdgeDef(a, b seam.VtxID) EdgeDef {
	if a > b {
		a, b = b, a
	}
	return EdgeDef{a, b}
}

// Other returns the end of this edge that is not v.
func (e EdgeDef) Other(v seam.VtxID) seam.VtxID {
	if e.A == v {
		return e.B
	}
	return e.A
}
