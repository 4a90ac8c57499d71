// Package border classifies the mesh components that lie on a UV island border.
package border

import (
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/pkg/errors"
)

// Classify returns the components of kind that lie on a border of X.
//
// For vtx, edge and face kinds only the matching field of the result is filled, using the
// mesh-boundary predicates.  For UV kind all four fields are filled from the UV-seam edges.
func Classify(X *topo.Snapshot, kind seam.Kind) (seam.BorderSet, error) {
	if X == nil {
		return seam.BorderSet{}, seam.ErrNilSnapshot
	}
	switch kind {
	case seam.KindVertex:
		return seam.BorderSet{Vertices: MeshBoundaryVertices(X)}, nil
	case seam.KindEdge:
		out := make(seam.IDSet[seam.EdgeID])
		for e := 0; e < X.EdgeCount(); e++ {
			if X.EdgeOnBoundary(seam.EdgeID(e)) {
				out.Add(seam.EdgeID(e))
			}
		}
		return seam.BorderSet{Edges: out}, nil
	case seam.KindFace:
		out := make(seam.IDSet[seam.FaceID])
		for f := 0; f < X.FaceCount(); f++ {
			if X.FaceOnBoundary(seam.FaceID(f)) {
				out.Add(seam.FaceID(f))
			}
		}
		return seam.BorderSet{Faces: out}, nil
	case seam.KindUV:
		return UVBorder(X), nil
	}
	return seam.BorderSet{}, errors.Wrapf(seam.ErrUnsupportedKind, "%q", string(kind))
}

// MeshBoundaryVertices returns the vertices that touch a mesh boundary edge.
func MeshBoundaryVertices(X *topo.Snapshot) seam.IDSet[seam.VtxID] {
	out := make(seam.IDSet[seam.VtxID])
	for v := 0; v < X.VertexCount(); v++ {
		if X.VertexOnBoundary(seam.VtxID(v)) {
			out.Add(seam.VtxID(v))
		}
	}
	return out
}

// EdgeUVs returns the UV ids attached to edge e at either of its vertices across all
// faces connected to e.
func EdgeUVs(X *topo.Snapshot, e seam.EdgeID) seam.UVSet {
	ends := X.Edge(e)
	uvs := make(seam.UVSet, 4)
	for _, f := range X.EdgeFaces(e) {
		for _, c := range X.FaceCorners(f) {
			if (c.Vtx == ends.A || c.Vtx == ends.B) && c.UV != topo.NoUV {
				uvs.Add(c.UV)
			}
		}
	}
	return uvs
}

// IsUVSeam reports if edge e is on the UV border: it has fewer than two connected faces
// or more than two distinct UV ids at its ends.
func IsUVSeam(X *topo.Snapshot, e seam.EdgeID) bool {
	return len(X.EdgeFaces(e)) < 2 || EdgeUVs(X, e).Len() > 2
}

// UVBorder returns the four border sets of X derived from its UV-seam edges.
func UVBorder(X *topo.Snapshot) seam.BorderSet {
	bs := seam.BorderSet{
		Vertices: make(seam.IDSet[seam.VtxID]),
		Edges:    make(seam.IDSet[seam.EdgeID]),
		Faces:    make(seam.IDSet[seam.FaceID]),
		UVs:      make(seam.UVSet),
	}
	for ei := 0; ei < X.EdgeCount(); ei++ {
		e := seam.EdgeID(ei)
		if !IsUVSeam(X, e) {
			continue
		}
		ends := X.Edge(e)
		bs.Edges.Add(e)
		bs.Vertices.Add(ends.A, ends.B)
		bs.Faces.Add(X.EdgeFaces(e)...)
		bs.UVs.Union(EdgeUVs(X, e))
	}
	return bs
}
