// Package correspond re-identifies UV points across mesh instances by coordinate.
package correspond

import (
	"github.com/fine-structures/seamtopo/libseam/border"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/plan-systems/klog"
)

// Nearest returns the candidate closest to pt and its squared distance.
// Ties go to the lowest id.  ok is false if candidates is empty.
func Nearest(candidates seam.CoordTable, pt r2.Point) (uv seam.UVID, dist2 float64, ok bool) {
	return NewIndex(candidates).Nearest(pt)
}

// Require is Find for a match the caller cannot do without.
func Require(candidates seam.CoordTable, ref seam.UVID, pt r2.Point, tol float64) (seam.UVID, error) {
	return NewIndex(candidates).Require(ref, pt, tol)
}

// ReFind maps each reference entry to its matching candidate.  References with no
// candidate below tol are left out.
func ReFind(ref, candidates seam.CoordTable, tol float64) map[seam.UVID]seam.UVID {
	idx := NewIndex(candidates)
	out := make(map[seam.UVID]seam.UVID, len(ref))
	for id, pt := range ref {
		if uv, ok := idx.Find(pt, tol); ok {
			out[id] = uv
		}
	}
	if dropped := len(ref) - len(out); dropped > 0 {
		klog.V(2).Infof("re-find: %d of %d reference points unmatched (tol %g)", dropped, len(ref), tol)
	}
	return out
}

// Targets returns the candidate ids of a ReFind result.
func Targets(matches map[seam.UVID]seam.UVID) seam.UVSet {
	out := make(seam.UVSet, len(matches))
	for _, uv := range matches {
		out.Add(uv)
	}
	return out
}

// ReFindTable re-finds ref on candidates and returns the matched candidate entries.
func ReFindTable(ref, candidates seam.CoordTable, tol float64) seam.CoordTable {
	return candidates.Restrict(Targets(ReFind(ref, candidates, tol)))
}

// BorderTable returns the UV coordinates of uvs on X.
func BorderTable(X *topo.Snapshot, uvs seam.UVSet) seam.CoordTable {
	tbl := make(seam.CoordTable, len(uvs))
	for uv := range uvs {
		tbl[uv] = X.UV(uv)
	}
	return tbl
}

// FlatBorderTable returns the coordinates of every UV on the mesh boundary of a
// flattened instance, where the UV border and the mesh boundary coincide.
func FlatBorderTable(X *topo.Snapshot) (seam.CoordTable, error) {
	if err := X.CheckFlat(); err != nil {
		return nil, err
	}
	uvs := make(seam.UVSet)
	for v := range border.MeshBoundaryVertices(X) {
		uvs.Add(X.VertexUVs(v)...)
	}
	return BorderTable(X, uvs), nil
}
