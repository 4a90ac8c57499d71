package neighbor

import (
	"sort"

	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
)

// Build resolves the two border neighbours of every border UV id of X.
//
// Every border vertex contributes each unordered couple of its incident UV-seam edges; a
// vertex with a single seam edge (the tip of a cut ending inside a shell) contributes the
// couple (e, e).  Couples spanned by one face are resolved first, then the remaining ones
// are resolved by comparing the faces around both edges pairwise.  An entry, once set, is
// never overwritten.
func Build(X *topo.Snapshot, bs seam.BorderSet) (*Graph, error) {
	if X == nil {
		return nil, seam.ErrNilSnapshot
	}
	var couples []edgeCouple
	for _, v := range bs.Vertices.Sorted() {
		var edges []seam.EdgeID
		for _, e := range X.VertexEdges(v) {
			if bs.Edges.Has(e) {
				edges = append(edges, e)
			}
		}
		sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
		if len(edges) == 1 {
			couples = append(couples, edgeCouple{v, edges[0], edges[0]})
		}
		for i := range edges {
			for j := i + 1; j < len(edges); j++ {
				couples = append(couples, edgeCouple{v, edges[i], edges[j]})
			}
		}
	}

	res := resolver{
		X:   X,
		adj: make(map[seam.UVID]Pair, bs.UVs.Len()),
	}
	for _, ec := range couples {
		res.resolveDirect(ec)
	}
	for _, ec := range couples {
		res.resolveIndirect(ec)
	}

	unresolved := make(seam.UVSet)
	for uv := range bs.UVs {
		if _, ok := res.adj[uv]; !ok {
			unresolved.Add(uv)
		}
	}
	if unresolved.Len() > 0 {
		return nil, &seam.TopologyError{Reason: "no border neighbours for uvs", UVs: unresolved.Sorted()}
	}
	return New(res.adj)
}

// edgeCouple is two UV-seam edges meeting at Vtx (A == B for a cut tip).
type edgeCouple struct {
	Vtx  seam.VtxID
	A, B seam.EdgeID
}

type resolver struct {
	X   *topo.Snapshot
	adj map[seam.UVID]Pair
}

func (res *resolver) set(junction, a, b seam.UVID) {
	if a == b || a == junction || b == junction {
		return
	}
	if _, done := res.adj[junction]; done {
		return
	}
	res.adj[junction] = makePair(a, b)
}

// verts returns the shared vertex followed by the far ends of the couple.
func (res *resolver) verts(ec edgeCouple) []seam.VtxID {
	ea, eb := res.X.Edge(ec.A), res.X.Edge(ec.B)
	if ec.A == ec.B {
		return []seam.VtxID{ec.Vtx, ea.Other(ec.Vtx)}
	}
	return []seam.VtxID{ec.Vtx, ea.Other(ec.Vtx), eb.Other(ec.Vtx)}
}

func (res *resolver) faces(ec edgeCouple) []seam.FaceID {
	set := seam.NewIDSet(res.X.EdgeFaces(ec.A)...)
	set.Add(res.X.EdgeFaces(ec.B)...)
	return set.Sorted()
}

// filteredUVs returns the UV ids face f uses at the given vertices.
func (res *resolver) filteredUVs(f seam.FaceID, verts []seam.VtxID) seam.UVSet {
	out := make(seam.UVSet, len(verts))
	for _, v := range verts {
		if uv, ok := res.X.FaceUVAt(f, v); ok {
			out.Add(uv)
		}
	}
	return out
}

func (res *resolver) resolveDirect(ec edgeCouple) {
	if ec.A == ec.B {
		return
	}
	verts := res.verts(ec)
	for _, f := range res.faces(ec) {
		spans := true
		for _, v := range verts {
			if !res.X.FaceHasVertex(f, v) {
				spans = false
				break
			}
		}
		if !spans {
			continue
		}
		junction, _ := res.X.FaceUVAt(f, verts[0])
		a, _ := res.X.FaceUVAt(f, verts[1])
		b, _ := res.X.FaceUVAt(f, verts[2])
		res.set(junction, a, b)
	}
}

func (res *resolver) resolveIndirect(ec edgeCouple) {
	verts := res.verts(ec)
	faces := res.faces(ec)
	for i, fi := range faces {
		ui := res.filteredUVs(fi, verts)
		for _, fj := range faces[i+1:] {
			uj := res.filteredUVs(fj, verts)
			common := ui.Intersect(uj)
			if common.Len() != 1 {
				continue
			}
			junction, _ := common.Min()
			rest := ui.Clone().Union(uj)
			delete(rest, junction)

			if rest.Len() == 3 {
				rest = res.sharedCornerUVs(fi, fj)
				delete(rest, junction)
			}
			if rest.Len() == 2 {
				ids := rest.Sorted()
				res.set(junction, ids[0], ids[1])
			}
		}
	}
}

// sharedCornerUVs returns the UV ids both faces use at the vertices they have in common.
func (res *resolver) sharedCornerUVs(fi, fj seam.FaceID) seam.UVSet {
	out := make(seam.UVSet)
	for _, c := range res.X.FaceCorners(fi) {
		if !res.X.FaceHasVertex(fj, c.Vtx) {
			continue
		}
		if uv, ok := res.X.FaceUVAt(fi, c.Vtx); ok {
			out.Add(uv)
		}
		if uv, ok := res.X.FaceUVAt(fj, c.Vtx); ok {
			out.Add(uv)
		}
	}
	return out
}
