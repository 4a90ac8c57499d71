package topo

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Snapshot is an immutable connectivity view of one mesh instance.  Accessors returning
// slices hand out the snapshot's own storage, which callers treat as read-only.
//
// Edge ids are assigned in order of first appearance while walking faces in id order,
// so the same MeshDef always yields the same ids.
type Snapshot struct {
	name      string
	positions []r3.Vector
	uvs       []r2.Point
	faces     [][]Corner
	edges     []EdgeDef
	edgeIndex map[EdgeDef]seam.EdgeID
	edgeFaces [][]seam.FaceID
	vtxEdges  [][]seam.EdgeID
	vtxUVs    [][]seam.UVID
	uvVtx     []seam.VtxID
	uvShell   []seam.ShellID
	numShells int
}

// New validates def and builds its Snapshot. The def slices are copied.
func New(def MeshDef) (*Snapshot, error) {
	nv := len(def.Positions)
	nuv := len(def.UVs)

	X := &Snapshot{
		name:      def.Name,
		positions: append([]r3.Vector(nil), def.Positions...),
		uvs:       append([]r2.Point(nil), def.UVs...),
		faces:     make([][]Corner, len(def.Faces)),
		edgeIndex: make(map[EdgeDef]seam.EdgeID, 2*len(def.Faces)),
		vtxEdges:  make([][]seam.EdgeID, nv),
		vtxUVs:    make([][]seam.UVID, nv),
		uvVtx:     make([]seam.VtxID, nuv),
	}
	for i := range X.uvVtx {
		X.uvVtx[i] = -1
	}

	for fi, corners := range def.Faces {
		face := seam.FaceID(fi)
		if len(corners) < 3 {
			return nil, errors.Wrapf(seam.ErrBadMesh, "face %d has %d corners", fi, len(corners))
		}
		seen := make(map[seam.VtxID]struct{}, len(corners))
		for _, c := range corners {
			if c.Vtx < 0 || int(c.Vtx) >= nv {
				return nil, errors.Wrapf(seam.ErrBadMesh, "face %d references vertex %d", fi, c.Vtx)
			}
			if _, dupe := seen[c.Vtx]; dupe {
				return nil, errors.Wrapf(seam.ErrBadMesh, "face %d repeats vertex %d", fi, c.Vtx)
			}
			seen[c.Vtx] = struct{}{}
			if c.UV == NoUV {
				continue
			}
			if c.UV < 0 || int(c.UV) >= nuv {
				return nil, errors.Wrapf(seam.ErrBadMesh, "face %d references uv %d", fi, c.UV)
			}
			switch bound := X.uvVtx[c.UV]; {
			case bound < 0:
				X.uvVtx[c.UV] = c.Vtx
				X.vtxUVs[c.Vtx] = append(X.vtxUVs[c.Vtx], c.UV)
			case bound != c.Vtx:
				return nil, errors.Wrapf(seam.ErrBadMesh, "uv %d is bound to vertices %d and %d", c.UV, bound, c.Vtx)
			}
		}
		X.faces[fi] = append([]Corner(nil), corners...)

		for i, c := range corners {
			next := corners[(i+1)%len(corners)]
			key := makeEdgeDef(c.Vtx, next.Vtx)
			edge, exists := X.edgeIndex[key]
			if !exists {
				edge = seam.EdgeID(len(X.edges))
				X.edgeIndex[key] = edge
				X.edges = append(X.edges, key)
				X.edgeFaces = append(X.edgeFaces, nil)
				X.vtxEdges[key.A] = append(X.vtxEdges[key.A], edge)
				X.vtxEdges[key.B] = append(X.vtxEdges[key.B], edge)
			}
			X.edgeFaces[edge] = append(X.edgeFaces[edge], face)
		}
	}

	for v := range X.vtxUVs {
		uvs := X.vtxUVs[v]
		sort.Slice(uvs, func(i, j int) bool { return uvs[i] < uvs[j] })
	}

	X.assignShells()
	return X, nil
}

func (X *Snapshot) Name() string     { return X.name }
func (X *Snapshot) VertexCount() int { return len(X.positions) }
func (X *Snapshot) EdgeCount() int   { return len(X.edges) }
func (X *Snapshot) FaceCount() int   { return len(X.faces) }
func (X *Snapshot) UVCount() int     { return len(X.uvs) }
func (X *Snapshot) ShellCount() int  { return X.numShells }

// Position returns the world-space position of vertex v.
func (X *Snapshot) Position(v seam.VtxID) r3.Vector { return X.positions[v] }

// UV returns the coordinate of UV point uv.
func (X *Snapshot) UV(uv seam.UVID) r2.Point { return X.uvs[uv] }

// UVVertex returns the vertex uv is bound to, or -1 if no face corner uses uv.
func (X *Snapshot) UVVertex(uv seam.UVID) seam.VtxID { return X.uvVtx[uv] }

// Edge returns the vertex pair of edge e.
func (X *Snapshot) Edge(e seam.EdgeID) EdgeDef { return X.edges[e] }

// FindEdge returns the id of the edge joining a and b.
func (X *Snapshot) FindEdge(a, b seam.VtxID) (seam.EdgeID, bool) {
	e, ok := X.edgeIndex[makeEdgeDef(a, b)]
	return e, ok
}

// EdgeFaces returns the faces connected to edge e.
func (X *Snapshot) EdgeFaces(e seam.EdgeID) []seam.FaceID { return X.edgeFaces[e] }

// VertexEdges returns the edges that end at v.
func (X *Snapshot) VertexEdges(v seam.VtxID) []seam.EdgeID { return X.vtxEdges[v] }

// FaceCorners returns the ordered corner loop of face f.
func (X *Snapshot) FaceCorners(f seam.FaceID) []Corner { return X.faces[f] }

// VertexUVs returns the distinct UV ids bound to v in ascending order.  The slice is
// shared with X and must not be modified.
func (X *Snapshot) VertexUVs(v seam.VtxID) []seam.UVID { return X.vtxUVs[v] }

// UVDegree returns the number of distinct UV ids bound to the vertex of uv.
func (X *Snapshot) UVDegree(uv seam.UVID) int {
	v := X.uvVtx[uv]
	if v < 0 {
		return 0
	}
	return len(X.vtxUVs[v])
}

// FaceUVAt returns the UV id face f uses at vertex v.
func (X *Snapshot) FaceUVAt(f seam.FaceID, v seam.VtxID) (seam.UVID, bool) {
	for _, c := range X.faces[f] {
		if c.Vtx == v {
			return c.UV, c.UV != NoUV
		}
	}
	return NoUV, false
}

// FaceHasVertex reports if v is a corner of face f.
func (X *Snapshot) FaceHasVertex(f seam.FaceID, v seam.VtxID) bool {
	for _, c := range X.faces[f] {
		if c.Vtx == v {
			return true
		}
	}
	return false
}

// EdgeOnBoundary reports if edge e has fewer than two connected faces.
func (X *Snapshot) EdgeOnBoundary(e seam.EdgeID) bool {
	return len(X.edgeFaces[e]) < 2
}

// VertexOnBoundary reports if v touches a mesh boundary edge.
func (X *Snapshot) VertexOnBoundary(v seam.VtxID) bool {
	for _, e := range X.vtxEdges[v] {
		if X.EdgeOnBoundary(e) {
			return true
		}
	}
	return false
}

// FaceOnBoundary reports if one of the edges of face f is a mesh boundary edge.
func (X *Snapshot) FaceOnBoundary(f seam.FaceID) bool {
	corners := X.faces[f]
	for i, c := range corners {
		e, _ := X.FindEdge(c.Vtx, corners[(i+1)%len(corners)].Vtx)
		if X.EdgeOnBoundary(e) {
			return true
		}
	}
	return false
}

// Shell returns the UV shell of uv.
func (X *Snapshot) Shell(uv seam.UVID) seam.ShellID { return X.uvShell[uv] }

// NearestVertex returns the vertex closest to pt.  Ties go to the lowest vertex id.
func (X *Snapshot) NearestVertex(pt r3.Vector) (seam.VtxID, float64) {
	best, bestDist := seam.VtxID(-1), math.Inf(1)
	for v, pos := range X.positions {
		if d := pos.Sub(pt).Norm2(); d < bestDist {
			best, bestDist = seam.VtxID(v), d
		}
	}
	return best, math.Sqrt(bestDist)
}

// UVToEdges converts a UV id set to the edges whose corners at both ends, within one
// connected face, use UV ids from the set.  If within is non-nil only its edges are kept.
func (X *Snapshot) UVToEdges(uvs seam.UVSet, within seam.IDSet[seam.EdgeID]) seam.IDSet[seam.EdgeID] {
	out := make(seam.IDSet[seam.EdgeID])
	for _, corners := range X.faces {
		for i, c := range corners {
			next := corners[(i+1)%len(corners)]
			if !uvs.Has(c.UV) || !uvs.Has(next.UV) {
				continue
			}
			e, _ := X.FindEdge(c.Vtx, next.Vtx)
			if within == nil || within.Has(e) {
				out.Add(e)
			}
		}
	}
	return out
}

// Identity returns a content hash of this snapshot's connectivity, positions and UVs.
func (X *Snapshot) Identity() uint64 {
	h := xxhash.New()
	var buf [8]byte
	putU64 := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		h.Write(buf[:])
	}
	putU64(uint64(len(X.positions)))
	for _, p := range X.positions {
		putU64(math.Float64bits(p.X))
		putU64(math.Float64bits(p.Y))
		putU64(math.Float64bits(p.Z))
	}
	putU64(uint64(len(X.uvs)))
	for _, p := range X.uvs {
		putU64(math.Float64bits(p.X))
		putU64(math.Float64bits(p.Y))
	}
	putU64(uint64(len(X.faces)))
	for _, corners := range X.faces {
		putU64(uint64(len(corners)))
		for _, c := range corners {
			putU64(uint64(uint32(c.Vtx))<<32 | uint64(uint32(c.UV)))
		}
	}
	return h.Sum64()
}
