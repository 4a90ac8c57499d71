// Package topotest builds small posed meshes with known seam layouts for tests.
package topotest

import (
	"math"

	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// CubeDef is a unit cube whose six faces are each their own UV shell, laid out in a
// 3x2 grid.  Every cube corner carries three UV ids.
func CubeDef() topo.MeshDef {
	def := topo.MeshDef{
		Name: "cube",
		Positions: []r3.Vector{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		},
	}
	faces := [6][4]seam.VtxID{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4}, // front
		{2, 3, 7, 6}, // back
		{0, 4, 7, 3}, // left
		{1, 2, 6, 5}, // right
	}
	square := [4]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for fi, vtx := range faces {
		cell := r2.Point{X: 1.5 * float64(fi%3), Y: 1.5 * float64(fi/3)}
		corners := make([]topo.Corner, 4)
		for i, v := range vtx {
			uv := seam.UVID(len(def.UVs))
			def.UVs = append(def.UVs, cell.Add(square[i]))
			corners[i] = topo.Corner{Vtx: v, UV: uv}
		}
		def.Faces = append(def.Faces, corners)
	}
	return def
}

// TubeDef is a closed n-sided prism (two caps, two bands) cut around its middle ring
// into two UV shells, each laid out as a disc.  No seam anchor exists.
//
// Vertices: bottom ring 0..n-1, middle ring n..2n-1, top ring 2n..3n-1.
// UVs: bottom ring 0..n-1, middle ring (lower shell) n..2n-1,
// top ring 2n..3n-1, middle ring (upper shell) 3n..4n-1.
func TubeDef(n int) topo.MeshDef {
	def := topo.MeshDef{
		Name:      "tube",
		Positions: make([]r3.Vector, 3*n),
		UVs:       make([]r2.Point, 4*n),
	}
	upper := r2.Point{X: 5}
	for i := 0; i < n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		for ring := 0; ring < 3; ring++ {
			def.Positions[ring*n+i] = r3.Vector{X: c, Y: s, Z: float64(ring)}
		}
		def.UVs[i] = r2.Point{X: c, Y: s}
		def.UVs[n+i] = r2.Point{X: 2 * c, Y: 2 * s}
		def.UVs[2*n+i] = upper.Add(r2.Point{X: c, Y: s})
		def.UVs[3*n+i] = upper.Add(r2.Point{X: 2 * c, Y: 2 * s})
	}
	corner := func(v, uv int) topo.Corner {
		return topo.Corner{Vtx: seam.VtxID(v), UV: seam.UVID(uv)}
	}

	bottom := make([]topo.Corner, n)
	top := make([]topo.Corner, n)
	for i := 0; i < n; i++ {
		bottom[i] = corner(n-1-i, n-1-i)
		top[i] = corner(2*n+i, 2*n+i)
	}
	def.Faces = append(def.Faces, bottom, top)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		def.Faces = append(def.Faces,
			[]topo.Corner{corner(i, i), corner(j, j), corner(n+j, n+j), corner(n+i, n+i)},
			[]topo.Corner{corner(n+i, 3*n+i), corner(n+j, 3*n+j), corner(2*n+j, 2*n+j), corner(2*n+i, 2*n+i)},
		)
	}
	return def
}

// ConeDef is an n-sided pyramid whose side is unrolled into a fan cut along the edge
// from the apex to base vertex 0, with the base cap as a second shell.
//
// Vertices: base ring 0..n-1, apex n.
// UVs: apex 0, side ring 1..n+1 (1 and n+1 both sit on base vertex 0), cap ring n+2..2n+1.
// Base vertex 0 is the only anchor vertex, so the cap shell has exactly one anchor.
func ConeDef(n int) topo.MeshDef {
	apex := n
	def := topo.MeshDef{
		Name:      "cone",
		Positions: make([]r3.Vector, n+1),
		UVs:       make([]r2.Point, 2*n+2),
	}
	def.Positions[apex] = r3.Vector{Z: 1}
	capCentre := r2.Point{X: 5}
	for i := 0; i <= n; i++ {
		s, c := math.Sincos(1.5 * math.Pi * float64(i) / float64(n))
		def.UVs[1+i] = r2.Point{X: 2 * c, Y: 2 * s}
	}
	for i := 0; i < n; i++ {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		def.Positions[i] = r3.Vector{X: c, Y: s}
		def.UVs[n+2+i] = capCentre.Add(r2.Point{X: c, Y: s})
	}
	corner := func(v, uv int) topo.Corner {
		return topo.Corner{Vtx: seam.VtxID(v), UV: seam.UVID(uv)}
	}

	base := make([]topo.Corner, n)
	for i := 0; i < n; i++ {
		base[i] = corner(n-1-i, n+2+n-1-i)
	}
	def.Faces = append(def.Faces, base)
	for i := 0; i < n; i++ {
		def.Faces = append(def.Faces,
			[]topo.Corner{corner(apex, 0), corner(i, 1+i), corner((i+1)%n, 2+i)})
	}
	return def
}

// Must builds def or panics.
func Must(def topo.MeshDef) *topo.Snapshot {
	X, err := topo.New(def)
	if err != nil {
		panic(err)
	}
	return X
}

func Cube() *topo.Snapshot      { return Must(CubeDef()) }
func Tube(n int) *topo.Snapshot { return Must(TubeDef(n)) }
func Cone(n int) *topo.Snapshot { return Must(ConeDef(n)) }
