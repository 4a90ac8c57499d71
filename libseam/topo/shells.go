package topo

import "github.com/fine-structures/seamtopo/seam"

// unionFind is a disjoint-set over dense int ids with path compression and union by rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y int) {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
}

// assignShells groups UV ids into shells: UV ids used by the same face are connected.
// Shell ids are numbered in order of each shell's lowest UV id; unused UV ids get -1.
func (X *Snapshot) assignShells() {
	uf := newUnionFind(len(X.uvs))
	for _, corners := range X.faces {
		first := NoUV
		for _, c := range corners {
			if c.UV == NoUV {
				continue
			}
			if first == NoUV {
				first = c.UV
			} else {
				uf.union(int(first), int(c.UV))
			}
		}
	}

	X.uvShell = make([]seam.ShellID, len(X.uvs))
	rootShell := make(map[int]seam.ShellID)
	for uv := range X.uvs {
		if X.uvVtx[uv] < 0 {
			X.uvShell[uv] = -1
			continue
		}
		root := uf.find(uv)
		shell, ok := rootShell[root]
		if !ok {
			shell = seam.ShellID(len(rootShell))
			rootShell[root] = shell
		}
		X.uvShell[uv] = shell
	}
	X.numShells = len(rootShell)
}

// ShellUVs returns the UV ids of shell.
func (X *Snapshot) ShellUVs(shell seam.ShellID) seam.UVSet {
	out := make(seam.UVSet)
	for uv, s := range X.uvShell {
		if s == shell {
			out.Add(seam.UVID(uv))
		}
	}
	return out
}
