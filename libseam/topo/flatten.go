package topo

import (
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Flatten returns the flattened instance of X: every UV id becomes a vertex placed at
// (u, v, 0) and every face is re-indexed through its UV corners.  UV ids are preserved,
// so the result has exactly one UV id per vertex and shares X's UV border ids.
func Flatten(X *Snapshot) (*Snapshot, error) {
	if X == nil {
		return nil, seam.ErrNilSnapshot
	}
	if err := X.CheckMissingUVs(); err != nil {
		return nil, err
	}

	def := MeshDef{
		Name:      X.name + "_unwrapped",
		Positions: make([]r3.Vector, len(X.uvs)),
		UVs:       X.uvs,
		Faces:     make([][]Corner, len(X.faces)),
	}
	for uv, pt := range X.uvs {
		def.Positions[uv] = r3.Vector{X: pt.X, Y: pt.Y}
	}
	for fi, corners := range X.faces {
		flat := make([]Corner, len(corners))
		for i, c := range corners {
			flat[i] = Corner{Vtx: seam.VtxID(c.UV), UV: c.UV}
		}
		def.Faces[fi] = flat
	}

	flat, err := New(def)
	if err != nil {
		return nil, errors.Wrapf(err, "flatten %q", X.name)
	}
	return flat, nil
}
