// Package objfile reads the subset of Wavefront OBJ that carries mesh topology and UVs:
// v, vt and f statements.  Normals, groups, materials and smoothing are read and ignored.
package objfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

var ErrBadOBJ = errors.New("bad OBJ file")

// Parse reads an OBJ stream into a MeshDef.  name is used for errors and as the mesh
// name unless the file names its object.
func Parse(name string, r io.Reader) (topo.MeshDef, error) {
	obj, err := sParseObj.Parse(name, r)
	if err != nil {
		return topo.MeshDef{}, errors.Wrap(ErrBadOBJ, err.Error())
	}
	return buildDef(name, obj)
}

func ParseString(name, src string) (topo.MeshDef, error) {
	obj, err := sParseObj.ParseString(name, src)
	if err != nil {
		return topo.MeshDef{}, errors.Wrap(ErrBadOBJ, err.Error())
	}
	return buildDef(name, obj)
}

// Load reads and builds the mesh stored at pathname.
func Load(pathname string) (*topo.Snapshot, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(pathname), filepath.Ext(pathname))
	def, err := Parse(name, f)
	if err != nil {
		return nil, err
	}
	return topo.New(def)
}

func buildDef(name string, obj *objFile) (topo.MeshDef, error) {
	def := topo.MeshDef{
		Name: name,
	}
	named := false
	for _, stmt := range obj.Stmts {
		switch {
		case stmt.Vertex != nil:
			c := stmt.Vertex.Coords
			if len(c) < 3 {
				return def, errors.Wrapf(ErrBadOBJ, "%v: vertex needs 3 coordinates", stmt.Vertex.Pos)
			}
			def.Positions = append(def.Positions, r3.Vector{X: c[0], Y: c[1], Z: c[2]})
		case stmt.TexCoord != nil:
			c := stmt.TexCoord.Coords
			if len(c) < 2 {
				return def, errors.Wrapf(ErrBadOBJ, "%v: texture coordinate needs 2 values", stmt.TexCoord.Pos)
			}
			def.UVs = append(def.UVs, r2.Point{X: c[0], Y: c[1]})
		case stmt.Face != nil:
			corners := make([]topo.Corner, len(stmt.Face.Corners))
			for i, fc := range stmt.Face.Corners {
				v, ok := resolveIndex(fc.V, len(def.Positions))
				if !ok {
					return def, errors.Wrapf(ErrBadOBJ, "%v: vertex index %d out of range", stmt.Face.Pos, fc.V)
				}
				corners[i] = topo.Corner{Vtx: seam.VtxID(v), UV: topo.NoUV}
				if fc.VT != nil {
					uv, ok := resolveIndex(*fc.VT, len(def.UVs))
					if !ok {
						return def, errors.Wrapf(ErrBadOBJ, "%v: uv index %d out of range", stmt.Face.Pos, *fc.VT)
					}
					corners[i].UV = seam.UVID(uv)
				}
			}
			def.Faces = append(def.Faces, corners)
		case stmt.Object != nil:
			if !named && stmt.Object.Name != "" {
				def.Name, named = stmt.Object.Name, true
			}
		}
	}
	return def, nil
}

// resolveIndex maps a 1-based or negative (relative) OBJ index to a 0-based one.
func resolveIndex(idx, count int) (int, bool) {
	switch {
	case idx > 0 && idx <= count:
		return idx - 1, true
	case idx < 0 && -idx <= count:
		return count + idx, true
	}
	return 0, false
}
