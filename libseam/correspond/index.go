package correspond

import (
	"math"

	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/peterstace/simplefeatures/rtree"
)

// Index is an R-tree over the entries of a CoordTable.
type Index struct {
	tree rtree.RTree
	ids  []seam.UVID
	pts  []r2.Point
}

func NewIndex(tbl seam.CoordTable) *Index {
	idx := &Index{
		ids: tbl.Keys().Sorted(),
	}
	idx.pts = make([]r2.Point, len(idx.ids))
	for i, uv := range idx.ids {
		pt := tbl[uv]
		idx.pts[i] = pt
		idx.tree.Insert(pointBox(pt), i)
	}
	return idx
}

func (idx *Index) Len() int { return len(idx.ids) }

// Nearest returns the entry closest to pt and its squared distance.
// Ties go to the lowest id.  ok is false if the index is empty.
func (idx *Index) Nearest(pt r2.Point) (uv seam.UVID, dist2 float64, ok bool) {
	dist2 = math.Inf(1)
	if len(idx.ids) == 0 {
		return
	}
	box := pointBox(pt)

	// records arrive nearest first; keep going only through equidistant ones
	idx.tree.PrioritySearch(box, func(i int) error {
		delta := pt.Sub(idx.pts[i])
		d := delta.Dot(delta)
		switch {
		case d > dist2:
			return rtree.Stop
		case d < dist2 || idx.ids[i] < uv:
			uv, dist2, ok = idx.ids[i], d, true
		}
		return nil
	})
	return
}

// Find returns the entry matching pt if its squared distance is below tol.
func (idx *Index) Find(pt r2.Point, tol float64) (seam.UVID, bool) {
	uv, d, ok := idx.Nearest(pt)
	if !ok || d >= tol {
		return 0, false
	}
	return uv, true
}

// Require is Find for a match the caller cannot do without: a miss is a
// *seam.ToleranceMissError naming ref and its coordinate.
func (idx *Index) Require(ref seam.UVID, pt r2.Point, tol float64) (seam.UVID, error) {
	uv, d, ok := idx.Nearest(pt)
	if !ok || d >= tol {
		return 0, &seam.ToleranceMissError{
			UV:        ref,
			Coord:     pt,
			Distance:  d,
			Tolerance: tol,
		}
	}
	return uv, nil
}

func pointBox(pt r2.Point) rtree.Box {
	return rtree.Box{MinX: pt.X, MinY: pt.Y, MaxX: pt.X, MaxY: pt.Y}
}
