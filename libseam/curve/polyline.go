package curve

import (
	"math"

	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

var ErrDegenerateCurve = errors.New("curve needs at least two points (three when closed)")

// Polyline is a piecewise-linear seam.Curve.
type Polyline struct {
	pts    []r3.Vector
	closed bool
}

// Polylines is the default seam.CurveBuilder.
type Polylines struct{}

func (Polylines) BuildCurve(pts []r3.Vector, closed bool) (seam.Curve, error) {
	return NewPolyline(pts, closed)
}

// NewPolyline copies pts into a new Polyline.
func NewPolyline(pts []r3.Vector, closed bool) (*Polyline, error) {
	need := 2
	if closed {
		need = 3
	}
	if len(pts) < need {
		return nil, errors.Wrapf(ErrDegenerateCurve, "got %d points", len(pts))
	}
	return &Polyline{
		pts:    append([]r3.Vector(nil), pts...),
		closed: closed,
	}, nil
}

func (pl *Polyline) Points() []r3.Vector { return pl.pts }
func (pl *Polyline) IsClosed() bool      { return pl.closed }

func (pl *Polyline) DistanceToPoint(pt r3.Vector) float64 {
	best := math.Inf(1)
	pl.segments(func(a, b r3.Vector) {
		if d := segmentDistance(pt, a, b); d < best {
			best = d
		}
	})
	return best
}

func (pl *Polyline) Bounds() (lo, hi r3.Vector) {
	lo, hi = pl.pts[0], pl.pts[0]
	for _, p := range pl.pts[1:] {
		lo = r3.Vector{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vector{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return
}

// Centre returns the centre of the bounding box of c.
func Centre(c seam.Curve) r3.Vector {
	lo, hi := c.Bounds()
	return lo.Add(hi).Mul(0.5)
}

func (pl *Polyline) segments(fn func(a, b r3.Vector)) {
	for i := 1; i < len(pl.pts); i++ {
		fn(pl.pts[i-1], pl.pts[i])
	}
	if pl.closed {
		fn(pl.pts[len(pl.pts)-1], pl.pts[0])
	}
}

func segmentDistance(pt, a, b r3.Vector) float64 {
	ab := b.Sub(a)
	n2 := ab.Norm2()
	if n2 == 0 {
		return pt.Distance(a)
	}
	t := pt.Sub(a).Dot(ab) / n2
	t = math.Max(0, math.Min(1, t))
	return pt.Distance(a.Add(ab.Mul(t)))
}
