package seam

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// VtxID is a zero-based vertex index of a mesh.
type VtxID int32

// EdgeID is the stable id of an unordered vertex pair of a mesh.
type EdgeID int32

// FaceID is the stable id of a face (an ordered vertex loop).
type FaceID int32

// UVID identifies a UV point; each UV point is bound to face corners of exactly one vertex.
type UVID int32

// ShellID identifies a UV shell (island).
type ShellID int32

// CurveID identifies a PerimeterCurve within one analysis result.
type CurveID int32

// NoPair marks a PerimeterCurve that has not been matched.
const NoPair = -1

// Kind selects the component type the Boundary Classifier reports.
type Kind string

const (
	KindVertex Kind = "vtx"
	KindEdge   Kind = "edge"
	KindFace   Kind = "face"
	KindUV     Kind = "UV"
)

// ParseKind validates a component kind string.
func ParseKind(str string) (Kind, error) {
	switch kind := Kind(str); kind {
	case KindVertex, KindEdge, KindFace, KindUV:
		return kind, nil
	}
	return "", errors.Wrapf(ErrUnsupportedKind, "%q (choose vtx, edge, face or UV)", str)
}

// BorderSet holds the components that lie on the UV island border of one mesh.
type BorderSet struct {
	Vertices IDSet[VtxID]
	Edges    IDSet[EdgeID]
	Faces    IDSet[FaceID]
	UVs      IDSet[UVID]
}

// UVSet is a set of UV point ids.
type UVSet = IDSet[UVID]

// CoordTable maps UV ids to 2D UV coordinates.
//
// A CoordTable holding anchors is a master point map; one holding the border of a
// target instance is a correspondence table.
type CoordTable map[UVID]r2.Point

// Keys returns the set of UV ids in this table.
func (tbl CoordTable) Keys() UVSet {
	keys := make(UVSet, len(tbl))
	for uv := range tbl {
		keys[uv] = struct{}{}
	}
	return keys
}

// Restrict returns the entries of tbl whose keys are in keep.
func (tbl CoordTable) Restrict(keep UVSet) CoordTable {
	out := make(CoordTable, len(keep))
	for uv, pt := range tbl {
		if keep.Has(uv) {
			out[uv] = pt
		}
	}
	return out
}

// Arc is one walked path of border UV ids between two anchors, or a closed loop when Start == End.
type Arc struct {
	Start UVID
	End   UVID
	Path  []UVID // walk order; a closed loop does not repeat Start at the end
	Shell ShellID
}

// Closed reports if this arc is a loop.
func (arc Arc) Closed() bool {
	return arc.Start == arc.End
}

// Members returns the unordered UV id set of this arc.
func (arc Arc) Members() UVSet {
	return NewIDSet(arc.Path...)
}

// Curve is a curve entity materialised from an arc.
type Curve interface {
	Points() []r3.Vector
	IsClosed() bool

	// DistanceToPoint returns the shortest distance from pt to this curve.
	DistanceToPoint(pt r3.Vector) float64

	// Bounds returns the axis-aligned bounding box of this curve.
	Bounds() (lo, hi r3.Vector)
}

// CurveBuilder constructs curve entities from an ordered point sequence.
type CurveBuilder interface {
	BuildCurve(pts []r3.Vector, closed bool) (Curve, error)
}

// PerimeterCurve is a Curve plus the metadata the pair matcher needs.
type PerimeterCurve struct {
	ID      CurveID
	Arc     Arc
	Anchors UVSet         // anchor UV ids this curve touches
	Edges   IDSet[EdgeID] // boundary edge loop the curve was built from
	Curve   Curve
	PairID  int // NoPair when unmatched
}

// Closed reports if this curve is a closed seam loop.
func (pc *PerimeterCurve) Closed() bool {
	return pc.Arc.Closed()
}

// CurvePair is a symmetric relation between the two sides of one cut (A < B).
type CurvePair struct {
	ID      int
	A, B    CurveID
	Pointer r3.Vector // midpoint between the two curves' bounding box centres
}

// Has reports if curve is one side of this pair.
func (pair CurvePair) Has(curve CurveID) bool {
	return pair.A == curve || pair.B == curve
}

// Other returns the other side of this pair.
func (pair CurvePair) Other(curve CurveID) CurveID {
	if pair.A == curve {
		return pair.B
	}
	return pair.A
}

// Opts configures one engine call.
type Opts struct {
	Tolerance        float64 // squared distance below which two UV coordinates correspond
	RelaxedTolerance float64 // used in place of Tolerance after lossy edits
	WalkStepLimit    int     // max steps of one directional walk
	LoopRetryLimit   int     // max closed-loop searches when covering leftover border UVs
	StrictPairing    bool    // a curve point that cannot be re-found on the reference is an error
	Relaxed          bool    // select RelaxedTolerance
}

// DefaultOpts returns the default engine options.
func DefaultOpts() Opts {
	return Opts{
		Tolerance:        1e-9,
		RelaxedTolerance: 1e-4,
		WalkStepLimit:    1 << 20,
		LoopRetryLimit:   10000,
		StrictPairing:    true,
	}
}

// Normalize fills zero fields with their defaults.
func (opts Opts) Normalize() Opts {
	def := DefaultOpts()
	if opts.Tolerance <= 0 {
		opts.Tolerance = def.Tolerance
	}
	if opts.RelaxedTolerance <= 0 {
		opts.RelaxedTolerance = def.RelaxedTolerance
	}
	if opts.WalkStepLimit <= 0 {
		opts.WalkStepLimit = def.WalkStepLimit
	}
	if opts.LoopRetryLimit <= 0 {
		opts.LoopRetryLimit = def.LoopRetryLimit
	}
	return opts
}

// MatchTolerance returns the tolerance a re-find should use under these options.
func (opts Opts) MatchTolerance() float64 {
	if opts.Relaxed {
		return opts.RelaxedTolerance
	}
	return opts.Tolerance
}
