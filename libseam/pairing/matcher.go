// Package pairing matches the perimeter curves that sit on the two sides of one cut.
package pairing

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/fine-structures/seamtopo/libseam/border"
	"github.com/fine-structures/seamtopo/libseam/correspond"
	"github.com/fine-structures/seamtopo/libseam/curve"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r3"
	"github.com/plan-systems/klog"
)

// Matcher pairs curves built on a local instance (usually the flattened mesh) using the
// UV layout of a reference instance (usually the posed mesh).  Both instances share UV
// coordinates but not necessarily UV ids.
type Matcher struct {
	Local       *topo.Snapshot
	Ref         *topo.Snapshot
	LocalBorder *correspond.Index
	RefBorder   *correspond.Index
	Tolerance   float64
	Strict      bool
}

// NewMatcher builds the border coordinate tables of both instances.
func NewMatcher(local, ref *topo.Snapshot, opts seam.Opts) *Matcher {
	opts = opts.Normalize()
	return &Matcher{
		Local:       local,
		Ref:         ref,
		LocalBorder: correspond.NewIndex(correspond.BorderTable(local, border.UVBorder(local).UVs)),
		RefBorder:   correspond.NewIndex(correspond.BorderTable(ref, border.UVBorder(ref).UVs)),
		Tolerance:   opts.MatchTolerance(),
		Strict:      opts.StrictPairing,
	}
}

// endpoints holds the reference UV ids a curve was traced back to.
type endpoints struct {
	direct seam.UVSet // re-found sample points of the curve
	all    seam.UVSet // every reference UV on the vertices of direct
}

// Match pairs curves and returns the pairs in creation order.  Each curve's PairID is
// reset and then set to the id of its pair, if any.
//
// Two-point curves pair with the curve whose endpoints are the same two vertices seen from
// the neighbouring shell.  Longer curves pair with the curve nearest to the far side of
// their sample point, ties going to the lowest curve id.  Curves touching no anchor are
// closed seam loops of their own and never pair.
func (m *Matcher) Match(curves []*seam.PerimeterCurve) ([]seam.CurvePair, error) {
	for _, pc := range curves {
		pc.PairID = seam.NoPair
	}

	ends := make([]endpoints, len(curves))
	for i, pc := range curves {
		if pc.Anchors.Len() == 0 {
			continue
		}
		var err error
		if ends[i], err = m.traceBack(pc); err != nil {
			return nil, err
		}
	}

	var pm pairMaker
	for i, pc := range curves {
		if !isTwoPoint(pc) || ends[i].direct == nil {
			continue
		}
		other := ends[i].all.Minus(ends[i].direct)
		if other.Len() < 2 {
			continue
		}
		for j, pc2 := range curves {
			if j == i || pc2.Closed() || ends[j].direct == nil {
				continue
			}
			if ends[j].direct.Intersect(other).Len() == 2 {
				if err := pm.commit(pc, pc2); err != nil {
					return nil, err
				}
			}
		}
	}

	for i, pc := range curves {
		if isTwoPoint(pc) || ends[i].direct == nil {
			continue
		}
		farUV, ok := ends[i].all.Minus(ends[i].direct).Min()
		if !ok {
			continue
		}
		pt, err := m.localPoint(farUV)
		if err != nil {
			return nil, err
		}
		if pt == nil {
			continue
		}
		if nearest := nearestCurve(curves, pc, *pt); nearest != nil {
			if err := pm.commit(pc, nearest); err != nil {
				return nil, err
			}
		}
	}

	klog.V(2).Infof("%s: %d pairs over %d curves", m.Local.Name(), len(pm.pairs), len(curves))
	return pm.pairs, nil
}

func isTwoPoint(pc *seam.PerimeterCurve) bool {
	return !pc.Closed() && len(pc.Curve.Points()) == 2
}

// traceBack re-finds the sample points of pc on the reference instance.
func (m *Matcher) traceBack(pc *seam.PerimeterCurve) (endpoints, error) {
	pts := pc.Curve.Points()
	samples := pts[1:2]
	if isTwoPoint(pc) {
		samples = pts
	}

	ends := endpoints{
		direct: make(seam.UVSet),
		all:    make(seam.UVSet),
	}
	members := pc.Arc.Members()
	for _, pt := range samples {
		uv, ok := m.localUV(pt, members)
		if !ok {
			continue
		}
		coord := m.Local.UV(uv)
		refUV, err := m.RefBorder.Require(uv, coord, m.Tolerance)
		if err != nil {
			if m.Strict {
				return ends, err
			}
			klog.Warningf("curve %d: %v", pc.ID, err)
			continue
		}
		ends.direct.Add(refUV)
		ends.all.Add(m.Ref.VertexUVs(m.Ref.UVVertex(refUV))...)
	}
	return ends, nil
}

// localUV projects pt to the nearest local vertex and picks its UV, preferring one on the curve.
func (m *Matcher) localUV(pt r3.Vector, members seam.UVSet) (seam.UVID, bool) {
	v, _ := m.Local.NearestVertex(pt)
	uvs := m.Local.VertexUVs(v)
	if len(uvs) == 0 {
		return topo.NoUV, false
	}
	for _, uv := range uvs {
		if members.Has(uv) {
			return uv, true
		}
	}
	return uvs[0], true
}

// localPoint returns the local position of the reference UV point refUV, or nil when
// it cannot be re-found and pairing is not strict.
func (m *Matcher) localPoint(refUV seam.UVID) (*r3.Vector, error) {
	uv, err := m.LocalBorder.Require(refUV, m.Ref.UV(refUV), m.Tolerance)
	if err != nil {
		if m.Strict {
			return nil, err
		}
		klog.Warningf("pairing: %v", err)
		return nil, nil
	}
	pos := m.Local.Position(m.Local.UVVertex(uv))
	return &pos, nil
}

type rank struct {
	dist float64
	id   seam.CurveID
}

func byRank(a, b interface{}) int {
	ra, rb := a.(rank), b.(rank)
	switch {
	case ra.dist < rb.dist:
		return -1
	case ra.dist > rb.dist:
		return 1
	case ra.id < rb.id:
		return -1
	case ra.id > rb.id:
		return 1
	}
	return 0
}

// nearestCurve returns the anchored curve other than self closest to pt.
func nearestCurve(curves []*seam.PerimeterCurve, self *seam.PerimeterCurve, pt r3.Vector) *seam.PerimeterCurve {
	ranked := redblacktree.NewWith(byRank)
	for _, pc := range curves {
		if pc == self || pc.Anchors.Len() == 0 {
			continue
		}
		ranked.Put(rank{pc.Curve.DistanceToPoint(pt), pc.ID}, pc)
	}
	if ranked.Empty() {
		return nil
	}
	return ranked.Left().Value.(*seam.PerimeterCurve)
}

type pairMaker struct {
	pairs []seam.CurvePair
}

// commit records the pair {a, b} unless it already exists.  A curve already paired with a
// third curve is a *seam.ConsistencyError.
func (pm *pairMaker) commit(a, b *seam.PerimeterCurve) error {
	if a.ID > b.ID {
		a, b = b, a
	}
	if a.PairID != seam.NoPair && a.PairID == b.PairID {
		return nil
	}
	for _, pc := range []*seam.PerimeterCurve{a, b} {
		if pc.PairID != seam.NoPair {
			prior := pm.pairs[pc.PairID]
			return &seam.ConsistencyError{
				Reason: "curve already paired with another",
				Curves: []seam.CurveID{a.ID, b.ID, prior.Other(pc.ID)},
			}
		}
	}

	pair := seam.CurvePair{
		ID:      len(pm.pairs),
		A:       a.ID,
		B:       b.ID,
		Pointer: curve.Centre(a.Curve).Add(curve.Centre(b.Curve)).Mul(0.5),
	}
	a.PairID, b.PairID = pair.ID, pair.ID
	pm.pairs = append(pm.pairs, pair)
	klog.V(3).Infof("pair %d: curves %d and %d", pair.ID, a.ID, b.ID)
	return nil
}

// Restore re-applies previously matched pairs to curves, recomputing their pointers.
func Restore(curves []*seam.PerimeterCurve, pairs []seam.CurvePair) ([]seam.CurvePair, error) {
	for _, pc := range curves {
		pc.PairID = seam.NoPair
	}
	var pm pairMaker
	for _, pair := range pairs {
		if int(pair.A) >= len(curves) || int(pair.B) >= len(curves) || pair.A < 0 || pair.B < 0 {
			return nil, &seam.ConsistencyError{
				Reason:   "pair refers to a missing curve",
				Curves:   []seam.CurveID{pair.A, pair.B},
				Expected: len(curves),
			}
		}
		if err := pm.commit(curves[pair.A], curves[pair.B]); err != nil {
			return nil, err
		}
	}
	return pm.pairs, nil
}
