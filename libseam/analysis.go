package libseam

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/fine-structures/seamtopo/libseam/anchor"
	"github.com/fine-structures/seamtopo/libseam/border"
	"github.com/fine-structures/seamtopo/libseam/cache"
	"github.com/fine-structures/seamtopo/libseam/correspond"
	"github.com/fine-structures/seamtopo/libseam/curve"
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/libseam/pairing"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// CheckBorderCount fails with a *seam.ConsistencyError when a round trip that should be
// lossless changed the number of border UV points.
func CheckBorderCount(before, after int) error {
	if before != after {
		return &seam.ConsistencyError{
			Reason:   "border uv count changed",
			Expected: before,
			Got:      after,
		}
	}
	return nil
}

// MasterPoints classifies the UV border of X, links its border neighbours and detects
// its seam anchors.
func MasterPoints(X *topo.Snapshot) (seam.BorderSet, *neighbor.Graph, seam.CoordTable, error) {
	if X == nil {
		return seam.BorderSet{}, nil, nil, seam.ErrNilSnapshot
	}
	bs := border.UVBorder(X)
	g, err := neighbor.Build(X, bs)
	if err != nil {
		return bs, nil, nil, errors.Wrapf(err, "%q", X.Name())
	}
	return bs, g, anchor.Detect(X, g, border.MeshBoundaryVertices(X)), nil
}

// Analyze classifies the UV border of posed, detects its anchors, flattens it, walks and
// builds the perimeter curves of the flattened shells and pairs them against posed.
func (e *Engine) Analyze(posed *topo.Snapshot) (*Result, error) {
	if posed == nil {
		return nil, seam.ErrNilSnapshot
	}
	opts := e.Opts.Normalize()
	for _, check := range []func() error{
		posed.CheckMissingUVs,
		posed.CheckOverlappingUVs,
		posed.CheckMultipleShells,
		posed.CheckConnected,
	} {
		if err := check(); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Posed: posed,
	}
	var err error
	if res.Border, res.Graph, res.Anchors, err = MasterPoints(posed); err != nil {
		return nil, err
	}

	if res.Flat, err = topo.Flatten(posed); err != nil {
		return nil, err
	}
	flatTbl, err := correspond.FlatBorderTable(res.Flat)
	if err != nil {
		return nil, err
	}
	if err = CheckBorderCount(res.Border.UVs.Len(), len(flatTbl)); err != nil {
		return nil, errors.Wrapf(err, "flatten %q", posed.Name())
	}
	res.FlatAnchors = correspond.ReFindTable(res.Anchors, flatTbl, opts.MatchTolerance())

	flatBorder := border.UVBorder(res.Flat)
	flatGraph, err := neighbor.Build(res.Flat, flatBorder)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", res.Flat.Name())
	}
	syn := curve.NewSynthesizer(res.Flat, flatBorder, flatGraph, opts)
	if e.Builder != nil {
		syn.Builder = e.Builder
	}

	key := AnalysisKey(posed, opts)
	rec := e.lookup(key)
	if rec != nil {
		res.Arcs = rec.ArcList()
		res.Cached = true
	} else if res.Arcs, err = syn.Arcs(res.FlatAnchors.Keys()); err != nil {
		return nil, err
	}
	if res.Curves, err = syn.Build(res.Arcs, res.FlatAnchors.Keys()); err != nil {
		return nil, err
	}

	if rec != nil {
		res.Pairs, err = pairing.Restore(res.Curves, rec.PairList())
	} else {
		res.Pairs, err = pairing.NewMatcher(res.Flat, posed, opts).Match(res.Curves)
	}
	if err != nil {
		return nil, err
	}

	if rec == nil && e.Cache != nil {
		rec = cache.NewRecord(key, posed.Name(), res.Border.UVs, res.Anchors, res.Arcs, res.Pairs)
		if err := e.Cache.Put(rec); err != nil {
			klog.Warningf("%s: caching analysis: %v", posed.Name(), err)
		}
	}

	klog.V(2).Infof("%s: %d border uvs, %d anchors, %d curves, %d pairs (cached=%v)",
		posed.Name(), res.Border.UVs.Len(), len(res.Anchors), len(res.Curves), len(res.Pairs), res.Cached)
	return res, nil
}

func (e *Engine) lookup(key uint64) *cache.AnalysisRecord {
	if e.Cache == nil {
		return nil
	}
	rec, err := e.Cache.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrNoRecord) {
			klog.Warningf("cache lookup %016x: %v", key, err)
		}
		return nil
	}
	return rec
}

// AnalysisKey identifies the analysis of X under opts.
func AnalysisKey(X *topo.Snapshot, opts seam.Opts) uint64 {
	var buf [8]byte
	h := xxhash.New()
	binary.LittleEndian.PutUint64(buf[:], X.Identity())
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(opts.MatchTolerance()))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(opts.WalkStepLimit))
	h.Write(buf[:])
	if opts.StrictPairing {
		h.Write([]byte{1})
	}
	return h.Sum64()
}

// Bind pairs curves built on the flattened instance local against another reference
// instance, such as a deformed or edited copy of the posed mesh.
func (e *Engine) Bind(local, ref *topo.Snapshot, curves []*seam.PerimeterCurve) ([]seam.CurvePair, error) {
	if local == nil || ref == nil {
		return nil, seam.ErrNilSnapshot
	}
	if err := local.CheckFlat(); err != nil {
		return nil, err
	}
	if err := ref.CheckMultipleShells(); err != nil {
		return nil, err
	}
	return pairing.NewMatcher(local, ref, e.Opts).Match(curves)
}

// ReFind re-finds the reference points of master on target.  A flattened target is
// matched against its mesh boundary, any other target against its UV border.
func (e *Engine) ReFind(master seam.CoordTable, target *topo.Snapshot) (map[seam.UVID]seam.UVID, error) {
	if target == nil {
		return nil, seam.ErrNilSnapshot
	}
	tbl, err := correspond.FlatBorderTable(target)
	if errors.Is(err, seam.ErrNotFlat) {
		tbl = correspond.BorderTable(target, border.UVBorder(target).UVs)
	} else if err != nil {
		return nil, err
	}
	return correspond.ReFind(master, tbl, e.Opts.MatchTolerance()), nil
}
