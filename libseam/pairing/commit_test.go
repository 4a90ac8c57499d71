package pairing

import (
	"testing"

	"github.com/fine-structures/seamtopo/libseam/curve"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

func TestCommitConflict(t *testing.T) {
	curves := make([]*seam.PerimeterCurve, 3)
	for i := range curves {
		pl, err := curve.NewPolyline([]r3.Vector{{X: float64(i)}, {X: float64(i), Y: 1}}, false)
		if err != nil {
			t.Fatal(err)
		}
		curves[i] = &seam.PerimeterCurve{ID: seam.CurveID(i), Curve: pl, PairID: seam.NoPair}
	}

	var pm pairMaker
	if err := pm.commit(curves[1], curves[0]); err != nil {
		t.Fatal(err)
	}
	if err := pm.commit(curves[0], curves[1]); err != nil {
		t.Fatalf("recommitting the same pair: %v", err)
	}
	if len(pm.pairs) != 1 || pm.pairs[0].A != 0 || pm.pairs[0].B != 1 {
		t.Fatalf("pairs %+v", pm.pairs)
	}
	if pm.pairs[0].Pointer != (r3.Vector{X: 0.5, Y: 0.5}) {
		t.Fatalf("pointer %v", pm.pairs[0].Pointer)
	}

	err := pm.commit(curves[2], curves[1])
	var conflict *seam.ConsistencyError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected a consistency error, got %v", err)
	}
	if len(conflict.Curves) != 3 || conflict.Curves[2] != 0 {
		t.Fatalf("conflict names curves %v", conflict.Curves)
	}
	if curves[2].PairID != seam.NoPair {
		t.Fatal("a rejected pair must not be recorded")
	}
}

func TestNearestTieBreak(t *testing.T) {
	var curves []*seam.PerimeterCurve
	for i, x := range []float64{0, -1, 1} {
		pl, _ := curve.NewPolyline([]r3.Vector{{X: x}, {X: x, Y: 1}}, false)
		curves = append(curves, &seam.PerimeterCurve{
			ID:      seam.CurveID(i),
			Curve:   pl,
			Anchors: seam.NewIDSet[seam.UVID](seam.UVID(i)),
		})
	}
	// curves 1 and 2 are equidistant from the origin
	if got := nearestCurve(curves, curves[0], r3.Vector{}); got.ID != 1 {
		t.Fatalf("nearest curve %d, want 1", got.ID)
	}
}
