package pairing_test

import (
	"testing"

	"github.com/fine-structures/seamtopo/libseam/anchor"
	"github.com/fine-structures/seamtopo/libseam/border"
	"github.com/fine-structures/seamtopo/libseam/curve"
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/libseam/pairing"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/libseam/topo/topotest"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// flatCurves synthesizes curves on the flattened instance of posed.
func flatCurves(t *testing.T, posed *topo.Snapshot) (*topo.Snapshot, []*seam.PerimeterCurve) {
	t.Helper()
	g, err := neighbor.Build(posed, border.UVBorder(posed))
	if err != nil {
		t.Fatal(err)
	}
	anchors := anchor.Detect(posed, g, border.MeshBoundaryVertices(posed)).Keys()

	flat, err := topo.Flatten(posed)
	if err != nil {
		t.Fatal(err)
	}
	bs := border.UVBorder(flat)
	fg, err := neighbor.Build(flat, bs)
	if err != nil {
		t.Fatal(err)
	}
	curves, err := curve.NewSynthesizer(flat, bs, fg, seam.DefaultOpts()).Curves(anchors)
	if err != nil {
		t.Fatal(err)
	}
	return flat, curves
}

func checkBijection(t *testing.T, curves []*seam.PerimeterCurve, pairs []seam.CurvePair) {
	t.Helper()
	if len(pairs) > len(curves)/2 {
		t.Fatalf("%d pairs over %d curves", len(pairs), len(curves))
	}
	seen := make(seam.IDSet[seam.CurveID])
	for i, pair := range pairs {
		if pair.ID != i || pair.A >= pair.B {
			t.Fatalf("bad pair %+v", pair)
		}
		for _, id := range []seam.CurveID{pair.A, pair.B} {
			if seen.Has(id) {
				t.Fatalf("curve %d in two pairs", id)
			}
			seen.Add(id)
			if curves[id].PairID != pair.ID {
				t.Fatalf("curve %d has pair id %d, want %d", id, curves[id].PairID, pair.ID)
			}
		}
	}
	for _, pc := range curves {
		if !seen.Has(pc.ID) && pc.PairID != seam.NoPair {
			t.Fatalf("unpaired curve %d has pair id %d", pc.ID, pc.PairID)
		}
	}
}

func TestCubePairs(t *testing.T) {
	posed := topotest.Cube()
	flat, curves := flatCurves(t, posed)
	pairs, err := pairing.NewMatcher(flat, posed, seam.DefaultOpts()).Match(curves)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 12 {
		t.Fatalf("%d pairs, want 12", len(pairs))
	}
	checkBijection(t, curves, pairs)

	// both sides of a pair run between the same two cube corners
	corners := func(pc *seam.PerimeterCurve) seam.IDSet[seam.VtxID] {
		return seam.NewIDSet(posed.UVVertex(pc.Arc.Start), posed.UVVertex(pc.Arc.End))
	}
	for _, pair := range pairs {
		a, b := curves[pair.A], curves[pair.B]
		if !corners(a).Equal(corners(b)) {
			t.Errorf("pair %d joins corners %v and %v", pair.ID, corners(a).Sorted(), corners(b).Sorted())
		}
		if posed.Shell(a.Arc.Start) == posed.Shell(b.Arc.Start) {
			t.Errorf("pair %d stays on shell %d", pair.ID, posed.Shell(a.Arc.Start))
		}
	}
}

func TestTubeHasNoPairs(t *testing.T) {
	posed := topotest.Tube(6)
	flat, curves := flatCurves(t, posed)
	pairs, err := pairing.NewMatcher(flat, posed, seam.DefaultOpts()).Match(curves)
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) != 2 || len(pairs) != 0 {
		t.Fatalf("%d curves %d pairs, want 2 and 0", len(curves), len(pairs))
	}
}

func TestConePairs(t *testing.T) {
	posed := topotest.Cone(5)
	flat, curves := flatCurves(t, posed)
	m := pairing.NewMatcher(flat, posed, seam.DefaultOpts())
	pairs, err := m.Match(curves)
	if err != nil {
		t.Fatal(err)
	}
	checkBijection(t, curves, pairs)
	if len(pairs) != 1 || pairs[0].A != 1 || pairs[0].B != 2 {
		t.Fatalf("expected the base arc paired with the cap loop, got %+v", pairs)
	}
	if curves[0].PairID != seam.NoPair {
		t.Fatalf("the cut through the apex should stay unpaired")
	}
	want := curve.Centre(curves[1].Curve).Add(curve.Centre(curves[2].Curve)).Mul(0.5)
	if pairs[0].Pointer != want {
		t.Fatalf("pointer %v, want %v", pairs[0].Pointer, want)
	}

	again, err := m.Match(curves)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 1 || again[0] != pairs[0] {
		t.Fatalf("second match gave %+v", again)
	}
}

// shiftedCube is a cube whose UV layout moved by d in both directions.
func shiftedCube(d float64) *topo.Snapshot {
	def := topotest.CubeDef()
	for i := range def.UVs {
		def.UVs[i] = def.UVs[i].Add(r2.Point{X: d, Y: d})
	}
	return topotest.Must(def)
}

func TestPairingTolerance(t *testing.T) {
	flat, curves := flatCurves(t, topotest.Cube())

	_, err := pairing.NewMatcher(flat, shiftedCube(0.25), seam.DefaultOpts()).Match(curves)
	var miss *seam.ToleranceMissError
	if !errors.As(err, &miss) {
		t.Fatalf("expected a tolerance miss, got %v", err)
	}

	opts := seam.DefaultOpts()
	opts.StrictPairing = false
	pairs, err := pairing.NewMatcher(flat, shiftedCube(0.25), opts).Match(curves)
	if err != nil || len(pairs) != 0 {
		t.Fatalf("best-effort matching: %d pairs, %v", len(pairs), err)
	}

	opts = seam.DefaultOpts()
	opts.Relaxed = true
	pairs, err = pairing.NewMatcher(flat, shiftedCube(1e-3), opts).Match(curves)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 12 {
		t.Fatalf("relaxed matching: %d pairs, want 12", len(pairs))
	}
}
