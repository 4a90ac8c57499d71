package anchor_test

import (
	"testing"

	"github.com/fine-structures/seamtopo/libseam/anchor"
	"github.com/fine-structures/seamtopo/libseam/border"
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/libseam/topo/topotest"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

func detect(t *testing.T, X *topo.Snapshot) seam.CoordTable {
	t.Helper()
	bs := border.UVBorder(X)
	g, err := neighbor.Build(X, bs)
	if err != nil {
		t.Fatal(err)
	}
	return anchor.Detect(X, g, border.MeshBoundaryVertices(X))
}

func TestAnchorCounts(t *testing.T) {
	tests := []struct {
		X    *topo.Snapshot
		want []seam.UVID
	}{
		{topotest.Tube(6), nil},
		{topotest.Cone(5), []seam.UVID{1, 6, 7}},
	}
	for _, tt := range tests {
		anchors := detect(t, tt.X)
		if !anchors.Keys().Equal(seam.NewIDSet(tt.want...)) {
			t.Errorf("%s: anchors %v, want %v", tt.X.Name(), anchors.Keys().Sorted(), tt.want)
		}
	}

	anchors := detect(t, topotest.Cube())
	if len(anchors) != 24 {
		t.Fatalf("cube: expected every corner uv to be an anchor, got %d", len(anchors))
	}
	X := topotest.Cube()
	for uv, pt := range anchors {
		if pt != X.UV(uv) {
			t.Fatalf("uv %d: coordinate %v, want %v", uv, pt, X.UV(uv))
		}
	}
}

// A 2x2 quad patch split into two shells along its middle row: the seam runs from one
// side of the mesh boundary to the other and its two end vertices are the anchors.
func TestSeamAcrossOpenPatch(t *testing.T) {
	def := topo.MeshDef{
		Name: "strip",
		Positions: []r3.Vector{
			{X: 0}, {X: 1}, {X: 2},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
			{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
		},
		UVs: []r2.Point{
			{X: 0}, {X: 1}, {X: 2},
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
			{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 2, Y: 3},
			{X: 0, Y: 4}, {X: 1, Y: 4}, {X: 2, Y: 4},
		},
		Faces: [][]topo.Corner{
			{{Vtx: 0, UV: 0}, {Vtx: 1, UV: 1}, {Vtx: 4, UV: 4}, {Vtx: 3, UV: 3}},
			{{Vtx: 1, UV: 1}, {Vtx: 2, UV: 2}, {Vtx: 5, UV: 5}, {Vtx: 4, UV: 4}},
			{{Vtx: 3, UV: 6}, {Vtx: 4, UV: 7}, {Vtx: 7, UV: 10}, {Vtx: 6, UV: 9}},
			{{Vtx: 4, UV: 7}, {Vtx: 5, UV: 8}, {Vtx: 8, UV: 11}, {Vtx: 7, UV: 10}},
		},
	}
	X := topotest.Must(def)
	anchors := detect(t, X)
	want := seam.NewIDSet[seam.UVID](3, 5, 6, 8)
	if !anchors.Keys().Equal(want) {
		t.Fatalf("anchors %v, want %v", anchors.Keys().Sorted(), want.Sorted())
	}
	if got := anchor.ByShell(X, anchors.Keys()); len(got) != 2 || got[X.Shell(3)].Len() != 2 {
		t.Fatalf("unexpected shell grouping %v", got)
	}

	// uv 4 sits mid-seam: equal degrees on both sides, so only the boundary rule can flag it
	p := neighbor.Pair{3, 5}
	if anchor.IsAnchor(X, 4, p, seam.NewIDSet[seam.VtxID](3, 4, 5)) {
		t.Fatal("uv 4 flagged with all three vertices on the boundary")
	}
	if !anchor.IsAnchor(X, 4, p, seam.NewIDSet[seam.VtxID](4)) {
		t.Fatal("uv 4 not flagged with only its own vertex on the boundary")
	}
}
