package walker_test

import (
	"testing"

	"github.com/fine-structures/seamtopo/libseam/border"
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/libseam/topo/topotest"
	"github.com/fine-structures/seamtopo/libseam/walker"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/pkg/errors"
)

func newWalker(t *testing.T, X *topo.Snapshot) *walker.Walker {
	t.Helper()
	g, err := neighbor.Build(X, border.UVBorder(X))
	if err != nil {
		t.Fatal(err)
	}
	return walker.New(g, X, seam.DefaultOpts())
}

func samePath(a, b []seam.UVID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestConeArcs(t *testing.T) {
	w := newWalker(t, topotest.Cone(5))

	arcs, err := w.Paths(1, 6, seam.NewIDSet[seam.UVID](7))
	if err != nil {
		t.Fatal(err)
	}
	if len(arcs) != 2 {
		t.Fatalf("expected 2 arcs between 1 and 6, got %d", len(arcs))
	}
	if !samePath(arcs[0].Path, []seam.UVID{1, 0, 6}) || !samePath(arcs[1].Path, []seam.UVID{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("unexpected arcs %v %v", arcs[0].Path, arcs[1].Path)
	}

	// the two arcs cover the shell border and share only their end points
	shared := arcs[0].Members().Intersect(arcs[1].Members())
	if !shared.Equal(seam.NewIDSet[seam.UVID](1, 6)) {
		t.Fatalf("arcs share %v", shared.Sorted())
	}
	all := arcs[0].Members().Union(arcs[1].Members())
	if all.Len() != 7 {
		t.Fatalf("arcs cover %d uvs, want 7", all.Len())
	}

	// reversed endpoints give the same arcs reversed
	back, err := w.Paths(6, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 {
		t.Fatalf("expected 2 arcs between 6 and 1, got %d", len(back))
	}
	for _, arc := range back {
		n := len(arc.Path)
		rev := make([]seam.UVID, n)
		for i, uv := range arc.Path {
			rev[n-1-i] = uv
		}
		if !samePath(rev, arcs[0].Path) && !samePath(rev, arcs[1].Path) {
			t.Fatalf("reverse arc %v matches neither forward arc", arc.Path)
		}
	}
}

func TestSingleAnchorLoop(t *testing.T) {
	w := newWalker(t, topotest.Cone(5))

	arcs, err := w.Paths(7, 7, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(arcs) != 1 || !arcs[0].Closed() {
		t.Fatalf("expected one closed loop, got %v", arcs)
	}
	if !samePath(arcs[0].Path, []seam.UVID{7, 8, 9, 10, 11}) {
		t.Fatalf("loop %v", arcs[0].Path)
	}
	if arcs[0].Shell != 1 {
		t.Fatalf("loop on shell %d", arcs[0].Shell)
	}

	arcs, err = w.Paths(7, 7, seam.NewIDSet[seam.UVID](9))
	if err != nil {
		t.Fatal(err)
	}
	if len(arcs) != 0 {
		t.Fatalf("a stop on the loop should block it, got %v", arcs)
	}
}

func TestBlockedAndCrossShell(t *testing.T) {
	w := newWalker(t, topotest.Cube())

	arcs, err := w.Paths(0, 2, seam.NewIDSet[seam.UVID](1, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(arcs) != 0 {
		t.Fatalf("both directions are blocked, got %v", arcs)
	}

	arcs, err = w.Paths(0, 1, seam.NewIDSet[seam.UVID](2, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(arcs) != 1 || !samePath(arcs[0].Path, []seam.UVID{0, 1}) {
		t.Fatalf("expected the single arc [0 1], got %v", arcs)
	}

	arcs, err = w.Paths(0, 4, nil)
	if err != nil || arcs != nil {
		t.Fatalf("uvs on different shells should not connect: %v %v", arcs, err)
	}
}

func TestWalkOutcomes(t *testing.T) {
	w := newWalker(t, topotest.Cone(5))

	// a target on another border loop brings the walk back to its start
	if step := w.Walk(7, 8, 1, nil); step.Outcome != walker.Blocked {
		t.Fatalf("expected blocked, got %v", step.Outcome)
	}
	if step := w.Walk(7, 8, 8, nil); step.Outcome != walker.Reached || !samePath(step.Path, []seam.UVID{7, 8}) {
		t.Fatalf("expected [7 8], got %v %v", step.Outcome, step.Path)
	}
	if step := w.Walk(7, 8, 10, seam.NewIDSet[seam.UVID](8)); step.Outcome != walker.Blocked {
		t.Fatalf("expected blocked on the first step, got %v", step.Outcome)
	}
}

func TestWalkErrors(t *testing.T) {
	X := topotest.Tube(6)
	w := newWalker(t, X)

	if _, err := w.Paths(0, 6, nil); !errors.Is(err, seam.ErrTopology) {
		t.Fatalf("expected topology error for a uv off the border, got %v", err)
	}

	w.StepLimit = 3
	_, err := w.Paths(6, 6, nil)
	var limitErr *seam.IterationLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected iteration limit error, got %v", err)
	}
	if limitErr.Limit != 3 || limitErr.Start != 6 {
		t.Fatalf("unexpected error fields %+v", limitErr)
	}
}
