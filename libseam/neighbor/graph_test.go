package neighbor_test

import (
	"testing"

	"github.com/fine-structures/seamtopo/libseam/border"
	"github.com/fine-structures/seamtopo/libseam/neighbor"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/libseam/topo/topotest"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/pkg/errors"
)

func buildGraph(t *testing.T, X *topo.Snapshot) (*neighbor.Graph, seam.BorderSet) {
	t.Helper()
	bs := border.UVBorder(X)
	g, err := neighbor.Build(X, bs)
	if err != nil {
		t.Fatalf("%s: %v", X.Name(), err)
	}
	return g, bs
}

func TestCyclesCoverEachShellBorder(t *testing.T) {
	meshes := []*topo.Snapshot{topotest.Cube(), topotest.Tube(6), topotest.Cone(5)}
	for _, X := range meshes {
		flat, err := topo.Flatten(X)
		if err != nil {
			t.Fatal(err)
		}
		for _, M := range []*topo.Snapshot{X, flat} {
			g, bs := buildGraph(t, M)
			if g.Len() != bs.UVs.Len() || !g.Keys().Equal(bs.UVs) {
				t.Fatalf("%s: graph keys %v != border %v", M.Name(), g.Keys().Sorted(), bs.UVs.Sorted())
			}

			covered := make(seam.UVSet)
			for _, cycle := range g.Cycles() {
				shell := M.Shell(cycle[0])
				for _, uv := range cycle {
					if covered.Has(uv) {
						t.Fatalf("%s: uv %d appears in two cycles", M.Name(), uv)
					}
					covered.Add(uv)
					if M.Shell(uv) != shell {
						t.Fatalf("%s: cycle crosses shells at uv %d", M.Name(), uv)
					}
				}
			}
			if !covered.Equal(bs.UVs) {
				t.Fatalf("%s: cycles cover %d of %d border uvs", M.Name(), covered.Len(), bs.UVs.Len())
			}
		}
	}
}

func TestCubeNeighbours(t *testing.T) {
	g, _ := buildGraph(t, topotest.Cube())
	// bottom face uvs 0..3 sit on vertices 0, 3, 2, 1 and form one square loop
	want := map[seam.UVID]neighbor.Pair{0: {1, 3}, 1: {0, 2}, 2: {1, 3}, 3: {0, 2}}
	for uv, p := range want {
		got, ok := g.Neighbors(uv)
		if !ok || got != p {
			t.Errorf("uv %d: neighbours %v, want %v", uv, got, p)
		}
	}
	if n := len(g.Cycles()); n != 6 {
		t.Fatalf("expected 6 cycles, got %d", n)
	}
}

func TestConeCutTip(t *testing.T) {
	g, _ := buildGraph(t, topotest.Cone(5))
	got, ok := g.Neighbors(0)
	if !ok || got != (neighbor.Pair{1, 6}) {
		t.Fatalf("apex neighbours %v, want [1 6]", got)
	}
	cycles := g.Cycles()
	if len(cycles) != 2 || len(cycles[0]) != 7 || len(cycles[1]) != 5 {
		t.Fatalf("unexpected cycles %v", cycles)
	}
}

func TestUnresolvedBorderUV(t *testing.T) {
	X := topotest.Tube(6)
	bs := border.UVBorder(X)
	bs.UVs.Add(0) // a bottom ring uv that no seam edge reaches
	_, err := neighbor.Build(X, bs)
	var topoErr *seam.TopologyError
	if !errors.As(err, &topoErr) {
		t.Fatalf("expected TopologyError, got %v", err)
	}
	if len(topoErr.UVs) != 1 || topoErr.UVs[0] != 0 {
		t.Fatalf("expected uv 0 to be named, got %v", topoErr.UVs)
	}
	if !errors.Is(err, seam.ErrTopology) {
		t.Fatal("TopologyError does not unwrap to ErrTopology")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		adj  map[seam.UVID]neighbor.Pair
		bad  []seam.UVID
	}{
		{"self", map[seam.UVID]neighbor.Pair{1: {1, 2}, 2: {1, 3}, 3: {1, 2}}, []seam.UVID{1}},
		{"dangling", map[seam.UVID]neighbor.Pair{1: {2, 3}, 2: {1, 3}, 3: {1, 9}}, []seam.UVID{3}},
		{"one way", map[seam.UVID]neighbor.Pair{1: {2, 3}, 2: {1, 3}, 3: {2, 4}, 4: {2, 3}}, []seam.UVID{1, 4}},
	}
	for _, tt := range tests {
		_, err := neighbor.New(tt.adj)
		var topoErr *seam.TopologyError
		if !errors.As(err, &topoErr) {
			t.Errorf("%s: expected TopologyError, got %v", tt.name, err)
			continue
		}
		if len(topoErr.UVs) != len(tt.bad) {
			t.Errorf("%s: named %v, want %v", tt.name, topoErr.UVs, tt.bad)
			continue
		}
		for i := range tt.bad {
			if topoErr.UVs[i] != tt.bad[i] {
				t.Errorf("%s: named %v, want %v", tt.name, topoErr.UVs, tt.bad)
				break
			}
		}
	}

	g, err := neighbor.New(map[seam.UVID]neighbor.Pair{1: {3, 2}, 2: {1, 3}, 3: {2, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if next, ok := g.Next(1, 2); !ok || next != 3 {
		t.Fatalf("Next(1, 2) = %d, %v", next, ok)
	}
	if _, ok := g.Next(9, 2); ok {
		t.Fatal("Next accepted a prev that is not a neighbour")
	}
}
