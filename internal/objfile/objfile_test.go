package objfile_test

import (
	"strings"
	"testing"

	"github.com/fine-structures/seamtopo/internal/objfile"
	"github.com/fine-structures/seamtopo/libseam"
	"github.com/fine-structures/seamtopo/libseam/topo"
	"github.com/fine-structures/seamtopo/libseam/topo/topotest"
	"github.com/fine-structures/seamtopo/seam"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

const quadSrc = `# two triangles sharing a diagonal
g patch
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0.0 1.0e0
f 1/1 2/2 3/3
f -4/-4 -2/-1 -1//1
`

func TestParseString(t *testing.T) {
	def, err := objfile.ParseString("patch", quadSrc)
	if err != nil {
		t.Fatal(err)
	}
	if def.Name != "patch" || len(def.Positions) != 4 || len(def.UVs) != 4 || len(def.Faces) != 2 {
		t.Fatalf("unexpected def %+v", def)
	}
	if def.UVs[3] != (r2.Point{X: 0, Y: 1}) {
		t.Fatalf("uv 3 is %v", def.UVs[3])
	}

	want := []topo.Corner{{Vtx: 0, UV: 0}, {Vtx: 2, UV: 3}, {Vtx: 3, UV: topo.NoUV}}
	for i, c := range def.Faces[1] {
		if c != want[i] {
			t.Fatalf("corner %d is %+v, want %+v", i, c, want[i])
		}
	}

	X, err := topo.New(def)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(X.CheckMissingUVs(), seam.ErrMissingUVs) {
		t.Fatal("a corner without a uv should be reported")
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"v 0 0\n",
		"vt 1\n",
		"v 0 0 0\nf 1 2 3\n",
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/2 2/1 3/1\n",
		"f 1/ /\n",
	} {
		if _, err := objfile.ParseString("bad", src); !errors.Is(err, objfile.ErrBadOBJ) {
			t.Errorf("%q: expected bad OBJ error, got %v", src, err)
		}
	}
}

func TestLoadCube(t *testing.T) {
	X, err := objfile.Load("testdata/cube.obj")
	if err != nil {
		t.Fatal(err)
	}
	if X.Name() != "cube" || X.Identity() != topotest.Cube().Identity() {
		t.Fatalf("%s does not match the generated cube", X.Name())
	}

	res, err := libseam.NewEngine(seam.DefaultOpts()).Analyze(X)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Curves) != 24 || len(res.Pairs) != 12 {
		t.Fatalf("%d curves and %d pairs", len(res.Curves), len(res.Pairs))
	}
}

func TestParseReader(t *testing.T) {
	def, err := objfile.Parse("patch", strings.NewReader(strings.ReplaceAll(quadSrc, "\n", "\r\n")))
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Faces) != 2 {
		t.Fatalf("%d faces", len(def.Faces))
	}
}
