package mesh

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoxBuild(t *testing.T) {
	box, err := NewBox(2, 4, 6, mgl32.Vec3{1, 2, 3})
	if err != nil {
		t.Fatalf("NewBox failed: %v", err)
	}

	vertices, indices := box.Build()
	if len(vertices) != BoxVertexCount {
		t.Fatalf("expected %d vertices, got %d", BoxVertexCount, len(vertices))
	}
	if len(indices) != BoxIndexCount {
		t.Fatalf("expected %d indices, got %d", BoxIndexCount, len(indices))
	}
	for i, idx := range indices {
		if idx >= BoxVertexCount {
			t.Errorf("index %d out of range: %d", i, idx)
		}
	}

	// Every vertex is a corner (±1, ±2, ±3) offset by the center.
	seen := make(map[mgl32.Vec3]bool)
	for _, v := range vertices {
		d := v.Sub(box.Center)
		if absf(d[0]) != 1 || absf(d[1]) != 2 || absf(d[2]) != 3 {
			t.Errorf("vertex %v is not a box corner", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct corners, got %d", len(seen))
	}
}

func TestBoxBuildReturnsFreshIndices(t *testing.T) {
	box, _ := NewBox(1, 1, 1, mgl32.Vec3{})
	_, a := box.Build()
	a[0] = 99
	_, b := box.Build()
	if b[0] != 0 {
		t.Errorf("Build shares its index slice: got %d", b[0])
	}
}

func TestBoxWindingOutward(t *testing.T) {
	box, _ := NewBox(3, 1, 2, mgl32.Vec3{5, -1, 4})
	vertices, indices := box.Build()

	for i := 0; i < len(indices); i += 3 {
		p0, p1, p2 := vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]
		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		centroid := p0.Add(p1).Add(p2).Mul(1.0 / 3)
		outward := centroid.Sub(box.Center)
		if normal.Dot(outward) <= 0 {
			t.Errorf("triangle %d faces inward", i/3)
		}
	}
}

func TestNewBoxInvalidDimension(t *testing.T) {
	tests := []struct {
		name    string
		w, h, d float32
	}{
		{"zero width", 0, 1, 1},
		{"negative height", 1, -1, 1},
		{"zero depth", 1, 1, 0},
		{"NaN", float32(math.NaN()), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBox(tt.w, tt.h, tt.d, mgl32.Vec3{})
			if !errors.Is(err, ErrInvalidDimension) {
				t.Errorf("expected ErrInvalidDimension, got %v", err)
			}
		})
	}
}

func TestComputeNormalsUnitLength(t *testing.T) {
	box, _ := NewBox(20, 0.3, 20, mgl32.Vec3{0, 3.5, 0})
	vertices, indices := box.Build()

	normals, degenerate, err := ComputeNormals(vertices, indices)
	if err != nil {
		t.Fatalf("ComputeNormals failed: %v", err)
	}
	if degenerate != 0 {
		t.Errorf("expected no degenerate normals, got %d", degenerate)
	}
	if len(normals) != len(vertices) {
		t.Fatalf("expected %d normals, got %d", len(vertices), len(normals))
	}

	for i, n := range normals {
		if l := n.Len(); absf(l-1) > 1e-4 {
			t.Errorf("normal %d length %v, want ~1", i, l)
		}
		// Smoothed corner normals point away from the box center.
		if n.Dot(vertices[i].Sub(box.Center)) <= 0 {
			t.Errorf("normal %d points inward: %v", i, n)
		}
	}
}

func TestComputeNormalsAreaWeighted(t *testing.T) {
	// Vertex 0 is shared by a large triangle facing +Z and a small one facing +X.
	vertices := []Vertex{
		{0, 0, 0},
		{10, 0, 0}, {0, 10, 0}, // large, +Z
		{0, 0, -1}, {0, 1, 0}, // small, +X
	}
	indices := []uint32{0, 1, 2, 0, 3, 4}

	normals, _, err := ComputeNormals(vertices, indices)
	if err != nil {
		t.Fatalf("ComputeNormals failed: %v", err)
	}
	n := normals[0]
	if n[2] <= n[0] {
		t.Errorf("expected larger face to dominate, got %v", n)
	}
}

func TestComputeNormalsDegenerate(t *testing.T) {
	vertices := []Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {5, 5, 5}}
	indices := []uint32{0, 1, 2}

	normals, degenerate, err := ComputeNormals(vertices, indices)
	if err != nil {
		t.Fatalf("ComputeNormals failed: %v", err)
	}
	if degenerate != 1 {
		t.Errorf("expected 1 degenerate vertex, got %d", degenerate)
	}
	if normals[3] != (mgl32.Vec3{}) {
		t.Errorf("expected zero sentinel for isolated vertex, got %v", normals[3])
	}
	if normals[0] != (mgl32.Vec3{0, 0, normals[0][2]}) || absf(normals[0][2]-1) > 1e-4 {
		t.Errorf("expected +Z normal, got %v", normals[0])
	}
}

func TestComputeNormalsOutOfRange(t *testing.T) {
	vertices := []Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

	if _, _, err := ComputeNormals(vertices, []uint32{0, 1, 3}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, _, err := ComputeNormals(vertices, []uint32{0, 1}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for partial triangle, got %v", err)
	}
}

func TestAccumulatorInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	acc := NewAccumulator("Mixed", SemanticStructure)

	totalVertices := 0
	for i := 0; i < 50; i++ {
		// Random order of boxes and loose triangles.
		if rng.Intn(2) == 0 {
			box, _ := NewBox(1+rng.Float32(), 1, 1, mgl32.Vec3{rng.Float32() * 10, 0, 0})
			if err := acc.AddBox(box); err != nil {
				t.Fatalf("AddBox failed: %v", err)
			}
			totalVertices += BoxVertexCount
		} else {
			if err := acc.Add([]Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint32{2, 1, 0}); err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			totalVertices += 3
		}
	}

	g := acc.Group(0)
	if len(g.Vertices) != totalVertices {
		t.Errorf("expected %d vertices, got %d", totalVertices, len(g.Vertices))
	}
	var maxIdx uint32
	for _, idx := range g.Indices {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	if int(maxIdx) >= len(g.Vertices) {
		t.Errorf("max index %d >= vertex count %d", maxIdx, len(g.Vertices))
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestAccumulatorOffsets(t *testing.T) {
	acc := NewAccumulator("Columns", SemanticStructure)
	box, _ := NewBox(1, 1, 1, mgl32.Vec3{})
	acc.AddBox(box)
	acc.AddBox(box)

	g := acc.Group(1)
	if g.LOD != 1 || g.Name != "Columns" || g.Semantic != SemanticStructure {
		t.Errorf("unexpected group identity: %+v", g)
	}
	for i := 0; i < BoxIndexCount; i++ {
		if g.Indices[BoxIndexCount+i] != g.Indices[i]+BoxVertexCount {
			t.Fatalf("index %d not rebased: got %d", BoxIndexCount+i, g.Indices[BoxIndexCount+i])
		}
	}
}

func TestAccumulatorRejectsForeignIndex(t *testing.T) {
	acc := NewAccumulator("Beams", SemanticStructure)
	err := acc.Add([]Vertex{{0, 0, 0}}, []uint32{0, 0, 1})
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if acc.VertexCount() != 0 || acc.IndexCount() != 0 {
		t.Error("rejected add must not modify the accumulator")
	}
}

func TestAccumulatorSnapshotIsolation(t *testing.T) {
	acc := NewAccumulator("Core", SemanticStructure)
	box, _ := NewBox(4, 3.5, 4, mgl32.Vec3{})
	acc.AddBox(box)

	g := acc.Group(0)
	acc.AddBox(box)
	if len(g.Vertices) != BoxVertexCount {
		t.Errorf("snapshot changed after Add: %d vertices", len(g.Vertices))
	}
}

func TestComputeBounds(t *testing.T) {
	box, _ := NewBox(2, 4, 6, mgl32.Vec3{1, 1, 1})
	vertices, _ := box.Build()

	b := ComputeBounds(vertices)
	if b != box.Bounds() {
		t.Errorf("ComputeBounds = %+v, want %+v", b, box.Bounds())
	}
	if size := b.Size(); size != (mgl32.Vec3{2, 4, 6}) {
		t.Errorf("Size = %v", size)
	}
	if !b.Contains(mgl32.Vec3{1, 1, 1}) || b.Contains(mgl32.Vec3{3, 1, 1}) {
		t.Error("Contains gave wrong answer")
	}
	if (ComputeBounds(nil) != Bounds{}) {
		t.Error("expected zero bounds for no vertices")
	}
}

func TestGroupWithNormals(t *testing.T) {
	acc := NewAccumulator("Slabs", SemanticStructure)
	box, _ := NewBox(1, 1, 1, mgl32.Vec3{})
	acc.AddBox(box)

	g, degenerate, err := acc.Group(0).WithNormals()
	if err != nil {
		t.Fatalf("WithNormals failed: %v", err)
	}
	if degenerate != 0 || len(g.Normals) != len(g.Vertices) {
		t.Errorf("unexpected normals: %d degenerate, %d normals", degenerate, len(g.Normals))
	}
	if g.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", g.TriangleCount())
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestCheckIndexRange(t *testing.T) {
	tests := []struct {
		name            string
		existing, added int
		wantErr         bool
	}{
		{"empty", 0, 0, false},
		{"exactly full", math.MaxUint32 - 8, 8, false},
		{"one past", math.MaxUint32 - 7, 8, true},
		{"already full", math.MaxUint32, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkIndexRange("Columns", tt.existing, tt.added)
			if tt.wantErr {
				if !errors.Is(err, ErrIndexOverflow) {
					t.Errorf("expected ErrIndexOverflow, got %v", err)
				}
				if errors.Is(err, ErrIndexOutOfRange) {
					t.Error("overflow must not be reported as out of range")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGroupMethodsOnReturnedValue(t *testing.T) {
	acc := NewAccumulator("Walls", SemanticStructure)
	box, _ := NewBox(0.3, 3.5, 20, mgl32.Vec3{-10, 1.75, 0})
	acc.AddBox(box)

	// Called directly on the returned value, which is not addressable.
	if acc.Group(0).IsEmpty() {
		t.Error("expected a non-empty group")
	}
	if n := acc.Group(0).TriangleCount(); n != 12 {
		t.Errorf("expected 12 triangles, got %d", n)
	}
	if b := acc.Group(0).Bounds(); b != box.Bounds() {
		t.Errorf("Bounds = %+v, want %+v", b, box.Bounds())
	}
	if err := acc.Group(0).Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
	if !NewAccumulator("Braces", SemanticStructure).Group(0).IsEmpty() {
		t.Error("expected a fresh accumulator to yield an empty group")
	}
}
