package mesh

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Semantic distinguishes structural members from occupiable space.
type Semantic string

// Semantic categories.
const (
	SemanticStructure Semantic = "structure"
	SemanticSpatial   Semantic = "spatial"
)

// Group is a named, semantically tagged mesh whose indices are local to its
// own vertex list.
type Group struct {
	Name     string
	Semantic Semantic
	LOD      int
	Vertices []Vertex
	Normals  []mgl32.Vec3 // nil until normals are computed
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the group.
func (g Group) TriangleCount() int {
	return len(g.Indices) / 3
}

// IsEmpty reports whether the group has no vertices.
func (g Group) IsEmpty() bool {
	return len(g.Vertices) == 0
}

// Bounds returns the bounds of the group's vertices.
func (g Group) Bounds() Bounds {
	return ComputeBounds(g.Vertices)
}

// Validate checks that every index refers to a vertex of the group and that
// normals, when present, match the vertex count.
func (g Group) Validate() error {
	n := uint32(len(g.Vertices))
	for i, idx := range g.Indices {
		if idx >= n {
			return fmt.Errorf("%w: group %q index %d = %d, %d vertices", ErrIndexOutOfRange, g.Name, i, idx, n)
		}
	}
	if g.Normals != nil && len(g.Normals) != len(g.Vertices) {
		return fmt.Errorf("group %q: %d normals for %d vertices", g.Name, len(g.Normals), len(g.Vertices))
	}
	return nil
}

// WithNormals returns a copy of the group with smoothed normals computed.
func (g Group) WithNormals() (Group, int, error) {
	normals, degenerate, err := ComputeNormals(g.Vertices, g.Indices)
	if err != nil {
		return Group{}, 0, fmt.Errorf("group %q: %w", g.Name, err)
	}
	g.Normals = normals
	return g, degenerate, nil
}

// Accumulator merges vertex and index streams into one group, rebasing each
// added index list by the number of vertices already present.
type Accumulator struct {
	name     string
	semantic Semantic
	vertices []Vertex
	indices  []uint32
}

// NewAccumulator creates an empty accumulator for the named group.
func NewAccumulator(name string, semantic Semantic) *Accumulator {
	return &Accumulator{name: name, semantic: semantic}
}

// Add appends vertices unchanged and indices offset by the current vertex count.
// Indices must refer to the added vertices.
func (a *Accumulator) Add(vertices []Vertex, indices []uint32) error {
	n := uint32(len(vertices))
	for _, idx := range indices {
		if idx >= n {
			return fmt.Errorf("%w: %s: index %d of %d added vertices", ErrIndexOutOfRange, a.name, idx, n)
		}
	}

	offset := len(a.vertices)
	if err := checkIndexRange(a.name, offset, len(vertices)); err != nil {
		return err
	}

	a.vertices = append(a.vertices, vertices...)
	for _, idx := range indices {
		a.indices = append(a.indices, idx+uint32(offset))
	}
	return nil
}

// checkIndexRange fails when rebased indices of added vertices on top of
// existing ones would not fit in uint32.
func checkIndexRange(name string, existing, added int) error {
	if uint64(existing)+uint64(added) > math.MaxUint32 {
		return fmt.Errorf("%w: %s: %d + %d vertices", ErrIndexOverflow, name, existing, added)
	}
	return nil
}

// AddBox builds the box and adds it.
func (a *Accumulator) AddBox(b Box) error {
	v, i := b.Build()
	return a.Add(v, i)
}

// Name returns the group name.
func (a *Accumulator) Name() string { return a.name }

// VertexCount returns the number of accumulated vertices.
func (a *Accumulator) VertexCount() int { return len(a.vertices) }

// IndexCount returns the number of accumulated indices.
func (a *Accumulator) IndexCount() int { return len(a.indices) }

// Group returns a snapshot of the accumulated mesh. Later Add calls do not
// affect the returned group.
func (a *Accumulator) Group(lod int) Group {
	vertices := make([]Vertex, len(a.vertices))
	copy(vertices, a.vertices)
	indices := make([]uint32, len(a.indices))
	copy(indices, a.indices)

	return Group{
		Name:     a.name,
		Semantic: a.semantic,
		LOD:      lod,
		Vertices: vertices,
		Indices:  indices,
	}
}
