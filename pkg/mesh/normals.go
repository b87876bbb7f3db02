package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// NormalEpsilon is added to every accumulated normal length before dividing.
const NormalEpsilon = 1e-6

// ComputeNormals returns one smoothed normal per vertex.
//
// Each triangle adds its unnormalized face normal (edge1 x edge2, whose length is
// twice the triangle area) to its three vertices, so larger faces weigh more.
// The sums are then divided by their length plus NormalEpsilon. Vertices that no
// triangle touches, or whose contributions cancel out, end up as the zero vector;
// degenerate reports how many there were.
func ComputeNormals(vertices []Vertex, indices []uint32) (normals []mgl32.Vec3, degenerate int, err error) {
	if len(indices)%3 != 0 {
		return nil, 0, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrIndexOutOfRange, len(indices))
	}

	sums := make([]mgl64.Vec3, len(vertices))
	n := uint32(len(vertices))

	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			return nil, 0, fmt.Errorf("%w: triangle %d references (%d, %d, %d) of %d vertices",
				ErrIndexOutOfRange, i/3, i0, i1, i2, n)
		}

		p0 := vec64(vertices[i0])
		edge1 := vec64(vertices[i1]).Sub(p0)
		edge2 := vec64(vertices[i2]).Sub(p0)
		face := edge1.Cross(edge2)

		sums[i0] = sums[i0].Add(face)
		sums[i1] = sums[i1].Add(face)
		sums[i2] = sums[i2].Add(face)
	}

	normals = make([]mgl32.Vec3, len(vertices))
	for i, s := range sums {
		length := s.Len()
		if length == 0 {
			degenerate++
			continue
		}
		s = s.Mul(1 / (length + NormalEpsilon))
		normals[i] = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	}

	return normals, degenerate, nil
}

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
