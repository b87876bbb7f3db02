// Package mesh provides the geometry primitives used to assemble building meshes:
// box prisms, smoothed vertex normals, bounds and incremental mesh groups.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry errors.
var (
	ErrInvalidDimension = errors.New("invalid dimension: must be positive")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrIndexOverflow    = errors.New("index exceeds 32-bit unsigned range")
)

// Vertex is a position in world units.
type Vertex = mgl32.Vec3

// BoxVertexCount and BoxIndexCount describe every box produced by Build.
const (
	BoxVertexCount = 8
	BoxIndexCount  = 36
)

// boxIndices covers the six faces with two triangles each, wound outward.
// Faces: +Z, +X, -Z, -X, +Y, -Y.
var boxIndices = [BoxIndexCount]uint32{
	0, 1, 2, 2, 3, 0,
	1, 5, 6, 6, 2, 1,
	5, 4, 7, 7, 6, 5,
	4, 0, 3, 3, 7, 4,
	3, 2, 6, 6, 7, 3,
	4, 5, 1, 1, 0, 4,
}

// Box is an axis-aligned rectangular prism.
type Box struct {
	Width  float32 // X extent
	Height float32 // Y extent
	Depth  float32 // Z extent
	Center mgl32.Vec3
}

// NewBox returns a box after checking that every dimension is positive.
func NewBox(width, height, depth float32, center mgl32.Vec3) (Box, error) {
	// Written as !(x > 0) so NaN is rejected too.
	if !(width > 0) || !(height > 0) || !(depth > 0) {
		return Box{}, fmt.Errorf("%w: box %gx%gx%g", ErrInvalidDimension, width, height, depth)
	}
	return Box{Width: width, Height: height, Depth: depth, Center: center}, nil
}

// Build returns the 8 corner vertices and 36 triangle indices of the box.
// The first four vertices form the +Z face, the last four the -Z face,
// both ordered (-x,-y) (+x,-y) (+x,+y) (-x,+y).
func (b Box) Build() ([]Vertex, []uint32) {
	hw, hh, hd := b.Width/2, b.Height/2, b.Depth/2
	c := b.Center

	vertices := []Vertex{
		{c[0] - hw, c[1] - hh, c[2] + hd},
		{c[0] + hw, c[1] - hh, c[2] + hd},
		{c[0] + hw, c[1] + hh, c[2] + hd},
		{c[0] - hw, c[1] + hh, c[2] + hd},
		{c[0] - hw, c[1] - hh, c[2] - hd},
		{c[0] + hw, c[1] - hh, c[2] - hd},
		{c[0] + hw, c[1] + hh, c[2] - hd},
		{c[0] - hw, c[1] + hh, c[2] - hd},
	}

	indices := make([]uint32, BoxIndexCount)
	copy(indices, boxIndices[:])

	return vertices, indices
}

// Bounds returns the axis-aligned bounds of the box.
func (b Box) Bounds() Bounds {
	half := mgl32.Vec3{b.Width / 2, b.Height / 2, b.Depth / 2}
	return Bounds{Min: b.Center.Sub(half), Max: b.Center.Add(half)}
}
