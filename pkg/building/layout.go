package building

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/towergen/pkg/mesh"
)

// Spatial zones are inset from the footprint and floor height.
const (
	zoneFootprintScale = 0.9
	zoneHeightScale    = 0.8
)

// Layout is one generated building at a single grid resolution. Each category
// has its own accumulator, so layouts never share mutable state.
type Layout struct {
	Grid   int // Column grid points per side
	LOD    int // 0 is the finest level
	groups [categoryCount]*mesh.Accumulator
}

func newLayout(grid, lod int) *Layout {
	l := &Layout{Grid: grid, LOD: lod}
	for _, c := range Categories() {
		l.groups[c] = mesh.NewAccumulator(c.String(), c.Semantic())
	}
	return l
}

// Group returns a snapshot of one category's mesh, tagged with the layout's LOD.
func (l *Layout) Group(c Category) mesh.Group {
	return l.groups[c].Group(l.LOD)
}

// Groups returns every category in emission order, empty ones included.
func (l *Layout) Groups() []mesh.Group {
	groups := make([]mesh.Group, 0, categoryCount)
	for _, c := range Categories() {
		groups = append(groups, l.Group(c))
	}
	return groups
}

// BoxCount returns the number of boxes emitted for a category.
func (l *Layout) BoxCount(c Category) int {
	return l.groups[c].VertexCount() / mesh.BoxVertexCount
}

// addBox emits one box into the category.
func (l *Layout) addBox(c Category, w, h, d float32, center mgl32.Vec3) error {
	box, err := mesh.NewBox(w, h, d, center)
	if err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	return l.groups[c].AddBox(box)
}

// Generate builds the layout for LOD level lod, using p.GridResolutions[lod].
// Parameters are validated before any geometry is emitted.
func Generate(p Params, lod int) (*Layout, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if lod < 0 || lod >= len(p.GridResolutions) {
		return nil, fmt.Errorf("%w: no resolution for LOD%d", ErrInvalidGridResolution, lod)
	}
	return generate(p, p.GridResolutions[lod], lod)
}

// GenerateGrid builds a single layout at the given grid resolution, tagged LOD0.
func GenerateGrid(p Params, grid int) (*Layout, error) {
	p.GridResolutions = []int{grid}
	return Generate(p, 0)
}

func generate(p Params, grid, lod int) (*Layout, error) {
	l := newLayout(grid, lod)
	h := p.FloorHeight

	for f := 0; f < p.Floors; f++ {
		y := float32(f) * h

		if err := l.addBox(Slabs, p.Width, p.SlabThickness, p.Width, mgl32.Vec3{0, y, 0}); err != nil {
			return nil, err
		}

		if p.SpatialZones {
			zw := p.Width * zoneFootprintScale
			if err := l.addBox(SpatialZones, zw, h*zoneHeightScale, zw, mgl32.Vec3{0, y + h/2, 0}); err != nil {
				return nil, err
			}
		}

		// Nothing stands on the roof slab.
		if f == p.Floors-1 {
			continue
		}

		if err := l.addStory(p, grid, y); err != nil {
			return nil, fmt.Errorf("floor %d: %w", f, err)
		}
	}

	// Core and shear wall fill each gap between consecutive slabs.
	for f := 0; f < p.Floors-1; f++ {
		y := float32(f)*h + h/2

		if p.Core {
			if err := l.addBox(Core, p.CoreSize, h, p.CoreSize, mgl32.Vec3{0, y, 0}); err != nil {
				return nil, err
			}
		}
		if p.ShearWall {
			if err := l.addBox(Walls, p.WallThickness, h, p.Width, mgl32.Vec3{-p.Width / 2, y, 0}); err != nil {
				return nil, err
			}
		}
	}

	return l, nil
}

// addStory emits the columns, beams and brace between the slab at y and the next one.
func (l *Layout) addStory(p Params, grid int, y float32) error {
	h := p.FloorHeight
	s := p.spacing(grid)
	origin := -p.Width / 2
	beamY := y + h - p.BeamHeight/2

	for gx := 0; gx < grid; gx++ {
		for gz := 0; gz < grid; gz++ {
			x := origin + float32(gx)*s
			z := origin + float32(gz)*s
			if err := l.addBox(Columns, p.ColumnSize, h, p.ColumnSize, mgl32.Vec3{x, y + h/2, z}); err != nil {
				return err
			}
		}
	}

	// Beams along X, one per grid cell on every Z line.
	for gz := 0; gz < grid; gz++ {
		z := origin + float32(gz)*s
		for gx := 0; gx < grid-1; gx++ {
			start := origin + float32(gx)*s
			mid := (start + start + s) / 2
			if err := l.addBox(Beams, s, p.BeamHeight, p.BeamWidth, mgl32.Vec3{mid, beamY, z}); err != nil {
				return err
			}
		}
	}

	// Beams along Z.
	for gx := 0; gx < grid; gx++ {
		x := origin + float32(gx)*s
		for gz := 0; gz < grid-1; gz++ {
			start := origin + float32(gz)*s
			mid := (start + start + s) / 2
			if err := l.addBox(Beams, p.BeamWidth, p.BeamHeight, s, mgl32.Vec3{x, beamY, mid}); err != nil {
				return err
			}
		}
	}

	// The brace is a vertical member at the centre of the first grid cell,
	// not a diagonal between columns.
	if p.Bracing {
		c := origin + s/2
		if err := l.addBox(Braces, p.BraceThickness, h, p.BraceThickness, mgl32.Vec3{c, y + h/2, c}); err != nil {
			return err
		}
	}

	return nil
}
