// Package building generates parametric multi-story building structures as
// sets of mesh groups: slabs, columns, beams, bracing, core, shear walls and
// spatial zones.
package building

import (
	"errors"
	"fmt"

	"github.com/Faultbox/towergen/pkg/mesh"
)

// Layout errors.
var (
	ErrInvalidGridResolution = errors.New("invalid grid resolution: need at least 2 points per side")
	ErrInvalidFloorCount     = errors.New("invalid floor count: need at least 1 floor")
)

// Params describes the building to generate. Lengths are in world units.
type Params struct {
	Floors      int     // Number of slabs
	FloorHeight float32 // Floor-to-floor height
	Width       float32 // Square footprint side

	// GridResolutions lists the column grid points per side, one per LOD level,
	// finest first.
	GridResolutions []int

	ColumnSize     float32
	BeamHeight     float32
	BeamWidth      float32
	SlabThickness  float32
	CoreSize       float32
	WallThickness  float32
	BraceThickness float32

	Core         bool // Central core per inter-floor gap
	ShearWall    bool // Edge shear wall per inter-floor gap
	Bracing      bool // One brace column per story
	SpatialZones bool // Occupiable volume per floor
}

// DefaultParams returns the reference five-story building with two LOD levels.
func DefaultParams() Params {
	return Params{
		Floors:          5,
		FloorHeight:     3.5,
		Width:           20,
		GridResolutions: []int{5, 3},
		ColumnSize:      0.4,
		BeamHeight:      0.5,
		BeamWidth:       0.4,
		SlabThickness:   0.3,
		CoreSize:        4,
		WallThickness:   0.3,
		BraceThickness:  0.2,
		Core:            true,
		ShearWall:       true,
		Bracing:         false,
		SpatialZones:    true,
	}
}

// Validate checks every parameter before any geometry is produced.
func (p Params) Validate() error {
	if p.Floors < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidFloorCount, p.Floors)
	}
	if len(p.GridResolutions) == 0 {
		return fmt.Errorf("%w: no resolutions given", ErrInvalidGridResolution)
	}
	for i, n := range p.GridResolutions {
		if err := validateGrid(n); err != nil {
			return fmt.Errorf("LOD%d: %w", i, err)
		}
	}

	dims := []struct {
		name  string
		value float32
		used  bool
	}{
		{"floor_height", p.FloorHeight, true},
		{"width", p.Width, true},
		{"slab_thickness", p.SlabThickness, true},
		{"column_size", p.ColumnSize, p.Floors > 1},
		{"beam_height", p.BeamHeight, p.Floors > 1},
		{"beam_width", p.BeamWidth, p.Floors > 1},
		{"core_size", p.CoreSize, p.Core && p.Floors > 1},
		{"wall_thickness", p.WallThickness, p.ShearWall && p.Floors > 1},
		{"brace_thickness", p.BraceThickness, p.Bracing && p.Floors > 1},
	}
	for _, d := range dims {
		if d.used && !(d.value > 0) {
			return fmt.Errorf("%w: %s = %g", mesh.ErrInvalidDimension, d.name, d.value)
		}
	}
	return nil
}

func validateGrid(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidGridResolution, n)
	}
	return nil
}

// spacing returns the distance between adjacent grid lines.
func (p Params) spacing(grid int) float32 {
	return p.Width / float32(grid-1)
}
