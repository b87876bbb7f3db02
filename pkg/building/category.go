package building

import (
	"fmt"

	"github.com/Faultbox/towergen/pkg/mesh"
)

// Category identifies one kind of building element. Categories are emitted in
// declaration order.
type Category int

// Element categories.
const (
	Slabs Category = iota
	Columns
	Beams
	Braces
	Core
	Walls
	SpatialZones

	categoryCount
)

// Categories returns every category in emission order.
func Categories() []Category {
	cats := make([]Category, categoryCount)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// String returns the group name used for the category.
func (c Category) String() string {
	switch c {
	case Slabs:
		return "Slabs"
	case Columns:
		return "Columns"
	case Beams:
		return "Beams"
	case Braces:
		return "Braces"
	case Core:
		return "Core"
	case Walls:
		return "Walls"
	case SpatialZones:
		return "SpatialZones"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Semantic returns whether the category is structure or occupiable space.
func (c Category) Semantic() mesh.Semantic {
	if c == SpatialZones {
		return mesh.SemanticSpatial
	}
	return mesh.SemanticStructure
}
