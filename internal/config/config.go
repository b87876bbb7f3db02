// Package config handles generator configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/towergen/pkg/building"
	"github.com/Faultbox/towergen/pkg/gltfpack"
)

// Config holds all generator settings.
type Config struct {
	Building BuildingConfig `yaml:"building"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BuildingConfig holds the parametric building description.
type BuildingConfig struct {
	Floors          int     `yaml:"floors"`
	FloorHeight     float32 `yaml:"floor_height"`
	Width           float32 `yaml:"width"`
	GridResolutions []int   `yaml:"grid_resolutions"` // One per LOD level, finest first

	ColumnSize     float32 `yaml:"column_size"`
	BeamHeight     float32 `yaml:"beam_height"`
	BeamWidth      float32 `yaml:"beam_width"`
	SlabThickness  float32 `yaml:"slab_thickness"`
	CoreSize       float32 `yaml:"core_size"`
	WallThickness  float32 `yaml:"wall_thickness"`
	BraceThickness float32 `yaml:"brace_thickness"`

	Core         bool `yaml:"core"`
	ShearWall    bool `yaml:"shear_wall"`
	Bracing      bool `yaml:"bracing"`
	SpatialZones bool `yaml:"spatial_zones"`

	Workers int `yaml:"workers"` // LOD levels generated in parallel; <= 1 is sequential
}

// OutputConfig holds artifact settings.
type OutputConfig struct {
	Path      string `yaml:"path"`
	Format    string `yaml:"format"` // gltf, glb or separate
	Materials bool   `yaml:"materials"`
	Generator string `yaml:"generator"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	p := building.DefaultParams()
	return &Config{
		Building: BuildingConfig{
			Floors:          p.Floors,
			FloorHeight:     p.FloorHeight,
			Width:           p.Width,
			GridResolutions: p.GridResolutions,
			ColumnSize:      p.ColumnSize,
			BeamHeight:      p.BeamHeight,
			BeamWidth:       p.BeamWidth,
			SlabThickness:   p.SlabThickness,
			CoreSize:        p.CoreSize,
			WallThickness:   p.WallThickness,
			BraceThickness:  p.BraceThickness,
			Core:            p.Core,
			ShearWall:       p.ShearWall,
			Bracing:         p.Bracing,
			SpatialZones:    p.SpatialZones,
			Workers:         1,
		},
		Output: OutputConfig{
			Path:      "tower.gltf",
			Format:    string(gltfpack.FormatEmbedded),
			Materials: true,
			Generator: "towergen",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params converts the building section to generator parameters.
func (b BuildingConfig) Params() building.Params {
	grids := make([]int, len(b.GridResolutions))
	copy(grids, b.GridResolutions)

	return building.Params{
		Floors:          b.Floors,
		FloorHeight:     b.FloorHeight,
		Width:           b.Width,
		GridResolutions: grids,
		ColumnSize:      b.ColumnSize,
		BeamHeight:      b.BeamHeight,
		BeamWidth:       b.BeamWidth,
		SlabThickness:   b.SlabThickness,
		CoreSize:        b.CoreSize,
		WallThickness:   b.WallThickness,
		BraceThickness:  b.BraceThickness,
		Core:            b.Core,
		ShearWall:       b.ShearWall,
		Bracing:         b.Bracing,
		SpatialZones:    b.SpatialZones,
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Building.Params().Validate(); err != nil {
		return fmt.Errorf("building: %w", err)
	}
	if _, err := gltfpack.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output: path is empty")
	}
	return nil
}
