// Package generator runs a full generation pass: building layouts for every
// LOD level, vertex normals, buffer packing and artifact output.
package generator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/towergen/internal/config"
	"github.com/Faultbox/towergen/internal/logger"
	"github.com/Faultbox/towergen/pkg/building"
	"github.com/Faultbox/towergen/pkg/gltfpack"
	"github.com/Faultbox/towergen/pkg/mesh"
)

// Summary describes a finished generation pass.
type Summary struct {
	Nodes      int
	Vertices   int
	Triangles  int
	Bytes      int
	Degenerate int      // Vertices that fell back to a zero normal
	Skipped    []string // Empty groups left out of the document
	Elapsed    time.Duration
}

// Build generates the building described by cfg and packs it. Nothing is
// written to disk.
func Build(cfg *config.Config) (*gltfpack.Artifact, *Summary, error) {
	start := time.Now()

	params := cfg.Building.Params()
	layouts, err := building.GenerateLODs(params, cfg.Building.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("generating layout: %w", err)
	}

	sum := &Summary{}
	var groups []mesh.Group

	for _, l := range layouts {
		logger.Debug("layout generated",
			zap.Int("lod", l.LOD),
			zap.Int("grid", l.Grid),
			zap.Int("columns", l.BoxCount(building.Columns)),
			zap.Int("beams", l.BoxCount(building.Beams)),
		)

		for _, g := range l.Groups() {
			if g.IsEmpty() {
				groups = append(groups, g)
				continue
			}

			g, degenerate, err := g.WithNormals()
			if err != nil {
				return nil, nil, err
			}
			if degenerate > 0 {
				logger.Warn("degenerate normals",
					zap.String("group", g.Name),
					zap.Int("lod", g.LOD),
					zap.Int("vertices", degenerate),
				)
				sum.Degenerate += degenerate
			}

			sum.Vertices += len(g.Vertices)
			sum.Triangles += g.TriangleCount()
			groups = append(groups, g)
		}
	}

	art, err := gltfpack.Pack(groups, gltfpack.Options{
		Generator: cfg.Output.Generator,
		Materials: cfg.Output.Materials,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("packing: %w", err)
	}
	if err := art.Verify(); err != nil {
		return nil, nil, err
	}

	for _, skip := range art.Skipped {
		logger.Info("skipped empty group", zap.Error(skip))
		sum.Skipped = append(sum.Skipped, skip.Error())
	}

	sum.Nodes = len(art.Document.Nodes)
	sum.Bytes = len(art.Binary)
	sum.Elapsed = time.Since(start)

	return art, sum, nil
}

// Run builds the artifact and writes it to cfg.Output.Path.
func Run(cfg *config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := gltfpack.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	art, sum, err := Build(cfg)
	if err != nil {
		return nil, err
	}

	if err := WriteArtifact(art, format, cfg.Output.Path); err != nil {
		return nil, err
	}

	logger.Info("artifact written",
		zap.String("path", cfg.Output.Path),
		zap.String("format", string(format)),
		zap.Int("nodes", sum.Nodes),
		zap.Int("vertices", sum.Vertices),
		zap.Int("triangles", sum.Triangles),
		zap.Int("bytes", sum.Bytes),
		zap.Duration("elapsed", sum.Elapsed),
	)
	return sum, nil
}
