// Package gltfpack serializes mesh groups into a glTF 2.0 document and one
// tightly packed binary buffer.
//
// Buffer layout, for each group in input order:
//
//	[positions: count * 3 float32][normals: count * 3 float32][indices: n * uint32]
//
// All values are little-endian and there is no padding between sections or
// groups, so every buffer view starts exactly where the previous one ended.
package gltfpack

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/towergen/pkg/mesh"
)

// Packing errors.
var (
	ErrIndexOverflow  = mesh.ErrIndexOverflow
	ErrEmptyMeshGroup = errors.New("empty mesh group")
	ErrBufferTooLarge = errors.New("buffer exceeds 32-bit byte length")
)

// Element sizes in bytes.
const (
	vec3Size   = 3 * 4
	scalarSize = 4
)

// Material indices assigned when Options.Materials is set.
const (
	materialStructure = 0
	materialSpatial   = 1
)

// Options controls document emission.
type Options struct {
	Generator string // asset.generator, omitted when empty
	Materials bool   // Emit PBR materials for structure and spatial groups
}

// Artifact is a packed document and its binary buffer.
type Artifact struct {
	Document *gltf.Document
	Binary   []byte

	// Skipped holds one ErrEmptyMeshGroup error per group left out of the document.
	Skipped []error
}

// Pack serializes the groups in order. Groups without vertices are skipped and
// reported in Artifact.Skipped rather than emitted as zero-length accessors.
func Pack(groups []mesh.Group, opts Options) (*Artifact, error) {
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: opts.Generator},
		Scene: gltf.Index(0),
	}
	if opts.Materials {
		doc.Materials = defaultMaterials()
	}

	p := &packer{doc: doc}
	art := &Artifact{Document: doc}

	for _, g := range groups {
		if g.IsEmpty() {
			art.Skipped = append(art.Skipped, fmt.Errorf("%w: %s_LOD%d", ErrEmptyMeshGroup, g.Name, g.LOD))
			continue
		}
		if err := p.addGroup(g, opts.Materials); err != nil {
			return nil, err
		}
	}

	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no non-empty groups to pack", ErrEmptyMeshGroup)
	}

	roots := make([]uint32, len(doc.Nodes))
	for i := range roots {
		roots[i] = uint32(i)
	}
	doc.Scenes = []*gltf.Scene{{Nodes: roots}}

	doc.Buffers = []*gltf.Buffer{{ByteLength: uint32(len(p.buf)), Data: p.buf}}
	art.Binary = p.buf

	return art, nil
}

// packer appends streams to the shared buffer and records views and accessors.
type packer struct {
	doc *gltf.Document
	buf []byte
}

func (p *packer) addGroup(g mesh.Group, materials bool) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if uint64(len(g.Vertices)) > math.MaxUint32 {
		return fmt.Errorf("%w: group %q has %d vertices", ErrIndexOverflow, g.Name, len(g.Vertices))
	}

	// Projected size checked up front so no partial group is written.
	size := uint64(len(p.buf)) + uint64(len(g.Vertices))*vec3Size + uint64(len(g.Indices))*scalarSize
	if g.Normals != nil {
		size += uint64(len(g.Normals)) * vec3Size
	}
	if size > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes after group %q", ErrBufferTooLarge, size, g.Name)
	}

	bounds := g.Bounds()
	posAcc := p.addVec3(g.Vertices, &bounds)

	attrs := gltf.Attribute{gltf.POSITION: posAcc}
	if g.Normals != nil {
		attrs[gltf.NORMAL] = p.addVec3(g.Normals, nil)
	}

	prim := &gltf.Primitive{
		Attributes: attrs,
		Indices:    gltf.Index(p.addIndices(g.Indices)),
	}
	if materials {
		mat := uint32(materialStructure)
		if g.Semantic == mesh.SemanticSpatial {
			mat = materialSpatial
		}
		prim.Material = gltf.Index(mat)
	}

	name := fmt.Sprintf("%s_LOD%d", g.Name, g.LOD)

	p.doc.Meshes = append(p.doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	p.doc.Nodes = append(p.doc.Nodes, &gltf.Node{
		Name: name,
		Mesh: gltf.Index(uint32(len(p.doc.Meshes) - 1)),
		Extras: map[string]any{
			"semantic": string(g.Semantic),
			"lod":      g.LOD,
		},
	})
	return nil
}

// addVec3 writes float triples and returns the accessor index. Bounds, when
// given, become the accessor min/max.
func (p *packer) addVec3(values []mgl32.Vec3, bounds *mesh.Bounds) uint32 {
	offset := len(p.buf)
	for _, v := range values {
		p.buf = binary.LittleEndian.AppendUint32(p.buf, math.Float32bits(v[0]))
		p.buf = binary.LittleEndian.AppendUint32(p.buf, math.Float32bits(v[1]))
		p.buf = binary.LittleEndian.AppendUint32(p.buf, math.Float32bits(v[2]))
	}

	view := p.addView(offset, gltf.TargetArrayBuffer)
	acc := &gltf.Accessor{
		BufferView:    gltf.Index(view),
		ComponentType: gltf.ComponentFloat,
		Count:         uint32(len(values)),
		Type:          gltf.AccessorVec3,
	}
	if bounds != nil {
		acc.Min = []float32{bounds.Min[0], bounds.Min[1], bounds.Min[2]}
		acc.Max = []float32{bounds.Max[0], bounds.Max[1], bounds.Max[2]}
	}
	return p.addAccessor(acc)
}

// addIndices writes uint32 indices and returns the accessor index.
func (p *packer) addIndices(indices []uint32) uint32 {
	offset := len(p.buf)
	for _, idx := range indices {
		p.buf = binary.LittleEndian.AppendUint32(p.buf, idx)
	}

	view := p.addView(offset, gltf.TargetElementArrayBuffer)
	return p.addAccessor(&gltf.Accessor{
		BufferView:    gltf.Index(view),
		ComponentType: gltf.ComponentUint,
		Count:         uint32(len(indices)),
		Type:          gltf.AccessorScalar,
	})
}

// addView records the bytes written since offset as a buffer view.
func (p *packer) addView(offset int, target gltf.Target) uint32 {
	p.doc.BufferViews = append(p.doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: uint32(offset),
		ByteLength: uint32(len(p.buf) - offset),
		Target:     target,
	})
	return uint32(len(p.doc.BufferViews) - 1)
}

func (p *packer) addAccessor(acc *gltf.Accessor) uint32 {
	p.doc.Accessors = append(p.doc.Accessors, acc)
	return uint32(len(p.doc.Accessors) - 1)
}

// defaultMaterials returns the structure and spatial materials.
func defaultMaterials() []*gltf.Material {
	return []*gltf.Material{
		materialStructure: {
			Name: "Structure",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float32{0.75, 0.75, 0.8, 1},
				MetallicFactor:  gltf.Float(0.05),
				RoughnessFactor: gltf.Float(0.9),
			},
			AlphaMode: gltf.AlphaOpaque,
		},
		materialSpatial: {
			Name: "SpatialZone",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float32{0.3, 0.6, 0.9, 0.25},
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(1),
			},
			AlphaMode:   gltf.AlphaBlend,
			DoubleSided: true,
		},
	}
}
