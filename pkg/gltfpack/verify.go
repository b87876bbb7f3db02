package gltfpack

import (
	"errors"
	"fmt"
	"sort"

	"github.com/qmuntal/gltf"
)

// ErrLayoutMismatch reports a document whose views or accessors do not match its buffer.
var ErrLayoutMismatch = errors.New("buffer layout mismatch")

// Verify checks that the buffer views tile the binary buffer exactly: they do
// not overlap, leave no gaps, and their lengths sum to the buffer length. It
// also checks that every accessor's count times element size equals the
// length of its view.
func (a *Artifact) Verify() error {
	doc := a.Document
	if len(doc.Buffers) != 1 {
		return fmt.Errorf("%w: expected 1 buffer, got %d", ErrLayoutMismatch, len(doc.Buffers))
	}
	if int(doc.Buffers[0].ByteLength) != len(a.Binary) {
		return fmt.Errorf("%w: buffer declares %d bytes, have %d",
			ErrLayoutMismatch, doc.Buffers[0].ByteLength, len(a.Binary))
	}

	views := make([]*gltf.BufferView, len(doc.BufferViews))
	copy(views, doc.BufferViews)
	sort.Slice(views, func(i, j int) bool {
		return views[i].ByteOffset < views[j].ByteOffset
	})

	var end uint64
	for _, v := range views {
		if uint64(v.ByteOffset) != end {
			return fmt.Errorf("%w: view at %d, expected %d", ErrLayoutMismatch, v.ByteOffset, end)
		}
		end += uint64(v.ByteLength)
	}
	if end != uint64(len(a.Binary)) {
		return fmt.Errorf("%w: views cover %d of %d bytes", ErrLayoutMismatch, end, len(a.Binary))
	}

	for i, acc := range doc.Accessors {
		if acc.BufferView == nil || int(*acc.BufferView) >= len(doc.BufferViews) {
			return fmt.Errorf("%w: accessor %d has no valid buffer view", ErrLayoutMismatch, i)
		}
		size, err := elementSize(acc)
		if err != nil {
			return fmt.Errorf("accessor %d: %w", i, err)
		}
		view := doc.BufferViews[*acc.BufferView]
		if uint64(acc.Count)*size != uint64(view.ByteLength) {
			return fmt.Errorf("%w: accessor %d is %d x %d bytes, view is %d",
				ErrLayoutMismatch, i, acc.Count, size, view.ByteLength)
		}
	}

	return nil
}

// elementSize returns the byte size of one accessor element.
func elementSize(acc *gltf.Accessor) (uint64, error) {
	var component uint64
	switch acc.ComponentType {
	case gltf.ComponentFloat, gltf.ComponentUint:
		component = 4
	case gltf.ComponentShort, gltf.ComponentUshort:
		component = 2
	case gltf.ComponentByte, gltf.ComponentUbyte:
		component = 1
	default:
		return 0, fmt.Errorf("%w: component type %d", ErrLayoutMismatch, acc.ComponentType)
	}

	switch acc.Type {
	case gltf.AccessorScalar:
		return component, nil
	case gltf.AccessorVec2:
		return 2 * component, nil
	case gltf.AccessorVec3:
		return 3 * component, nil
	case gltf.AccessorVec4:
		return 4 * component, nil
	default:
		return 0, fmt.Errorf("%w: accessor type %v", ErrLayoutMismatch, acc.Type)
	}
}
