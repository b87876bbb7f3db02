package gltfpack

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
)

const dataURIPrefix = "data:application/octet-stream;base64,"

// Format selects how the artifact is written.
type Format string

// Output formats.
const (
	FormatEmbedded Format = "gltf"     // JSON with the buffer as a base64 data URI
	FormatBinary   Format = "glb"      // Binary container with a BIN chunk
	FormatSeparate Format = "separate" // JSON plus an external .bin file
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatEmbedded, FormatBinary, FormatSeparate:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want gltf, glb or separate)", s)
	}
}

// WriteEmbedded writes a .gltf document with the buffer inlined as base64.
func (a *Artifact) WriteEmbedded(w io.Writer) error {
	// The encoder rebuilds data URIs from Data, so both must be set.
	doc := a.withBuffer(&gltf.Buffer{
		ByteLength: uint32(len(a.Binary)),
		URI:        dataURIPrefix + base64.StdEncoding.EncodeToString(a.Binary),
		Data:       a.Binary,
	})
	return encode(w, doc, false)
}

// WriteBinary writes a .glb container.
func (a *Artifact) WriteBinary(w io.Writer) error {
	doc := a.withBuffer(&gltf.Buffer{
		ByteLength: uint32(len(a.Binary)),
		Data:       a.Binary,
	})
	return encode(w, doc, true)
}

// WriteSeparate writes the document to w, referencing binURI, and the raw
// buffer to bin.
func (a *Artifact) WriteSeparate(w io.Writer, bin io.Writer, binURI string) error {
	if _, err := bin.Write(a.Binary); err != nil {
		return fmt.Errorf("writing buffer: %w", err)
	}
	doc := a.withBuffer(&gltf.Buffer{
		ByteLength: uint32(len(a.Binary)),
		URI:        binURI,
	})
	return encode(w, doc, false)
}

// withBuffer returns a shallow copy of the document using buf as its only
// buffer, leaving the artifact untouched.
func (a *Artifact) withBuffer(buf *gltf.Buffer) *gltf.Document {
	doc := *a.Document
	doc.Buffers = []*gltf.Buffer{buf}
	return &doc
}

func encode(w io.Writer, doc *gltf.Document, binary bool) error {
	enc := gltf.NewEncoder(w)
	// Buffers with a plain URI carry no Data, so the encoder never writes
	// them; the caller owns the .bin file.
	enc.AsBinary = binary
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding glTF: %w", err)
	}
	return nil
}
