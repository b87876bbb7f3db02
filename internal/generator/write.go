package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/towergen/pkg/gltfpack"
)

// WriteArtifact writes the artifact to path in the given format. Files are
// written to temporaries and renamed into place, so a failed run leaves no
// partial output. The separate format also writes <name>.bin next to path.
func WriteArtifact(art *gltfpack.Artifact, format gltfpack.Format, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	switch format {
	case gltfpack.FormatEmbedded:
		return writeAtomic(path, art.WriteEmbedded)

	case gltfpack.FormatBinary:
		return writeAtomic(path, art.WriteBinary)

	case gltfpack.FormatSeparate:
		binName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".bin"
		binPath := filepath.Join(filepath.Dir(path), binName)

		// The raw buffer goes first so the document never references a missing file.
		err := writeAtomic(binPath, func(w io.Writer) error {
			_, err := w.Write(art.Binary)
			return err
		})
		if err != nil {
			return err
		}
		return writeAtomic(path, func(w io.Writer) error {
			return art.WriteSeparate(w, io.Discard, binName)
		})

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeAtomic streams fn's output to a temporary file beside path and renames
// it over path on success.
func writeAtomic(path string, fn func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}
