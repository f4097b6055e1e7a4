package label

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/binlabel/pkg/errors"
	"github.com/matzehuels/binlabel/pkg/observability"
)

// Result describes a saved label.
type Result struct {
	Path   string
	Width  int
	Height int
	DPI    int
	// SHA256 is the hex digest of the written PNG. Identical inputs and
	// fonts produce identical digests.
	SHA256 string
}

// Generate composes spec and saves it to spec.Out, or to DefaultOutPath
// when Out is empty.
func (g *Generator) Generate(spec Spec) (Result, error) {
	spec = spec.WithDefaults()
	img, err := g.Compose(spec)
	if err != nil {
		return Result{}, err
	}
	sum, err := Save(img, spec.Out)
	if err != nil {
		return Result{}, err
	}
	g.logger.Debug("label saved", "path", spec.Out, "sha256", sum)
	b := img.Bounds()
	return Result{Path: spec.Out, Width: b.Dx(), Height: b.Dy(), DPI: g.cfg.DPI, SHA256: sum}, nil
}

// Encode writes img as PNG. Opaque images are written without alpha.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Save encodes img as PNG and writes it to path, creating parent
// directories. The data goes to a temporary file in the same directory
// that is renamed into place, so path never holds a partial image. It
// returns the SHA-256 of the written bytes.
func Save(img image.Image, path string) (string, error) {
	data, err := Encode(img)
	if err != nil {
		return "", err
	}
	err = write(data, path)
	observability.Label().OnSave(path, len(data), err)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

func write(data []byte, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".binlabel-*.png")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create temporary file in %s", dir)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", path)
	}
	return nil
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
