// Package text measures and draws the human-readable parts of a label.
//
// Fonts come from an ordered list of [Source] values tried in sequence; the
// first one that opens wins. [Builtin] never fails, so a [Loader] whose list
// ends with it always yields a face. Which source won changes glyph shapes
// and metrics, never whether a label can be produced.
package text

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Source is one candidate font.
type Source interface {
	// Open loads the font at size pixels per em.
	Open(size float64) (font.Face, error)
	// Name identifies the source in logs.
	Name() string
}

type fileSource string

// File is a TrueType font file at an absolute path.
func File(path string) Source { return fileSource(path) }

func (f fileSource) Open(size float64) (font.Face, error) {
	return gg.LoadFontFace(string(f), size)
}

func (f fileSource) Name() string { return string(f) }

type findSource string

// Find looks a font file up by name in the platform font directories.
func Find(filename string) Source { return findSource(filename) }

func (f findSource) Open(size float64) (font.Face, error) {
	path, err := findfont.Find(string(f))
	if err != nil {
		return nil, err
	}
	return gg.LoadFontFace(path, size)
}

func (f findSource) Name() string { return "find:" + string(f) }

type builtinSource struct{}

// Builtin is the 7x13 bitmap face shipped with golang.org/x/image. It
// ignores the requested size.
func Builtin() Source { return builtinSource{} }

func (builtinSource) Open(float64) (font.Face, error) { return basicfont.Face7x13, nil }

func (builtinSource) Name() string { return "builtin:7x13" }

// DefaultSources lists the well-known system locations of DejaVu Sans and
// Arial, bold weights first when bold is set, followed by a font directory
// search and the built-in face.
func DefaultSources(bold bool) []Source {
	var s []Source
	if bold {
		s = append(s,
			File("/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"),
			File("/Library/Fonts/Arial Bold.ttf"),
			File(`C:\Windows\Fonts\arialbd.ttf`),
		)
	}
	s = append(s,
		File("/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"),
		File("/Library/Fonts/Arial.ttf"),
		File(`C:\Windows\Fonts\arial.ttf`),
	)
	if bold {
		s = append(s, Find("DejaVuSans-Bold.ttf"))
	}
	return append(s, Find("DejaVuSans.ttf"), Builtin())
}

// Loader opens the first available font of an ordered source list.
type Loader struct {
	Sources []Source
	Logger  *log.Logger
}

// Load opens a face at size and reports which source provided it. When
// every source fails, including an empty list, the built-in face is used.
func (l Loader) Load(size float64) (font.Face, string) {
	logger := l.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	for _, src := range l.Sources {
		face, err := src.Open(size)
		if err == nil {
			logger.Debug("font loaded", "source", src.Name(), "size", size)
			return face, src.Name()
		}
		logger.Debug("font unavailable", "source", src.Name(), "err", err)
	}
	b := Builtin()
	face, _ := b.Open(size)
	logger.Debug("falling back to built-in font", "size", size)
	return face, b.Name()
}
