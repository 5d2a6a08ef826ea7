// Package text measures, shapes and wraps text runs and turns the shaped
// glyphs into vector outlines for the rasterizer.
package text

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ErrNoData is returned when parsing an empty font file.
var ErrNoData = errors.New("empty font data")

// Font is a parsed font usable at any pixel size. A Font carries scratch
// buffers and must not be used from several goroutines at once.
type Font struct {
	outlines *sfnt.Font
	face     *font.Face
	buf      sfnt.Buffer
	shaper   shaping.HarfbuzzShaper
}

// Parse parses TrueType or OpenType font data.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrNoData
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font outlines: %w", err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font tables: %w", err)
	}
	return &Font{outlines: outlines, face: face}, nil
}

// Default parses the bundled Go Regular font. Every call returns a new
// Font, so instances on different goroutines never share scratch buffers.
func Default() (*Font, error) {
	return Parse(goregular.TTF)
}

// Name returns the font's full name, or "" if it has none.
func (f *Font) Name() string {
	name, err := f.outlines.Name(&f.buf, sfnt.NameIDFull)
	if err != nil {
		return ""
	}
	return name
}

// Metrics holds the vertical metrics of a font at a size, in whole pixels.
type Metrics struct {
	Ascent     int // baseline to top
	Descent    int // baseline to bottom, positive
	LineHeight int
}

// Metrics returns the vertical metrics at size pixels per em.
func (f *Font) Metrics(size float64) Metrics {
	m, err := f.outlines.Metrics(&f.buf, toFixed(size), xfont.HintingNone)
	if err != nil {
		return Metrics{}
	}
	out := Metrics{Ascent: m.Ascent.Ceil(), Descent: m.Descent.Ceil()}
	out.LineHeight = max(m.Height.Ceil(), out.Ascent+out.Descent)
	return out
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
