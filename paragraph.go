package gui

import (
	"math"

	"github.com/grindlemire/go-gui/internal/raster"
)

// unwrapped is the width paragraphs are wrapped at to find their natural
// size: only mandatory breaks end a line.
const unwrapped = math.MaxInt32

// wrapTo re-wraps the paragraph for width unless its lines already fit
// that width.
func (c *textContent) wrapTo(width int) {
	if c.wrapped && c.wrapWidth == width {
		return
	}
	c.lines = c.lines[:0]
	for _, line := range c.face.Wrap(c.text, c.px, width) {
		c.lines = append(c.lines, c.face.Shape(line, c.px))
	}
	c.wrapWidth, c.wrapped = width, true
}

// linesHeight is the height of the wrapped lines stacked at the font's line
// height.
func (c *textContent) linesHeight() int {
	return len(c.lines) * c.run.Metrics.LineHeight
}

// linesWidth is the width of the widest wrapped line.
func (c *textContent) linesWidth() int {
	w := 0
	for _, run := range c.lines {
		w = max(w, run.PixelWidth())
	}
	return w
}

// outlineLines returns the outlines of every wrapped line, one line height
// apart.
func (c *textContent) outlineLines() (*raster.Path, error) {
	path := &raster.Path{}
	var first error
	m := c.run.Metrics
	for k, run := range c.lines {
		p, err := c.face.Outline(run, 0, float32(m.Ascent+k*m.LineHeight))
		if err != nil && first == nil {
			first = err
		}
		path.Segments = append(path.Segments, p.Segments...)
	}
	return path, first
}
