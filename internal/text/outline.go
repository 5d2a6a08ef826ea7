package text

import (
	"fmt"

	"golang.org/x/image/font/sfnt"

	"github.com/grindlemire/go-gui/internal/raster"
)

// AppendOutline appends the outline of glyph id at size to p with its
// origin (left edge on the baseline) at (x, y). Glyphs without an outline,
// such as spaces, append nothing.
func (f *Font) AppendOutline(p *raster.Path, id uint16, size float64, x, y float32) error {
	segs, err := f.outlines.LoadGlyph(&f.buf, sfnt.GlyphIndex(id), toFixed(size), nil)
	if err != nil {
		return fmt.Errorf("load glyph %d: %w", id, err)
	}
	for _, s := range segs {
		pt := func(i int) (float32, float32) {
			return x + fromFixed(s.Args[i].X), y + fromFixed(s.Args[i].Y)
		}
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			p.MoveTo(pt(0))
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(0))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(0)
			tx, ty := pt(1)
			p.QuadTo(cx, cy, tx, ty)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(0)
			c2x, c2y := pt(1)
			tx, ty := pt(2)
			p.CubicTo(c1x, c1y, c2x, c2y, tx, ty)
		}
	}
	return nil
}

// Outline returns the outlines of every glyph in run with the run's origin
// at (x, baseline). Glyphs that fail to load are skipped; the first error is
// returned alongside the partial path.
func (f *Font) Outline(run Run, x, baseline float32) (*raster.Path, error) {
	p := &raster.Path{}
	var first error
	for _, g := range run.Glyphs {
		err := f.AppendOutline(p, g.ID, run.Size, x+g.X, baseline+g.Y)
		if err != nil && first == nil {
			first = err
		}
	}
	return p, first
}
