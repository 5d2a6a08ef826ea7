package raster

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Rasterizer converts paths into anti-aliased coverage masks. Coverage is
// the exact signed area of each pixel covered by the path (nonzero fill),
// so results do not depend on a sample grid. A Rasterizer is reusable but
// not safe for concurrent use.
type Rasterizer struct {
	z *vector.Rasterizer
}

// NewRasterizer returns an empty Rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Mask rasterizes p into a w×h mask whose origin is the path's (0, 0).
func (r *Rasterizer) Mask(p *Path, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, max(0, w), max(0, h)))
	if w <= 0 || h <= 0 || p.IsEmpty() {
		return mask
	}

	if r.z == nil {
		r.z = vector.NewRasterizer(w, h)
	} else {
		r.z.Reset(w, h)
	}
	r.z.DrawOp = draw.Src

	open := false
	for _, s := range p.Segments {
		switch s.Op {
		case OpMoveTo:
			if open {
				r.z.ClosePath()
			}
			r.z.MoveTo(s.Pts[0].X, s.Pts[0].Y)
			open = true
		case OpLineTo:
			r.z.LineTo(s.Pts[0].X, s.Pts[0].Y)
		case OpQuadTo:
			r.z.QuadTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y)
		case OpCubicTo:
			r.z.CubeTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case OpClose:
			if open {
				r.z.ClosePath()
				open = false
			}
		}
	}
	if open {
		r.z.ClosePath()
	}

	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
