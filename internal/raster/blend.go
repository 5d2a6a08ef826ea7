// Package raster holds the pixel primitives of the renderer: premultiplied
// "over" compositing into an *image.RGBA, anti-aliased coverage masks for
// paths, deterministic bitmap resampling and the damage rectangle set.
//
// All arithmetic is integer and exact, so identical input produces
// bit-identical output.
package raster

import (
	"image"
	"image/color"
)

// div255 returns x/255 rounded to nearest, exact for x in [0, 255*255].
func div255(x uint32) uint32 {
	x += 128
	return (x + x>>8) >> 8
}

func mulDiv255(a, b uint8) uint8 {
	return uint8(div255(uint32(a) * uint32(b)))
}

// over composites premultiplied src scaled by coverage onto the pixel at p.
// dst = src*cov + dst*(1 - src_a*cov) per channel.
func over(p []uint8, src color.RGBA, cov uint8) {
	if cov == 0 || src.A == 0 {
		return
	}
	sr, sg, sb, sa := src.R, src.G, src.B, src.A
	if cov != 255 {
		sr = mulDiv255(sr, cov)
		sg = mulDiv255(sg, cov)
		sb = mulDiv255(sb, cov)
		sa = mulDiv255(sa, cov)
	}
	if sa == 255 {
		p[0], p[1], p[2], p[3] = sr, sg, sb, 255
		return
	}
	inv := uint32(255 - sa)
	p[0] = sr + uint8(div255(uint32(p[0])*inv))
	p[1] = sg + uint8(div255(uint32(p[1])*inv))
	p[2] = sb + uint8(div255(uint32(p[2])*inv))
	p[3] = sa + uint8(div255(uint32(p[3])*inv))
}

// Canvas composites into an *image.RGBA, never touching pixels outside its
// clip rectangle.
type Canvas struct {
	img  *image.RGBA
	clip image.Rectangle
}

// NewCanvas returns a canvas over img clipped to its bounds.
func NewCanvas(img *image.RGBA) *Canvas {
	return &Canvas{img: img, clip: img.Bounds()}
}

// Image returns the target image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// SetClip restricts painting to r intersected with the image bounds.
func (c *Canvas) SetClip(r image.Rectangle) {
	c.clip = r.Intersect(c.img.Bounds())
}

// Clip returns the current clip rectangle.
func (c *Canvas) Clip() image.Rectangle {
	return c.clip
}

// Clear replaces every pixel of r (within the clip) with col.
func (c *Canvas) Clear(r image.Rectangle, col Color) {
	r = r.Intersect(c.clip)
	if r.Empty() {
		return
	}
	pm := col.Premultiplied()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := c.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			c.img.Pix[i], c.img.Pix[i+1], c.img.Pix[i+2], c.img.Pix[i+3] = pm.R, pm.G, pm.B, pm.A
			i += 4
		}
	}
}

// FillRect composites col over r.
func (c *Canvas) FillRect(r image.Rectangle, col Color) {
	r = r.Intersect(c.clip)
	if r.Empty() || col.IsTransparent() {
		return
	}
	pm := col.Premultiplied()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := c.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			over(c.img.Pix[i:i+4:i+4], pm, 255)
			i += 4
		}
	}
}

// DrawMask composites col through the coverage mask. The mask's bounds
// origin is placed at at.
func (c *Canvas) DrawMask(at image.Point, mask *image.Alpha, col Color) {
	if mask == nil || col.IsTransparent() {
		return
	}
	mb := mask.Bounds()
	r := mb.Sub(mb.Min).Add(at).Intersect(c.clip)
	if r.Empty() {
		return
	}
	pm := col.Premultiplied()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := c.img.PixOffset(r.Min.X, y)
		m := mask.PixOffset(mb.Min.X+r.Min.X-at.X, mb.Min.Y+y-at.Y)
		for x := r.Min.X; x < r.Max.X; x++ {
			over(c.img.Pix[i:i+4:i+4], pm, mask.Pix[m])
			i += 4
			m++
		}
	}
}

// DrawImage composites the premultiplied src with its bounds origin at at.
func (c *Canvas) DrawImage(at image.Point, src *image.RGBA) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	r := sb.Sub(sb.Min).Add(at).Intersect(c.clip)
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := c.img.PixOffset(r.Min.X, y)
		s := src.PixOffset(sb.Min.X+r.Min.X-at.X, sb.Min.Y+y-at.Y)
		for x := r.Min.X; x < r.Max.X; x++ {
			px := color.RGBA{R: src.Pix[s], G: src.Pix[s+1], B: src.Pix[s+2], A: src.Pix[s+3]}
			over(c.img.Pix[i:i+4:i+4], px, 255)
			i += 4
			s += 4
		}
	}
}
