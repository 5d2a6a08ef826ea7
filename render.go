package gui

import (
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/grindlemire/go-gui/internal/layout"
	"github.com/grindlemire/go-gui/internal/raster"
)

// CaretBlink is the time the caret stays visible, then hidden.
const CaretBlink = 500 * time.Millisecond

// Frame advances the instance to time t: it re-shapes edited text, lays
// out dirty subtrees, and repaints the damaged parts of the output. Pixels
// outside the damage are left untouched.
func (i *Instance) Frame(t time.Duration) FrameStats {
	i.now = t
	i.frames++
	stats := FrameStats{Frame: i.frames}

	root, err := i.tree.get(i.tree.root)
	if err == nil {
		i.blink()
		i.prepare(root)
		b := i.out.Bounds()
		layout.Calculate(root, b.Dx(), b.Dy())
		i.collectDamage(root)
	}

	i.damage.Clip(i.out.Bounds())
	for _, r := range i.damage.Rects() {
		i.canvas.SetClip(r)
		i.canvas.Clear(r, i.background)
		if root != nil {
			stats.Painted += i.paint(root, r)
		}
	}
	stats.Damage = append(stats.Damage, i.damage.Rects()...)
	i.damage.Reset()

	i.logger.Debug("frame",
		zap.Uint64("frame", stats.Frame),
		zap.Duration("time", t),
		zap.Int("rects", len(stats.Damage)),
		zap.Int("painted", stats.Painted),
	)
	return stats
}

// blink repaints the focused text when its caret toggles.
func (i *Instance) blink() {
	n, err := i.tree.get(i.focus)
	if err != nil {
		i.caretShown = false
		return
	}
	shown := ((i.now-i.blinkStart)/CaretBlink)%2 == 0
	if shown != i.caretShown {
		i.caretShown = shown
		i.tree.markRepaint(n)
	}
}

// prepare shapes every text whose content or font changed, so the
// measure pass sees its new natural size.
func (i *Instance) prepare(n *node) {
	if !n.dirty && !n.dirtyBelow {
		return
	}
	if c, ok := n.content.(*textContent); ok && !c.shaped {
		f := c.font
		if f == nil {
			f = i.font
		}
		size := c.size
		if size == 0 {
			size = i.fontSize
		}
		c.run = f.Shape(c.text, size)
		c.width, c.height = c.run.PixelWidth(), c.run.Metrics.LineHeight
		if c.wrap {
			c.face, c.px, c.wrapped = f, size, false
			c.wrapTo(unwrapped)
			c.width, c.height = c.linesWidth(), c.linesHeight()
		}
		c.shaped = true
		n.mask = nil
	}
	for _, h := range n.children {
		if c, err := i.tree.get(h); err == nil {
			i.prepare(c)
		}
	}
}

// collectDamage adds the previous and current bounds of every node that
// moved, resized or asked for a repaint.
func (i *Instance) collectDamage(n *node) {
	r := n.layout.Rect.Image()
	if n.repaint || r != n.painted {
		i.damage.Add(n.painted)
		i.damage.Add(r)
		if r.Size() != n.painted.Size() {
			n.invalidate()
		}
		n.painted = r
		n.repaint = false
	}
	for _, h := range n.children {
		if c, err := i.tree.get(h); err == nil {
			i.collectDamage(c)
		}
	}
}

// paint draws n and its children in declared order inside clip and
// returns the number of nodes drawn.
func (i *Instance) paint(n *node, clip image.Rectangle) int {
	r := n.layout.Rect.Image()
	if !r.Overlaps(clip) {
		return 0
	}

	switch c := n.content.(type) {
	case *containerContent:
		if !c.background.IsTransparent() {
			i.canvas.FillRect(r, c.background)
		}
	case *textContent:
		i.paintText(n, c, r)
	case *imageContent:
		i.paintImage(c, r)
	case *shapeContent:
		i.paintShape(n, c, r)
	case *spacerContent:
	}

	count := 1
	if n.style.Scroll {
		// Scrolled content is visible only inside the content box.
		prev := i.canvas.Clip()
		clip = clip.Intersect(n.layout.ContentRect.Image())
		i.canvas.SetClip(prev.Intersect(clip))
		defer i.canvas.SetClip(prev)
	}
	for _, h := range n.children {
		if child, err := i.tree.get(h); err == nil {
			count += i.paint(child, clip)
		}
	}
	return count
}

func (i *Instance) paintText(n *node, c *textContent, r image.Rectangle) {
	if c.wrap && c.wrapWidth != r.Dx() {
		c.wrapTo(r.Dx())
		n.mask = nil
	}
	if n.mask == nil || n.mask.Bounds().Size() != r.Size() {
		f := c.font
		if f == nil {
			f = i.font
		}
		var path *raster.Path
		var err error
		if c.wrap {
			path, err = c.outlineLines()
		} else {
			path, err = f.Outline(c.run, 0, float32(c.run.Metrics.Ascent))
		}
		if err != nil {
			i.logger.Warn("failed to outline text",
				zap.Stringer("node", n.self),
				zap.Error(err),
			)
		}
		n.mask = i.raster.Mask(path, r.Dx(), r.Dy())
	}
	i.canvas.DrawMask(r.Min, n.mask, c.color)

	if n.self == i.focus && i.caretShown {
		x := int(c.run.CaretX(runeOffset(c.text, c.cursor)) + 0.5)
		x = max(0, min(x, r.Dx()-1))
		caret := image.Rect(r.Min.X+x, r.Min.Y, r.Min.X+x+1, r.Max.Y)
		i.canvas.FillRect(caret, c.color)
	}
}

func (i *Instance) paintImage(c *imageContent, r image.Rectangle) {
	switch {
	case c.failed:
		i.canvas.FillRect(r, i.fallback)
	case c.img != nil:
		if c.scaled == nil || c.scaled.Bounds().Size() != r.Size() {
			c.scaled = raster.Resample(c.img, r.Dx(), r.Dy(), i.scaler)
		}
		i.canvas.DrawImage(r.Min, c.scaled)
	}
}

// paintShape maps the view box onto r and fills the path.
func (i *Instance) paintShape(n *node, c *shapeContent, r image.Rectangle) {
	if c.path.IsEmpty() {
		return
	}
	if n.mask == nil || n.mask.Bounds().Size() != r.Size() {
		vb := c.viewBox
		if vb[2] <= 0 || vb[3] <= 0 {
			_, _, maxX, maxY := c.path.Bounds()
			vb = [4]float32{0, 0, maxX, maxY}
		}
		if vb[2] <= 0 || vb[3] <= 0 {
			return
		}
		sx := float32(r.Dx()) / vb[2]
		sy := float32(r.Dy()) / vb[3]
		n.mask = i.raster.Mask(c.path.Transform(sx, sy, -vb[0]*sx, -vb[1]*sy), r.Dx(), r.Dy())
	}
	i.canvas.DrawMask(r.Min, n.mask, c.fill)
}
