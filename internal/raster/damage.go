package raster

import "image"

// Damage is a set of pixel rectangles needing a repaint. Overlapping
// rectangles are merged so no pixel is listed twice.
type Damage struct {
	rects []image.Rectangle
}

// Add inserts r, merging it with every rectangle it overlaps.
func (d *Damage) Add(r image.Rectangle) {
	if r.Empty() {
		return
	}
	for {
		merged := false
		for i := 0; i < len(d.rects); i++ {
			if d.rects[i].Overlaps(r) {
				r = r.Union(d.rects[i])
				d.rects = append(d.rects[:i], d.rects[i+1:]...)
				merged = true
				i--
			}
		}
		if !merged {
			break
		}
	}
	d.rects = append(d.rects, r)
}

// Rects returns the damaged rectangles, pairwise non-overlapping.
func (d *Damage) Rects() []image.Rectangle {
	return d.rects
}

// Empty reports whether nothing is damaged.
func (d *Damage) Empty() bool {
	return len(d.rects) == 0
}

// Bounds returns the smallest rectangle covering all damage.
func (d *Damage) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, r := range d.rects {
		b = b.Union(r)
	}
	return b
}

// Clip intersects every rectangle with bounds, dropping those left empty.
func (d *Damage) Clip(bounds image.Rectangle) {
	kept := d.rects[:0]
	for _, r := range d.rects {
		if r = r.Intersect(bounds); !r.Empty() {
			kept = append(kept, r)
		}
	}
	d.rects = kept
}

// Reset empties the set.
func (d *Damage) Reset() {
	d.rects = d.rects[:0]
}
