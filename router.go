package gui

import (
	"github.com/grindlemire/go-gui/internal/layout"
	"github.com/grindlemire/go-gui/internal/text"
)

// HitTest returns the topmost interactive node whose last laid-out
// rectangle contains (x, y). Nodes are searched in reverse paint order.
func (i *Instance) HitTest(x, y int) (Handle, bool) {
	return i.hit(i.tree.root, x, y)
}

func (i *Instance) hit(h Handle, x, y int) (Handle, bool) {
	n, err := i.tree.get(h)
	if err != nil || !n.layout.Rect.Contains(x, y) {
		return Handle{}, false
	}
	if !n.style.Scroll || n.layout.ContentRect.Contains(x, y) {
		for j := len(n.children) - 1; j >= 0; j-- {
			if found, ok := i.hit(n.children[j], x, y); ok {
				return found, true
			}
		}
	}
	if n.isInteractive() {
		return h, true
	}
	return Handle{}, false
}

func (n *node) isInteractive() bool {
	if c, ok := n.content.(*textContent); ok && c.editable {
		return true
	}
	return n.interactive
}

// PointerMove routes a pointer move. When the hovered node changes the
// old one receives a leave event and the new one an enter event.
func (i *Instance) PointerMove(x, y int) (Handle, bool) {
	target, ok := i.HitTest(x, y)
	if target != i.hover {
		old := i.hover
		i.hover = target
		if i.tree.Valid(old) {
			i.emit(Event{Kind: EventPointerLeave, Target: old, Current: old, X: x, Y: y})
		}
		if ok {
			i.emit(Event{Kind: EventPointerEnter, Target: target, Current: target, X: x, Y: y})
		}
	}
	if ok {
		i.dispatch(Event{Kind: EventPointerMove, Target: target, X: x, Y: y})
	}
	return target, ok
}

// Click routes a click. Clicking an editable text focuses it and places
// the caret at the nearest grapheme boundary; clicking anything else
// blurs the focused text.
func (i *Instance) Click(x, y int) (Handle, bool) {
	target, ok := i.HitTest(x, y)
	if !ok {
		i.Blur()
		return Handle{}, false
	}

	n, _ := i.tree.get(target)
	if c, isText := n.content.(*textContent); isText && c.editable {
		if err := i.Focus(target); err == nil {
			_ = i.SetCursor(nearestCaret(c.run, c.text, float32(x-n.layout.Rect.X)))
		}
	} else {
		i.Blur()
	}

	i.dispatch(Event{Kind: EventClick, Target: target, X: x, Y: y})
	return target, true
}

// Wheel routes a wheel movement at (x, y). The innermost scrolling
// container under the pointer that can still move along its main axis
// scrolls by the delta on that axis; a positive delta scrolls toward the
// start. The offset stays within [0, overflow]. It reports the container
// that scrolled, which receives a scroll event.
func (i *Instance) Wheel(x, y, dx, dy int) (Handle, bool) {
	var under []Handle
	for h := i.tree.root; ; {
		n, err := i.tree.get(h)
		if err != nil || !n.layout.Rect.Contains(x, y) {
			break
		}
		under = append(under, h)
		if n.style.Scroll && !n.layout.ContentRect.Contains(x, y) {
			break
		}
		next := Handle{}
		for j := len(n.children) - 1; j >= 0; j-- {
			if c, err := i.tree.get(n.children[j]); err == nil && c.layout.Rect.Contains(x, y) {
				next = n.children[j]
				break
			}
		}
		if next.IsZero() {
			break
		}
		h = next
	}

	for j := len(under) - 1; j >= 0; j-- {
		n, _ := i.tree.get(under[j])
		if !n.style.Scroll {
			continue
		}
		delta := dy
		if n.style.Orientation == layout.Horizontal {
			delta = dx
		}
		cur := min(max(0, n.style.Offset), n.layout.Overflow)
		if !i.scrollTo(n, cur-delta) {
			continue
		}
		i.dispatch(Event{Kind: EventScroll, Target: under[j], X: x, Y: y, Offset: n.style.Offset})
		return under[j], true
	}
	return Handle{}, false
}

// dispatch delivers e to the capturing ancestors of its target, outermost
// first, then to the target. Events do not bubble.
func (i *Instance) dispatch(e Event) {
	var capturing []Handle
	for h := e.Target; ; {
		n, err := i.tree.get(h)
		if err != nil || n.parent.IsZero() {
			break
		}
		h = n.parent
		if p, err := i.tree.get(h); err == nil && p.capture {
			capturing = append(capturing, h)
		}
	}
	for j := len(capturing) - 1; j >= 0; j-- {
		e.Current = capturing[j]
		i.emit(e)
	}
	e.Current = e.Target
	if i.tree.Valid(e.Target) {
		i.emit(e)
	}
}

// nearestCaret returns the grapheme offset whose caret position is
// closest to x.
func nearestCaret(run text.Run, s string, x float32) int {
	best, bestDist := 0, float32(-1)
	for g := 0; g <= graphemeCount(s); g++ {
		d := run.CaretX(runeOffset(s, g)) - x
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = g, d
		}
	}
	return best
}
