package gui

import "github.com/grindlemire/go-gui/internal/layout"

// --- Implement layout.Layoutable ---

func (n *node) LayoutStyle() layout.Style {
	return n.style
}

func (n *node) LayoutPolicy() layout.Policy {
	return n.policy
}

// LayoutChildren returns the live children in declared order.
func (n *node) LayoutChildren() []layout.Layoutable {
	result := make([]layout.Layoutable, 0, len(n.children))
	for _, h := range n.children {
		if c, err := n.tree.get(h); err == nil {
			result = append(result, c)
		}
	}
	return result
}

func (n *node) SetLayout(l layout.Layout) {
	n.layout = l
}

func (n *node) GetLayout() layout.Layout {
	return n.layout
}

func (n *node) IsDirty() bool {
	return n.dirty
}

func (n *node) HasDirtyDescendant() bool {
	return n.dirtyBelow
}

func (n *node) ClearDirty() {
	n.dirty = false
	n.dirtyBelow = false
}

// IntrinsicSize returns the natural size of a leaf. Text reports its shaped
// run; images report their decoded size, scaled to keep the aspect ratio
// when one side is pinned by the policy; shapes report their view box.
// Pending or failed assets report zero.
func (n *node) IntrinsicSize() (width, height int) {
	switch c := n.content.(type) {
	case *textContent:
		return c.width, c.height
	case *imageContent:
		if c.img == nil {
			return 0, 0
		}
		b := c.img.Bounds()
		return n.scaleToPolicy(b.Dx(), b.Dy())
	case *shapeContent:
		if c.viewBox[2] > 0 && c.viewBox[3] > 0 {
			return int(c.viewBox[2] + 0.5), int(c.viewBox[3] + 0.5)
		}
		if c.path.IsEmpty() {
			return 0, 0
		}
		_, _, maxX, maxY := c.path.Bounds()
		return max(0, int(maxX+0.5)), max(0, int(maxY+0.5))
	default:
		return 0, 0
	}
}

// HeightForWidth reports the height of a paragraph wrapped at width. Other
// nodes do not depend on width.
func (n *node) HeightForWidth(width int) (int, bool) {
	c, ok := n.content.(*textContent)
	if !ok || !c.wrap || !c.shaped {
		return 0, false
	}
	c.wrapTo(width)
	return c.linesHeight(), true
}

// scaleToPolicy scales w×h so that a side fixed by the policy keeps the
// aspect ratio of the source.
func (n *node) scaleToPolicy(w, h int) (int, int) {
	if w == 0 || h == 0 {
		return w, h
	}
	horizontal := false
	if p, err := n.tree.get(n.parent); err == nil {
		horizontal = p.style.Orientation == layout.Horizontal
	}
	mainLen, crossLen := h, w
	if horizontal {
		mainLen, crossLen = w, h
	}

	switch {
	case n.policy.Kind == layout.KindFixed:
		crossLen = crossLen * n.policy.Length / mainLen
		mainLen = n.policy.Length
	case n.policy.Cross != layout.Unset:
		mainLen = mainLen * n.policy.Cross / crossLen
		crossLen = n.policy.Cross
	}

	if horizontal {
		return mainLen, crossLen
	}
	return crossLen, mainLen
}
