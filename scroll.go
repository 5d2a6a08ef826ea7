package gui

import "fmt"

// scroller returns the scrolling container named by h.
func (i *Instance) scroller(h Handle) (*node, error) {
	n, err := i.tree.get(h)
	if err != nil {
		return nil, err
	}
	if !n.style.Scroll {
		return nil, fmt.Errorf("%w: %s does not scroll", ErrInvalidHandle, h)
	}
	return n, nil
}

// ScrollOffset returns how far h's content is scrolled along its main axis,
// as of the last frame's layout.
func (i *Instance) ScrollOffset(h Handle) (int, error) {
	n, err := i.scroller(h)
	if err != nil {
		return 0, err
	}
	return min(max(0, n.style.Offset), n.layout.Overflow), nil
}

// MaxScroll returns the largest offset h can scroll to: how far its content
// overflowed its content box in the last frame.
func (i *Instance) MaxScroll(h Handle) (int, error) {
	n, err := i.scroller(h)
	if err != nil {
		return 0, err
	}
	return n.layout.Overflow, nil
}

// ScrollTo sets h's scroll offset, clamped to [0, MaxScroll]. It reports
// whether the offset changed; the children move in the next frame.
func (i *Instance) ScrollTo(h Handle, offset int) (bool, error) {
	n, err := i.scroller(h)
	if err != nil {
		return false, err
	}
	return i.scrollTo(n, offset), nil
}

// ScrollBy moves h's scroll offset by delta toward the end of its content.
func (i *Instance) ScrollBy(h Handle, delta int) (bool, error) {
	cur, err := i.ScrollOffset(h)
	if err != nil {
		return false, err
	}
	return i.ScrollTo(h, cur+delta)
}

func (i *Instance) scrollTo(n *node, offset int) bool {
	cur := min(max(0, n.style.Offset), n.layout.Overflow)
	offset = min(max(0, offset), n.layout.Overflow)
	if offset == cur {
		return false
	}
	n.style.Offset = offset
	i.tree.markScroll(n)
	return true
}
