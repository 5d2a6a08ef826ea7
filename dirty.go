package gui

// markDirty flags n for re-measurement and repaint. The parent is always
// flagged too: a change to n's own policy moves its siblings even when n is
// pinned.
func (t *Tree) markDirty(n *node) {
	n.repaint = true
	t.markLayout(n)
	if p, err := t.get(n.parent); err == nil {
		t.markLayout(p)
	}
}

// markLayout flags n for re-measurement. Ancestors are flagged dirty up to
// and including the first one whose size cannot depend on its content;
// above that they only learn that a descendant is dirty. Pixels are
// repainted only where geometry ends up changing.
func (t *Tree) markLayout(n *node) {
	n.dirty = true
	cur := n
	for !cur.policy.IsPinned() {
		p, err := t.get(cur.parent)
		if err != nil {
			return
		}
		p.dirty = true
		cur = p
	}
	t.markBelow(cur)
}

// markBelow tells every ancestor of n that a descendant is dirty.
func (t *Tree) markBelow(n *node) {
	for cur := n; ; {
		p, err := t.get(cur.parent)
		if err != nil || p.dirtyBelow {
			return
		}
		p.dirtyBelow = true
		cur = p
	}
}

// markScroll flags n to reposition its children. Scrolling never changes
// n's own size, so ancestors are not re-measured.
func (t *Tree) markScroll(n *node) {
	n.dirty = true
	t.markBelow(n)
}

// markRepaint flags n for repainting without touching layout.
func (t *Tree) markRepaint(n *node) {
	n.repaint = true
}

// MarkDirty flags h for re-measurement and repaint in the next frame.
// Attribute changes made through the store mark nodes automatically;
// direct mutations must call this.
func (t *Tree) MarkDirty(h Handle) error {
	n, err := t.get(h)
	if err != nil {
		return err
	}
	t.markDirty(n)
	return nil
}
