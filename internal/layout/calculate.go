package layout

// Calculate performs layout calculation on the tree rooted at root.
// The root occupies the whole viewport; every descendant receives its slot
// from its parent's distribution. Clean subtrees whose slot is unchanged are
// skipped (incremental layout).
func Calculate(root Layoutable, viewportWidth, viewportHeight int) {
	if root == nil {
		return
	}

	measure(root)
	calculateNode(root, NewRect(0, 0, max(0, viewportWidth), max(0, viewportHeight)))
}

// measure computes natural sizes bottom-up and caches them on each node.
// A node with no dirty mark keeps its cached size.
func measure(node Layoutable) Size {
	cached := node.GetLayout()
	if cached.Measured && !node.IsDirty() && !node.HasDirtyDescendant() {
		return cached.Natural
	}

	style := node.LayoutStyle()
	children := node.LayoutChildren()

	var natural Size
	if len(children) == 0 {
		w, h := node.IntrinsicSize()
		natural = Size{Width: max(0, w), Height: max(0, h)}
	} else {
		mainSum, crossMax := 0, 0
		for _, child := range children {
			m, c := child.LayoutPolicy().contribution(measure(child), style.Orientation)
			mainSum += m
			crossMax = max(crossMax, c)
		}
		mainSum += max(0, style.Gap) * (len(children) - 1)
		natural = sizeFromAxes(mainSum, crossMax, style.Orientation)
	}
	pad := style.Padding.outer()
	natural.Width += pad.Width
	natural.Height += pad.Height

	cached.Natural = natural
	cached.Measured = true
	node.SetLayout(cached)
	return natural
}

// calculateNode assigns slot to node and distributes its content box among
// its children.
func calculateNode(node Layoutable, slot Rect) {
	prev := node.GetLayout()
	if !node.IsDirty() && prev.Rect == slot {
		// Same slot and clean: only descend toward dirty nodes.
		if node.HasDirtyDescendant() {
			for _, child := range node.LayoutChildren() {
				calculateNode(child, child.GetLayout().Rect)
			}
		}
		node.ClearDirty()
		return
	}

	style := node.LayoutStyle()
	next := prev
	next.Rect = slot
	next.ContentRect = slot.Inset(style.Padding)
	next.Unused, next.Overflow = 0, 0

	children := node.LayoutChildren()
	if len(children) > 0 {
		next.Unused, next.Overflow = distribute(children, style, next.ContentRect)
	}

	node.SetLayout(next)
	node.ClearDirty()
}
