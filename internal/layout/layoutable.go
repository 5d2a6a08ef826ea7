package layout

// Layoutable is the interface for anything that can participate in layout calculation.
// The layout engine works entirely with this interface, enabling custom implementations.
type Layoutable interface {
	// LayoutStyle returns the container properties of this node.
	LayoutStyle() Style

	// LayoutPolicy returns how this node is sized along its parent's main axis.
	LayoutPolicy() Policy

	// LayoutChildren returns the children to be laid out, in declared order.
	LayoutChildren() []Layoutable

	// SetLayout is called by the layout engine to store computed layout.
	SetLayout(Layout)

	// GetLayout returns the last computed layout.
	GetLayout() Layout

	// IsDirty reports whether this node must be re-measured and its
	// children redistributed.
	IsDirty() bool

	// HasDirtyDescendant reports whether some node below this one is dirty.
	HasDirtyDescendant() bool

	// ClearDirty resets both dirty marks.
	ClearDirty()

	// IntrinsicSize returns the natural content-based dimensions of a leaf.
	// Containers with children are measured from their children instead; a
	// childless container should report zero.
	IntrinsicSize() (width, height int)
}

// HeightForWidth is implemented by leaves whose height depends on the width
// they are given, such as wrapped text. A vertical container asks a
// content-sized child for its height once the child's width is known.
type HeightForWidth interface {
	// HeightForWidth returns the height at width, and false when the
	// height does not depend on width.
	HeightForWidth(width int) (int, bool)
}
