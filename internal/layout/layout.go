package layout

// Size is a width/height pair.
type Size struct {
	Width, Height int
}

// Layout holds the computed position and size after layout calculation.
type Layout struct {
	// Rect is the slot allotted by the parent. Use for hit testing and painting.
	Rect Rect

	// ContentRect is Rect minus padding: the area children are placed in.
	ContentRect Rect

	// Natural is the size reported by the measure pass.
	Natural Size

	// Measured is false until the measure pass has visited the node once.
	Measured bool

	// Unused is the trailing main-axis space a container left unassigned
	// because none of its children could grow into it.
	Unused int

	// Overflow is how far a scrolling container's content extends past its
	// content box on the main axis: the largest valid scroll offset.
	Overflow int
}

// axes splits a size into main and cross lengths for the given orientation.
func (s Size) axes(o Orientation) (main, cross int) {
	if o == Horizontal {
		return s.Width, s.Height
	}
	return s.Height, s.Width
}

// sizeFromAxes is the inverse of Size.axes.
func sizeFromAxes(main, cross int, o Orientation) Size {
	if o == Horizontal {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}
