package layout

// Orientation specifies the main axis a container lays its children along.
type Orientation uint8

const (
	Vertical   Orientation = iota // Children laid out top-to-bottom
	Horizontal                    // Children laid out left-to-right
)

// String returns the markup name of the orientation.
func (o Orientation) String() string {
	if o == Horizontal {
		return "row"
	}
	return "column"
}

// Align specifies how a child narrower than its container is placed on the cross axis.
type Align uint8

const (
	AlignStart  Align = iota // Align to start of cross axis
	AlignCenter              // Center on cross axis
	AlignEnd                 // Align to end of cross axis
)

// Style contains the container properties of a node.
type Style struct {
	Orientation Orientation
	Gap         int // Space between consecutive children (main axis only)
	Align       Align
	Padding     Edges

	// Scroll lets children keep their demanded lengths and overflow the
	// main axis instead of shrinking. Offset is how far the content is
	// scrolled; layout clamps it to [0, Layout.Overflow].
	Scroll bool
	Offset int
}

// DefaultStyle returns a vertical, gapless, start-aligned Style.
func DefaultStyle() Style {
	return Style{Orientation: Vertical, Align: AlignStart}
}
