// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package gui

import "github.com/grindlemire/go-gui/internal/layout"

// Orientation specifies the main axis a container lays its children along.
type Orientation = layout.Orientation

const (
	Vertical   = layout.Vertical
	Horizontal = layout.Horizontal
)

// Align specifies cross-axis placement of children.
type Align = layout.Align

const (
	AlignStart  = layout.AlignStart
	AlignCenter = layout.AlignCenter
	AlignEnd    = layout.AlignEnd
)

// Policy is a node's sizing rule along its parent's main axis.
type Policy = layout.Policy

// PolicyKind selects how a node is sized.
type PolicyKind = layout.Kind

const (
	SizeContent      = layout.KindContent
	SizeFixed        = layout.KindFixed
	SizeProportional = layout.KindProportional
	SizeInflate      = layout.KindInflate
)

// Unset marks an optional Policy length as absent.
const Unset = layout.Unset

// Content returns a content-sized policy.
func Content() Policy { return layout.Content() }

// Fixed returns a policy with an explicit main-axis length.
func Fixed(n int) Policy { return layout.Fixed(n) }

// Proportional returns a policy taking weight shares of the remaining space.
func Proportional(weight float64) Policy { return layout.Proportional(weight) }

// Inflate returns a spacer policy with the implicit weight of 1.
func Inflate() Policy { return layout.Inflate() }

// LayoutStyle holds the container properties of a node.
type LayoutStyle = layout.Style

// Rect represents a rectangle with position and dimensions.
type Rect = layout.Rect

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = layout.Edges

// Size represents a width/height pair.
type Size = layout.Size

// NewRect creates a Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect { return layout.NewRect(x, y, width, height) }
