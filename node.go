package gui

import (
	"fmt"
	"image"

	"github.com/grindlemire/go-gui/internal/layout"
	"github.com/grindlemire/go-gui/internal/raster"
	"github.com/grindlemire/go-gui/internal/store"
	"github.com/grindlemire/go-gui/internal/text"
)

// Kind is the variant of a node.
type Kind uint8

const (
	KindContainer Kind = iota
	KindText
	KindImage
	KindShape
	KindSpacer
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	case KindShape:
		return "shape"
	case KindSpacer:
		return "spacer"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// content is the variant-specific part of a node. The set of
// implementations is closed; code dispatches on it with type switches.
type content interface {
	kind() Kind
}

type containerContent struct {
	background raster.Color
}

type textContent struct {
	text     string
	size     float64 // 0 uses the instance default
	color    raster.Color
	fontID   string
	font     *text.Font // resolved font asset, nil for the default
	editable bool

	run    text.Run
	shaped bool
	width  int
	height int

	cursor int // grapheme clusters before the caret
	edited bool

	// Paragraphs wrap onto lines at their laid-out width.
	wrap      bool
	face      *text.Font // font and size the lines were shaped with
	px        float64
	lines     []text.Run
	wrapWidth int
	wrapped   bool
}

type imageContent struct {
	src    string
	img    *image.RGBA
	failed bool

	scaled *image.RGBA
}

type shapeContent struct {
	data    string
	path    *raster.Path
	viewBox [4]float32 // x, y, width, height; zero width uses the path bounds
	fill    raster.Color
}

type spacerContent struct{}

func (*containerContent) kind() Kind { return KindContainer }
func (*textContent) kind() Kind      { return KindText }
func (*imageContent) kind() Kind     { return KindImage }
func (*shapeContent) kind() Kind     { return KindShape }
func (*spacerContent) kind() Kind    { return KindSpacer }

func newContent(k Kind) content {
	switch k {
	case KindText:
		return &textContent{color: raster.Black}
	case KindImage:
		return &imageContent{}
	case KindShape:
		return &shapeContent{fill: raster.Black}
	case KindSpacer:
		return &spacerContent{}
	default:
		return &containerContent{}
	}
}

// node is one arena entry.
type node struct {
	tree     *Tree
	self     Handle
	parent   Handle
	children []Handle

	policy layout.Policy
	style  layout.Style
	layout layout.Layout

	dirty      bool // re-measure and redistribute
	dirtyBelow bool // some descendant is dirty
	repaint    bool // pixels changed without a geometry change

	interactive bool
	capture     bool

	bindings map[Attr]*store.Template
	content  content

	mask    *image.Alpha // cached coverage for text and shapes
	painted image.Rectangle
}

func (n *node) kind() Kind {
	return n.content.kind()
}

// invalidate drops cached pixels so the next paint rebuilds them.
func (n *node) invalidate() {
	n.mask = nil
	if img, ok := n.content.(*imageContent); ok {
		img.scaled = nil
	}
	n.repaint = true
}
