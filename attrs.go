package gui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/grindlemire/go-gui/internal/layout"
	"github.com/grindlemire/go-gui/internal/raster"
	"github.com/grindlemire/go-gui/internal/store"
)

// Attr identifies a node attribute.
type Attr uint8

const (
	AttrText Attr = iota
	AttrSrc
	AttrFont
	AttrSize
	AttrColor
	AttrBackground
	AttrPathData
	AttrViewBox
	AttrFill
	AttrFixed
	AttrProportional
	AttrInflate
	AttrCross
	AttrMin
	AttrMax
	AttrGap
	AttrAlign
	AttrPadding
	AttrDirection
	AttrInteractive
	AttrCapture
	AttrEditable
	AttrScroll
	attrCount
)

var attrCanonical = [attrCount]string{
	AttrText:         "text",
	AttrSrc:          "src",
	AttrFont:         "font",
	AttrSize:         "size",
	AttrColor:        "color",
	AttrBackground:   "background",
	AttrPathData:     "d",
	AttrViewBox:      "viewbox",
	AttrFill:         "fill",
	AttrFixed:        "fixed",
	AttrProportional: "proportional",
	AttrInflate:      "inflate",
	AttrCross:        "cross",
	AttrMin:          "min",
	AttrMax:          "max",
	AttrGap:          "gap",
	AttrAlign:        "align",
	AttrPadding:      "padding",
	AttrDirection:    "direction",
	AttrInteractive:  "interactive",
	AttrCapture:      "capture",
	AttrEditable:     "editable",
	AttrScroll:       "scroll",
}

var attrAliases = map[string]Attr{
	"txt":  AttrText,
	"file": AttrSrc,
	"bg":   AttrBackground,
}

// ParseAttr maps a markup attribute name to its Attr.
func ParseAttr(name string) (Attr, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if a, ok := attrAliases[name]; ok {
		return a, true
	}
	for a, s := range attrCanonical {
		if s == name {
			return Attr(a), true
		}
	}
	return 0, false
}

func (a Attr) String() string {
	if a < attrCount {
		return attrCanonical[a]
	}
	return fmt.Sprintf("Attr(%d)", uint8(a))
}

// appliesTo reports whether a has a meaning on nodes of kind k.
func (a Attr) appliesTo(k Kind) bool {
	switch a {
	case AttrText, AttrFont, AttrSize, AttrColor, AttrEditable:
		return k == KindText
	case AttrSrc:
		return k == KindImage
	case AttrPathData, AttrViewBox, AttrFill:
		return k == KindShape
	case AttrBackground, AttrGap, AttrAlign, AttrPadding, AttrDirection, AttrScroll:
		return k == KindContainer
	default:
		return true
	}
}

// fallback is the value an attribute reverts to when its binding cannot be
// resolved.
func (a Attr) fallback() store.Value {
	switch a {
	case AttrInteractive, AttrCapture, AttrEditable, AttrInflate, AttrScroll:
		return store.Bool(false)
	case AttrColor, AttrFill:
		return store.String("black")
	default:
		return store.String("")
	}
}

// change is how much work an attribute update causes.
type change uint8

const (
	changeNone change = iota
	changePaint
	changeLayout
)

// apply stores a resolved attribute value on n. An empty string resets
// length-like attributes; a bare boolean attribute is true.
func (n *node) apply(a Attr, v store.Value) (change, error) {
	if !a.appliesTo(n.kind()) {
		return changeNone, fmt.Errorf("attribute %q does not apply to %s", a, n.kind())
	}
	s := strings.TrimSpace(v.String())

	switch a {
	case AttrText, AttrFont, AttrSize, AttrColor, AttrEditable:
		return n.applyText(a, v, s)
	case AttrSrc:
		c := n.content.(*imageContent)
		if c.src == s {
			return changeNone, nil
		}
		c.src, c.img, c.failed = s, nil, false
		n.invalidate()
		return changeLayout, nil
	case AttrPathData, AttrViewBox, AttrFill:
		return n.applyShape(a, s)
	case AttrBackground:
		col, err := parseColor(s, raster.Transparent)
		if err != nil {
			return changeNone, err
		}
		c := n.content.(*containerContent)
		if c.background == col {
			return changeNone, nil
		}
		c.background = col
		return changePaint, nil
	case AttrInteractive, AttrCapture:
		b := s == "" || v.Bool()
		field := &n.interactive
		if a == AttrCapture {
			field = &n.capture
		}
		if *field == b {
			return changeNone, nil
		}
		*field = b
		return changePaint, nil
	case AttrScroll:
		style := n.style
		style.Scroll = s == "" || v.Bool()
		if !style.Scroll {
			style.Offset = 0
		}
		if style == n.style {
			return changeNone, nil
		}
		n.style = style
		return changeLayout, nil
	case AttrGap, AttrAlign, AttrPadding, AttrDirection:
		style, err := applyStyle(n.style, a, s)
		if err != nil || style == n.style {
			return changeNone, err
		}
		n.style = style
		return changeLayout, nil
	default:
		policy, err := applyPolicy(n.policy, a, s)
		if err != nil || policy == n.policy {
			return changeNone, err
		}
		n.policy = policy
		return changeLayout, nil
	}
}

func (n *node) applyText(a Attr, v store.Value, s string) (change, error) {
	c := n.content.(*textContent)
	switch a {
	case AttrText:
		// Keep interior and trailing spaces of text content.
		raw := v.String()
		if c.text == raw {
			return changeNone, nil
		}
		c.text = raw
		c.cursor = min(c.cursor, graphemeCount(raw))
	case AttrFont:
		if c.fontID == s {
			return changeNone, nil
		}
		c.fontID, c.font = s, nil
	case AttrSize:
		size := 0.0
		if s != "" {
			f, ok := v.Number()
			if !ok {
				f, ok = store.String(strings.TrimSuffix(s, "px")).Number()
			}
			if !ok || f < 0 || !finite(f) {
				return changeNone, fmt.Errorf("invalid font size %q", s)
			}
			size = f
		}
		if c.size == size {
			return changeNone, nil
		}
		c.size = size
	case AttrColor:
		col, err := parseColor(s, raster.Black)
		if err != nil {
			return changeNone, err
		}
		if c.color == col {
			return changeNone, nil
		}
		c.color = col
		return changePaint, nil
	case AttrEditable:
		b := s == "" || v.Bool()
		if c.editable == b {
			return changeNone, nil
		}
		if b && c.wrap {
			return changeNone, fmt.Errorf("paragraphs are not editable")
		}
		c.editable = b
		return changePaint, nil
	}
	c.shaped = false
	n.invalidate()
	return changeLayout, nil
}

func (n *node) applyShape(a Attr, s string) (change, error) {
	c := n.content.(*shapeContent)
	switch a {
	case AttrPathData:
		if c.data == s {
			return changeNone, nil
		}
		p, err := raster.ParsePath(s)
		if err != nil {
			return changeNone, err
		}
		c.data, c.path = s, p
	case AttrViewBox:
		var vb [4]float32
		if s != "" {
			fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
			if len(fields) != 4 {
				return changeNone, fmt.Errorf("invalid view box %q", s)
			}
			for i, f := range fields {
				x, err := strconv.ParseFloat(f, 32)
				if err != nil || !finite(x) {
					return changeNone, fmt.Errorf("invalid view box %q", s)
				}
				vb[i] = float32(x)
			}
			if vb[2] <= 0 || vb[3] <= 0 {
				return changeNone, fmt.Errorf("view box %q has no area", s)
			}
		}
		if c.viewBox == vb {
			return changeNone, nil
		}
		c.viewBox = vb
	case AttrFill:
		col, err := parseColor(s, raster.Black)
		if err != nil {
			return changeNone, err
		}
		if c.fill == col {
			return changeNone, nil
		}
		c.fill = col
		n.invalidate()
		return changePaint, nil
	}
	n.invalidate()
	return changeLayout, nil
}

func parseColor(s string, def raster.Color) (raster.Color, error) {
	if s == "" {
		return def, nil
	}
	return raster.ParseColor(s)
}

// finite reports whether f is a real number within the pixel length bound.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Abs(f) <= layout.MaxLength
}

// parseWeight parses a weight given as a number, a fraction "a/b" or a
// percentage "n%".
func parseWeight(s string) (float64, error) {
	var w float64
	var err error
	switch {
	case strings.HasSuffix(s, "%"):
		w, err = strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		w /= 100
	case strings.Contains(s, "/"):
		num, den, _ := strings.Cut(s, "/")
		var a, b float64
		a, err = strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err == nil {
			b, err = strconv.ParseFloat(strings.TrimSpace(den), 64)
		}
		if err == nil && b == 0 {
			err = fmt.Errorf("zero denominator")
		}
		if err == nil {
			w = a / b
		}
	default:
		w, err = strconv.ParseFloat(s, 64)
	}
	if err != nil || w < 0 || math.IsInf(w, 0) || math.IsNaN(w) {
		return 0, fmt.Errorf("invalid weight %q", s)
	}
	return w, nil
}

func applyStyle(style layout.Style, a Attr, s string) (layout.Style, error) {
	switch a {
	case AttrGap:
		if s == "" {
			style.Gap = 0
			return style, nil
		}
		n, err := layout.ParseLength(s)
		style.Gap = n
		return style, err
	case AttrAlign:
		switch strings.ToLower(s) {
		case "", "start":
			style.Align = layout.AlignStart
		case "center":
			style.Align = layout.AlignCenter
		case "end":
			style.Align = layout.AlignEnd
		default:
			return style, fmt.Errorf("invalid alignment %q", s)
		}
	case AttrPadding:
		e, err := layout.ParseEdges(s)
		style.Padding = e
		return style, err
	case AttrDirection:
		switch strings.ToLower(s) {
		case "", "column", "vertical", "vbox":
			style.Orientation = layout.Vertical
		case "row", "horizontal", "hbox":
			style.Orientation = layout.Horizontal
		default:
			return style, fmt.Errorf("invalid direction %q", s)
		}
	}
	return style, nil
}

func applyPolicy(p layout.Policy, a Attr, s string) (layout.Policy, error) {
	switch a {
	case AttrFixed:
		if s == "" {
			if p.Kind == layout.KindFixed {
				p.Kind, p.Length = layout.KindContent, 0
			}
			return p, nil
		}
		n, err := layout.ParseLength(s)
		if err != nil {
			return p, err
		}
		p.Kind, p.Length = layout.KindFixed, n
	case AttrProportional:
		if s == "" {
			if p.Kind == layout.KindProportional {
				p.Kind, p.Weight = layout.KindContent, 0
			}
			return p, nil
		}
		w, err := parseWeight(s)
		if err != nil {
			return p, err
		}
		p.Kind, p.Weight = layout.KindProportional, w
	case AttrInflate:
		if s == "false" {
			if p.Kind == layout.KindInflate {
				p.Kind, p.Weight = layout.KindContent, 0
			}
			return p, nil
		}
		p.Kind, p.Weight = layout.KindInflate, 0
		if s != "" && s != "true" {
			w, err := parseWeight(s)
			if err != nil {
				return p, err
			}
			p.Weight = w
		}
	case AttrCross, AttrMax:
		n := layout.Unset
		if s != "" {
			var err error
			if n, err = layout.ParseLength(s); err != nil {
				return p, err
			}
		}
		if a == AttrCross {
			p.Cross = n
		} else {
			p.Max = n
		}
	case AttrMin:
		n := 0
		if s != "" {
			var err error
			if n, err = layout.ParseLength(s); err != nil {
				return p, err
			}
		}
		p.Min = n
	}
	return p, nil
}
