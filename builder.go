package gui

import (
	"fmt"
	"strings"

	"github.com/grindlemire/go-gui/internal/layout"
	"github.com/grindlemire/go-gui/internal/store"
)

// Op is the kind of a builder instruction.
type Op uint8

const (
	OpOpen  Op = iota // Open a tag; its attributes apply to the new node
	OpClose           // Close the innermost open tag with the same name
)

// Attribute is one name=value pair of an open tag. A bare attribute has an
// empty value.
type Attribute struct {
	Name  string
	Value string
}

// Instruction is one step of the node-creation stream produced by a markup
// parser.
type Instruction struct {
	Op    Op
	Tag   string
	Attrs []Attribute
	Line  int // source line, 0 when unknown
}

// Open returns an OpOpen instruction.
func Open(tag string, attrs ...Attribute) Instruction {
	return Instruction{Op: OpOpen, Tag: tag, Attrs: attrs}
}

// Close returns an OpClose instruction.
func Close(tag string) Instruction {
	return Instruction{Op: OpClose, Tag: tag}
}

// A returns an Attribute.
func A(name, value string) Attribute {
	return Attribute{Name: name, Value: value}
}

type tagSpec struct {
	kind        Kind
	orientation layout.Orientation
	policy      func() layout.Policy
	wrap        bool
}

var tags = map[string]tagSpec{
	"column":    {kind: KindContainer, orientation: layout.Vertical, policy: layout.Content},
	"vbox":      {kind: KindContainer, orientation: layout.Vertical, policy: layout.Content},
	"row":       {kind: KindContainer, orientation: layout.Horizontal, policy: layout.Content},
	"hbox":      {kind: KindContainer, orientation: layout.Horizontal, policy: layout.Content},
	"container": {kind: KindContainer, orientation: layout.Vertical, policy: layout.Content},
	"text":      {kind: KindText, policy: layout.Content},
	"p":         {kind: KindText, policy: layout.Content, wrap: true},
	"paragraph": {kind: KindText, policy: layout.Content, wrap: true},
	"image":     {kind: KindImage, policy: layout.Content},
	"img":       {kind: KindImage, policy: layout.Content},
	"shape":     {kind: KindShape, policy: layout.Content},
	"path":      {kind: KindShape, policy: layout.Content},
	"spacer":    {kind: KindSpacer, policy: layout.Inflate},
}

// canonicalTag folds tag aliases so a close matches its open.
func canonicalTag(tag string) string {
	switch tag = strings.ToLower(strings.TrimSpace(tag)); tag {
	case "vbox":
		return "column"
	case "hbox":
		return "row"
	case "img":
		return "image"
	case "path":
		return "shape"
	case "paragraph":
		return "p"
	default:
		return tag
	}
}

type buildFrame struct {
	tag  string
	h    Handle
	skip bool // inside a subtree dropped as malformed
}

// Build creates nodes from instrs under parent, or as the root when parent
// is zero. It returns the handles of the top-level nodes it created.
//
// Malformed nodes are skipped with their whole subtree and reported as
// diagnostics; their siblings are still built. Closes without a matching
// open are ignored, and tags left open at the end are closed. Build only
// fails when parent is not a live container.
func (i *Instance) Build(parent Handle, instrs []Instruction) ([]Handle, error) {
	if !parent.IsZero() {
		p, err := i.tree.get(parent)
		if err != nil {
			return nil, err
		}
		if p.kind() != KindContainer {
			return nil, fmt.Errorf("%w: %s is a %s and cannot have children", ErrInvalidHandle, parent, p.kind())
		}
	}

	var (
		stack []buildFrame
		top   []Handle
	)
	for _, in := range instrs {
		switch in.Op {
		case OpOpen:
			tag := canonicalTag(in.Tag)
			if len(stack) > 0 && stack[len(stack)-1].skip {
				stack = append(stack, buildFrame{tag: tag, skip: true})
				continue
			}
			under := parent
			if len(stack) > 0 {
				under = stack[len(stack)-1].h
			}
			h, err := i.open(under, in)
			if err != nil {
				// The half-built node is removed, so the diagnostic names
				// the parent it would have joined.
				if !h.IsZero() {
					_ = i.tree.Remove(h)
				}
				i.report(Diagnostic{Kind: DiagMalformedMarkup, Node: under, Line: in.Line, Err: err})
				stack = append(stack, buildFrame{tag: tag, skip: true})
				continue
			}
			stack = append(stack, buildFrame{tag: tag, h: h})
			if len(stack) == 1 {
				top = append(top, h)
			}

		case OpClose:
			tag := canonicalTag(in.Tag)
			match := len(stack) - 1
			if tag != "" {
				for match >= 0 && stack[match].tag != tag {
					match--
				}
			}
			if match < 0 {
				i.report(Diagnostic{
					Kind: DiagMalformedMarkup,
					Line: in.Line,
					Err:  fmt.Errorf("%w: close of %q without open", ErrMalformedMarkup, in.Tag),
				})
				continue
			}
			stack = stack[:match]

		default:
			i.report(Diagnostic{
				Kind: DiagMalformedMarkup,
				Line: in.Line,
				Err:  fmt.Errorf("%w: unknown op %d", ErrMalformedMarkup, in.Op),
			})
		}
	}

	for _, f := range stack {
		if !f.skip {
			i.report(Diagnostic{
				Kind: DiagMalformedMarkup,
				Node: f.h,
				Err:  fmt.Errorf("%w: %q is never closed", ErrMalformedMarkup, f.tag),
			})
		}
	}
	return top, nil
}

// open creates the node for one open instruction and applies its
// attributes. On error the returned handle, if not zero, names the
// half-built node.
func (i *Instance) open(parent Handle, in Instruction) (Handle, error) {
	def, ok := tags[strings.ToLower(strings.TrimSpace(in.Tag))]
	if !ok {
		return Handle{}, fmt.Errorf("%w: unknown tag %q", ErrMalformedMarkup, in.Tag)
	}
	if parent.IsZero() && !i.tree.root.IsZero() {
		return Handle{}, fmt.Errorf("%w: second root %q", ErrMalformedMarkup, in.Tag)
	}
	if def.wrap {
		if p, err := i.tree.get(parent); err == nil && p.style.Orientation == layout.Horizontal {
			return Handle{}, fmt.Errorf("%w: %q must be inside a column", ErrMalformedMarkup, in.Tag)
		}
	}
	h, err := i.tree.Create(parent, def.kind, def.policy())
	if err != nil {
		return Handle{}, fmt.Errorf("%w: %w", ErrMalformedMarkup, err)
	}
	n, _ := i.tree.get(h)
	n.style.Orientation = def.orientation
	if c, ok := n.content.(*textContent); ok {
		c.wrap = def.wrap
	}

	for _, attr := range in.Attrs {
		a, ok := ParseAttr(attr.Name)
		if !ok {
			return h, fmt.Errorf("%w: unknown attribute %q on %q", ErrMalformedMarkup, attr.Name, in.Tag)
		}
		t, err := store.ParseTemplate(attr.Value)
		if err != nil {
			return h, fmt.Errorf("%w: %s: %w", ErrMalformedMarkup, a, err)
		}
		if _, err := i.bind(n, a, t); err != nil {
			return h, fmt.Errorf("%w: %s=%q: %w", ErrMalformedMarkup, a, attr.Value, err)
		}
	}
	return h, nil
}
