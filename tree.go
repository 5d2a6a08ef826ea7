package gui

import (
	"fmt"
	"slices"

	"github.com/grindlemire/go-gui/internal/layout"
)

type slot struct {
	gen uint32
	n   *node
}

// Tree is the node arena. It owns every node, hands out generation-checked
// handles and enforces the tree invariants: one root, one parent per node,
// ordered children, no cycles.
type Tree struct {
	slots []slot
	free  []uint32
	root  Handle
	count int

	// onRemove runs for every removed node, children before parents.
	onRemove func(h Handle, n *node)
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

func (t *Tree) get(h Handle) (*node, error) {
	if h.IsZero() || int(h.index) >= len(t.slots) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	s := t.slots[h.index]
	if s.n == nil || s.gen != h.gen {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
	}
	return s.n, nil
}

// Valid reports whether h names a live node.
func (t *Tree) Valid(h Handle) bool {
	_, err := t.get(h)
	return err == nil
}

// Root returns the root handle, zero for an empty tree.
func (t *Tree) Root() Handle {
	return t.root
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	return t.count
}

// Create adds a node of kind as the last child of parent. A zero parent
// creates the root, which fails if the tree already has one.
func (t *Tree) Create(parent Handle, kind Kind, policy layout.Policy) (Handle, error) {
	if kind >= kindCount {
		return Handle{}, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	var p *node
	if parent.IsZero() {
		if !t.root.IsZero() {
			return Handle{}, fmt.Errorf("%w: tree already has a root", ErrInvalidHandle)
		}
	} else {
		var err error
		if p, err = t.get(parent); err != nil {
			return Handle{}, err
		}
		if p.kind() != KindContainer {
			return Handle{}, fmt.Errorf("%w: %s is a %s and cannot have children", ErrInvalidHandle, parent, p.kind())
		}
	}

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}
	s := &t.slots[idx]
	s.gen++
	h := Handle{index: idx, gen: s.gen}

	s.n = &node{
		tree:    t,
		self:    h,
		parent:  parent,
		policy:  policy,
		style:   layout.DefaultStyle(),
		dirty:   true,
		repaint: true,
		content: newContent(kind),
	}
	t.count++

	if p == nil {
		t.root = h
	} else {
		p.children = append(p.children, h)
		t.markLayout(p)
	}
	return h, nil
}

// Remove deletes h and its whole subtree.
func (t *Tree) Remove(h Handle) error {
	n, err := t.get(h)
	if err != nil {
		return err
	}

	if n.parent.IsZero() {
		t.root = Handle{}
	} else if p, err := t.get(n.parent); err == nil {
		p.children = slices.DeleteFunc(p.children, func(c Handle) bool { return c == h })
		t.markLayout(p)
	}

	t.release(h, n)
	return nil
}

// release frees n's subtree in post-order.
func (t *Tree) release(h Handle, n *node) {
	for _, c := range n.children {
		if cn, err := t.get(c); err == nil {
			t.release(c, cn)
		}
	}
	if t.onRemove != nil {
		t.onRemove(h, n)
	}
	s := &t.slots[h.index]
	s.n = nil
	s.gen++
	t.free = append(t.free, h.index)
	t.count--
}

// ChildrenOf returns h's children in declared order.
func (t *Tree) ChildrenOf(h Handle) ([]Handle, error) {
	n, err := t.get(h)
	if err != nil {
		return nil, err
	}
	return slices.Clone(n.children), nil
}

// ParentOf returns h's parent; ok is false for the root.
func (t *Tree) ParentOf(h Handle) (parent Handle, ok bool, err error) {
	n, err := t.get(h)
	if err != nil {
		return Handle{}, false, err
	}
	return n.parent, !n.parent.IsZero(), nil
}

// KindOf returns the variant of h.
func (t *Tree) KindOf(h Handle) (Kind, error) {
	n, err := t.get(h)
	if err != nil {
		return 0, err
	}
	return n.kind(), nil
}

// Bounds returns the geometry of h from the last completed layout.
func (t *Tree) Bounds(h Handle) (Rect, error) {
	n, err := t.get(h)
	if err != nil {
		return Rect{}, err
	}
	return n.layout.Rect, nil
}

// Reparent moves h, with its subtree, to the end of newParent's children.
// Moving a node under itself or one of its descendants fails with ErrCycle
// and leaves the tree unchanged.
func (t *Tree) Reparent(h, newParent Handle) error {
	n, err := t.get(h)
	if err != nil {
		return err
	}
	np, err := t.get(newParent)
	if err != nil {
		return err
	}
	if np.kind() != KindContainer {
		return fmt.Errorf("%w: %s is a %s and cannot have children", ErrInvalidHandle, newParent, np.kind())
	}
	for cur := newParent; !cur.IsZero(); {
		if cur == h {
			return fmt.Errorf("reparent %s under %s: %w", h, newParent, ErrCycle)
		}
		cn, _ := t.get(cur)
		cur = cn.parent
	}

	if old, err := t.get(n.parent); err == nil {
		old.children = slices.DeleteFunc(old.children, func(c Handle) bool { return c == h })
		t.markLayout(old)
	}
	n.parent = newParent
	np.children = append(np.children, h)
	t.markLayout(np)
	t.markDirty(n)
	return nil
}

// Walk visits the subtree of h in pre-order. Returning false from fn skips
// the node's children.
func (t *Tree) Walk(h Handle, fn func(h Handle, n *node) bool) {
	n, err := t.get(h)
	if err != nil {
		return
	}
	if !fn(h, n) {
		return
	}
	for _, c := range n.children {
		t.Walk(c, fn)
	}
}
