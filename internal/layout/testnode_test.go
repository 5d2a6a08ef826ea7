package layout

// testNode is a minimal Layoutable used by the solver tests.
type testNode struct {
	style      Style
	policy     Policy
	children   []*testNode
	parent     *testNode
	layout     Layout
	dirty      bool
	dirtyBelow bool
	intrinsicW int
	intrinsicH int
	area       int // when set, height follows width like wrapped text

	writes int // SetLayout calls
}

func newTestNode(policy Policy) *testNode {
	return &testNode{style: DefaultStyle(), policy: policy, dirty: true}
}

func newLeaf(policy Policy, w, h int) *testNode {
	n := newTestNode(policy)
	n.intrinsicW, n.intrinsicH = w, h
	return n
}

func newRow(policy Policy, gap int, children ...*testNode) *testNode {
	n := newTestNode(policy)
	n.style.Orientation = Horizontal
	n.style.Gap = gap
	n.addChild(children...)
	return n
}

func newColumn(policy Policy, gap int, children ...*testNode) *testNode {
	n := newTestNode(policy)
	n.style.Orientation = Vertical
	n.style.Gap = gap
	n.addChild(children...)
	return n
}

func (n *testNode) addChild(children ...*testNode) {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	n.dirty = true
}

// touch marks n dirty the way the gui package does: up to the first pinned
// ancestor, then as a dirty descendant up to the root.
func (n *testNode) touch() {
	n.dirty = true
	cur := n
	for cur.parent != nil && !cur.policy.IsPinned() {
		cur = cur.parent
		cur.dirty = true
	}
	for cur.parent != nil {
		cur = cur.parent
		cur.dirtyBelow = true
	}
}

func (n *testNode) LayoutStyle() Style   { return n.style }
func (n *testNode) LayoutPolicy() Policy { return n.policy }

func (n *testNode) LayoutChildren() []Layoutable {
	result := make([]Layoutable, len(n.children))
	for i, c := range n.children {
		result[i] = c
	}
	return result
}

func (n *testNode) SetLayout(l Layout) {
	n.writes++
	n.layout = l
}

func (n *testNode) GetLayout() Layout         { return n.layout }
func (n *testNode) IsDirty() bool             { return n.dirty }
func (n *testNode) HasDirtyDescendant() bool  { return n.dirtyBelow }
func (n *testNode) ClearDirty()               { n.dirty, n.dirtyBelow = false, false }
func (n *testNode) IntrinsicSize() (int, int) { return n.intrinsicW, n.intrinsicH }

func (n *testNode) HeightForWidth(width int) (int, bool) {
	if n.area == 0 || width <= 0 {
		return 0, false
	}
	return (n.area + width - 1) / width, true
}

func (n *testNode) rect() Rect { return n.layout.Rect }
