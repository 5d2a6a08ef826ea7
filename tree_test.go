package gui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-gui/internal/layout"
)

// mustCreate creates a node or fails the test.
func mustCreate(t *testing.T, tree *Tree, parent Handle, kind Kind, policy Policy) Handle {
	t.Helper()
	h, err := tree.Create(parent, kind, policy)
	require.NoError(t, err)
	return h
}

func TestTree_CreateAndQuery(t *testing.T) {
	tree := NewTree()
	root := mustCreate(t, tree, Handle{}, KindContainer, Content())
	a := mustCreate(t, tree, root, KindText, Content())
	b := mustCreate(t, tree, root, KindImage, Fixed(10))
	c := mustCreate(t, tree, root, KindSpacer, Inflate())

	assert.Equal(t, root, tree.Root())
	assert.Equal(t, 4, tree.Len())

	children, err := tree.ChildrenOf(root)
	require.NoError(t, err)
	assert.Equal(t, []Handle{a, b, c}, children)

	parent, ok, err := tree.ParentOf(b)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, root, parent)

	_, ok, err = tree.ParentOf(root)
	require.NoError(t, err)
	assert.False(t, ok)

	kind, err := tree.KindOf(b)
	require.NoError(t, err)
	assert.Equal(t, KindImage, kind)
}

func TestTree_CreateErrors(t *testing.T) {
	type tc struct {
		parent func(tree *Tree, root, leaf Handle) Handle
	}

	tests := map[string]tc{
		"second root": {
			parent: func(*Tree, Handle, Handle) Handle { return Handle{} },
		},
		"leaf parent": {
			parent: func(_ *Tree, _, leaf Handle) Handle { return leaf },
		},
		"removed parent": {
			parent: func(tree *Tree, root, _ Handle) Handle {
				h, _ := tree.Create(root, KindContainer, Content())
				_ = tree.Remove(h)
				return h
			},
		},
		"forged handle": {
			parent: func(*Tree, Handle, Handle) Handle { return Handle{index: 99, gen: 1} },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tree := NewTree()
			root := mustCreate(t, tree, Handle{}, KindContainer, Content())
			leaf := mustCreate(t, tree, root, KindText, Content())
			before := tree.Len()

			_, err := tree.Create(tt.parent(tree, root, leaf), KindText, Content())
			assert.ErrorIs(t, err, ErrInvalidHandle)
			assert.Equal(t, before, tree.Len())
		})
	}
}

func TestTree_CreateRejectsUnknownKind(t *testing.T) {
	tree := NewTree()
	root := mustCreate(t, tree, Handle{}, KindContainer, Content())

	_, err := tree.Create(root, Kind(200), Content())
	assert.ErrorIs(t, err, ErrInvalidKind)
	assert.Equal(t, 1, tree.Len())

	_, err = tree.Create(root, kindCount, Content())
	assert.ErrorIs(t, err, ErrInvalidKind)

	children, err := tree.ChildrenOf(root)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestTree_RemoveCascades(t *testing.T) {
	tree := NewTree()
	root := mustCreate(t, tree, Handle{}, KindContainer, Content())
	box := mustCreate(t, tree, root, KindContainer, Content())
	inner := mustCreate(t, tree, box, KindText, Content())
	deep := mustCreate(t, tree, box, KindContainer, Content())
	leaf := mustCreate(t, tree, deep, KindShape, Content())
	keep := mustCreate(t, tree, root, KindText, Content())

	var removed []Handle
	tree.onRemove = func(h Handle, _ *node) { removed = append(removed, h) }

	require.NoError(t, tree.Remove(box))
	assert.Equal(t, []Handle{inner, leaf, deep, box}, removed, "children are released before parents")
	assert.Equal(t, 2, tree.Len())

	for _, h := range []Handle{box, inner, deep, leaf} {
		assert.False(t, tree.Valid(h))
		_, err := tree.ChildrenOf(h)
		assert.ErrorIs(t, err, ErrInvalidHandle)
	}
	children, err := tree.ChildrenOf(root)
	require.NoError(t, err)
	assert.Equal(t, []Handle{keep}, children)

	assert.ErrorIs(t, tree.Remove(box), ErrInvalidHandle, "second removal")
}

func TestTree_StaleHandleNeverResolves(t *testing.T) {
	tree := NewTree()
	root := mustCreate(t, tree, Handle{}, KindContainer, Content())
	old := mustCreate(t, tree, root, KindText, Content())
	require.NoError(t, tree.Remove(old))

	reused := mustCreate(t, tree, root, KindImage, Content())
	assert.Equal(t, old.index, reused.index, "slot is recycled")
	assert.NotEqual(t, old, reused)
	assert.False(t, tree.Valid(old))

	_, err := tree.KindOf(old)
	assert.ErrorIs(t, err, ErrInvalidHandle)
	kind, err := tree.KindOf(reused)
	require.NoError(t, err)
	assert.Equal(t, KindImage, kind)
}

func TestTree_RemoveRoot(t *testing.T) {
	tree := NewTree()
	root := mustCreate(t, tree, Handle{}, KindContainer, Content())
	mustCreate(t, tree, root, KindText, Content())

	require.NoError(t, tree.Remove(root))
	assert.True(t, tree.Root().IsZero())
	assert.Zero(t, tree.Len())

	_, err := tree.Create(Handle{}, KindContainer, Content())
	assert.NoError(t, err, "a new root may be created")
}

func TestTree_Reparent(t *testing.T) {
	type tc struct {
		move    func(h map[string]Handle) (Handle, Handle)
		wantErr error
	}

	tests := map[string]tc{
		"under sibling": {
			move: func(h map[string]Handle) (Handle, Handle) { return h["b"], h["a"] },
		},
		"under itself": {
			move:    func(h map[string]Handle) (Handle, Handle) { return h["a"], h["a"] },
			wantErr: ErrCycle,
		},
		"under own descendant": {
			move:    func(h map[string]Handle) (Handle, Handle) { return h["a"], h["a1"] },
			wantErr: ErrCycle,
		},
		"root under child": {
			move:    func(h map[string]Handle) (Handle, Handle) { return h["root"], h["a"] },
			wantErr: ErrCycle,
		},
		"under leaf": {
			move:    func(h map[string]Handle) (Handle, Handle) { return h["a"], h["leaf"] },
			wantErr: ErrInvalidHandle,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tree := NewTree()
			h := map[string]Handle{}
			h["root"] = mustCreate(t, tree, Handle{}, KindContainer, Content())
			h["a"] = mustCreate(t, tree, h["root"], KindContainer, Content())
			h["a1"] = mustCreate(t, tree, h["a"], KindContainer, Content())
			h["b"] = mustCreate(t, tree, h["root"], KindContainer, Content())
			h["leaf"] = mustCreate(t, tree, h["b"], KindText, Content())

			before, err := tree.ChildrenOf(h["root"])
			require.NoError(t, err)

			node, parent := tt.move(h)
			err = tree.Reparent(node, parent)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, errors.Is(err, ErrInvalidHandle), "every structural rejection is an invalid handle")
				after, _ := tree.ChildrenOf(h["root"])
				assert.Equal(t, before, after, "tree is unchanged")
				return
			}
			require.NoError(t, err)
			got, _, _ := tree.ParentOf(node)
			assert.Equal(t, parent, got)
			children, _ := tree.ChildrenOf(parent)
			assert.Equal(t, node, children[len(children)-1])
		})
	}
}

func TestTree_WalkPreOrder(t *testing.T) {
	tree := NewTree()
	root := mustCreate(t, tree, Handle{}, KindContainer, Content())
	a := mustCreate(t, tree, root, KindContainer, Content())
	a1 := mustCreate(t, tree, a, KindText, Content())
	b := mustCreate(t, tree, root, KindText, Content())

	var seen []Handle
	tree.Walk(root, func(h Handle, _ *node) bool {
		seen = append(seen, h)
		return true
	})
	assert.Equal(t, []Handle{root, a, a1, b}, seen)

	seen = nil
	tree.Walk(root, func(h Handle, _ *node) bool {
		seen = append(seen, h)
		return h != a
	})
	assert.Equal(t, []Handle{root, a, b}, seen, "returning false skips children")
}

func TestTree_MarkDirtyStopsAtPinnedAncestor(t *testing.T) {
	tree := NewTree()
	root := mustCreate(t, tree, Handle{}, KindContainer, Content())
	pinned := mustCreate(t, tree, root, KindContainer, Fixed(50).WithCross(50))
	mid := mustCreate(t, tree, pinned, KindContainer, Content())
	leaf := mustCreate(t, tree, mid, KindText, Content())

	rn, _ := tree.get(root)
	layout.Calculate(rn, 100, 100)

	require.NoError(t, tree.MarkDirty(leaf))

	flags := func(h Handle) (bool, bool) {
		n, err := tree.get(h)
		require.NoError(t, err)
		return n.dirty, n.dirtyBelow
	}
	for _, h := range []Handle{leaf, mid, pinned} {
		dirty, _ := flags(h)
		assert.True(t, dirty, "%s is dirty", h)
	}
	dirty, below := flags(root)
	assert.False(t, dirty, "root is above the pinned ancestor")
	assert.True(t, below)

	assert.ErrorIs(t, tree.MarkDirty(Handle{}), ErrInvalidHandle)
}
