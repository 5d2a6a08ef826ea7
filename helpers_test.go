package gui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestInstance(t *testing.T, width, height int, opts ...Option) *Instance {
	t.Helper()
	inst, err := Init(append([]Option{WithOutputSize(width, height)}, opts...)...)
	require.NoError(t, err)
	return inst
}

// numbered assigns 1-based line numbers to instructions.
func numbered(instrs ...Instruction) []Instruction {
	for i := range instrs {
		instrs[i].Line = i + 1
	}
	return instrs
}

// buildRoot builds instrs as the root of inst and returns the root handle.
func buildRoot(t *testing.T, inst *Instance, instrs ...Instruction) Handle {
	t.Helper()
	top, err := inst.Build(Handle{}, numbered(instrs...))
	require.NoError(t, err)
	require.NotEmpty(t, top)
	return top[0]
}

func childAt(t *testing.T, inst *Instance, parent Handle, i int) Handle {
	t.Helper()
	children, err := inst.Tree().ChildrenOf(parent)
	require.NoError(t, err)
	require.Greater(t, len(children), i)
	return children[i]
}

func boundsOf(t *testing.T, inst *Instance, h Handle) Rect {
	t.Helper()
	r, err := inst.Tree().Bounds(h)
	require.NoError(t, err)
	return r
}
