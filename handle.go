package gui

import "fmt"

// Handle is an opaque, stable reference to a node. It stays valid until the
// node is removed and never resolves to a different node afterwards: slot
// reuse bumps the generation. The zero Handle names no node.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "node(none)"
	}
	return fmt.Sprintf("node(%d.%d)", h.index, h.gen)
}
