package gui

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/grindlemire/go-gui/internal/store"
)

// Focus gives keyboard focus to an editable text node, blurring the
// previous holder. Only one node holds focus at a time.
func (i *Instance) Focus(h Handle) error {
	n, err := i.tree.get(h)
	if err != nil {
		return err
	}
	if c, ok := n.content.(*textContent); !ok || !c.editable {
		return fmt.Errorf("%s is not an editable text", h)
	}
	if i.focus == h {
		return nil
	}
	i.Blur()

	i.focus = h
	i.blinkStart = i.now
	i.tree.markRepaint(n)
	i.emit(Event{Kind: EventFocus, Target: h, Current: h, Text: n.content.(*textContent).text})
	return nil
}

// Focused returns the node holding focus.
func (i *Instance) Focused() (Handle, bool) {
	if i.focus.IsZero() || !i.tree.Valid(i.focus) {
		return Handle{}, false
	}
	return i.focus, true
}

// Blur drops focus, flushing any pending edit of the focused text.
func (i *Instance) Blur() {
	h := i.focus
	if h.IsZero() {
		return
	}
	i.focus = Handle{}
	n, err := i.tree.get(h)
	if err != nil {
		return
	}
	i.flush(n)
	i.tree.markRepaint(n)
	i.emit(Event{Kind: EventBlur, Target: h, Current: h, Text: n.content.(*textContent).text})
}

// flush ends the pending edit of n. A text bound to a single store path
// writes its content back to that path.
func (i *Instance) flush(n *node) {
	c := n.content.(*textContent)
	if !c.edited {
		return
	}
	c.edited = false
	if t, ok := n.bindings[AttrText]; ok {
		if path, ok := t.Single(); ok {
			if err := i.Set(path, store.String(c.text)); err != nil {
				i.logger.Warn("failed to write edited text back",
					zap.String("path", path),
					zap.Stringer("node", n.self),
					zap.Error(err),
				)
			}
		}
	}
	i.emit(Event{Kind: EventChange, Target: n.self, Current: n.self, Text: c.text})
}
