package gui

import (
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Cursor offsets count grapheme clusters, so "é" written as e plus a
// combining accent is one step.

func graphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// byteOffset returns the byte index where grapheme cluster g starts, or
// len(s) when g is at or past the end.
func byteOffset(s string, g int) int {
	if g <= 0 {
		return 0
	}
	gr := uniseg.NewGraphemes(s)
	for n := 0; gr.Next(); n++ {
		if n == g {
			from, _ := gr.Positions()
			return from
		}
	}
	return len(s)
}

// runeOffset converts a grapheme offset into a rune offset.
func runeOffset(s string, g int) int {
	return utf8.RuneCountInString(s[:byteOffset(s, g)])
}

// editable returns the focused node and its text content.
func (i *Instance) editable() (*node, *textContent, error) {
	if i.focus.IsZero() {
		return nil, nil, ErrNoFocus
	}
	n, err := i.tree.get(i.focus)
	if err != nil {
		i.focus = Handle{}
		return nil, nil, ErrNoFocus
	}
	return n, n.content.(*textContent), nil
}

// InsertText inserts s at the caret of the focused text. The result is
// NFC-normalized and the caret moves past the inserted text.
func (i *Instance) InsertText(s string) error {
	n, c, err := i.editable()
	if err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	at := byteOffset(c.text, c.cursor)
	head := norm.NFC.String(c.text[:at] + s)
	i.edit(n, c, head+c.text[at:], graphemeCount(head))
	return nil
}

// Delete removes grapheme clusters around the caret of the focused text.
// A negative offset removes -offset clusters before the caret and does
// nothing at the start; a positive offset removes clusters after the caret
// and does nothing at the end.
func (i *Instance) Delete(offset int) error {
	n, c, err := i.editable()
	if err != nil {
		return err
	}
	total := graphemeCount(c.text)
	switch {
	case offset < 0 && c.cursor > 0:
		from := max(0, c.cursor+offset)
		i.edit(n, c, c.text[:byteOffset(c.text, from)]+c.text[byteOffset(c.text, c.cursor):], from)
	case offset > 0 && c.cursor < total:
		to := min(total, c.cursor+offset)
		i.edit(n, c, c.text[:byteOffset(c.text, c.cursor)]+c.text[byteOffset(c.text, to):], c.cursor)
	}
	return nil
}

func (i *Instance) edit(n *node, c *textContent, text string, cursor int) {
	c.text, c.cursor = text, cursor
	c.edited, c.shaped = true, false
	n.invalidate()
	i.tree.markDirty(n)
	i.blinkStart = i.now
}

// SetCursor moves the caret of the focused text, clamped to its content.
func (i *Instance) SetCursor(offset int) error {
	n, c, err := i.editable()
	if err != nil {
		return err
	}
	offset = max(0, min(offset, graphemeCount(c.text)))
	if offset != c.cursor {
		c.cursor = offset
		i.tree.markRepaint(n)
	}
	i.blinkStart = i.now
	return nil
}

// KeyPress applies an editing key to the focused text. Enter submits and
// flushes the edit, Escape blurs.
func (i *Instance) KeyPress(k Key) error {
	n, c, err := i.editable()
	if err != nil {
		return err
	}
	switch k {
	case KeyBackspace:
		return i.Delete(-1)
	case KeyDelete:
		return i.Delete(1)
	case KeyLeft:
		return i.SetCursor(c.cursor - 1)
	case KeyRight:
		return i.SetCursor(c.cursor + 1)
	case KeyHome:
		return i.SetCursor(0)
	case KeyEnd:
		return i.SetCursor(graphemeCount(c.text))
	case KeyEnter:
		i.flush(n)
		i.emit(Event{Kind: EventSubmit, Target: n.self, Current: n.self, Text: c.text})
		return nil
	case KeyEscape:
		i.Blur()
		return nil
	default:
		return fmt.Errorf("unsupported key %s", k)
	}
}
