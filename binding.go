package gui

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/grindlemire/go-gui/internal/store"
)

// Value is a typed state value: number, string, bool or mapping.
type Value = store.Value

// NumberValue returns a number Value.
func NumberValue(f float64) Value { return store.Number(f) }

// StringValue returns a string Value.
func StringValue(s string) Value { return store.String(s) }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return store.Bool(b) }

// MapValue returns a mapping Value holding a copy of m.
func MapValue(m map[string]Value) Value { return store.Map(m) }

// binding is one subscriber of the binding graph: an attribute of a node.
type binding struct {
	h    Handle
	attr Attr
}

// Get returns the value stored at a dot-separated path.
func (i *Instance) Get(path string) (Value, bool) {
	return i.state.Get(path)
}

// Set stores v at path and re-evaluates every attribute bound to a touched
// path. Only nodes whose resolved attribute value changed are marked dirty.
func (i *Instance) Set(path string, v Value) error {
	touched, err := i.state.Set(path, v)
	if err != nil {
		return err
	}
	i.refresh(touched)
	return nil
}

// Derive makes path a computed value of the template tmpl.
func (i *Instance) Derive(path, tmpl string) error {
	touched, err := i.state.Derive(path, tmpl)
	if err != nil {
		return err
	}
	i.refresh(touched)
	return nil
}

// LoadState replaces the state with a JSON document.
func (i *Instance) LoadState(doc []byte) error {
	touched, err := i.state.Load(doc)
	if err != nil {
		return err
	}
	i.refresh(touched)
	return nil
}

// SaveState returns the state as a JSON document.
func (i *Instance) SaveState() ([]byte, error) {
	return i.state.MarshalJSON()
}

// Bind sets an attribute from a template such as "{{user.name}}" and
// subscribes it to the paths the template reads.
func (i *Instance) Bind(h Handle, name, tmpl string) error {
	n, err := i.tree.get(h)
	if err != nil {
		return err
	}
	a, ok := ParseAttr(name)
	if !ok {
		return fmt.Errorf("unknown attribute %q", name)
	}
	t, err := store.ParseTemplate(tmpl)
	if err != nil {
		return err
	}
	ch, err := i.bind(n, a, t)
	if err != nil {
		return err
	}
	i.mark(n, ch)
	return nil
}

// Bindings returns the store paths h's attributes are subscribed to.
func (i *Instance) Bindings(h Handle) ([]string, error) {
	n, err := i.tree.get(h)
	if err != nil {
		return nil, err
	}
	var out []string
	for a := range n.bindings {
		out = append(out, i.subs.Paths(binding{h: h, attr: a})...)
	}
	return out, nil
}

// bind evaluates t into attribute a of n. Templates with placeholders are
// kept on the node and subscribed.
func (i *Instance) bind(n *node, a Attr, t *store.Template) (change, error) {
	i.unbind(n, a)
	if !t.IsStatic() {
		if n.bindings == nil {
			n.bindings = make(map[Attr]*store.Template)
		}
		n.bindings[a] = t
		b := binding{h: n.self, attr: a}
		for _, p := range t.Paths() {
			i.subs.Subscribe(p, b)
		}
	}
	return i.evaluate(n, a, t)
}

func (i *Instance) unbind(n *node, a Attr) {
	if _, ok := n.bindings[a]; ok {
		delete(n.bindings, a)
		i.subs.Unsubscribe(binding{h: n.self, attr: a})
	}
}

// evaluate resolves t and applies it. A template reading an absent path
// leaves the attribute at its default and records a diagnostic.
func (i *Instance) evaluate(n *node, a Attr, t *store.Template) (change, error) {
	v, err := i.state.Eval(t)
	if errors.Is(err, store.ErrMissingBinding) {
		i.report(Diagnostic{
			Kind: DiagMissingBinding,
			Node: n.self,
			Err:  fmt.Errorf("%s=%q: %w", a, t, err),
		})
		v = a.fallback()
	} else if err != nil {
		return changeNone, err
	}
	return i.applyAttr(n, a, v)
}

// applyAttr stores v on n and starts loading any asset it names.
func (i *Instance) applyAttr(n *node, a Attr, v store.Value) (change, error) {
	ch, err := n.apply(a, v)
	if err != nil || ch == changeNone {
		return ch, err
	}
	switch c := n.content.(type) {
	case *imageContent:
		if a == AttrSrc {
			i.request(n.self, a, c.src)
		}
	case *textContent:
		if a == AttrFont {
			i.request(n.self, a, c.fontID)
		}
	}
	return ch, nil
}

func (i *Instance) mark(n *node, ch change) {
	switch ch {
	case changeLayout:
		i.tree.markDirty(n)
	case changePaint:
		i.tree.markRepaint(n)
	}
}

// refresh re-evaluates the attributes reading any of the touched paths.
func (i *Instance) refresh(touched []string) {
	if len(touched) == 0 {
		return
	}
	for _, b := range i.subs.Subscribers(touched...) {
		n, err := i.tree.get(b.h)
		if err != nil {
			i.subs.Unsubscribe(b)
			continue
		}
		t, ok := n.bindings[b.attr]
		if !ok {
			continue
		}
		ch, err := i.evaluate(n, b.attr, t)
		if err != nil {
			i.report(Diagnostic{
				Kind: DiagMalformedMarkup,
				Node: b.h,
				Err:  fmt.Errorf("%w: %s=%q: %w", ErrMalformedMarkup, b.attr, t, err),
			})
			ch, _ = n.apply(b.attr, b.attr.fallback())
		}
		i.mark(n, ch)
	}
	i.logger.Debug("state changed",
		zap.Strings("paths", touched),
	)
}
