package gui

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/grindlemire/go-gui/internal/raster"
	"github.com/grindlemire/go-gui/internal/store"
	"github.com/grindlemire/go-gui/internal/text"
)

// DefaultFontSize is the text size used when neither the node nor the
// instance sets one.
const DefaultFontSize = 16

// Instance is one toolkit instance: a node tree, its state store and the
// output buffer the tree is painted into. It is single-threaded; the host
// calls every method from the same goroutine, including asset completions.
type Instance struct {
	tree  *Tree
	state *store.Store
	subs  *store.Graph[binding]

	logger  *zap.Logger
	fetcher AssetFetcher
	assets  map[string]*asset
	tokens  Token

	font       *text.Font
	fontSize   float64
	background raster.Color
	fallback   raster.Color
	scaler     draw.Scaler
	raster     *raster.Rasterizer

	out    *image.RGBA
	canvas *raster.Canvas
	damage raster.Damage

	focus    Handle
	hover    Handle
	handlers map[Handle]*Events[Event]
	events   Events[Event]

	now        time.Duration
	blinkStart time.Duration
	caretShown bool

	diagnostics []Diagnostic
	frames      uint64
}

// FrameStats describes the work done by one Frame call.
type FrameStats struct {
	Frame   uint64
	Damage  []image.Rectangle // repainted rectangles
	Painted int               // node paints, counted once per damage rect
}

// Init creates an instance. Options are applied in order; the first
// failing option aborts initialization.
func Init(opts ...Option) (*Instance, error) {
	inst := &Instance{
		tree:       NewTree(),
		state:      store.New(),
		subs:       store.NewGraph[binding](),
		logger:     zap.NewNop(),
		assets:     make(map[string]*asset),
		fontSize:   DefaultFontSize,
		background: raster.White,
		fallback:   raster.RGB(0xcc, 0xcc, 0xcc),
		scaler:     raster.DefaultScaler,
		raster:     raster.NewRasterizer(),
		handlers:   make(map[Handle]*Events[Event]),
	}
	inst.tree.onRemove = inst.forget

	for _, opt := range opts {
		if err := opt(inst); err != nil {
			return nil, err
		}
	}

	if inst.font == nil {
		f, err := text.Default()
		if err != nil {
			return nil, fmt.Errorf("load default font: %w", err)
		}
		inst.font = f
	}
	if inst.out == nil {
		inst.SetOutputSize(0, 0)
	}
	return inst, nil
}

// Tree returns the node store.
func (i *Instance) Tree() *Tree {
	return i.tree
}

// SetOutputSize resizes the pixel buffer. The whole buffer is repainted on
// the next frame.
func (i *Instance) SetOutputSize(width, height int) {
	width, height = max(0, width), max(0, height)
	if i.out != nil && i.out.Bounds().Dx() == width && i.out.Bounds().Dy() == height {
		return
	}
	i.out = image.NewRGBA(image.Rect(0, 0, width, height))
	i.canvas = raster.NewCanvas(i.out)
	i.damage.Reset()
	i.damage.Add(i.out.Bounds())
	if root, err := i.tree.get(i.tree.root); err == nil {
		i.tree.markDirty(root)
	}
}

// Output returns the pixel buffer. Its contents change only inside Frame.
func (i *Instance) Output() *image.RGBA {
	return i.out
}

// Pixels returns the premultiplied RGBA bytes of the output buffer with
// its dimensions, for the host to blit.
func (i *Instance) Pixels() (pix []byte, width, height, stride int) {
	b := i.out.Bounds()
	return i.out.Pix, b.Dx(), b.Dy(), i.out.Stride
}

// Diagnostics returns and clears the recoverable problems recorded since
// the last call.
func (i *Instance) Diagnostics() []Diagnostic {
	d := i.diagnostics
	i.diagnostics = nil
	return d
}

func (i *Instance) report(d Diagnostic) {
	i.logger.Warn("diagnostic",
		zap.Stringer("kind", d.Kind),
		zap.Stringer("node", d.Node),
		zap.Int("line", d.Line),
		zap.Error(d.Err),
	)
	i.diagnostics = append(i.diagnostics, d)
}

// Create adds a node under parent. It is the same operation the builder
// uses; attributes are set afterwards with SetAttr or Bind.
func (i *Instance) Create(parent Handle, kind Kind, policy Policy) (Handle, error) {
	return i.tree.Create(parent, kind, policy)
}

// Remove deletes h and its subtree, dropping their bindings, handlers and
// any focus or hover they held.
func (i *Instance) Remove(h Handle) error {
	return i.tree.Remove(h)
}

// forget runs for every removed node.
func (i *Instance) forget(h Handle, n *node) {
	for a := range n.bindings {
		i.subs.Unsubscribe(binding{h: h, attr: a})
	}
	delete(i.handlers, h)
	if i.focus == h {
		i.focus = Handle{}
	}
	if i.hover == h {
		i.hover = Handle{}
	}
	i.damage.Add(n.painted)
}

// SetAttr sets an attribute to a literal value, dropping any binding it
// had. The node is not marked dirty; call MarkDirty afterwards.
func (i *Instance) SetAttr(h Handle, name, value string) error {
	n, err := i.tree.get(h)
	if err != nil {
		return err
	}
	a, ok := ParseAttr(name)
	if !ok {
		return fmt.Errorf("unknown attribute %q", name)
	}
	i.unbind(n, a)
	_, err = i.applyAttr(n, a, store.String(value))
	return err
}

// MarkDirty flags h for re-measurement and repaint in the next frame.
func (i *Instance) MarkDirty(h Handle) error {
	return i.tree.MarkDirty(h)
}

// Text returns the content of a text node.
func (i *Instance) Text(h Handle) (string, error) {
	c, err := i.textOf(h)
	if err != nil {
		return "", err
	}
	return c.text, nil
}

// Cursor returns the caret offset of a text node in grapheme clusters.
func (i *Instance) Cursor(h Handle) (int, error) {
	c, err := i.textOf(h)
	if err != nil {
		return 0, err
	}
	return c.cursor, nil
}

func (i *Instance) textOf(h Handle) (*textContent, error) {
	n, err := i.tree.get(h)
	if err != nil {
		return nil, err
	}
	c, ok := n.content.(*textContent)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not text", h, n.kind())
	}
	return c, nil
}

// OnEvent registers fn for events targeted at h, or seen by h while
// capturing.
func (i *Instance) OnEvent(h Handle, fn EventHandler) error {
	if _, err := i.tree.get(h); err != nil {
		return err
	}
	ev, ok := i.handlers[h]
	if !ok {
		ev = &Events[Event]{}
		i.handlers[h] = ev
	}
	ev.Subscribe(fn)
	return nil
}

// emit delivers e to h's handlers and to the instance-wide handlers.
func (i *Instance) emit(e Event) {
	if ev, ok := i.handlers[e.Current]; ok {
		ev.Emit(e)
	}
	if e.Current == e.Target {
		i.events.Emit(e)
	}
}
