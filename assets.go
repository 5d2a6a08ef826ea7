package gui

import (
	"errors"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/grindlemire/go-gui/internal/raster"
	"github.com/grindlemire/go-gui/internal/text"
)

// Token identifies one pending asset request.
type Token uint64

// AssetFetcher loads raw asset bytes for the instance. Request must return
// immediately; done is called exactly once with the bytes or a failure, on
// the goroutine that drives Frame. done may run before Request returns.
type AssetFetcher interface {
	Request(id string, done func(data []byte, err error)) Token
}

// AssetFetcherFunc adapts a function to the AssetFetcher interface.
type AssetFetcherFunc func(id string, done func(data []byte, err error)) Token

// Request calls f.
func (f AssetFetcherFunc) Request(id string, done func(data []byte, err error)) Token {
	return f(id, done)
}

var errNoFetcher = errors.New("no asset fetcher configured")

type assetState uint8

const (
	assetPending assetState = iota
	assetReady
	assetFailed
)

// asset is a cache entry, keyed by identifier. Raw bytes are decoded on
// first use as an image or a font and the result is kept.
type asset struct {
	state   assetState
	token   Token
	data    []byte
	err     error
	waiters []waiter

	img     *image.RGBA
	imgErr  error
	font    *text.Font
	fontErr error
}

// waiter is a node attribute waiting for an asset. src is the value the
// attribute had when the request was made.
type waiter struct {
	h    Handle
	attr Attr
	src  string
}

func (a *asset) image() (*image.RGBA, error) {
	if a.img == nil && a.imgErr == nil {
		a.img, _, a.imgErr = raster.Decode(a.data)
	}
	return a.img, a.imgErr
}

func (a *asset) face() (*text.Font, error) {
	if a.font == nil && a.fontErr == nil {
		a.font, a.fontErr = text.Parse(a.data)
	}
	return a.font, a.fontErr
}

// request resolves id for attribute attr of h, from the cache when
// possible.
func (i *Instance) request(h Handle, attr Attr, id string) {
	if id == "" {
		return
	}
	w := waiter{h: h, attr: attr, src: id}
	if a, ok := i.assets[id]; ok {
		if a.state == assetPending {
			a.waiters = append(a.waiters, w)
			return
		}
		i.resolve(w, id, a)
		return
	}

	a := &asset{waiters: []waiter{w}}
	i.assets[id] = a
	if i.fetcher == nil {
		i.complete(id, nil, errNoFetcher)
		return
	}
	i.tokens++
	a.token = i.tokens
	// The entry exists before the call so a synchronous completion finds it.
	if t := i.fetcher.Request(id, func(data []byte, err error) {
		i.complete(id, data, err)
	}); t != 0 {
		a.token = t
	}
	i.logger.Debug("asset requested",
		zap.String("id", id),
		zap.Uint64("token", uint64(a.token)),
	)
}

// complete records the fetch result for id and resolves its waiters.
func (i *Instance) complete(id string, data []byte, err error) {
	a, ok := i.assets[id]
	if !ok || a.state != assetPending {
		return
	}
	if err != nil {
		a.state, a.err = assetFailed, err
	} else {
		a.state, a.data = assetReady, data
	}
	waiters := a.waiters
	a.waiters = nil
	for _, w := range waiters {
		i.resolve(w, id, a)
	}
}

// resolve hands a finished asset to one waiter. Waiters whose node was
// removed, or whose attribute has since changed, are discarded.
func (i *Instance) resolve(w waiter, id string, a *asset) {
	n, err := i.tree.get(w.h)
	if err != nil {
		i.logger.Debug("discarding asset for removed node",
			zap.String("id", id),
			zap.Stringer("node", w.h),
		)
		return
	}

	switch c := n.content.(type) {
	case *imageContent:
		if w.attr != AttrSrc || c.src != w.src {
			return
		}
		var img *image.RGBA
		err = a.err
		if a.state == assetReady {
			img, err = a.image()
		}
		if err != nil {
			c.img, c.failed = nil, true
			i.assetFailed(w.h, id, err)
		} else {
			c.img, c.failed = img, false
		}
		n.invalidate()
		i.tree.markDirty(n)

	case *textContent:
		if w.attr != AttrFont || c.fontID != w.src {
			return
		}
		var f *text.Font
		err = a.err
		if a.state == assetReady {
			f, err = a.face()
		}
		if err != nil {
			i.assetFailed(w.h, id, err)
			return
		}
		c.font, c.shaped = f, false
		n.invalidate()
		i.tree.markDirty(n)
	}
}

func (i *Instance) assetFailed(h Handle, id string, err error) {
	i.report(Diagnostic{
		Kind: DiagAssetLoadFailure,
		Node: h,
		Err:  fmt.Errorf("%w: %q: %w", ErrAssetLoad, id, err),
	})
}
