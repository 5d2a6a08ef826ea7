package gui

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/grindlemire/go-gui/internal/raster"
	"github.com/grindlemire/go-gui/internal/text"
)

// Option is a functional option for configuring an Instance.
type Option func(*Instance) error

// WithLogger sets the logging sink. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(i *Instance) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		i.logger = l
		return nil
	}
}

// WithAssetFetcher sets the collaborator that loads image and font bytes.
// Without one every asset request fails.
func WithAssetFetcher(f AssetFetcher) Option {
	return func(i *Instance) error {
		i.fetcher = f
		return nil
	}
}

// WithFont replaces the default font with the TrueType or OpenType font in data.
func WithFont(data []byte) Option {
	return func(i *Instance) error {
		f, err := text.Parse(data)
		if err != nil {
			return fmt.Errorf("default font: %w", err)
		}
		i.font = f
		return nil
	}
}

// WithFontSize sets the text size, in pixels per em, used by text nodes
// that do not set one. Default is 16.
func WithFontSize(size float64) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return fmt.Errorf("font size must be positive, got %v", size)
		}
		i.fontSize = size
		return nil
	}
}

// WithBackground sets the color damaged pixels are cleared to before
// repainting. Default is white.
func WithBackground(c string) Option {
	return func(i *Instance) error {
		col, err := raster.ParseColor(c)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		i.background = col
		return nil
	}
}

// WithFallbackColor sets the color painted in place of an image that
// failed to load.
func WithFallbackColor(c string) Option {
	return func(i *Instance) error {
		col, err := raster.ParseColor(c)
		if err != nil {
			return fmt.Errorf("fallback color: %w", err)
		}
		i.fallback = col
		return nil
	}
}

// WithImageScaler sets the kernel images are resampled with. Default is
// nearest neighbor. The scaler must be deterministic.
func WithImageScaler(s draw.Scaler) Option {
	return func(i *Instance) error {
		if s == nil {
			return errors.New("image scaler cannot be nil")
		}
		i.scaler = s
		return nil
	}
}

// WithOutputSize sets the initial size of the pixel buffer.
func WithOutputSize(width, height int) Option {
	return func(i *Instance) error {
		if width < 0 || height < 0 {
			return fmt.Errorf("output size %dx%d is negative", width, height)
		}
		i.SetOutputSize(width, height)
		return nil
	}
}

// WithEventHandler adds a handler that sees every routed event once, at
// its target.
func WithEventHandler(fn EventHandler) Option {
	return func(i *Instance) error {
		if fn == nil {
			return errors.New("event handler cannot be nil")
		}
		i.events.Subscribe(fn)
		return nil
	}
}

// WithState loads a JSON state document before anything is built.
func WithState(doc []byte) Option {
	return func(i *Instance) error {
		return i.LoadState(doc)
	}
}
