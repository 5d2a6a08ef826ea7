package raster

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultScaler is the resampling kernel used when none is configured.
var DefaultScaler draw.Scaler = draw.NearestNeighbor

// Decode decodes a PNG, JPEG, GIF, BMP or WebP bitmap into premultiplied RGBA.
func Decode(data []byte) (*image.RGBA, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, format, nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, format, nil
}

// Resample scales src to w×h. Identical inputs and scaler always give
// identical output.
func Resample(src image.Image, w, h int, s draw.Scaler) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(0, w), max(0, h)))
	if w <= 0 || h <= 0 || src == nil || src.Bounds().Empty() {
		return dst
	}
	if s == nil {
		s = DefaultScaler
	}
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
