package raster

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is a straight (non-premultiplied) 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Common colors.
var (
	Transparent = Color{}
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
)

var named = map[string]Color{
	"transparent": Transparent,
	"black":       Black,
	"white":       White,
	"red":         RGB(255, 0, 0),
	"green":       RGB(0, 128, 0),
	"lime":        RGB(0, 255, 0),
	"blue":        RGB(0, 0, 255),
	"yellow":      RGB(255, 255, 0),
	"cyan":        RGB(0, 255, 255),
	"magenta":     RGB(255, 0, 255),
	"gray":        RGB(128, 128, 128),
	"grey":        RGB(128, 128, 128),
	"silver":      RGB(192, 192, 192),
	"orange":      RGB(255, 165, 0),
	"purple":      RGB(128, 0, 128),
	"navy":        RGB(0, 0, 128),
}

// ParseColor parses a color name or a hex string in one of the forms
// "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa". The leading '#' is optional
// for hex forms.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	var digits [8]uint8
	for i := 0; i < len(hex); i++ {
		if i >= len(digits) {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
		d, ok := hexDigit(hex[i])
		if !ok {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
		digits[i] = d
	}

	switch len(hex) {
	case 3, 4:
		c := Color{R: digits[0] * 17, G: digits[1] * 17, B: digits[2] * 17, A: 255}
		if len(hex) == 4 {
			c.A = digits[3] * 17
		}
		return c, nil
	case 6, 8:
		c := Color{
			R: digits[0]<<4 | digits[1],
			G: digits[2]<<4 | digits[3],
			B: digits[4]<<4 | digits[5],
			A: 255,
		}
		if len(hex) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
		return c, nil
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Premultiplied returns c with its color channels scaled by alpha.
func (c Color) Premultiplied() color.RGBA {
	return color.RGBA{
		R: mulDiv255(c.R, c.A),
		G: mulDiv255(c.G, c.A),
		B: mulDiv255(c.B, c.A),
		A: c.A,
	}
}

// IsTransparent reports whether painting c changes nothing.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// String returns the "#rrggbbaa" form of c.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
