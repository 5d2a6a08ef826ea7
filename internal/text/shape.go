package text

import (
	"math"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// Glyph is one positioned glyph of a shaped run.
type Glyph struct {
	ID      uint16
	Cluster int     // index of the first rune this glyph renders
	X, Y    float32 // pen position relative to the run origin on the baseline (y down)
	Advance float32
}

// Run is a shaped single line of text.
type Run struct {
	Glyphs  []Glyph
	Width   float32
	Size    float64
	RTL     bool
	Metrics Metrics
}

// Direction returns the direction of the first strong character of s,
// left-to-right when there is none.
func Direction(s string) di.Direction {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		case bidi.L:
			return di.DirectionLTR
		}
	}
	return di.DirectionLTR
}

func script(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsDigit(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// Shape lays s out on one line at size pixels per em. Glyphs are in visual
// order starting at x = 0.
func (f *Font) Shape(s string, size float64) Run {
	run := Run{Size: size, Metrics: f.Metrics(size)}
	if s == "" || size <= 0 {
		return run
	}

	runes := []rune(s)
	dir := Direction(s)
	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      f.face,
		Size:      toFixed(size),
		Script:    script(runes),
		Language:  language.NewLanguage("en"),
	})

	run.RTL = dir == di.DirectionRTL
	run.Glyphs = make([]Glyph, len(out.Glyphs))
	var x float32
	for i, g := range out.Glyphs {
		adv := fromFixed(g.Advance)
		run.Glyphs[i] = Glyph{
			ID:      uint16(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       x + fromFixed(g.XOffset),
			Y:       -fromFixed(g.YOffset),
			Advance: adv,
		}
		x += adv
	}
	run.Width = x
	return run
}

// Measure returns the pixel size of s on one line.
func (f *Font) Measure(s string, size float64) (width, height int) {
	run := f.Shape(s, size)
	return run.PixelWidth(), run.Metrics.LineHeight
}

// PixelWidth returns the run width rounded up to whole pixels.
func (r Run) PixelWidth() int {
	return int(math.Ceil(float64(r.Width)))
}

// CaretX returns the x position of a caret placed before rune index i.
func (r Run) CaretX(i int) float32 {
	var before float32
	for _, g := range r.Glyphs {
		if g.Cluster < i {
			before += g.Advance
		}
	}
	if r.RTL {
		return r.Width - before
	}
	return before
}
