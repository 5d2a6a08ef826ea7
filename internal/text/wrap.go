package text

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Wrap splits s into lines no wider than width pixels at size. Lines break
// only at Unicode line break opportunities (UAX #14), so a word wider than
// width overflows on a line of its own. Mandatory breaks such as newlines
// always end a line, and trailing whitespace is dropped from every line.
func (f *Font) Wrap(s string, size float64, width int) []string {
	if s == "" {
		return nil
	}

	var (
		lines []string
		line  strings.Builder
		lineW float32 // including trailing spaces
	)
	flush := func() {
		lines = append(lines, strings.TrimRightFunc(line.String(), unicode.IsSpace))
		line.Reset()
		lineW = 0
	}

	limit := float32(width)
	state := -1
	for rest := s; rest != ""; {
		var seg string
		var mustBreak bool
		seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)

		kept := strings.TrimRight(seg, "\r\n\v\f\u0085\u2028\u2029")
		word := strings.TrimRightFunc(kept, unicode.IsSpace)
		if line.Len() > 0 && lineW+f.Shape(word, size).Width > limit {
			flush()
		}
		line.WriteString(kept)
		lineW += f.Shape(kept, size).Width

		// The last segment always reports a mandatory break.
		if mustBreak && rest != "" {
			flush()
		}
	}
	flush()
	return lines
}
