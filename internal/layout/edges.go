package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxLength bounds every pixel length so that sums of lengths cannot
// overflow an int.
const MaxLength = 1 << 24

// Edges are the insets of a container's content box, in pixels.
type Edges struct {
	Top, Right, Bottom, Left int
}

// outer returns the space the insets take on each axis.
func (e Edges) outer() Size {
	return Size{Width: e.Left + e.Right, Height: e.Top + e.Bottom}
}

// ParseLength parses a non-negative pixel length such as "12" or "12px".
// Fractions round to the nearest pixel.
func ParseLength(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil || f < 0 || math.IsNaN(f) || f > MaxLength {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return int(math.Round(f)), nil
}

// ParseEdges parses padding given as one length for every side, two for
// vertical and horizontal, or four in top, right, bottom, left order.
// Lengths are separated by spaces or commas.
func ParseEdges(s string) (Edges, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	v := make([]int, len(fields))
	for i, f := range fields {
		n, err := ParseLength(f)
		if err != nil {
			return Edges{}, err
		}
		v[i] = n
	}
	switch len(v) {
	case 0:
		return Edges{}, nil
	case 1:
		return Edges{v[0], v[0], v[0], v[0]}, nil
	case 2:
		return Edges{v[0], v[1], v[0], v[1]}, nil
	case 4:
		return Edges{v[0], v[1], v[2], v[3]}, nil
	default:
		return Edges{}, fmt.Errorf("invalid padding %q", s)
	}
}
