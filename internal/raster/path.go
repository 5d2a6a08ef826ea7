package raster

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Op is a path segment operation.
type Op uint8

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo
	OpCubicTo
	OpClose
)

// Point is a path coordinate in pixels (y down).
type Point struct {
	X, Y float32
}

// Segment is one path operation. MoveTo and LineTo use Pts[0]; QuadTo uses
// Pts[0] as control and Pts[1] as target; CubicTo uses all three.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// Path is a sequence of closed or open subpaths. Open subpaths are closed
// implicitly when filled.
type Path struct {
	Segments []Segment
}

func (p *Path) MoveTo(x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: OpMoveTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) LineTo(x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: OpLineTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: OpQuadTo, Pts: [3]Point{{cx, cy}, {x, y}}})
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.Segments = append(p.Segments, Segment{Op: OpCubicTo, Pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: OpClose})
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.Segments) == 0
}

// Transform returns a copy of p with every point mapped to (x*sx+tx, y*sy+ty).
func (p *Path) Transform(sx, sy, tx, ty float32) *Path {
	out := &Path{Segments: make([]Segment, len(p.Segments))}
	for i, s := range p.Segments {
		for j := range s.Pts {
			s.Pts[j].X = s.Pts[j].X*sx + tx
			s.Pts[j].Y = s.Pts[j].Y*sy + ty
		}
		out.Segments[i] = s
	}
	return out
}

// Bounds returns the bounding box of all points, control points included.
func (p *Path) Bounds() (minX, minY, maxX, maxY float32) {
	minX, minY = float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY = float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, s := range p.Segments {
		for _, pt := range s.Pts[:s.Op.points()] {
			minX, maxX = min(minX, pt.X), max(maxX, pt.X)
			minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
		}
	}
	if minX > maxX {
		return 0, 0, 0, 0
	}
	return minX, minY, maxX, maxY
}

func (op Op) points() int {
	switch op {
	case OpMoveTo, OpLineTo:
		return 1
	case OpQuadTo:
		return 2
	case OpCubicTo:
		return 3
	default:
		return 0
	}
}

// ParsePath parses SVG-style path data. Supported commands are M, L, H, V,
// Q, C and Z in absolute and relative (lower-case) form, with implicit
// command repetition.
func ParsePath(d string) (*Path, error) {
	sc := pathScanner{s: d}
	p := &Path{}
	var cur, start Point
	var cmd byte

	for {
		sc.skipSeparators()
		if sc.done() {
			break
		}
		if c := sc.peek(); isCommand(c) {
			cmd = c
			sc.pos++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path data %q: expected command at offset %d", d, sc.pos)
		}

		rel := cmd >= 'a'
		base := Point{}
		if rel {
			base = cur
		}

		switch cmd | 0x20 {
		case 'm':
			pts, err := sc.points(1)
			if err != nil {
				return nil, err
			}
			cur = add(base, pts[0])
			start = cur
			p.MoveTo(cur.X, cur.Y)
			// Further pairs after a move are implicit line-tos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'l':
			pts, err := sc.points(1)
			if err != nil {
				return nil, err
			}
			cur = add(base, pts[0])
			p.LineTo(cur.X, cur.Y)
		case 'h':
			v, err := sc.number()
			if err != nil {
				return nil, err
			}
			cur.X = base.X + v
			p.LineTo(cur.X, cur.Y)
		case 'v':
			v, err := sc.number()
			if err != nil {
				return nil, err
			}
			cur.Y = base.Y + v
			p.LineTo(cur.X, cur.Y)
		case 'q':
			pts, err := sc.points(2)
			if err != nil {
				return nil, err
			}
			c, to := add(base, pts[0]), add(base, pts[1])
			p.QuadTo(c.X, c.Y, to.X, to.Y)
			cur = to
		case 'c':
			pts, err := sc.points(3)
			if err != nil {
				return nil, err
			}
			c1, c2, to := add(base, pts[0]), add(base, pts[1]), add(base, pts[2])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
			cur = to
		case 'z':
			p.Close()
			cur = start
			cmd = 0
		}

		if len(p.Segments) > 0 && p.Segments[0].Op != OpMoveTo {
			return nil, fmt.Errorf("path data %q: must start with a move", d)
		}
	}
	return p, nil
}

func add(a, b Point) Point {
	return Point{X: a.X + b.X, Y: a.Y + b.Y}
}

func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvQqCcZz", c) >= 0
}

type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) done() bool { return sc.pos >= len(sc.s) }
func (sc *pathScanner) peek() byte { return sc.s[sc.pos] }

func (sc *pathScanner) skipSeparators() {
	for !sc.done() {
		switch sc.peek() {
		case ' ', ',', '\t', '\n', '\r':
			sc.pos++
		default:
			return
		}
	}
}

func (sc *pathScanner) number() (float32, error) {
	sc.skipSeparators()
	begin := sc.pos
	if !sc.done() && (sc.peek() == '-' || sc.peek() == '+') {
		sc.pos++
	}
	seenDot, seenExp := false, false
scan:
	for !sc.done() {
		c := sc.peek()
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && !seenExp:
			seenExp = true
			if sc.pos+1 < len(sc.s) && (sc.s[sc.pos+1] == '-' || sc.s[sc.pos+1] == '+') {
				sc.pos++
			}
		default:
			break scan
		}
		sc.pos++
	}
	if begin == sc.pos {
		return 0, fmt.Errorf("path data %q: expected number at offset %d", sc.s, begin)
	}
	v, err := strconv.ParseFloat(sc.s[begin:sc.pos], 32)
	if err != nil {
		return 0, fmt.Errorf("path data %q: %w", sc.s, err)
	}
	return float32(v), nil
}

func (sc *pathScanner) points(n int) ([3]Point, error) {
	var pts [3]Point
	for i := 0; i < n; i++ {
		x, err := sc.number()
		if err != nil {
			return pts, err
		}
		y, err := sc.number()
		if err != nil {
			return pts, err
		}
		pts[i] = Point{X: x, Y: y}
	}
	return pts, nil
}
