package layout

import (
	"math"
	"sort"
)

// distribute computes each child's slot inside content and recurses into it.
// It returns the main-axis space left unassigned and, for a scrolling
// container, how far the children overflow content.
func distribute(children []Layoutable, style Style, content Rect) (unused, overflow int) {
	o := style.Orientation
	mainSize, crossSize := content.mainCross(o)
	n := len(children)

	gap := max(0, style.Gap)
	if n > 1 && gap*(n-1) > mainSize {
		// Gaps alone overflow: collapse them so the sum still fits.
		gap = mainSize / (n - 1)
	}
	available := mainSize - gap*(n-1)

	// 1. Fixed and content-sized demand.
	sizes := make([]int, n)
	policies := make([]Policy, n)
	demand := 0
	weights := 0.0
	for i, child := range children {
		p := child.LayoutPolicy()
		policies[i] = p
		if p.IsFlexible() {
			weights += p.weight()
			continue
		}
		natural := child.GetLayout().Natural
		if o == Vertical && p.Kind == KindContent {
			if hw, ok := child.(HeightForWidth); ok {
				if h, ok := hw.HeightForWidth(crossLength(p, crossSize)); ok {
					natural.Height = h
				}
			}
		}
		sizes[i], _ = p.contribution(natural, o)
		demand += sizes[i]
	}

	// 2-5. Grow into the remainder or shrink on overflow.
	switch {
	case demand > available && style.Scroll:
		overflow = demand - available
	case demand > available:
		shrink(sizes, demand, available)
	case weights > 0:
		grow(sizes, policies, available-demand, weights)
	default:
		unused = available - demand
	}

	// 6-7. Cross size, position, recurse.
	scroll := min(max(0, style.Offset), overflow)
	offset := 0
	for i, child := range children {
		cross := crossLength(policies[i], crossSize)
		crossPos := alignOffset(style.Align, crossSize, cross)

		var slot Rect
		if o == Horizontal {
			slot = NewRect(content.X+offset, content.Y+crossPos, sizes[i], cross).Translate(-scroll, 0)
		} else {
			slot = NewRect(content.X+crossPos, content.Y+offset, cross, sizes[i]).Translate(0, -scroll)
		}
		calculateNode(child, slot)
		offset += sizes[i] + gap
	}
	return unused, overflow
}

// crossLength is a child's cross-axis size: its explicit cross clamped to
// the container, otherwise the container's full cross size.
func crossLength(p Policy, crossSize int) int {
	if p.Cross != Unset {
		return min(p.Cross, crossSize)
	}
	return crossSize
}

// remainder records the fractional part a child lost to integer rounding.
type remainder struct {
	index int
	frac  float64
}

// shrink scales every non-zero length by target/total with largest-remainder
// rounding so the result sums to exactly target.
func shrink(sizes []int, total, target int) {
	if target <= 0 || total <= 0 {
		for i := range sizes {
			sizes[i] = 0
		}
		return
	}

	rems := make([]remainder, 0, len(sizes))
	assigned := 0
	for i, s := range sizes {
		if s == 0 {
			continue
		}
		scaled := s * target
		sizes[i] = scaled / total
		assigned += sizes[i]
		rems = append(rems, remainder{index: i, frac: float64(scaled%total) / float64(total)})
	}
	settle(sizes, rems, target-assigned)
}

// grow hands free space to flexible children by weight with largest-remainder
// rounding so the handed-out total is exactly free.
func grow(sizes []int, policies []Policy, free int, weights float64) {
	rems := make([]remainder, 0, len(sizes))
	assigned := 0
	for i, p := range policies {
		if !p.IsFlexible() {
			continue
		}
		quota := float64(free) * p.weight() / weights
		whole := math.Floor(quota)
		sizes[i] = int(whole)
		assigned += sizes[i]
		rems = append(rems, remainder{index: i, frac: quota - whole})
	}
	settle(sizes, rems, free-assigned)
}

// settle gives one extra pixel to the leftover largest remainders; ties go
// to the earlier sibling. A negative leftover (float rounding) is taken back
// from the smallest remainders.
func settle(sizes []int, rems []remainder, leftover int) {
	if len(rems) == 0 || leftover == 0 {
		return
	}
	sort.SliceStable(rems, func(a, b int) bool {
		if rems[a].frac != rems[b].frac {
			return rems[a].frac > rems[b].frac
		}
		return rems[a].index < rems[b].index
	})
	for i := 0; leftover > 0; i = (i + 1) % len(rems) {
		sizes[rems[i].index]++
		leftover--
	}
	for i := len(rems) - 1; leftover < 0; i-- {
		if i < 0 {
			i = len(rems) - 1
		}
		if sizes[rems[i].index] > 0 {
			sizes[rems[i].index]--
			leftover++
		}
	}
}

// alignOffset returns the offset of an item on the cross axis.
func alignOffset(align Align, crossSize, itemSize int) int {
	switch align {
	case AlignEnd:
		return crossSize - itemSize
	case AlignCenter:
		return (crossSize - itemSize) / 2
	default:
		return 0
	}
}
