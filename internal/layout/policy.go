package layout

// Unset marks an optional Policy length (Max, Cross) as absent.
const Unset = -1

// Kind selects how a node is sized along its parent's main axis.
type Kind uint8

const (
	KindContent      Kind = iota // Natural size from content, clamped by Min/Max
	KindFixed                    // Explicit Length
	KindProportional             // Weighted share of the remaining space
	KindInflate                  // Zero-content spacer taking a weighted share
)

// String returns the markup name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindProportional:
		return "proportional"
	case KindInflate:
		return "inflate"
	default:
		return "content"
	}
}

// Policy is a node's sizing rule, interpreted along its parent's main axis.
type Policy struct {
	Kind   Kind
	Length int     // KindFixed
	Weight float64 // KindProportional and KindInflate; inflate treats 0 as 1
	Min    int     // KindContent lower clamp
	Max    int     // KindContent upper clamp, Unset for none
	Cross  int     // explicit cross-axis size, Unset to take the parent's
}

// Content returns a content-sized policy.
func Content() Policy {
	return Policy{Kind: KindContent, Max: Unset, Cross: Unset}
}

// Fixed returns a policy with an explicit main-axis length.
func Fixed(n int) Policy {
	return Policy{Kind: KindFixed, Length: max(0, n), Max: Unset, Cross: Unset}
}

// Proportional returns a policy taking weight shares of the remaining space.
func Proportional(weight float64) Policy {
	return Policy{Kind: KindProportional, Weight: weight, Max: Unset, Cross: Unset}
}

// Inflate returns a spacer policy with the implicit weight of 1.
func Inflate() Policy {
	return Policy{Kind: KindInflate, Max: Unset, Cross: Unset}
}

// WithWeight overrides the weight of a proportional or inflate policy.
func (p Policy) WithWeight(w float64) Policy {
	p.Weight = w
	return p
}

// WithCross sets an explicit cross-axis size.
func (p Policy) WithCross(n int) Policy {
	p.Cross = max(0, n)
	return p
}

// WithMin sets the lower clamp of a content-sized policy.
func (p Policy) WithMin(n int) Policy {
	p.Min = max(0, n)
	return p
}

// WithMax sets the upper clamp of a content-sized policy.
func (p Policy) WithMax(n int) Policy {
	p.Max = max(0, n)
	return p
}

// IsFlexible reports whether the node takes a share of the remaining space.
func (p Policy) IsFlexible() bool {
	return p.Kind == KindProportional || p.Kind == KindInflate
}

// IsPinned reports whether neither of the node's lengths depends on its content.
func (p Policy) IsPinned() bool {
	return p.Kind == KindFixed && p.Cross != Unset
}

// weight returns the effective distribution weight, never negative.
func (p Policy) weight() float64 {
	switch p.Kind {
	case KindInflate:
		if p.Weight <= 0 {
			return 1
		}
		return p.Weight
	case KindProportional:
		return max(0, p.Weight)
	default:
		return 0
	}
}

// clamp restricts a natural length to [Min, Max].
// If Min > Max, Min wins.
func (p Policy) clamp(v int) int {
	if p.Max != Unset && v > p.Max {
		v = p.Max
	}
	if v < p.Min {
		v = p.Min
	}
	return max(0, v)
}

// contribution returns the lengths a child adds to its parent's natural size.
// Flexible children add nothing on the main axis.
func (p Policy) contribution(natural Size, o Orientation) (main, cross int) {
	nm, nc := natural.axes(o)
	switch p.Kind {
	case KindFixed:
		main = p.Length
	case KindContent:
		main = p.clamp(nm)
	}
	cross = nc
	if p.Cross != Unset {
		cross = p.Cross
	}
	return main, cross
}
