package gui

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitTest_MatchesPaint(t *testing.T) {
	inst := newTestInstance(t, 60, 100)
	colors := map[string]color.RGBA{
		"#ff0000": {R: 255, A: 255},
		"#00ff00": {G: 255, A: 255},
		"#0000ff": {B: 255, A: 255},
		"#ffff00": {R: 255, G: 255, A: 255},
		"#00ffff": {G: 255, B: 255, A: 255},
	}
	buildRoot(t, inst,
		Open("column", A("gap", "4")),
		Open("row", A("fixed", "40"), A("background", "#ff0000"), A("interactive", "")),
		Open("column", A("fixed", "20"), A("background", "#00ff00"), A("interactive", "")), Close("column"),
		Open("column", A("fixed", "15"), A("background", "#0000ff"), A("interactive", ""), A("padding", "5")),
		Open("column", A("inflate", ""), A("background", "#ffff00"), A("interactive", "true")), Close("column"),
		Close("column"),
		Close("row"),
		Open("row", A("fixed", "30"), A("background", "#00ffff"), A("interactive", "")), Close("row"),
		Close("column"),
	)
	inst.Frame(0)

	bg := map[Handle]color.RGBA{}
	inst.Tree().Walk(inst.Tree().Root(), func(h Handle, n *node) bool {
		if c, ok := n.content.(*containerContent); ok && n.interactive {
			bg[h] = colors[c.background.String()[:7]]
		}
		return true
	})
	require.Len(t, bg, 5)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 100; y++ {
		for x := 0; x < 60; x++ {
			h, ok := inst.HitTest(x, y)
			got := inst.Output().RGBAAt(x, y)
			if !ok {
				assert.Equal(t, white, got, "(%d,%d) hits nothing", x, y)
				continue
			}
			assert.Equal(t, bg[h], got, "(%d,%d) hits %s", x, y, h)
		}
	}
}

func TestHitTest_InteractivityAndOrder(t *testing.T) {
	inst := newTestInstance(t, 100, 100)
	root := buildRoot(t, inst,
		Open("column", A("interactive", "")),
		Open("row", A("fixed", "50")),
		Open("text", A("txt", "x"), A("fixed", "50"), A("interactive", "")), Close("text"),
		Open("spacer"), Close("spacer"),
		Close("row"),
		Close("column"),
	)
	inst.Frame(0)
	row := childAt(t, inst, root, 0)
	txt := childAt(t, inst, row, 0)

	type tc struct {
		x, y   int
		want   Handle
		wantOK bool
	}

	tests := map[string]tc{
		"interactive leaf wins":              {x: 10, y: 10, want: txt, wantOK: true},
		"non-interactive parts fall through": {x: 80, y: 10, want: root, wantOK: true},
		"below the row hits the root":        {x: 10, y: 80, want: root, wantOK: true},
		"outside the viewport":               {x: 100, y: 10},
		"negative coordinates":               {x: -1, y: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, ok := inst.HitTest(tt.x, tt.y)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, h)
		})
	}
}

type recorded struct {
	kind    EventKind
	target  Handle
	current Handle
}

func recordEvents(t *testing.T, inst *Instance, log *[]recorded, hs ...Handle) {
	t.Helper()
	for _, h := range hs {
		require.NoError(t, inst.OnEvent(h, func(e Event) {
			*log = append(*log, recorded{kind: e.Kind, target: e.Target, current: e.Current})
		}))
	}
}

func TestClick_CaptureAndNoBubbling(t *testing.T) {
	var global []recorded
	inst := newTestInstance(t, 100, 100, WithEventHandler(func(e Event) {
		global = append(global, recorded{kind: e.Kind, target: e.Target, current: e.Current})
	}))
	root := buildRoot(t, inst,
		Open("column", A("capture", "")),
		Open("column", A("fixed", "50"), A("interactive", "")),
		Open("column", A("fixed", "20"), A("interactive", "")), Close("column"),
		Close("column"),
		Close("column"),
	)
	inst.Frame(0)
	mid := childAt(t, inst, root, 0)
	leaf := childAt(t, inst, mid, 0)

	var log []recorded
	recordEvents(t, inst, &log, root, mid, leaf)

	h, ok := inst.Click(5, 5)
	require.True(t, ok)
	assert.Equal(t, leaf, h)
	assert.Equal(t, []recorded{
		{kind: EventClick, target: leaf, current: root},
		{kind: EventClick, target: leaf, current: leaf},
	}, log, "the capturing root sees the click first; the non-capturing parent never does")
	assert.Equal(t, []recorded{{kind: EventClick, target: leaf, current: leaf}}, global)

	log = nil
	_, ok = inst.Click(5, 30)
	require.True(t, ok)
	assert.Equal(t, []recorded{
		{kind: EventClick, target: mid, current: root},
		{kind: EventClick, target: mid, current: mid},
	}, log)
}

func TestPointerMove_EnterLeave(t *testing.T) {
	inst := newTestInstance(t, 100, 100)
	root := buildRoot(t, inst,
		Open("row"),
		Open("column", A("fixed", "50"), A("interactive", "")), Close("column"),
		Open("column", A("fixed", "50"), A("interactive", "")), Close("column"),
		Close("row"),
	)
	inst.Frame(0)
	a, b := childAt(t, inst, root, 0), childAt(t, inst, root, 1)

	var log []recorded
	recordEvents(t, inst, &log, a, b)

	inst.PointerMove(10, 10)
	inst.PointerMove(20, 10)
	inst.PointerMove(60, 10)
	assert.Equal(t, []recorded{
		{kind: EventPointerEnter, target: a, current: a},
		{kind: EventPointerMove, target: a, current: a},
		{kind: EventPointerMove, target: a, current: a},
		{kind: EventPointerLeave, target: a, current: a},
		{kind: EventPointerEnter, target: b, current: b},
		{kind: EventPointerMove, target: b, current: b},
	}, log)

	log = nil
	require.NoError(t, inst.Remove(b))
	inst.PointerMove(10, 10)
	assert.Equal(t, []recorded{
		{kind: EventPointerEnter, target: a, current: a},
		{kind: EventPointerMove, target: a, current: a},
	}, log, "a removed node gets no leave event")
}

func TestClick_HandlerMayRemoveTarget(t *testing.T) {
	inst := newTestInstance(t, 100, 100)
	root := buildRoot(t, inst,
		Open("column", A("capture", "")),
		Open("column", A("fixed", "50"), A("interactive", "")), Close("column"),
		Close("column"),
	)
	inst.Frame(0)
	target := childAt(t, inst, root, 0)

	calls := 0
	require.NoError(t, inst.OnEvent(root, func(e Event) {
		calls++
		require.NoError(t, inst.Remove(e.Target))
	}))
	require.NoError(t, inst.OnEvent(target, func(Event) { calls++ }))

	inst.Click(5, 5)
	assert.Equal(t, 1, calls, "the removed target's handlers are dropped")
	assert.False(t, inst.Tree().Valid(target))

	assert.ErrorIs(t, inst.OnEvent(target, func(Event) {}), ErrInvalidHandle)
}

func scrollFixture(t *testing.T) (*Instance, Handle, []Handle) {
	t.Helper()
	inst := newTestInstance(t, 50, 100)
	root := buildRoot(t, inst,
		Open("column"),
		Open("column", A("fixed", "50"), A("scroll", "")),
		Open("column", A("fixed", "40"), A("background", "#ff0000"), A("interactive", "")), Close("column"),
		Open("column", A("fixed", "40"), A("background", "#00ff00"), A("interactive", "")), Close("column"),
		Open("column", A("fixed", "40"), A("background", "#0000ff"), A("interactive", "")), Close("column"),
		Close("column"),
		Close("column"),
	)
	inst.Frame(0)
	scroller := childAt(t, inst, root, 0)
	children, err := inst.Tree().ChildrenOf(scroller)
	require.NoError(t, err)
	return inst, scroller, children
}

func TestWheel_Scrolls(t *testing.T) {
	type step struct {
		x, y, dx, dy int
		wantOK       bool
		wantOffset   int
	}
	type tc struct {
		steps []step
	}

	tests := map[string]tc{
		"scrolls toward the end": {
			steps: []step{{x: 10, y: 10, dy: -30, wantOK: true, wantOffset: 30}},
		},
		"clamps to the overflow": {
			steps: []step{
				{x: 10, y: 10, dy: -500, wantOK: true, wantOffset: 70},
				{x: 10, y: 10, dy: -5, wantOffset: 70},
			},
		},
		"clamps at the start": {
			steps: []step{
				{x: 10, y: 10, dy: 20},
				{x: 10, y: 10, dy: -20, wantOK: true, wantOffset: 20},
				{x: 10, y: 10, dy: 100, wantOK: true, wantOffset: 0},
			},
		},
		"cross axis delta is ignored": {
			steps: []step{{x: 10, y: 10, dx: -30}},
		},
		"outside the container": {
			steps: []step{{x: 10, y: 75, dy: -30}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inst, scroller, _ := scrollFixture(t)
			var offsets []int
			require.NoError(t, inst.OnEvent(scroller, func(e Event) {
				require.Equal(t, EventScroll, e.Kind)
				offsets = append(offsets, e.Offset)
			}))

			var want []int
			for _, s := range tt.steps {
				h, ok := inst.Wheel(s.x, s.y, s.dx, s.dy)
				assert.Equal(t, s.wantOK, ok)
				if ok {
					assert.Equal(t, scroller, h)
					want = append(want, s.wantOffset)
				}
				inst.Frame(0)
				first := boundsOf(t, inst, childAt(t, inst, scroller, 0))
				assert.Equal(t, -s.wantOffset, first.Y)
			}
			assert.Equal(t, want, offsets)
		})
	}
}

func TestWheel_ClipsAndHitTestsScrolledContent(t *testing.T) {
	inst, _, children := scrollFixture(t)

	_, ok := inst.Wheel(10, 10, 0, -30)
	require.True(t, ok)
	inst.Frame(time.Second)

	assert.Equal(t, NewRect(0, -30, 50, 40), boundsOf(t, inst, children[0]))
	assert.Equal(t, NewRect(0, 50, 50, 40), boundsOf(t, inst, children[2]))

	assert.Equal(t, red, inst.Output().RGBAAt(10, 5))
	assert.Equal(t, green, inst.Output().RGBAAt(10, 15))
	assert.Equal(t, white, inst.Output().RGBAAt(10, 60), "content past the container is clipped")

	h, ok := inst.HitTest(10, 15)
	require.True(t, ok)
	assert.Equal(t, children[1], h)
	_, ok = inst.HitTest(10, 60)
	assert.False(t, ok, "clipped content is not hit")
}

func TestScrollTo(t *testing.T) {
	inst, scroller, children := scrollFixture(t)

	maxScroll, err := inst.MaxScroll(scroller)
	require.NoError(t, err)
	assert.Equal(t, 70, maxScroll)

	type tc struct {
		scroll  func() (bool, error)
		want    int
		changed bool
	}

	steps := []tc{
		{scroll: func() (bool, error) { return inst.ScrollTo(scroller, 25) }, want: 25, changed: true},
		{scroll: func() (bool, error) { return inst.ScrollBy(scroller, 10) }, want: 35, changed: true},
		{scroll: func() (bool, error) { return inst.ScrollBy(scroller, 1000) }, want: 70, changed: true},
		{scroll: func() (bool, error) { return inst.ScrollTo(scroller, 90) }, want: 70},
		{scroll: func() (bool, error) { return inst.ScrollTo(scroller, -5) }, want: 0, changed: true},
	}
	for _, s := range steps {
		changed, err := s.scroll()
		require.NoError(t, err)
		assert.Equal(t, s.changed, changed)
		inst.Frame(0)
		got, err := inst.ScrollOffset(scroller)
		require.NoError(t, err)
		assert.Equal(t, s.want, got)
		assert.Equal(t, -s.want, boundsOf(t, inst, children[0]).Y)
	}

	_, err = inst.ScrollTo(children[0], 10)
	assert.ErrorIs(t, err, ErrInvalidHandle, "a plain column does not scroll")
}
