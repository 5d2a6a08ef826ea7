package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// touched reports whether h is flagged for layout or repaint.
func touched(t *testing.T, inst *Instance, h Handle) bool {
	t.Helper()
	n, err := inst.tree.get(h)
	require.NoError(t, err)
	return n.dirty || n.repaint
}

func bindingFixture(t *testing.T) (*Instance, []Handle) {
	t.Helper()
	inst := newTestInstance(t, 200, 200, WithState([]byte(`{"user":{"first":"Ada","last":"L"},"count":1,"accent":"#f00"}`)))
	require.NoError(t, inst.Derive("user.full", "{{user.first}} {{user.last}}"))
	root := buildRoot(t, inst,
		Open("column"),
		Open("text", A("txt", "{{user.first}}")), Close("text"),
		Open("text", A("txt", "count: {{count}}")), Close("text"),
		Open("text", A("txt", "{{user.full}}")), Close("text"),
		Open("text", A("txt", "static"), A("color", "{{accent}}")), Close("text"),
		Close("column"),
	)
	inst.Frame(0)
	children, err := inst.Tree().ChildrenOf(root)
	require.NoError(t, err)
	require.Len(t, children, 4)
	return inst, children
}

func TestSet_MarksExactlySubscribers(t *testing.T) {
	type tc struct {
		path  string
		value Value
		want  []bool // per child: first, count, full, static
	}

	tests := map[string]tc{
		"direct subscriber": {
			path:  "count",
			value: NumberValue(2),
			want:  []bool{false, true, false, false},
		},
		"direct and derived subscribers": {
			path:  "user.first",
			value: StringValue("Grace"),
			want:  []bool{true, false, true, false},
		},
		"derived only": {
			path:  "user.last",
			value: StringValue("H"),
			want:  []bool{false, false, true, false},
		},
		"replaced mapping": {
			path:  "user",
			value: MapValue(map[string]Value{"first": StringValue("Grace"), "last": StringValue("L")}),
			want:  []bool{true, false, true, false},
		},
		"equal value": {
			path:  "count",
			value: NumberValue(1),
			want:  []bool{false, false, false, false},
		},
		"unbound path": {
			path:  "other",
			value: BoolValue(true),
			want:  []bool{false, false, false, false},
		},
		"repaint-only attribute": {
			path:  "accent",
			value: StringValue("#00f"),
			want:  []bool{false, false, false, true},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inst, children := bindingFixture(t)
			require.NoError(t, inst.Set(tt.path, tt.value))

			got := make([]bool, len(children))
			for i, h := range children {
				got[i] = touched(t, inst, h)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSet_UpdatesBoundContent(t *testing.T) {
	inst, children := bindingFixture(t)

	require.NoError(t, inst.Set("user.first", StringValue("Grace")))
	first, _ := inst.Text(children[0])
	full, _ := inst.Text(children[2])
	assert.Equal(t, "Grace", first)
	assert.Equal(t, "Grace L", full)

	n, _ := inst.tree.get(children[3])
	require.NoError(t, inst.Set("accent", StringValue("#00f")))
	assert.Equal(t, "#0000ffff", n.content.(*textContent).color.String())

	assert.Error(t, inst.Set("user.full", StringValue("x")), "derived paths are read-only")
}

func TestSet_RepaintOnlyDoesNotRelayout(t *testing.T) {
	inst, children := bindingFixture(t)
	require.NoError(t, inst.Set("accent", StringValue("#00f")))

	n, _ := inst.tree.get(children[3])
	assert.False(t, n.dirty)
	assert.True(t, n.repaint)
}

func TestRemove_UnsubscribesBindings(t *testing.T) {
	inst, children := bindingFixture(t)
	before := inst.subs.Len()

	require.NoError(t, inst.Remove(children[0]))
	assert.Equal(t, before-1, inst.subs.Len())

	require.NoError(t, inst.Set("user.first", StringValue("Grace")))
	for _, h := range children[1:2] {
		assert.False(t, touched(t, inst, h))
	}
	assert.True(t, touched(t, inst, children[2]), "the derived text is still bound")
}

func TestBind_MissingPath(t *testing.T) {
	type tc struct {
		tmpl      string
		wantText  string
		wantDiags int
	}

	tests := map[string]tc{
		"missing path falls back to the default value": {
			tmpl:      "{{nobody}}",
			wantText:  "",
			wantDiags: 1,
		},
		"placeholder default": {
			tmpl:     "{{nobody|n/a}}",
			wantText: "n/a",
		},
		"present path": {
			tmpl:     "{{count}}",
			wantText: "1",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			inst := newTestInstance(t, 100, 100,
				WithLogger(zap.New(core)),
				WithState([]byte(`{"count":1}`)),
			)
			root := buildRoot(t, inst,
				Open("column"),
				Open("text", A("txt", tt.tmpl)), Close("text"),
				Close("column"),
			)

			s, err := inst.Text(childAt(t, inst, root, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, s)

			diags := inst.Diagnostics()
			assert.Len(t, diags, tt.wantDiags)
			for _, d := range diags {
				assert.Equal(t, DiagMissingBinding, d.Kind)
				assert.ErrorIs(t, d.Err, ErrMissingBinding)
			}
			assert.Equal(t, tt.wantDiags, logs.FilterMessage("diagnostic").Len())
		})
	}
}

func TestBind_LaterSetResolvesMissingPath(t *testing.T) {
	inst := newTestInstance(t, 100, 100)
	root := buildRoot(t, inst,
		Open("column"),
		Open("spacer", A("fixed", "{{size}}")), Close("spacer"),
		Close("column"),
	)
	spacer := childAt(t, inst, root, 0)
	inst.Frame(0)
	assert.Equal(t, 100, boundsOf(t, inst, spacer).Height, "the spacer keeps inflating")
	require.Len(t, inst.Diagnostics(), 1)

	require.NoError(t, inst.Set("size", NumberValue(30)))
	inst.Frame(0)
	assert.Equal(t, 30, boundsOf(t, inst, spacer).Height)
}

func TestBind_InvalidBoundValue(t *testing.T) {
	inst := newTestInstance(t, 100, 100, WithState([]byte(`{"w":10}`)))
	root := buildRoot(t, inst,
		Open("row"),
		Open("spacer", A("fixed", "{{w}}")), Close("spacer"),
		Close("row"),
	)
	spacer := childAt(t, inst, root, 0)
	inst.Frame(0)
	assert.Equal(t, 10, boundsOf(t, inst, spacer).Width)

	require.NoError(t, inst.Set("w", StringValue("wide")))
	diags := inst.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, DiagMalformedMarkup, diags[0].Kind)
}

func TestBind_API(t *testing.T) {
	inst := newTestInstance(t, 100, 100, WithState([]byte(`{"name":"a"}`)))
	root := buildRoot(t, inst, Open("column"), Open("text"), Close("text"), Close("column"))
	txt := childAt(t, inst, root, 0)

	require.NoError(t, inst.Bind(txt, "txt", "hi {{name}}"))
	s, _ := inst.Text(txt)
	assert.Equal(t, "hi a", s)

	paths, err := inst.Bindings(txt)
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, paths)

	require.NoError(t, inst.SetAttr(txt, "text", "literal {{name}}"))
	s, _ = inst.Text(txt)
	assert.Equal(t, "literal {{name}}", s, "SetAttr does not evaluate templates")
	paths, _ = inst.Bindings(txt)
	assert.Empty(t, paths)

	assert.Error(t, inst.Bind(txt, "nope", "x"))
	assert.Error(t, inst.Bind(txt, "txt", "{{"))
	assert.ErrorIs(t, inst.Bind(Handle{}, "txt", "x"), ErrInvalidHandle)
}

func TestLoadState_RoundTrip(t *testing.T) {
	inst := newTestInstance(t, 10, 10, WithState([]byte(`{"b":{"c":true},"a":1}`)))
	doc, err := inst.SaveState()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":{"c":true}}`, string(doc))

	assert.Error(t, inst.LoadState([]byte(`[1,2`)))
	v, ok := inst.Get("b.c")
	require.True(t, ok)
	assert.True(t, v.Bool(), "a failed load keeps the old state")
}

func TestSet_BoundPolicyOnPinnedChildMovesSiblings(t *testing.T) {
	inst := newTestInstance(t, 300, 20, WithState([]byte(`{"w":100}`)))
	root := buildRoot(t, inst,
		Open("row"),
		Open("spacer", A("fixed", "{{w}}"), A("cross", "20")), Close("spacer"),
		Open("spacer", A("proportional", "1")), Close("spacer"),
		Close("row"),
	)
	inst.Frame(0)
	a, b := childAt(t, inst, root, 0), childAt(t, inst, root, 1)
	require.Equal(t, NewRect(0, 0, 100, 20), boundsOf(t, inst, a))
	require.Equal(t, NewRect(100, 0, 200, 20), boundsOf(t, inst, b))

	require.NoError(t, inst.Set("w", NumberValue(50)))
	inst.Frame(1)

	assert.Equal(t, NewRect(0, 0, 50, 20), boundsOf(t, inst, a))
	assert.Equal(t, NewRect(50, 0, 250, 20), boundsOf(t, inst, b))
}
