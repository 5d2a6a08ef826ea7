package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]Value) func(string) (Value, bool) {
	return func(p string) (Value, bool) {
		v, ok := values[p]
		return v, ok
	}
}

func TestTemplate_Eval(t *testing.T) {
	values := map[string]Value{
		"user.name": String("Ada"),
		"count":     Number(3),
		"on":        Bool(true),
	}

	type tc struct {
		tmpl       string
		want       Value
		wantErr    error
		wantStatic bool
	}

	tests := map[string]tc{
		"static":               {tmpl: "hello", want: String("hello"), wantStatic: true},
		"single keeps type":    {tmpl: "{{count}}", want: Number(3)},
		"single bool":          {tmpl: "{{ on }}", want: Bool(true)},
		"interpolated":         {tmpl: "Hi {{user.name}}, {{count}} new", want: String("Hi Ada, 3 new")},
		"missing uses default": {tmpl: "{{missing|none}}", want: String("none")},
		"empty default":        {tmpl: "[{{missing|}}]", want: String("[]")},
		"missing no default":   {tmpl: "a{{missing}}b", want: String("ab"), wantErr: ErrMissingBinding},
		"empty":                {tmpl: "", want: String(""), wantStatic: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.tmpl)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatic, tmpl.IsStatic())

			got, err := tmpl.Eval(lookupFrom(values))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplate_ParseErrors(t *testing.T) {
	for _, s := range []string{"{{", "a {{b", "{{}}", "{{a..b}}", "{{ |x}}"} {
		_, err := ParseTemplate(s)
		assert.ErrorIs(t, err, ErrBadTemplate, s)
	}
}

func TestTemplate_PathsAndSingle(t *testing.T) {
	tmpl := MustParseTemplate("{{a}} {{b.c}} {{a|x}}")
	assert.Equal(t, []string{"a", "b.c"}, tmpl.Paths())
	_, ok := tmpl.Single()
	assert.False(t, ok)

	p, ok := MustParseTemplate("{{b.c|1}}").Single()
	assert.True(t, ok)
	assert.Equal(t, "b.c", p)

	assert.Panics(t, func() { MustParseTemplate("{{") })
	assert.True(t, HasPlaceholder("x{{y}}"))
	assert.False(t, HasPlaceholder("x{y}"))
}
