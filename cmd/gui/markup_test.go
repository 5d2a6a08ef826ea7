package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gui "github.com/grindlemire/go-gui"
)

func TestParseMarkup(t *testing.T) {
	type tc struct {
		input   string
		want    []gui.Instruction
		wantErr bool
	}

	tests := map[string]tc{
		"nested": {
			input: "<column gap=\"4\">\n  <text txt=\"{{user.name}}\"/>\n</column>",
			want: []gui.Instruction{
				{Op: gui.OpOpen, Tag: "column", Attrs: []gui.Attribute{gui.A("gap", "4")}, Line: 1},
				{Op: gui.OpOpen, Tag: "text", Attrs: []gui.Attribute{gui.A("txt", "{{user.name}}")}, Line: 2},
				{Op: gui.OpClose, Tag: "text", Line: 2},
				{Op: gui.OpClose, Tag: "column", Line: 3},
			},
		},
		"bare flags": {
			input: "<text editable interactive txt=\"x\"></text>",
			want: []gui.Instruction{
				{Op: gui.OpOpen, Tag: "text", Attrs: []gui.Attribute{gui.A("editable", ""), gui.A("interactive", ""), gui.A("txt", "x")}, Line: 1},
				{Op: gui.OpClose, Tag: "text", Line: 1},
			},
		},
		"scrolling column": {
			input: "<column scroll fixed=\"50\"><p text=\"long words\"/></column>",
			want: []gui.Instruction{
				{Op: gui.OpOpen, Tag: "column", Attrs: []gui.Attribute{gui.A("scroll", ""), gui.A("fixed", "50")}, Line: 1},
				{Op: gui.OpOpen, Tag: "p", Attrs: []gui.Attribute{gui.A("text", "long words")}, Line: 1},
				{Op: gui.OpClose, Tag: "p", Line: 1},
				{Op: gui.OpClose, Tag: "column", Line: 1},
			},
		},
		"mismatched close passes through": {
			input: "<row></column>",
			want: []gui.Instruction{
				{Op: gui.OpOpen, Tag: "row", Line: 1},
				{Op: gui.OpClose, Tag: "column", Line: 1},
			},
		},
		"unclosed": {
			input: "<row><spacer/>",
			want: []gui.Instruction{
				{Op: gui.OpOpen, Tag: "row", Line: 1},
				{Op: gui.OpOpen, Tag: "spacer", Line: 1},
				{Op: gui.OpClose, Tag: "spacer", Line: 1},
			},
		},
		"comments and text ignored": {
			input: "<!-- header --><row>hello</row>",
			want: []gui.Instruction{
				{Op: gui.OpOpen, Tag: "row", Line: 1},
				{Op: gui.OpClose, Tag: "row", Line: 1},
			},
		},
		"empty": {input: ""},
		"broken tag": {
			input:   "<row gap=\"4",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseMarkup(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
