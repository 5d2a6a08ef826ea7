package main

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	gui "github.com/grindlemire/go-gui"
)

// bare lists the attributes that may be written without a value.
var bare = map[string]bool{
	"interactive": true,
	"capture":     true,
	"editable":    true,
	"inflate":     true,
	"scroll":      true,
}

// parseMarkup converts an XML markup document into builder instructions.
// Tags are not matched here: mismatched and unclosed tags are passed
// through for the builder to report.
func parseMarkup(r io.Reader) ([]gui.Instruction, error) {
	d := xml.NewDecoder(r)
	d.Strict = false

	var out []gui.Instruction
	for {
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse markup: %w", err)
		}
		line, _ := d.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			in := gui.Open(t.Name.Local)
			in.Line = line
			for _, a := range t.Attr {
				value := a.Value
				// A non-strict decoder gives bare attributes their own name as value.
				if bare[a.Name.Local] && value == a.Name.Local {
					value = ""
				}
				in.Attrs = append(in.Attrs, gui.A(a.Name.Local, value))
			}
			out = append(out, in)
		case xml.EndElement:
			in := gui.Close(t.Name.Local)
			in.Line = line
			out = append(out, in)
		}
	}
}
