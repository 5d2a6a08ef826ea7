// Package main provides a headless host for the gui toolkit.
//
// Usage:
//
//	gui render --markup page.xml [flags]    Render a markup document to a PNG
//	gui version                             Print version information
//
// Examples:
//
//	gui render --markup page.xml --state state.json --out page.png
//	gui render --markup form.xml --assets ./img --events clicks.json --frames 10
//	GUI_WIDTH=1024 gui render --markup page.xml
//
// Markup is XML: each element is a node, each attribute a node attribute.
// Attribute values may reference the state document with {{path.to.value}}.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
