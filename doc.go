// Package gui is the layout, compositing and input core of a retained-mode
// UI toolkit.
//
// Users import this single package for the complete public API: the node
// tree, the markup builder, layout types, state binding, events and the
// frame entry point that paints into an RGBA buffer.
//
// An Instance is driven by a host that calls Frame at its own cadence and
// injects pointer and key input between frames. Nothing in the package
// starts goroutines or takes locks.
package gui
