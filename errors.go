package gui

import (
	"errors"
	"fmt"

	"github.com/grindlemire/go-gui/internal/store"
)

var (
	// ErrInvalidHandle is returned when a handle is zero, stale or names a
	// removed node, and when a structural request cannot be honored.
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrInvalidKind is returned when creating a node of an unknown kind.
	ErrInvalidKind = errors.New("invalid node kind")

	// ErrCycle is returned when a node would become its own descendant.
	ErrCycle = fmt.Errorf("%w: node cannot be attached under its own subtree", ErrInvalidHandle)

	// ErrMalformedMarkup is recorded when the builder skips a node.
	ErrMalformedMarkup = errors.New("malformed markup")

	// ErrAssetLoad is recorded when an asset fails to fetch or decode.
	ErrAssetLoad = errors.New("asset load failure")

	// ErrMissingBinding is recorded when a template names an absent path.
	ErrMissingBinding = store.ErrMissingBinding

	// ErrNoFocus is returned by text editing calls when no text is focused.
	ErrNoFocus = errors.New("no focused text")
)

// DiagnosticKind classifies a recoverable problem.
type DiagnosticKind uint8

const (
	DiagMalformedMarkup DiagnosticKind = iota
	DiagAssetLoadFailure
	DiagMissingBinding
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagMalformedMarkup:
		return "MalformedMarkup"
	case DiagAssetLoadFailure:
		return "AssetLoadFailure"
	case DiagMissingBinding:
		return "MissingBinding"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", uint8(k))
	}
}

// Diagnostic describes a recoverable problem the core worked around.
type Diagnostic struct {
	Kind DiagnosticKind
	Node Handle // node concerned, or the parent of a skipped node; may be zero
	Line int    // markup line, 0 when unknown
	Err  error
}

func (d Diagnostic) String() string {
	s := d.Kind.String()
	if d.Line > 0 {
		s += fmt.Sprintf(" (line %d)", d.Line)
	}
	if !d.Node.IsZero() {
		s += " " + d.Node.String()
	}
	if d.Err != nil {
		s += ": " + d.Err.Error()
	}
	return s
}
