package gui

import "fmt"

// EventKind identifies a semantic event produced by the router.
type EventKind uint8

const (
	EventPointerMove  EventKind = iota // Pointer moved over an interactive node
	EventClick                         // Pointer clicked an interactive node
	EventPointerEnter                  // Pointer entered a node
	EventPointerLeave                  // Pointer left a node
	EventFocus                         // Editable text gained focus
	EventBlur                          // Editable text lost focus
	EventChange                        // Edited text was flushed
	EventSubmit                        // Enter pressed in a focused text
	EventScroll                        // A scrolling container moved its content
)

func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "pointermove"
	case EventClick:
		return "click"
	case EventPointerEnter:
		return "pointerenter"
	case EventPointerLeave:
		return "pointerleave"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventChange:
		return "change"
	case EventSubmit:
		return "submit"
	case EventScroll:
		return "scroll"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is delivered to handlers registered with OnEvent and WithEventHandler.
type Event struct {
	Kind EventKind

	// Target is the node the event was routed to.
	Target Handle

	// Current is the node whose handler is running. It differs from Target
	// when a capturing ancestor sees the event first.
	Current Handle

	// X, Y is the pointer position for pointer events.
	X, Y int

	// Text is the content of the node for focus, blur, change and submit.
	Text string

	// Offset is the new scroll offset for scroll events.
	Offset int
}

// EventHandler receives routed events.
type EventHandler func(Event)

// Events is a list of listeners for one event type. It is not safe for
// concurrent use; the instance only touches it from the frame thread.
type Events[T any] struct {
	listeners []func(T)
}

// Emit sends an event to all listeners in subscription order.
func (e *Events[T]) Emit(event T) {
	for _, fn := range e.listeners {
		fn(event)
	}
}

// Subscribe adds a listener for events.
func (e *Events[T]) Subscribe(fn func(T)) {
	e.listeners = append(e.listeners, fn)
}

// Len returns the number of listeners.
func (e *Events[T]) Len() int {
	return len(e.listeners)
}
