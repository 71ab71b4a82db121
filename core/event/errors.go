package event

import "errors"

var (
	// ErrUnexpectedEvent is returned by typed listeners that receive an event of another type.
	ErrUnexpectedEvent = errors.New("unexpected event type")

	// ErrListenerPanic wraps a panic raised inside a listener.
	ErrListenerPanic = errors.New("event listener panicked")
)
