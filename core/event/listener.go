package event

import (
	"context"
	"fmt"
)

// Listener handles a dispatched event. Returning an error aborts the dispatch.
type Listener func(ctx context.Context, evt any) error

// ListenerFunc is a type-safe listener for events of type T.
type ListenerFunc[T any] func(ctx context.Context, evt T) error

// Typed adapts a type-safe listener. Events of any other type produce ErrUnexpectedEvent.
func Typed[T any](fn ListenerFunc[T]) Listener {
	return func(ctx context.Context, evt any) error {
		typed, ok := evt.(T)
		if !ok {
			var zero T
			return fmt.Errorf("%w: got %T, want %T", ErrUnexpectedEvent, evt, zero)
		}
		return fn(ctx, typed)
	}
}

// Stoppable is implemented by events whose propagation can be stopped.
type Stoppable interface {
	IsPropagationStopped() bool
}

// Propagation is embeddable Stoppable state.
type Propagation struct {
	stopped bool
}

// StopPropagation prevents listeners further down the order from running.
func (p *Propagation) StopPropagation() {
	p.stopped = true
}

// IsPropagationStopped reports whether StopPropagation was called.
func (p *Propagation) IsPropagationStopped() bool {
	return p.stopped
}

// Binding pairs a listener with its priority.
type Binding struct {
	Listener Listener
	Priority int
}

// Bind creates a Binding from a type-safe listener.
func Bind[T any](fn ListenerFunc[T], priority int) Binding {
	return Binding{Listener: Typed(fn), Priority: priority}
}

// Subscriber declares the listeners it wants registered, keyed by event name.
type Subscriber interface {
	SubscribedEvents() map[string][]Binding
}
