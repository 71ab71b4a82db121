package middleware

import "github.com/dmitrymomot/httpkernel/core/event"

// Listener priorities.
const (
	PriorityRequestID       = 256
	PriorityClientIP        = 255
	PrioritySecurityHeaders = 0
	PriorityAccessLog       = -256
)

// subscriber is a static event.Subscriber.
type subscriber map[string][]event.Binding

func (s subscriber) SubscribedEvents() map[string][]event.Binding {
	return s
}
