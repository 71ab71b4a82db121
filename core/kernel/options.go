package kernel

import (
	"log/slog"

	"github.com/dmitrymomot/httpkernel/core/event"
)

// Option configures a Kernel during creation.
type Option func(*Kernel)

// WithDispatcher sets the process-wide event dispatcher.
func WithDispatcher(d *event.Dispatcher) Option {
	return func(k *Kernel) {
		if d != nil {
			k.dispatcher = d
		}
	}
}

// WithLogger sets the logger used for errors that escape every listener.
func WithLogger(l *slog.Logger) Option {
	return func(k *Kernel) {
		if l != nil {
			k.logger = l
		}
	}
}
