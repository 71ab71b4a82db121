package exception

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
)

// LoggingConfig configures a LoggingListener.
type LoggingConfig struct {
	// Logger defaults to a discard logger.
	Logger *slog.Logger
	Levels LevelTable
	Policy Policy
	// ExceptionListener, when set and already logging, disables the
	// LoggingListener so errors are not logged twice.
	ExceptionListener *Listener
}

// LoggingListener logs uncaught errors without rendering them. Use it when
// error pages are produced elsewhere.
type LoggingListener struct {
	logger     *slog.Logger
	classifier Classifier
	disabled   bool
}

// NewLoggingListener creates a LoggingListener.
func NewLoggingListener(cfg LoggingConfig) *LoggingListener {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	l := &LoggingListener{
		logger:     log,
		classifier: NewClassifier(cfg.Levels, cfg.Policy),
	}
	if cfg.ExceptionListener != nil && cfg.ExceptionListener.IsLoggingExceptions() {
		l.disabled = true
		log.Debug("exception logging disabled, exception listener is already logging",
			logger.Component("exception"))
	}
	return l
}

// Enabled reports whether the listener logs anything.
func (l *LoggingListener) Enabled() bool {
	return !l.disabled
}

// SubscribedEvents implements event.Subscriber.
func (l *LoggingListener) SubscribedEvents() map[string][]event.Binding {
	return map[string][]event.Binding{
		kernel.EventException: {event.Bind(l.LogKernelException, PriorityLog)},
	}
}

// LogKernelException logs the error of evt unless the listener is disabled.
func (l *LoggingListener) LogKernelException(ctx context.Context, evt *kernel.ExceptionEvent) error {
	if l.disabled {
		return nil
	}
	err := evt.Err()
	logException(ctx, l.logger, l.classifier.Classify(err), err, uncaughtMessage(err))
	return nil
}
