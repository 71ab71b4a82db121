package exception

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
)

// Listener priorities on kernel.EventException.
const (
	PriorityLog      = 2048
	PriorityFallback = -128
)

// PriorityHeaderRemoval is the priority of the response listener that strips
// the security policy header from fallback responses.
const PriorityHeaderRemoval = -128

// HeaderContentSecurityPolicy is removed from fallback responses so the error
// page is not constrained by a policy written for the failed page.
const HeaderContentSecurityPolicy = "Content-Security-Policy"

// Attributes set on the fallback sub-request.
const (
	AttrException = "exception"
	AttrLogger    = "logger"
)

// Config configures a Listener.
type Config struct {
	// Controller is the name of the fallback controller. Required.
	Controller string
	// Logger receives uncaught errors. Nil disables logging.
	Logger *slog.Logger
	// Levels overrides the severity for specific status codes.
	Levels LevelTable
	// Policy decides the severity of status codes without an override.
	Policy Policy
}

// Listener logs uncaught errors and renders them through a fallback controller.
type Listener struct {
	controller string
	logger     *slog.Logger
	classifier Classifier
}

// NewListener creates a Listener.
func NewListener(cfg Config) (*Listener, error) {
	if strings.TrimSpace(cfg.Controller) == "" {
		return nil, ErrNoController
	}
	return &Listener{
		controller: cfg.Controller,
		logger:     cfg.Logger,
		classifier: NewClassifier(cfg.Levels, cfg.Policy),
	}, nil
}

// IsLoggingExceptions reports whether the listener logs uncaught errors itself.
func (l *Listener) IsLoggingExceptions() bool {
	return l.logger != nil
}

// SubscribedEvents implements event.Subscriber.
func (l *Listener) SubscribedEvents() map[string][]event.Binding {
	return map[string][]event.Binding{
		kernel.EventException: {
			event.Bind(l.LogKernelException, PriorityLog),
			event.Bind(l.OnKernelException, PriorityFallback),
		},
	}
}

// LogKernelException logs the error of evt. It never fails.
func (l *Listener) LogKernelException(ctx context.Context, evt *kernel.ExceptionEvent) error {
	err := evt.Err()
	logException(ctx, l.logger, l.classifier.Classify(err), err, uncaughtMessage(err))
	return nil
}

// OnKernelException renders the error of evt through the fallback controller.
// If the fallback fails, the failure is logged and returned so that it aborts
// exception handling. The returned error always carries the original error
// in its chain.
func (l *Listener) OnKernelException(ctx context.Context, evt *kernel.ExceptionEvent) error {
	original := evt.Err()
	sub := l.duplicateRequest(original, evt.Request())

	resp, err := evt.Kernel().Handle(ctx, sub, kernel.SubRequest, false)
	if err != nil {
		logException(ctx, l.logger, l.classifier.Classify(err), err, nestedMessage(err))
		if chainContains(err, original) {
			return err
		}
		return &NestedError{Err: err, Cause: original}
	}

	evt.SetResponse(resp)
	RemoveHeaderOnce(evt.Request().Listeners(), HeaderContentSecurityPolicy, PriorityHeaderRemoval)
	return nil
}

func (l *Listener) duplicateRequest(err error, req *kernel.Request) *kernel.Request {
	var dl logger.DebugLogger
	if d, ok := logger.AsDebugLogger(l.logger); ok {
		dl = d
	}
	return req.Duplicate(http.MethodGet, map[string]any{
		kernel.AttrController: l.controller,
		AttrException:         Flatten(err),
		AttrLogger:            dl,
	})
}

func logException(ctx context.Context, log *slog.Logger, sev logger.Severity, err error, msg string) {
	if log == nil {
		return
	}
	log.LogAttrs(ctx, sev.Level(), msg, logger.Exception(err))
}

func uncaughtMessage(err error) string {
	return fmt.Sprintf("Uncaught Exception %T: \"%s\"%s", err, err.Error(), at(err))
}

func nestedMessage(err error) string {
	return fmt.Sprintf("Exception thrown when handling an exception (%T: %s%s)", err, err.Error(), at(err))
}

func at(err error) string {
	file, line := location(err)
	if file == "" {
		return ""
	}
	return fmt.Sprintf(" at %s line %d", file, line)
}
