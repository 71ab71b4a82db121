package kernel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"

	"github.com/gorilla/mux"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/response"
)

// Controller produces a response for a request.
type Controller func(ctx context.Context, req *Request) (*response.Response, error)

// Kernel turns requests into responses. Routes and controllers must be
// registered before the kernel starts serving; Handle is safe for concurrent use.
type Kernel struct {
	dispatcher  *event.Dispatcher
	router      *mux.Router
	logger      *slog.Logger
	mu          sync.RWMutex
	controllers map[string]Controller
}

// New creates a kernel. Without options it uses a fresh dispatcher and a no-op logger.
func New(opts ...Option) *Kernel {
	k := &Kernel{
		dispatcher:  event.NewDispatcher(),
		router:      mux.NewRouter(),
		logger:      logger.Discard(),
		controllers: make(map[string]Controller),
	}

	for _, opt := range opts {
		opt(k)
	}

	return k
}

// Dispatcher returns the process-wide dispatcher.
func (k *Kernel) Dispatcher() *event.Dispatcher {
	return k.dispatcher
}

// Register makes a controller available under name.
func (k *Kernel) Register(name string, c Controller) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.controllers[name] = c
}

// Route maps a path template (gorilla/mux syntax, e.g. "/users/{id}") to a
// registered controller name. Without methods the route matches any method.
func (k *Kernel) Route(path, controller string, methods ...string) error {
	if controller == "" {
		return fmt.Errorf("%w: empty controller name for %q", ErrInvalidRoute, path)
	}
	r := k.router.NewRoute().Path(path).Name(controller)
	if len(methods) > 0 {
		r = r.Methods(methods...)
	}
	if err := r.GetError(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}
	return nil
}

// Handle processes req. With catch set, errors are offered to the
// kernel.exception listeners, which may turn them into a response; otherwise
// (and when no listener provides a response) the error is returned.
func (k *Kernel) Handle(ctx context.Context, req *Request, typ RequestType, catch bool) (resp *response.Response, err error) {
	defer func() {
		k.finishRequest(ctx, req, typ, resp, err)
	}()

	resp, err = k.handleRaw(ctx, req, typ)
	if err != nil && catch {
		return k.handleError(ctx, req, typ, err)
	}
	return resp, err
}

// ServeHTTP implements http.Handler. Errors that no listener turned into a
// response are logged and answered with a bare status text.
func (k *Kernel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	ctx := r.Context()

	resp, err := k.Handle(ctx, req, MainRequest, true)
	if err != nil {
		status := http.StatusInternalServerError
		var sc StatusCoder
		if errors.As(err, &sc) && sc.StatusCode() >= 400 && http.StatusText(sc.StatusCode()) != "" {
			status = sc.StatusCode()
		}

		k.logger.ErrorContext(ctx, "unhandled request error",
			logger.RequestID(req.ID()),
			logger.Method(req.Method()),
			logger.Path(req.Path()),
			logger.StatusCode(status),
			logger.Error(err),
		)
		http.Error(w, http.StatusText(status), status)
		return
	}

	if err := resp.Write(w); err != nil {
		k.logger.WarnContext(ctx, "failed to write response",
			logger.RequestID(req.ID()),
			logger.Error(err),
		)
	}
}

func (k *Kernel) handleRaw(ctx context.Context, req *Request, typ RequestType) (*response.Response, error) {
	evt := NewRequestEvent(k, req, typ)
	if err := k.dispatch(ctx, EventRequest, evt, req); err != nil {
		return nil, err
	}
	if evt.HasResponse() {
		return k.filterResponse(ctx, evt.Response(), req, typ)
	}

	ctrl, err := k.resolve(req)
	if err != nil {
		return nil, err
	}

	resp, err := call(ctx, ctrl, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilResponse, req.Controller())
	}

	return k.filterResponse(ctx, resp, req, typ)
}

func (k *Kernel) handleError(ctx context.Context, req *Request, typ RequestType, err error) (*response.Response, error) {
	// a cancelled request must still have its error logged and rendered
	ctx = context.WithoutCancel(ctx)
	evt := NewExceptionEvent(k, req, typ, err)
	if derr := k.dispatch(ctx, EventException, evt, req); derr != nil {
		return nil, derr
	}
	if !evt.HasResponse() {
		return nil, evt.Err()
	}

	resp := evt.Response()

	// Keep error, redirect and explicitly allowed status codes.
	if !evt.IsAllowingCustomResponseCode() && resp.Status < http.StatusMultipleChoices {
		resp.Status = http.StatusInternalServerError
		var sc StatusCoder
		if errors.As(evt.Err(), &sc) {
			resp.Status = sc.StatusCode()
		}
	}

	filtered, ferr := k.filterResponse(ctx, resp, req, typ)
	if ferr != nil {
		k.logger.ErrorContext(ctx, "failed to filter error response",
			logger.RequestID(req.ID()),
			logger.Error(ferr),
		)
		return resp, nil
	}
	return filtered, nil
}

func (k *Kernel) filterResponse(ctx context.Context, resp *response.Response, req *Request, typ RequestType) (*response.Response, error) {
	evt := NewResponseEvent(k, req, typ, resp)
	if err := k.dispatch(ctx, EventResponse, evt, req); err != nil {
		return nil, err
	}
	return evt.Response(), nil
}

func (k *Kernel) finishRequest(ctx context.Context, req *Request, typ RequestType, resp *response.Response, err error) {
	evt := &FinishRequestEvent{
		KernelEvent: KernelEvent{kernel: k, request: req, requestType: typ},
		response:    resp,
		err:         err,
	}
	// finish listeners must run even when the request context is already done
	if derr := k.dispatch(context.WithoutCancel(ctx), EventFinishRequest, evt, req); derr != nil {
		k.logger.WarnContext(ctx, "finish request listener failed",
			logger.RequestID(req.ID()),
			logger.Error(derr),
		)
	}
}

// dispatch merges the process-wide listeners with the request-scoped ones.
func (k *Kernel) dispatch(ctx context.Context, name string, evt any, req *Request) error {
	return event.Dispatch(ctx, name, evt, k.dispatcher, req.Listeners())
}

func (k *Kernel) resolve(req *Request) (Controller, error) {
	if req.Controller() == "" {
		if err := k.match(req); err != nil {
			return nil, err
		}
	}

	name := req.Controller()

	k.mu.RLock()
	ctrl, ok := k.controllers[name]
	k.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrControllerNotFound, name)
	}
	return ctrl, nil
}

func (k *Kernel) match(req *Request) error {
	var m mux.RouteMatch
	if !k.router.Match(req.HTTP(), &m) {
		if errors.Is(m.MatchErr, mux.ErrMethodMismatch) {
			return response.ErrMethodNotAllowed.WithMessage(
				fmt.Sprintf("No route found for %q: method not allowed", req.Method()+" "+req.Path()))
		}
		return response.ErrNotFound.WithMessage(
			fmt.Sprintf("No route found for %q", req.Method()+" "+req.Path()))
	}

	req.SetAttr(AttrController, m.Route.GetName())
	if tpl, err := m.Route.GetPathTemplate(); err == nil {
		req.SetAttr(AttrRoute, tpl)
	}
	params := make(map[string]string, len(m.Vars))
	for key, val := range m.Vars {
		params[key] = val
		if _, exists := req.Lookup(key); !exists {
			req.SetAttr(key, val)
		}
	}
	req.SetAttr(AttrRouteParams, params)
	return nil
}

// call runs the controller, converting panics into PanicError.
func call(ctx context.Context, ctrl Controller, req *Request) (resp *response.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			file, line := panicLocation(3)
			resp, err = nil, &panicError{
				value: p,
				stack: debug.Stack(),
				file:  file,
				line:  line,
			}
		}
	}()
	return ctrl(ctx, req)
}
