package kernel

import (
	"context"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/response"
)

// Kernel events.
const (
	// EventRequest fires before controller resolution. Listeners may short-circuit
	// the request by setting a response.
	EventRequest = "kernel.request"

	// EventResponse fires for every response the kernel returns, including
	// responses produced while handling an error.
	EventResponse = "kernel.response"

	// EventException fires when handling fails and errors are caught.
	EventException = "kernel.exception"

	// EventFinishRequest fires after a request is done, successful or not.
	EventFinishRequest = "kernel.finish_request"
)

// HTTPKernel handles requests. Implemented by *Kernel.
type HTTPKernel interface {
	Handle(ctx context.Context, req *Request, typ RequestType, catch bool) (*response.Response, error)
}

// KernelEvent is the common part of all kernel events.
type KernelEvent struct {
	kernel      HTTPKernel
	request     *Request
	requestType RequestType
}

func (e *KernelEvent) Kernel() HTTPKernel       { return e.kernel }
func (e *KernelEvent) Request() *Request        { return e.request }
func (e *KernelEvent) RequestType() RequestType { return e.requestType }
func (e *KernelEvent) IsMainRequest() bool      { return e.requestType == MainRequest }

// RequestEvent is dispatched as EventRequest.
type RequestEvent struct {
	event.Propagation
	KernelEvent
	response *response.Response
}

// NewRequestEvent creates a RequestEvent.
func NewRequestEvent(k HTTPKernel, req *Request, typ RequestType) *RequestEvent {
	return &RequestEvent{KernelEvent: KernelEvent{kernel: k, request: req, requestType: typ}}
}

// SetResponse short-circuits the request and stops propagation.
func (e *RequestEvent) SetResponse(r *response.Response) {
	e.response = r
	e.StopPropagation()
}

func (e *RequestEvent) Response() *response.Response { return e.response }
func (e *RequestEvent) HasResponse() bool            { return e.response != nil }

// ResponseEvent is dispatched as EventResponse.
type ResponseEvent struct {
	event.Propagation
	KernelEvent
	response *response.Response
}

// NewResponseEvent creates a ResponseEvent.
func NewResponseEvent(k HTTPKernel, req *Request, typ RequestType, resp *response.Response) *ResponseEvent {
	return &ResponseEvent{
		KernelEvent: KernelEvent{kernel: k, request: req, requestType: typ},
		response:    resp,
	}
}

func (e *ResponseEvent) Response() *response.Response     { return e.response }
func (e *ResponseEvent) SetResponse(r *response.Response) { e.response = r }

// ExceptionEvent is dispatched as EventException.
type ExceptionEvent struct {
	event.Propagation
	KernelEvent
	err                     error
	response                *response.Response
	allowCustomResponseCode bool
}

// NewExceptionEvent creates an ExceptionEvent.
func NewExceptionEvent(k HTTPKernel, req *Request, typ RequestType, err error) *ExceptionEvent {
	return &ExceptionEvent{
		KernelEvent: KernelEvent{kernel: k, request: req, requestType: typ},
		err:         err,
	}
}

// Err returns the error being handled.
func (e *ExceptionEvent) Err() error { return e.err }

// SetErr replaces the error being handled.
func (e *ExceptionEvent) SetErr(err error) { e.err = err }

// SetResponse sets the response for the failed request and stops propagation.
func (e *ExceptionEvent) SetResponse(r *response.Response) {
	e.response = r
	e.StopPropagation()
}

func (e *ExceptionEvent) Response() *response.Response { return e.response }
func (e *ExceptionEvent) HasResponse() bool            { return e.response != nil }

// AllowCustomResponseCode keeps the status of the response set by a listener
// instead of deriving it from the error.
func (e *ExceptionEvent) AllowCustomResponseCode() { e.allowCustomResponseCode = true }

func (e *ExceptionEvent) IsAllowingCustomResponseCode() bool { return e.allowCustomResponseCode }

// FinishRequestEvent is dispatched as EventFinishRequest.
type FinishRequestEvent struct {
	KernelEvent
	response *response.Response
	err      error
}

// Response returns the response that was returned, or nil.
func (e *FinishRequestEvent) Response() *response.Response { return e.response }

// Err returns the error that was returned, or nil.
func (e *FinishRequestEvent) Err() error { return e.err }
