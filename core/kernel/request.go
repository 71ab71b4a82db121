package kernel

import (
	"context"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/httpkernel/core/event"
)

// RequestType distinguishes top-level requests from internal sub-requests.
type RequestType int

const (
	MainRequest RequestType = iota + 1
	SubRequest
)

func (t RequestType) String() string {
	switch t {
	case MainRequest:
		return "main"
	case SubRequest:
		return "sub"
	}
	return "unknown"
}

// Reserved attribute keys.
const (
	AttrController  = "_controller"
	AttrRoute       = "_route"
	AttrRouteParams = "_route_params"
)

// Request is a request flowing through the kernel. It wraps the inbound
// *http.Request (headers, cookies, URL, remote address) and adds a method that
// can be overridden, a mutable attribute bag and a request-scoped dispatcher.
//
// A Request is owned by a single goroutine and is not safe for concurrent use.
type Request struct {
	id        string
	parentID  string
	method    string
	attrs     map[string]any
	http      *http.Request
	createdAt time.Time
	listeners *event.Dispatcher
}

// NewRequest wraps r. The request gets a fresh UUID.
func NewRequest(r *http.Request) *Request {
	return &Request{
		id:        uuid.New().String(),
		method:    r.Method,
		attrs:     make(map[string]any),
		http:      r,
		createdAt: time.Now(),
		listeners: event.NewDispatcher(),
	}
}

// Duplicate returns an independently owned copy of the request that shares the
// underlying *http.Request. An empty method keeps the current one; a nil attrs
// map copies the current attributes, otherwise attrs replaces them.
// The copy gets its own ID, its own scoped dispatcher, and records the
// original's ID as its parent.
func (r *Request) Duplicate(method string, attrs map[string]any) *Request {
	if method == "" {
		method = r.method
	}
	if attrs == nil {
		attrs = r.attrs
	}
	return &Request{
		id:        uuid.New().String(),
		parentID:  r.id,
		method:    method,
		attrs:     maps.Clone(attrs),
		http:      r.http,
		createdAt: time.Now(),
		listeners: event.NewDispatcher(),
	}
}

func (r *Request) ID() string           { return r.id }
func (r *Request) ParentID() string     { return r.parentID }
func (r *Request) Method() string       { return r.method }
func (r *Request) SetMethod(m string)   { r.method = m }
func (r *Request) HTTP() *http.Request  { return r.http }
func (r *Request) CreatedAt() time.Time { return r.createdAt }

// Context returns the context of the underlying HTTP request.
func (r *Request) Context() context.Context {
	return r.http.Context()
}

// Path returns the URL path of the underlying HTTP request.
func (r *Request) Path() string {
	return r.http.URL.Path
}

// Listeners returns the dispatcher scoped to this request. Listeners added here
// only see events of this request.
func (r *Request) Listeners() *event.Dispatcher {
	return r.listeners
}

// Attr returns the attribute value, or nil.
func (r *Request) Attr(key string) any {
	return r.attrs[key]
}

// Lookup returns the attribute value and whether it is set.
func (r *Request) Lookup(key string) (any, bool) {
	v, ok := r.attrs[key]
	return v, ok
}

// SetAttr sets an attribute.
func (r *Request) SetAttr(key string, val any) {
	r.attrs[key] = val
}

// Attrs returns a copy of all attributes.
func (r *Request) Attrs() map[string]any {
	return maps.Clone(r.attrs)
}

// Controller returns the _controller attribute, or "".
func (r *Request) Controller() string {
	name, _ := r.attrs[AttrController].(string)
	return name
}

// Param returns a route parameter, or "".
func (r *Request) Param(key string) string {
	params, _ := r.attrs[AttrRouteParams].(map[string]string)
	return params[key]
}
