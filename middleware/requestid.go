package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/kernel"
)

// AttrRequestID holds the request ID on main requests.
const AttrRequestID = "_request_id"

// RequestIDConfig configures the request ID listener.
type RequestIDConfig struct {
	// HeaderName defaults to X-Request-ID.
	HeaderName string
	// Generator defaults to a UUID v4.
	Generator func() string
	// UseExisting keeps an ID sent by the client.
	UseExisting bool
}

// RequestID assigns an ID to every main request and echoes it in the
// response header.
func RequestID(cfg RequestIDConfig) event.Subscriber {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}
	if cfg.Generator == nil {
		cfg.Generator = func() string { return uuid.New().String() }
	}

	assign := func(_ context.Context, evt *kernel.RequestEvent) error {
		if !evt.IsMainRequest() {
			return nil
		}
		req := evt.Request()
		var id string
		if cfg.UseExisting && req.HTTP() != nil {
			id = req.HTTP().Header.Get(cfg.HeaderName)
		}
		if id == "" {
			id = cfg.Generator()
		}
		req.SetAttr(AttrRequestID, id)
		return nil
	}

	echo := func(_ context.Context, evt *kernel.ResponseEvent) error {
		if !evt.IsMainRequest() || evt.Response() == nil {
			return nil
		}
		if id := GetRequestID(evt.Request()); id != "" {
			evt.Response().Header.Set(cfg.HeaderName, id)
		}
		return nil
	}

	return subscriber{
		kernel.EventRequest:  {event.Bind(assign, PriorityRequestID)},
		kernel.EventResponse: {event.Bind(echo, PriorityRequestID)},
	}
}

// GetRequestID returns the ID assigned by RequestID, or an empty string.
func GetRequestID(req *kernel.Request) string {
	id, _ := req.Attr(AttrRequestID).(string)
	return id
}
