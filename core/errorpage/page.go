package errorpage

import (
	"context"
	"strings"

	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/response"
)

// Page renders flattened errors.
type Page struct {
	debug bool
	title string
}

// New creates a Page. Debug output is off by default.
func New(opts ...Option) *Page {
	p := &Page{title: "Error"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Debug reports whether the page shows error details.
func (p *Page) Debug() bool {
	return p.debug
}

// Show is a kernel.Controller rendering the error stored on req.
func (p *Page) Show(ctx context.Context, req *kernel.Request) (*response.Response, error) {
	flat, ok := req.Attr(exception.AttrException).(*exception.FlattenedError)
	if !ok || flat == nil {
		return nil, ErrMissingException
	}

	v := view{
		Title:      p.title,
		Status:     flat.StatusCode,
		StatusText: flat.StatusText,
	}
	if p.debug {
		v.Error = flat
		if dl, ok := req.Attr(exception.AttrLogger).(logger.DebugLogger); ok && dl != nil {
			v.Logs = &logSummary{Count: len(dl.Records()), Errors: dl.CountErrors()}
		}
	}

	if wantsJSON(req) {
		return response.JSONWithStatus(payload{Error: v}, v.Status)
	}
	return response.TemplWithStatus(ctx, pageView(v), v.Status)
}

func wantsJSON(req *kernel.Request) bool {
	r := req.HTTP()
	if r == nil {
		return false
	}
	accept := strings.ToLower(r.Header.Get("Accept"))
	return strings.Contains(accept, "application/json") || strings.Contains(accept, "+json")
}
