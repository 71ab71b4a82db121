package response

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
)

// Templ renders a templ component into a text/html response with 200 OK status.
// The component is rendered with ctx so it can read request-scoped values.
func Templ(ctx context.Context, component templ.Component) (*Response, error) {
	return TemplWithStatus(ctx, component, http.StatusOK)
}

// TemplWithStatus renders a templ component into a text/html response with a
// custom status code.
func TemplWithStatus(ctx context.Context, component templ.Component, status int) (*Response, error) {
	if component == nil {
		return nil, ErrNilComponent
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return HTMLWithStatus(buf.String(), status), nil
}
