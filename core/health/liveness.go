package health

import (
	"context"

	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/response"
)

// Liveness reports that the process is running. It never checks dependencies.
//
//	a.Handle("/health/live", "health.live", health.Liveness, http.MethodGet)
func Liveness(context.Context, *kernel.Request) (*response.Response, error) {
	return response.String("ALIVE"), nil
}

// NoContent answers with 204 and no body, for high-frequency probes.
func NoContent(context.Context, *kernel.Request) (*response.Response, error) {
	return response.NoContent(), nil
}
