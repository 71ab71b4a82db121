package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/response"
)

// Check verifies a single dependency.
type Check func(ctx context.Context) error

// Readiness runs every check in order and answers "READY" when all pass.
// The first failure is logged and reported as 503 Service Unavailable, so it
// is rendered by the exception listener like any other error.
//
//	a.Handle("/health/ready", "health.ready", health.Readiness(log, pg.Healthcheck(pool)))
func Readiness(log *slog.Logger, checks ...Check) kernel.Controller {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				return nil, response.ErrServiceUnavailable.WithError(err)
			}
		}
		return response.String("READY"), nil
	}
}
