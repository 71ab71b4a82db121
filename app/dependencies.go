package app

import (
	"context"

	"github.com/dmitrymomot/httpkernel/core/health"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/integration/database/pg"
	"github.com/dmitrymomot/httpkernel/integration/database/redis"
)

// ConnectDependencies connects to the configured databases and returns their
// readiness checks. The returned close function releases every connection
// and is safe to call when an error was returned.
func (a *App) ConnectDependencies(ctx context.Context) ([]health.Check, func(), error) {
	var (
		checks  []health.Check
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if a.config.Postgres.Enabled() {
		pool, err := pg.Connect(ctx, a.config.Postgres)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, pool.Close)
		checks = append(checks, pg.Healthcheck(pool))
		a.logger.InfoContext(ctx, "connected to postgres", logger.Component("pg"))
	}

	if a.config.Redis.Enabled() {
		client, err := redis.Connect(ctx, a.config.Redis)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, func() { _ = client.Close() })
		checks = append(checks, redis.Healthcheck(client))
		a.logger.InfoContext(ctx, "connected to redis", logger.Component("redis"))
	}

	return checks, closeAll, nil
}
