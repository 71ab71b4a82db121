// Package pg connects to PostgreSQL through a pgx connection pool and exposes
// a readiness check for it.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	a.Handle("/health/ready", "health.ready", health.Readiness(log, pg.Healthcheck(pool)))
//
// Connect retries the initial ping with a linearly growing delay so that
// services starting together with the database do not fail immediately.
package pg
