// Package health provides liveness and readiness controllers for orchestrator
// probes.
//
// Liveness always succeeds. Readiness runs dependency checks such as
// pg.Healthcheck or redis.Healthcheck and fails with 503 when one of them does.
package health
