// Package middleware provides kernel listeners that decorate requests and
// responses: security headers, request IDs, client IP resolution and access
// logging.
//
// Every constructor returns an event.Subscriber that is registered on the
// kernel dispatcher:
//
//	d := k.Dispatcher()
//	d.AddSubscriber(middleware.RequestID(middleware.RequestIDConfig{UseExisting: true}))
//	d.AddSubscriber(middleware.SecurityHeaders(middleware.BalancedSecurity))
//	d.AddSubscriber(middleware.AccessLog(middleware.AccessLogConfig{Logger: log}))
//
// Security headers are applied to every response, including error pages. The
// exception listener removes Content-Security-Policy from error pages after
// these listeners have run.
package middleware
