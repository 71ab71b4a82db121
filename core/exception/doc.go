// Package exception turns errors escaping controllers into logged, user-facing
// responses.
//
// A Listener subscribes to kernel.EventException twice. At high priority it
// logs the error at a severity derived from its HTTP status code. At low
// priority it re-dispatches the request through a fallback controller, passing
// the flattened error in the "exception" attribute, and uses the result as the
// response. The Content-Security-Policy header is stripped from that response
// exactly once so the error page is not constrained by the failed page's
// policy.
//
//	l, err := exception.NewListener(exception.Config{
//		Controller: "error.show",
//		Logger:     log,
//		Levels:     exception.LevelTable{404: logger.SeverityNotice},
//	})
//	if err != nil {
//		return err
//	}
//	k.Dispatcher().AddSubscriber(l)
//
// If the fallback controller itself fails, the secondary error is logged and
// returned from the listener. The returned error contains the original error
// in its chain, wrapped in a NestedError when needed.
//
// LoggingListener logs without rendering and disables itself when given a
// Listener that already logs.
package exception
