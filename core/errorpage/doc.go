// Package errorpage provides the default fallback controller used by the
// exception listener to render errors.
//
// The controller reads the flattened error from the "exception" request
// attribute and responds with JSON when the client accepts it, or with an HTML
// page otherwise. In debug mode the page also shows the error type, message,
// location, stack trace, previous errors and a summary of the request's logs.
//
//	page := errorpage.New(errorpage.WithDebug(cfg.Debug))
//	k.Register("error.show", page.Show)
package errorpage
