// Package app assembles a runnable application: a kernel with the exception
// listener, the default error page, request listeners from package middleware
// and an HTTP server. Setting ALERT_EMAIL_TO adds an alert.Notifier that mails
// critical errors through Postmark, or to disk when Postmark is not configured.
//
//	a, err := app.NewFromEnv()
//	if err != nil {
//		return err
//	}
//	_ = a.Handle("/", "home", home, http.MethodGet)
//	return a.Run(ctx)
package app
