// Package server runs an http.Handler with configured timeouts, optional TLS
// and graceful shutdown.
//
//	srv, err := server.New(cfg, k, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx))
//	return g.Wait()
//
// Serve blocks until its context is cancelled and then waits up to
// Config.ShutdownTimeout for in-flight requests to complete.
package server
