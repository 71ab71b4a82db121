package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/httpkernel/core/logger"
)

// Server wraps http.Server with graceful shutdown.
type Server struct {
	cfg       Config
	handler   http.Handler
	logger    *slog.Logger
	tlsConfig *tls.Config

	mu       sync.Mutex
	listener net.Listener
	running  bool
	ready    chan struct{}
}

// New creates a Server serving handler.
func New(cfg Config, handler http.Handler, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tlsConfig, err := cfg.tls()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		handler:   handler,
		logger:    logger.Discard(),
		tlsConfig: tlsConfig,
		ready:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("server"))
	return s, nil
}

// Ready is closed once the server accepts connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the address the server listens on, or an empty string before
// it is ready.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	select {
	case <-s.ready:
		return s.listener.Addr().String()
	default:
		return ""
	}
}

// Serve accepts connections until ctx is done, then shuts down gracefully
// within Config.ShutdownTimeout. Returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := s.listen(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		MaxHeaderBytes:    s.cfg.MaxHeaderBytes,
		TLSConfig:         s.tlsConfig,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		if s.tlsConfig != nil {
			errCh <- srv.ServeTLS(ln, "", "")
			return
		}
		errCh <- srv.Serve(ln)
	}()

	s.logger.InfoContext(ctx, "server started", slog.String("addr", ln.Addr().String()), slog.Bool("tls", s.tlsConfig != nil))
	close(s.ready)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", logger.Duration(s.cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("server shutdown failed", logger.Error(err))
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh

	s.logger.Info("server stopped")
	return nil
}

// Run adapts Serve for errgroup.Group.Go.
func (s *Server) Run(ctx context.Context) func() error {
	return func() error {
		return s.Serve(ctx)
	}
}

func (s *Server) listen(ctx context.Context) (net.Listener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil, ErrServerAlreadyRunning
	}

	if s.listener == nil {
		var lc net.ListenConfig
		ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrListen, s.cfg.Addr, err)
		}
		s.listener = ln
	}
	s.running = true
	return s.listener, nil
}
