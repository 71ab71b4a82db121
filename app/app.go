package app

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/httpkernel/core/alert"
	"github.com/dmitrymomot/httpkernel/core/config"
	"github.com/dmitrymomot/httpkernel/core/email"
	"github.com/dmitrymomot/httpkernel/core/errorpage"
	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/server"
	"github.com/dmitrymomot/httpkernel/core/storage"
	"github.com/dmitrymomot/httpkernel/integration/email/postmark"
	"github.com/dmitrymomot/httpkernel/integration/storage/s3"
	"github.com/dmitrymomot/httpkernel/middleware"
)

// App wires the kernel, its listeners and the HTTP server.
type App struct {
	config    Config
	logger    *slog.Logger
	kernel    *kernel.Kernel
	server    *server.Server
	exception *exception.Listener
	alerts    *alert.Notifier
	sender    email.EmailSender
}

type Option func(*App) error

// NewFromEnv loads Config from the environment and creates an App.
func NewFromEnv(opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// New creates an App. Components not provided through options are built
// from cfg.
func New(cfg Config, opts ...Option) (*App, error) {
	a := &App{config: cfg}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.logger == nil {
		log, err := NewLogger(cfg)
		if err != nil {
			return nil, err
		}
		a.logger = log
	}

	if a.kernel == nil {
		a.kernel = kernel.New(kernel.WithLogger(a.logger))
	}

	excCfg, err := cfg.Exception.Config(a.logger)
	if err != nil {
		return nil, err
	}

	d := a.kernel.Dispatcher()
	d.AddSubscriber(middleware.RequestID(middleware.RequestIDConfig{UseExisting: true}))
	d.AddSubscriber(middleware.ClientIP())
	d.AddSubscriber(middleware.SecurityHeaders(middleware.SecurityPreset(cfg.Security)))
	d.AddSubscriber(middleware.AccessLog(middleware.AccessLogConfig{Logger: a.logger}))

	if cfg.DisableErrorPages {
		// errors are only logged; the kernel answers with a bare status text
		d.AddSubscriber(exception.NewLoggingListener(exception.LoggingConfig{
			Logger: a.logger,
			Levels: excCfg.Levels,
			Policy: excCfg.Policy,
		}))
	} else {
		a.exception, err = exception.NewListener(excCfg)
		if err != nil {
			return nil, err
		}
		page := errorpage.New(errorpage.WithDebug(cfg.Debug), errorpage.WithTitle(cfg.AppName))
		a.kernel.Register(excCfg.Controller, page.Show)
		d.AddSubscriber(a.exception)
	}

	if cfg.Alert.Enabled() {
		if err := a.setupAlerts(excCfg); err != nil {
			return nil, err
		}
		d.AddSubscriber(a.alerts)
	}

	if a.server == nil {
		srv, err := server.New(cfg.Server, a.kernel, server.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.server = srv
	}

	return a, nil
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = logger
		return nil
	}
}

func WithKernel(k *kernel.Kernel) Option {
	return func(a *App) error {
		if k == nil {
			return errors.New("kernel cannot be nil")
		}
		a.kernel = k
		return nil
	}
}

// WithEmailSender sets the transport used for alerts instead of the one
// derived from the Postmark config.
func WithEmailSender(s email.EmailSender) Option {
	return func(a *App) error {
		if s == nil {
			return errors.New("email sender cannot be nil")
		}
		a.sender = s
		return nil
	}
}

func WithServer(s *server.Server) Option {
	return func(a *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		a.server = s
		return nil
	}
}

func (a *App) Config() Config                  { return a.config }
func (a *App) Logger() *slog.Logger            { return a.logger }
func (a *App) Kernel() *kernel.Kernel          { return a.kernel }
func (a *App) Server() *server.Server          { return a.server }
func (a *App) Exceptions() *exception.Listener { return a.exception }

// Alerts returns the alert notifier, or nil when alerts are disabled.
func (a *App) Alerts() *alert.Notifier { return a.alerts }

// Handle registers controller under name and routes path to it.
func (a *App) Handle(path, name string, controller kernel.Controller, methods ...string) error {
	a.kernel.Register(name, controller)
	return a.kernel.Route(path, name, methods...)
}

// Run serves until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx))
	err := g.Wait()
	if a.alerts != nil {
		a.alerts.Wait()
	}
	return err
}

func (a *App) setupAlerts(exc exception.Config) error {
	sev, err := a.config.Alert.Severity()
	if err != nil {
		return err
	}

	if a.sender == nil {
		if a.config.Postmark.Enabled() {
			a.sender, err = postmark.New(a.config.Postmark)
			if err != nil {
				return err
			}
		} else {
			a.logger.Warn("postmark is not configured, alerts are written to disk",
				logger.Component("alert"), slog.String("dir", a.config.Alert.DevDir))
			a.sender = email.NewDevSender(a.config.Alert.DevDir)
		}
	}

	archive, err := a.archive()
	if err != nil {
		return err
	}

	a.alerts, err = alert.New(alert.Config{
		Sender:      a.sender,
		To:          a.config.Alert.To,
		AppName:     a.config.AppName,
		MinSeverity: sev,
		Levels:      exc.Levels,
		Policy:      exc.Policy,
		Cooldown:    a.config.Alert.Cooldown,
		Timeout:     a.config.Alert.Timeout,
		Archive:     archive,
		Logger:      a.logger,
	})
	return err
}

func (a *App) archive() (storage.Store, error) {
	switch {
	case a.config.S3.Enabled():
		return s3.New(context.Background(), a.config.S3, s3.WithUploadTimeout(a.config.Alert.Timeout))
	case a.config.Alert.ArchiveDir != "":
		return storage.NewDir(a.config.Alert.ArchiveDir), nil
	}
	return nil, nil
}
