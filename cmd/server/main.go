package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/httpkernel/app"
	"github.com/dmitrymomot/httpkernel/core/health"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/response"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewFromEnv()
	if err != nil {
		slog.Error("failed to initialize application", logger.Error(err))
		os.Exit(1)
	}

	if err := run(ctx, a); err != nil {
		a.Logger().Error("application stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App) error {
	checks, closeDeps, err := a.ConnectDependencies(ctx)
	defer closeDeps()
	if err != nil {
		return err
	}

	if err := routes(a, checks); err != nil {
		return err
	}
	return a.Run(ctx)
}

func routes(a *app.App, checks []health.Check) error {
	if err := a.Handle("/", "home", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		return response.HTML("<h1>It works</h1>"), nil
	}, http.MethodGet); err != nil {
		return err
	}

	if err := a.Handle("/health/live", "health.live", health.Liveness, http.MethodGet); err != nil {
		return err
	}

	if err := a.Handle("/health/ready", "health.ready", health.Readiness(a.Logger(), checks...), http.MethodGet); err != nil {
		return err
	}

	return a.Handle("/users/{id:[0-9]+}", "user.show", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		return nil, response.ErrNotFound.WithMessage("user " + req.Param("id") + " not found")
	}, http.MethodGet)
}
