package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
)

// AccessLogConfig configures the access log listener.
type AccessLogConfig struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Skip disables logging for matching requests.
	Skip func(req *kernel.Request) bool
	// Level for successful requests. Defaults to info.
	Level slog.Level
	// SlowRequestThreshold logs slower requests at warning level. Defaults to 5s.
	SlowRequestThreshold time.Duration
}

// AccessLog logs one line per finished main request. Server errors and
// requests that ended with an error are logged at error level.
func AccessLog(cfg AccessLogConfig) event.Subscriber {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	log := cfg.Logger.With(logger.Component("http"))

	write := func(ctx context.Context, evt *kernel.FinishRequestEvent) error {
		req := evt.Request()
		if !evt.IsMainRequest() || (cfg.Skip != nil && cfg.Skip(req)) {
			return nil
		}

		status := responseStatus(evt)
		latency := time.Since(req.CreatedAt())

		id := GetRequestID(req)
		if id == "" {
			id = req.ID()
		}

		level := cfg.Level
		switch {
		case evt.Err() != nil || status >= http.StatusInternalServerError:
			level = slog.LevelError
		case latency > cfg.SlowRequestThreshold:
			level = slog.LevelWarn
		}

		log.LogAttrs(ctx, level, "request completed",
			logger.RequestID(id),
			logger.Method(req.Method()),
			logger.Path(req.Path()),
			logger.StatusCode(status),
			logger.Latency(latency),
			clientIPAttr(req),
			logger.Error(evt.Err()),
		)
		return nil
	}

	return subscriber{
		kernel.EventFinishRequest: {event.Bind(write, PriorityAccessLog)},
	}
}

func responseStatus(evt *kernel.FinishRequestEvent) int {
	if resp := evt.Response(); resp != nil {
		if resp.Status == 0 {
			return http.StatusOK
		}
		return resp.Status
	}
	var sc kernel.StatusCoder
	if errors.As(evt.Err(), &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}

func clientIPAttr(req *kernel.Request) slog.Attr {
	if ip := GetClientIP(req); ip != "" {
		return slog.String("client_ip", ip)
	}
	return slog.Attr{}
}
