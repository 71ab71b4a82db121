package app

import (
	"log/slog"

	"github.com/dmitrymomot/httpkernel/core/logger"
)

// debugRecords is the number of records kept for error pages in debug mode.
const debugRecords = 500

// NewLogger builds the application logger from cfg. In debug mode the logger
// also records its output so error pages can summarize it.
func NewLogger(cfg Config) (*slog.Logger, error) {
	sev, err := logger.ParseSeverity(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var opts []logger.Option
	switch cfg.Env {
	case "production":
		opts = append(opts, logger.WithProduction(cfg.AppName))
	case "staging":
		opts = append(opts, logger.WithStaging(cfg.AppName))
	default:
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}
	opts = append(opts, logger.WithLevel(sev.Level()))

	switch cfg.LogFormat {
	case "json":
		opts = append(opts, logger.WithJSONFormatter())
	case "text":
		opts = append(opts, logger.WithTextFormatter())
	}
	if cfg.Debug {
		opts = append(opts, logger.WithRecorder(debugRecords))
	}
	return logger.New(opts...), nil
}
