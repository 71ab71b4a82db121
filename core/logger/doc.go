// Package logger provides structured logging utilities built on Go's standard slog package.
//
// It offers a functional-options constructor, a severity scale that extends slog's four
// levels with the syslog-style notice, critical, alert and emergency levels, attribute
// helpers for common logging scenarios, and an in-memory Recorder that makes a logger
// "debug capable" (its records can be inspected by an error page).
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("myapp"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("Server starting",
//		logger.Component("server"),
//		logger.Event("startup"),
//	)
//
// # Severities
//
// Severity values map onto slog levels, so any slog handler can filter them:
//
//	log.Log(ctx, logger.SeverityCritical.Level(), "database is gone", logger.Error(err))
//
// Handlers built by New print the extended level names (NOTICE, CRITICAL, ALERT,
// EMERGENCY) instead of slog's default "ERROR+4" style labels.
//
// # Debug Recording
//
//	log := logger.New(logger.WithProduction("myapp"), logger.WithRecorder(1000))
//
//	if dl, ok := logger.AsDebugLogger(log); ok {
//		for _, rec := range dl.Records() {
//			fmt.Println(rec.Level, rec.Message)
//		}
//	}
package logger
