package app_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkernel/app"
	"github.com/dmitrymomot/httpkernel/core/alert"
	"github.com/dmitrymomot/httpkernel/core/config"
	"github.com/dmitrymomot/httpkernel/core/email"
	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/response"
	"github.com/dmitrymomot/httpkernel/core/server"
	"github.com/dmitrymomot/httpkernel/integration/email/postmark"
)

func testConfig() app.Config {
	srv := server.DefaultConfig()
	srv.Addr = "127.0.0.1:0"
	srv.ShutdownTimeout = time.Second
	return app.Config{
		Server:    srv,
		Exception: exception.EnvConfig{Controller: "error.show", LogPolicy: "client_warning"},
		AppName:   "test",
		Env:       "development",
		LogLevel:  "debug",
		Security:  "strict",
	}
}

func newApp(t *testing.T, cfg app.Config) (*app.App, *logger.Recorder) {
	t.Helper()

	rec := logger.NewRecorder(nil, 0)
	a, err := app.New(cfg, app.WithLogger(slog.New(rec)))
	require.NoError(t, err)

	require.NoError(t, a.Handle("/", "home", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		return response.String("welcome"), nil
	}, http.MethodGet))
	require.NoError(t, a.Handle("/crash", "crash", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		return nil, errors.New("database unavailable")
	}))
	return a, rec
}

func TestAppServesPages(t *testing.T) {
	t.Parallel()

	a, _ := newApp(t, testConfig())
	assert.True(t, a.Exceptions().IsLoggingExceptions())

	rec := httptest.NewRecorder()
	a.Kernel().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "welcome", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestAppRendersErrorPages(t *testing.T) {
	t.Parallel()

	a, logs := newApp(t, testConfig())

	rec := httptest.NewRecorder()
	a.Kernel().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>404 Not Found</h1>")
	assert.NotContains(t, rec.Body.String(), "No route found")
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	var levels []string
	for _, r := range logs.Records() {
		levels = append(levels, r.Level)
	}
	assert.Contains(t, levels, "WARN")
}

func TestAppRendersJSONErrorsInDebug(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Debug = true
	a, _ := newApp(t, cfg)

	r := httptest.NewRequest(http.MethodGet, "/crash", nil)
	r.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	a.Kernel().ServeHTTP(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"database unavailable"`)
	assert.Contains(t, rec.Body.String(), `"status":500`)
}

func TestAppInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Exception.LogPolicy = "loud"
	_, err := app.New(cfg, app.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, exception.ErrUnknownPolicy)

	cfg = testConfig()
	cfg.Exception.Controller = ""
	_, err = app.New(cfg, app.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, exception.ErrNoController)

	cfg = testConfig()
	cfg.LogLevel = "chatty"
	_, err = app.New(cfg)
	assert.ErrorIs(t, err, logger.ErrUnknownSeverity)

	_, err = app.New(testConfig(), app.WithLogger(nil))
	assert.Error(t, err)
}

func TestAppRun(t *testing.T) {
	t.Parallel()

	a, _ := newApp(t, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case <-a.Server().Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	res, err := http.Get("http://" + a.Server().Addr() + "/")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cancel()
	assert.NoError(t, <-done)
}

func TestNewFromEnv(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("APP_NAME", "env-app")
	t.Setenv("SERVER_ADDR", "127.0.0.1:0")
	t.Setenv("EXCEPTION_LOG_LEVELS", "404:notice")

	a, err := app.NewFromEnv(app.WithLogger(logger.Discard()))
	require.NoError(t, err)

	cfg := a.Config()
	assert.Equal(t, "env-app", cfg.AppName)
	assert.Equal(t, "error.show", cfg.Exception.Controller)
	assert.Equal(t, map[string]string{"404": "notice"}, cfg.Exception.LogLevels)
}

func TestConnectDependenciesDisabled(t *testing.T) {
	t.Parallel()

	a, _ := newApp(t, testConfig())
	checks, closeAll, err := a.ConnectDependencies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, checks)
	assert.NotPanics(t, closeAll)
}

func TestConnectDependenciesFailure(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Redis.ConnectionURL = "redis://127.0.0.1:1/0"
	cfg.Redis.RetryAttempts = 1
	cfg.Redis.ConnectTimeout = 5 * time.Second

	a, _ := newApp(t, cfg)
	_, closeAll, err := a.ConnectDependencies(context.Background())
	assert.Error(t, err)
	assert.NotPanics(t, closeAll)
}

func TestAppAlertsOnServerErrors(t *testing.T) {
	t.Parallel()

	dir, archive := t.TempDir(), t.TempDir()
	cfg := testConfig()
	cfg.Alert = alert.EnvConfig{
		To:          "oncall@example.com",
		MinSeverity: "critical",
		Cooldown:    time.Minute,
		Timeout:     time.Second,
		ArchiveDir:  archive,
	}

	rec := logger.NewRecorder(nil, 0)
	a, err := app.New(cfg, app.WithLogger(slog.New(rec)), app.WithEmailSender(email.NewDevSender(dir)))
	require.NoError(t, err)
	require.NoError(t, a.Handle("/crash", "crash", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		return nil, errors.New("database unavailable")
	}))
	require.NotNil(t, a.Alerts())

	for _, path := range []string{"/crash", "/missing"} {
		a.Kernel().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	a.Alerts().Wait()

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1, "only the server error is alerted")

	reports, err := filepath.Glob(filepath.Join(archive, "incidents", "*", "*", "*", "*.json"))
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestAppAlertsDisabledByDefault(t *testing.T) {
	t.Parallel()

	a, _ := newApp(t, testConfig())
	assert.Nil(t, a.Alerts())
}

func TestAppAlertsInvalidPostmarkConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Alert = alert.EnvConfig{To: "oncall@example.com", MinSeverity: "critical"}
	cfg.Postmark = postmark.Config{ServerToken: "token", SenderEmail: "not-an-address"}

	_, err := app.New(cfg, app.WithLogger(logger.Discard()))
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestAppWithoutErrorPagesOnlyLogs(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DisableErrorPages = true
	cfg.Exception.Controller = ""
	a, logs := newApp(t, cfg)
	assert.Nil(t, a.Exceptions())

	rec := httptest.NewRecorder()
	a.Kernel().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crash", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error\n", rec.Body.String())

	var uncaught []string
	for _, r := range logs.Records() {
		if strings.HasPrefix(r.Message, "Uncaught Exception") {
			uncaught = append(uncaught, r.Level)
		}
	}
	assert.Equal(t, []string{"CRITICAL"}, uncaught)
}
