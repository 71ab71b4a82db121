package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/response"
	"github.com/dmitrymomot/httpkernel/middleware"
)

func TestAccessLog(t *testing.T) {
	t.Parallel()

	log, rec := newRecorder()
	k := newKernel(t)
	d := k.Dispatcher()
	d.AddSubscriber(middleware.RequestID(middleware.RequestIDConfig{Generator: func() string { return "req-1" }}))
	d.AddSubscriber(middleware.ClientIP())
	d.AddSubscriber(middleware.AccessLog(middleware.AccessLogConfig{Logger: log}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:5000"
	serve(k, r)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "INFO", records[0].Level)
	assert.Equal(t, "request completed", records[0].Message)

	attrs := records[0].Attrs
	assert.Equal(t, "http", attrs["component"])
	assert.Equal(t, "req-1", attrs["request_id"])
	assert.Equal(t, http.MethodGet, attrs["method"])
	assert.Equal(t, "/", attrs["path"])
	assert.EqualValues(t, http.StatusOK, attrs["status_code"])
	assert.Equal(t, "192.0.2.1", attrs["client_ip"])
	assert.Contains(t, attrs, "latency")
	assert.NotContains(t, attrs, "error")
}

func TestAccessLogErrors(t *testing.T) {
	t.Parallel()

	log, rec := newRecorder()
	k := newKernel(t)
	k.Dispatcher().AddSubscriber(middleware.AccessLog(middleware.AccessLogConfig{Logger: log}))

	serve(k, httptest.NewRequest(http.MethodGet, "/fail", nil))

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "ERROR", records[0].Level)
	assert.EqualValues(t, http.StatusServiceUnavailable, records[0].Attrs["status_code"])
	assert.Equal(t, response.ErrServiceUnavailable, records[0].Attrs["error"])
}

func TestAccessLogSlowAndSkip(t *testing.T) {
	t.Parallel()

	log, rec := newRecorder()
	k := newKernel(t)
	k.Register("slow", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		time.Sleep(20 * time.Millisecond)
		return response.String("slow"), nil
	})
	require.NoError(t, k.Route("/slow", "slow"))
	k.Dispatcher().AddSubscriber(middleware.AccessLog(middleware.AccessLogConfig{
		Logger:               log,
		SlowRequestThreshold: 5 * time.Millisecond,
		Skip:                 func(req *kernel.Request) bool { return req.Path() == "/" },
	}))

	serve(k, httptest.NewRequest(http.MethodGet, "/", nil))
	serve(k, httptest.NewRequest(http.MethodGet, "/slow", nil))

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "WARN", records[0].Level)
	assert.Equal(t, "/slow", records[0].Attrs["path"])
}
