package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/response"
)

func newKernel(t *testing.T) *kernel.Kernel {
	t.Helper()

	k := kernel.New(kernel.WithLogger(logger.Discard()))
	k.Register("home", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		return response.String("home"), nil
	})
	k.Register("fail", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		return nil, response.ErrServiceUnavailable
	})
	require.NoError(t, k.Route("/", "home"))
	require.NoError(t, k.Route("/fail", "fail"))
	return k
}

func serve(k *kernel.Kernel, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, r)
	return rec
}

func newRecorder() (*slog.Logger, *logger.Recorder) {
	rec := logger.NewRecorder(nil, 0)
	return slog.New(rec), rec
}
