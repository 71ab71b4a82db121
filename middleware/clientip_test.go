package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/response"
	"github.com/dmitrymomot/httpkernel/middleware"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "10.0.0.1:1234", "10.0.0.1"},
		{"remote addr without port", nil, "10.0.0.1", "10.0.0.1"},
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Real-IP": "2.2.2.2"}, "10.0.0.1:1", "1.1.1.1"},
		{"real ip", map[string]string{"X-Real-IP": "2.2.2.2"}, "10.0.0.1:1", "2.2.2.2"},
		{"first forwarded", map[string]string{"X-Forwarded-For": "3.3.3.3, 10.0.0.2"}, "10.0.0.1:1", "3.3.3.3"},
		{"invalid header ignored", map[string]string{"X-Real-IP": "nope"}, "10.0.0.1:1", "10.0.0.1"},
		{"ipv6", nil, "[::1]:80", "::1"},
		{"garbage", nil, "garbage", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, middleware.GetIP(r))
		})
	}
}

func TestClientIPListener(t *testing.T) {
	t.Parallel()

	k := newKernel(t)
	k.Dispatcher().AddSubscriber(middleware.ClientIP())
	k.Register("ip", func(ctx context.Context, req *kernel.Request) (*response.Response, error) {
		return response.String(middleware.GetClientIP(req)), nil
	})
	require.NoError(t, k.Route("/ip", "ip"))

	r := httptest.NewRequest(http.MethodGet, "/ip", nil)
	r.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", serve(k, r).Body.String())
}
