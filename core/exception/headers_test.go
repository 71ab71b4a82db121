package exception_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/response"
)

func responseWithCSP() *response.Response {
	resp := response.String("page")
	resp.Header.Set(exception.HeaderContentSecurityPolicy, "default-src 'self'")
	return resp
}

func dispatchResponse(t *testing.T, d *event.Dispatcher, resp *response.Response) {
	t.Helper()
	req := kernel.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	evt := kernel.NewResponseEvent(nil, req, kernel.MainRequest, resp)
	require.NoError(t, d.Dispatch(context.Background(), kernel.EventResponse, evt))
}

func TestRemoveHeaderOnce(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	h := exception.RemoveHeaderOnce(d, exception.HeaderContentSecurityPolicy, exception.PriorityHeaderRemoval)
	assert.False(t, h.IsZero())
	assert.Equal(t, 1, d.ListenerCount(kernel.EventResponse))

	first := responseWithCSP()
	dispatchResponse(t, d, first)
	assert.Empty(t, first.Header.Get(exception.HeaderContentSecurityPolicy))
	assert.Equal(t, 0, d.ListenerCount(kernel.EventResponse))
	assert.False(t, d.RemoveListener(h))

	second := responseWithCSP()
	dispatchResponse(t, d, second)
	assert.Equal(t, "default-src 'self'", second.Header.Get(exception.HeaderContentSecurityPolicy))
}

func TestRemoveHeaderOnceRunsAfterHigherPriorities(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	event.On(d, kernel.EventResponse, func(_ context.Context, evt *kernel.ResponseEvent) error {
		evt.Response().Header.Set(exception.HeaderContentSecurityPolicy, "default-src 'none'")
		return nil
	}, 0)
	exception.RemoveHeaderOnce(d, exception.HeaderContentSecurityPolicy, exception.PriorityHeaderRemoval)

	resp := response.String("page")
	dispatchResponse(t, d, resp)
	assert.Empty(t, resp.Header.Get(exception.HeaderContentSecurityPolicy))
	assert.Equal(t, 1, d.ListenerCount(kernel.EventResponse))
}

func TestRemoveHeaderOnceConcurrent(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	exception.RemoveHeaderOnce(d, exception.HeaderContentSecurityPolicy, exception.PriorityHeaderRemoval)

	const n = 16
	resps := make([]*response.Response, n)
	for i := range resps {
		resps[i] = responseWithCSP()
	}

	var wg sync.WaitGroup
	for _, resp := range resps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := kernel.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
			evt := kernel.NewResponseEvent(nil, req, kernel.MainRequest, resp)
			_ = d.Dispatch(context.Background(), kernel.EventResponse, evt)
		}()
	}
	wg.Wait()

	stripped := 0
	for _, resp := range resps {
		if resp.Header.Get(exception.HeaderContentSecurityPolicy) == "" {
			stripped++
		}
	}
	assert.Equal(t, 1, stripped)
	assert.Equal(t, 0, d.ListenerCount(kernel.EventResponse))
}
