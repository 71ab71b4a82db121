package errorpage_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkernel/core/errorpage"
	"github.com/dmitrymomot/httpkernel/core/exception"
	"github.com/dmitrymomot/httpkernel/core/kernel"
	"github.com/dmitrymomot/httpkernel/core/logger"
	"github.com/dmitrymomot/httpkernel/core/response"
)

func errorRequest(accept string, err error, dl logger.DebugLogger) *kernel.Request {
	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if accept != "" {
		r.Header.Set("Accept", accept)
	}
	req := kernel.NewRequest(r)
	req.SetAttr(exception.AttrException, exception.Flatten(err))
	if dl != nil {
		req.SetAttr(exception.AttrLogger, dl)
	}
	return req
}

func TestShowHTML(t *testing.T) {
	t.Parallel()

	page := errorpage.New(errorpage.WithTitle("Shop"))
	assert.False(t, page.Debug())

	err := response.ErrNotFound.WithMessage("order <7> missing")
	resp, rerr := page.Show(context.Background(), errorRequest("text/html", err, nil))
	require.NoError(t, rerr)

	body := string(resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<title>404 Not Found | Shop</title>")
	assert.Contains(t, body, "<h1>404 Not Found</h1>")
	assert.NotContains(t, body, "order &lt;7&gt;")
	assert.NotContains(t, body, "response.HTTPError")
}

func TestShowHTMLDebug(t *testing.T) {
	t.Parallel()

	rec := logger.NewRecorder(nil, 0)
	log := slog.New(rec)
	log.Info("loading order")
	log.Error("query failed")

	page := errorpage.New(errorpage.WithDebug(true))
	err := fmt.Errorf("load order: %w", response.ErrNotFound.WithMessage("order <7> missing"))

	resp, rerr := page.Show(context.Background(), errorRequest("", err, rec))
	require.NoError(t, rerr)

	body := string(resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Contains(t, body, "*fmt.wrapError")
	assert.Contains(t, body, "load order: order &lt;7&gt; missing")
	assert.NotContains(t, body, "<7>")
	assert.Contains(t, body, "Previous (1)")
	assert.Contains(t, body, "response.HTTPError")
	assert.Contains(t, body, "Logs: 2 records, 1 errors")
}

func TestShowJSON(t *testing.T) {
	t.Parallel()

	page := errorpage.New()
	resp, err := page.Show(context.Background(), errorRequest("application/json", errors.New("db down"), nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"error":{"status":500,"message":"Internal Server Error"}}`, string(resp.Body))
}

func TestShowJSONDebug(t *testing.T) {
	t.Parallel()

	rec := logger.NewRecorder(nil, 0)
	slog.New(rec).Error("boom")

	page := errorpage.New(errorpage.WithDebug(true))
	req := errorRequest("application/problem+json", response.ErrConflict.WithMessage("version mismatch"), rec)

	resp, err := page.Show(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.Status)

	var got struct {
		Error struct {
			Status    int                      `json:"status"`
			Message   string                   `json:"message"`
			Exception exception.FlattenedError `json:"exception"`
			Logs      struct {
				Count  int `json:"count"`
				Errors int `json:"errors"`
			} `json:"logs"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &got))
	assert.Equal(t, 409, got.Error.Status)
	assert.Equal(t, "Conflict", got.Error.Message)
	assert.Equal(t, "version mismatch", got.Error.Exception.Message)
	assert.Equal(t, "response.HTTPError", got.Error.Exception.Type)
	assert.Equal(t, 1, got.Error.Logs.Count)
	assert.Equal(t, 1, got.Error.Logs.Errors)
}

func TestShowMissingException(t *testing.T) {
	t.Parallel()

	req := kernel.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := errorpage.New().Show(context.Background(), req)
	assert.ErrorIs(t, err, errorpage.ErrMissingException)

	req.SetAttr(exception.AttrException, "not flattened")
	_, err = errorpage.New().Show(context.Background(), req)
	assert.ErrorIs(t, err, errorpage.ErrMissingException)
}

func TestShowAsFallbackController(t *testing.T) {
	t.Parallel()

	k := kernel.New(kernel.WithLogger(logger.Discard()))
	k.Register("error.show", errorpage.New().Show)

	l, err := exception.NewListener(exception.Config{Controller: "error.show"})
	require.NoError(t, err)
	k.Dispatcher().AddSubscriber(l)

	rec := httptest.NewRecorder()
	k.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>404 Not Found</h1>")
}
