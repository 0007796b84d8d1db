package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/autogrid/pkg/errors"
	"github.com/matzehuels/autogrid/pkg/observability"
	"github.com/matzehuels/autogrid/pkg/sink"
	"github.com/matzehuels/autogrid/pkg/store"
)

const boardJSON = `{
  "name": "api",
  "viewport": {"width": 1200, "height": 800},
  "cells": [
    {"id": "a", "height": 100},
    {"id": "b", "height": 50},
    {"id": "c", "height": 80},
    {"id": "wide", "span": 2, "height": 40}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(Config{Store: store.NewMemoryStore(), Logger: logger}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[healthResponse](t, resp)
	require.Equal(t, "ok", body.Status)
}

func TestLayoutEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/v1/layout", "application/json", boardJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	l := decode[sink.Layout](t, resp)
	require.Equal(t, 3, l.Columns)
	require.Len(t, l.Cells, 4)
	require.Equal(t, 400.0, l.Cells[3].X)
	require.Equal(t, 80.0, l.Cells[3].Y)
	require.Equal(t, 120.0, l.Height)
}

func TestLayoutEndpointViewportOverride(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/v1/layout?width=800&scrollbar=0", "application/json", boardJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	l := decode[sink.Layout](t, resp)
	require.Equal(t, 800.0, l.Width)
	require.Equal(t, 2, l.Columns)
}

func TestLayoutEndpointFormats(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/v1/layout?format=svg", "application/json", boardJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

	toml := "name = \"t\"\n[[cell]]\nid = \"x\"\nheight = 32\n"
	resp = do(t, http.MethodPost, srv.URL+"/v1/layout?format=text", "application/toml", toml)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
}

func TestLayoutEndpointErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		status      int
		code        errors.Code
	}{
		{"bad json", "", "application/json", "{", http.StatusBadRequest, errors.ErrCodeInvalidBoard},
		{"bad format", "?format=gif", "application/json", boardJSON, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad width", "?width=wide", "application/json", boardJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"negative width", "?width=-5", "application/json", boardJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"huge width", "?width=1e12", "application/json", boardJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"huge board viewport", "", "application/json", `{"viewport":{"width":1e9}}`, http.StatusBadRequest, errors.ErrCodeInvalidBoard},
		{"content type", "", "application/xml", "<board/>", http.StatusUnsupportedMediaType, errors.ErrCodeUnsupported},
		{"span", "", "application/json", `{"cells":[{"id":"a","span":0.5}]}`, http.StatusBadRequest, errors.ErrCodeInvalidBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/v1/layout"+tt.query, tt.contentType, tt.body)
			require.Equal(t, tt.status, resp.StatusCode)
			body := decode[errorBody](t, resp)
			require.Equal(t, tt.code, body.Error.Code)
			require.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestBoardLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/v1/boards", "application/json", boardJSON)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rec := decode[store.Record](t, resp)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, "/v1/boards/"+rec.ID, resp.Header.Get("Location"))

	resp = do(t, http.MethodGet, srv.URL+"/v1/boards", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]store.Record](t, resp)
	require.Len(t, list, 1)

	resp = do(t, http.MethodGet, srv.URL+"/v1/boards/"+rec.ID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[store.Record](t, resp)
	require.Equal(t, "api", got.Board.Name)

	resp = do(t, http.MethodGet, srv.URL+"/v1/boards/"+rec.ID+"/layout?width=400", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "miss", resp.Header.Get("X-Autogrid-Cache"))
	l := decode[sink.Layout](t, resp)
	require.Equal(t, 1, l.Columns)

	resp = do(t, http.MethodDelete, srv.URL+"/v1/boards/"+rec.ID, "", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/v1/boards/"+rec.ID, "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, errors.ErrCodeNotFound, decode[errorBody](t, resp).Error.Code)

	resp = do(t, http.MethodDelete, srv.URL+"/v1/boards/"+rec.ID, "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListLimit(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/v1/boards?limit=x", "", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBodyLimit(t *testing.T) {
	s := New(Config{MaxBodyBytes: 16, Logger: log.New(io.Discard)})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp := do(t, http.MethodPost, srv.URL+"/v1/layout", "application/json", boardJSON)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
	errs     int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs++
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := newTestServer(t)
	do(t, http.MethodGet, srv.URL+"/healthz", "", "")
	do(t, http.MethodGet, srv.URL+"/v1/boards/missing", "", "")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	require.Equal(t, []int{http.StatusOK, http.StatusNotFound}, hooks.statuses)
	require.Equal(t, 1, hooks.errs)
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, http.StatusServiceUnavailable, statusFor(errors.ErrCodeNetwork))
	require.Equal(t, http.StatusGatewayTimeout, statusFor(errors.ErrCodeTimeout))
	require.Equal(t, http.StatusInternalServerError, statusFor(errors.ErrCodeInternal))
	require.Equal(t, http.StatusInternalServerError, statusFor("SOMETHING_ELSE"))
}
