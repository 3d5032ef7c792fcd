package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

func testCORS() config.CORS {
	return config.CORS{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           600,
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	r := NewRouter(testCORS(), zerolog.Nop(), Dependencies{}, nil)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestReadyz(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	r := NewRouter(testCORS(), zerolog.Nop(), Dependencies{Postgres: up}, nil)
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"postgres":"up"}`, rec.Body.String())

	r = NewRouter(testCORS(), zerolog.Nop(), Dependencies{Postgres: up, Redis: down}, nil)
	rec = serve(r, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"postgres":"up","redis":"down"}`, rec.Body.String())
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	r := NewRouter(testCORS(), zerolog.Nop(), Dependencies{}, nil)

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["error"])
	assert.Equal(t, "resource not found", body["message"])

	rec = serve(r, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRouter(testCORS(), zerolog.Nop(), Dependencies{}, nil)
	serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "trivia_http_requests_total"))
}
