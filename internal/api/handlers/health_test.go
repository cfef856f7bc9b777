package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"team-builder-backend/internal/api/handlers"
	"team-builder-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func healthRouter(ping handlers.PingFunc) *testutils.HTTPTestSuite {
	h := handlers.NewHealthHandler(ping, "test")
	s := testutils.SetupHTTPTest()
	s.Router.GET("/health", h.Health)
	s.Router.GET("/health/ready", h.Ready)
	s.Router.GET("/health/live", h.Live)
	return s
}

func TestHealthHandler(t *testing.T) {
	up := healthRouter(func(context.Context) error { return nil })
	down := healthRouter(func(context.Context) error { return errors.New("no reachable servers") })

	t.Run("healthy", func(t *testing.T) {
		var resp handlers.HealthResponse
		testutils.AssertJSONResponse(t, up.MakeRequest(http.MethodGet, "/health", nil), http.StatusOK, &resp)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "test", resp.Version)
		assert.Equal(t, "healthy", resp.Services["database"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		var resp handlers.HealthResponse
		testutils.AssertJSONResponse(t, down.MakeRequest(http.MethodGet, "/health", nil), http.StatusServiceUnavailable, &resp)
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Contains(t, resp.Services["database"], "no reachable servers")
	})

	t.Run("ready", func(t *testing.T) {
		var resp map[string]interface{}
		testutils.AssertJSONResponse(t, up.MakeRequest(http.MethodGet, "/health/ready", nil), http.StatusOK, &resp)
		assert.Equal(t, true, resp["ready"])
	})

	t.Run("not ready", func(t *testing.T) {
		var resp map[string]interface{}
		testutils.AssertJSONResponse(t, down.MakeRequest(http.MethodGet, "/health/ready", nil), http.StatusServiceUnavailable, &resp)
		assert.Equal(t, false, resp["ready"])
	})

	t.Run("live ignores the store", func(t *testing.T) {
		var resp map[string]interface{}
		testutils.AssertJSONResponse(t, down.MakeRequest(http.MethodGet, "/health/live", nil), http.StatusOK, &resp)
		assert.Equal(t, true, resp["alive"])
	})
}
