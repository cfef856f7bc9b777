package middleware_test

import (
	"net/http"
	"testing"

	"team-builder-backend/internal/api/middleware"
	"team-builder-backend/internal/logger"
	"team-builder-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	s := testutils.SetupHTTPTest()
	s.Router.Use(middleware.RequestID())
	s.Router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"gin": c.GetString("request_id"),
			"ctx": logger.RequestIDFromContext(c.Request.Context()),
		})
	})

	t.Run("generated", func(t *testing.T) {
		rec := s.MakeRequest(http.MethodGet, "/ping", nil)

		id := rec.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, id)
		var body map[string]string
		testutils.ParseJSONResponse(t, rec, &body)
		assert.Equal(t, id, body["gin"])
		assert.Equal(t, id, body["ctx"])
	})

	t.Run("propagated", func(t *testing.T) {
		rec := s.MakeRequestWithHeaders(http.MethodGet, "/ping", nil, map[string]string{
			middleware.RequestIDHeader: "abc-123",
		})

		assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
	})
}

func TestRecovery(t *testing.T) {
	s := testutils.SetupHTTPTest()
	s.Router.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	s.Router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := s.MakeRequest(http.MethodGet, "/boom", nil)

	testutils.AssertErrorResponse(t, rec, http.StatusInternalServerError, "internal server error")
}

func TestMetricsPassesThrough(t *testing.T) {
	s := testutils.SetupHTTPTest()
	s.Router.Use(middleware.Metrics())
	s.Router.GET("/teams", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })

	rec := s.MakeRequest(http.MethodGet, "/teams", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
