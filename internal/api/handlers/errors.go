package handlers

import (
	"errors"
	"net/http"

	apperrors "team-builder-backend/internal/errors"
	"team-builder-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// MessageResponse represents a plain confirmation message
type MessageResponse struct {
	Message string `json:"message" example:"user deleted"`
}

// respondError maps err onto a status code and writes {"error": ...}.
// Validation errors are 400, missing entities 404, anything else 500.
func respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
		return
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundErr.Error()})
		return
	}

	logger.WithContext(c.Request.Context()).
		WithError(err).
		WithFields(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).
		Error("Request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

// badRequest reports an undecodable request body
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
}
