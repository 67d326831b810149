package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"lighthouse.app/internal/ports"
	errorspkg "lighthouse.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		s.logger.Error("Unhandled error", ports.F("error", err.Error()), ports.F(requestIDKey, c.GetString(requestIDKey)))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", RequestID: c.GetString(requestIDKey)})
		return
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.NotFoundError:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.NetworkFailureError:
		statusCode = http.StatusServiceUnavailable
		message = "Upstream service unavailable"
	case errorspkg.RejectedResponseError, errorspkg.ValidationRejectedError, errorspkg.LoginRejectedError:
		statusCode = http.StatusBadGateway
		message = appErr.Message
	case errorspkg.StorageError:
		statusCode = http.StatusInternalServerError
		message = "Local storage unavailable"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	if statusCode >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			ports.F("error", err.Error()),
			ports.F("status", statusCode),
			ports.F(requestIDKey, c.GetString(requestIDKey)))
	}

	c.JSON(statusCode, ErrorResponse{Error: message, RequestID: c.GetString(requestIDKey)})
}
