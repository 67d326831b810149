package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lighthouse.app/internal/core/navigation"
	"lighthouse.app/internal/ports"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestIDMiddleware keeps a caller supplied request ID or mints one, and
// echoes it in the response
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *HTTPServerAdapter) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info("HTTP request handled",
			ports.F("method", c.Request.Method),
			ports.F("path", c.Request.URL.Path),
			ports.F("status", c.Writer.Status()),
			ports.F("duration_ms", time.Since(start).Milliseconds()),
			ports.F(requestIDKey, c.GetString(requestIDKey)))
	}
}

// guard re-reads the session on every request. A denied request gets a
// single 302 and the screen handler never runs.
func (s *HTTPServerAdapter) guard(route navigation.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := navigation.Guard(route, s.session.Snapshot())
		if decision.Allow {
			c.Next()
			return
		}

		s.metrics.RecordGuardRedirect(string(route))
		s.logger.Debug("Redirecting unauthenticated request",
			ports.F("route", string(route)),
			ports.F("redirect_to", string(decision.RedirectTo)),
			ports.F(requestIDKey, c.GetString(requestIDKey)))
		c.Redirect(http.StatusFound, decision.RedirectTo.Path())
		c.Abort()
	}
}
