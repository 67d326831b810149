package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lighthouse.app/internal/ports"
)

// HealthResponse aggregates the component checks
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth handles GET /api/health
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	components := s.healthChecker.CheckAll(c.Request.Context())

	response := HealthResponse{Status: "healthy", Components: components}
	code := http.StatusOK
	for _, component := range components {
		if component.Status != "healthy" {
			response.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, response)
}
