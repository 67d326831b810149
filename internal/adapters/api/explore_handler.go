package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lighthouse.app/internal/core/weather"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// ExploreRequest holds the optional query of GET /explore. Missing values
// fall back to the configured default location.
type ExploreRequest struct {
	Latitude  *float64 `form:"lat" binding:"omitempty,latitude"`
	Longitude *float64 `form:"lon" binding:"omitempty,longitude"`
	Language  string   `form:"lang" binding:"omitempty,langtag"`
	Refresh   bool     `form:"refresh"`
}

func (r ExploreRequest) query(defaults weather.Query) weather.Query {
	q := defaults
	if r.Latitude != nil {
		q.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		q.Longitude = *r.Longitude
	}
	if r.Language != "" {
		q.Language = r.Language
	}
	return q
}

// getExplore handles GET /explore. Section failures are part of the view;
// only a malformed query is an HTTP error.
func (s *HTTPServerAdapter) getExplore(c *gin.Context) {
	var req ExploreRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.logger.Debug("Explore query rejected", ports.F("error", err.Error()))
		s.handleError(c, errors.NewValidationError("Invalid explore query"))
		return
	}

	view, err := s.weatherUseCase.Explore(c.Request.Context(), req.query(s.weatherUseCase.DefaultQuery()), req.Refresh)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
