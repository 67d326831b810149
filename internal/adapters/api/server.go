// Package api provides HTTP adapters for the hexagonal architecture
// These adapters expose the client screens over HTTP and translate requests to use cases
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"lighthouse.app/internal/core/auth"
	"lighthouse.app/internal/core/navigation"
	"lighthouse.app/internal/core/session"
	"lighthouse.app/internal/core/weather"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	session        SessionStore
	login          LoginFlow
	weatherUseCase WeatherUseCase
	metrics        ports.MetricsRecorder
	metricsHandler http.Handler
	healthChecker  ports.SystemHealthChecker
	logger         ports.Logger
}

// Use case interfaces that the HTTP adapter depends on
type SessionStore interface {
	Snapshot() session.Session
	ClearUser(ctx context.Context) error
}

type LoginFlow interface {
	State() auth.FlowState
	SubmitUsername(ctx context.Context, candidate string) (auth.FlowState, error)
	PressDigit(ctx context.Context, digit string) (auth.FlowState, *auth.Outcome, error)
	DeleteDigit() auth.FlowState
	ClearPIN() auth.FlowState
	Back() auth.FlowState
}

type WeatherUseCase interface {
	DefaultQuery() weather.Query
	Explore(ctx context.Context, query weather.Query, refresh bool) (*weather.ExploreView, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Session        SessionStore
	Login          LoginFlow
	WeatherUseCase WeatherUseCase
	Metrics        ports.MetricsRecorder
	MetricsHandler http.Handler
	HealthChecker  ports.SystemHealthChecker
	Logger         ports.Logger
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()

	server := &HTTPServerAdapter{
		router:         router,
		session:        opts.Session,
		login:          opts.Login,
		weatherUseCase: opts.WeatherUseCase,
		metrics:        opts.Metrics,
		metricsHandler: opts.MetricsHandler,
		healthChecker:  opts.HealthChecker,
		logger:         opts.Logger,
	}

	router.Use(gin.Recovery(), requestIDMiddleware(), server.requestLogger())
	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Session == nil {
		return errors.NewValidationError("session store is required")
	}
	if opts.Login == nil {
		return errors.NewValidationError("login flow is required")
	}
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.Metrics == nil {
		return errors.NewValidationError("metrics recorder is required")
	}
	if opts.MetricsHandler == nil {
		return errors.NewValidationError("metrics handler is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	s.router.GET(navigation.RouteAuth.Path(), s.getAuth)
	s.router.GET(navigation.RouteRegister.Path(), s.getRegister)

	login := s.router.Group(navigation.RouteLogin.Path())
	{
		login.GET("", s.getLogin)
		login.POST("/username", s.submitUsername)
		login.POST("/digits", s.pressDigit)
		login.DELETE("/digits", s.deleteDigit)
		login.DELETE("/pin", s.clearPIN)
		login.POST("/back", s.back)
	}

	s.router.GET(navigation.RouteHome.Path(), s.guard(navigation.RouteHome), s.getHome)
	s.router.GET(navigation.RouteExplore.Path(), s.guard(navigation.RouteExplore), s.getExplore)

	profile := s.router.Group(navigation.RouteProfile.Path(), s.guard(navigation.RouteProfile))
	{
		profile.GET("", s.getProfile)
		profile.POST("/logout", s.logout)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, navigation.RouteHome.Path())
	})
	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
	s.router.GET("/api/health", s.getHealth)
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
