package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"lighthouse.app/internal/adapters/api"
	"lighthouse.app/internal/config"
	"lighthouse.app/internal/core/auth"
	"lighthouse.app/internal/core/session"
	"lighthouse.app/internal/core/weather"
	"lighthouse.app/internal/ports"
)

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	// Use Cases
	sessionStore   *session.Store
	loginFlow      *auth.Flow
	weatherUseCase *weather.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	ports *ports.ApplicationPorts
	now   func() time.Time
}

// NewApplication loads the configuration from the environment and wires
// the whole client
func NewApplication() (*Application, error) {
	return NewApplicationWithOptions(DependencyOptions{})
}

// NewApplicationWithOptions is NewApplication with control over where logs
// go and which HTTP client reaches the upstreams
func NewApplicationWithOptions(opts DependencyOptions) (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	application, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		_ = deps.Cleanup()
		return nil, err
	}
	return application, nil
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, depContainer *DependencyContainer) (*Application, error) {
	return newApplication(cfg, depContainer, nil)
}

func newApplication(cfg *config.Config, depContainer *DependencyContainer, now func() time.Time) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   depContainer,
		ports:  depContainer.ApplicationPorts(),
		now:    now,
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	sessionStore, err := session.NewStore(session.StoreDependencies{
		Storage: a.ports.Storage,
		Logger:  a.ports.Logger,
		Metrics: a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create session store: %w", err)
	}

	// An unreadable store must not keep the client from starting
	loadCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sessionStore.Load(loadCtx); err != nil {
		slog.Warn("Starting with an unauthenticated session", "error", err)
	}
	a.sessionStore = sessionStore

	loginFlow, err := auth.NewFlow(auth.FlowDependencies{
		Backend: a.ports.AuthBackend,
		Session: sessionStore,
		Logger:  a.ports.Logger,
		Metrics: a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create login flow: %w", err)
	}
	a.loginFlow = loginFlow

	location, err := a.config.Explore.Location()
	if err != nil {
		return fmt.Errorf("resolve explore time zone: %w", err)
	}

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherKit: a.ports.WeatherKit,
		Logger:     a.ports.Logger,
		Metrics:    a.ports.Metrics,
		DefaultQuery: weather.Query{
			Latitude:  a.config.Explore.Latitude,
			Longitude: a.config.Explore.Longitude,
			Language:  a.config.Explore.Language,
		},
		Location: location,
		Now:      a.now,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	slog.Info("Use cases initialized successfully",
		"authenticated", sessionStore.Snapshot().IsAuthenticated)
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	if strings.EqualFold(a.config.Logging.Level, "debug") {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Session:        a.sessionStore,
		Login:          a.loginFlow,
		WeatherUseCase: a.weatherUseCase,
		Metrics:        a.ports.Metrics,
		MetricsHandler: a.deps.MetricsRecorder().Handler(),
		HealthChecker:  a.deps.HealthChecker(),
		Logger:         a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	// Store router for testing access
	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         a.config.Server.Addr(),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start serves the screens until the server is shut down
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.httpServer.Shutdown(shutdownCtx)
	}()

	slog.Info("Starting HTTP server", "addr", a.httpServer.Addr)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down HTTP server", "error", err)
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
	}

	if err := a.Close(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Close releases storage and log files without touching the HTTP server.
// Command line runs that never start the server use it instead of Shutdown.
func (a *Application) Close() error {
	if a.deps == nil {
		return nil
	}
	return a.deps.Cleanup()
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// Session returns the process-wide session store
func (a *Application) Session() *session.Store {
	return a.sessionStore
}

func (a *Application) LoginFlow() *auth.Flow {
	return a.loginFlow
}

func (a *Application) WeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}
