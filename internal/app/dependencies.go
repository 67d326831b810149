package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"lighthouse.app/internal/adapters/external"
	"lighthouse.app/internal/adapters/infrastructure"
	"lighthouse.app/internal/config"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/logger"
)

type DependencyContainer struct {
	config  *config.Config
	ports   *ports.ApplicationPorts
	metrics *infrastructure.PrometheusMetricsRecorder
	health  *infrastructure.SystemHealthChecker
	closers []io.Closer
}

// DependencyOptions tunes how the container builds its adapters
type DependencyOptions struct {
	// LogOutput receives structured logs; stdout when nil
	LogOutput io.Writer
	// HTTPClient replaces the default client of both upstreams
	HTTPClient external.HTTPClient
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	container := &DependencyContainer{
		config: cfg,
	}

	if err := container.initializePorts(opts); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts(opts DependencyOptions) error {
	appLogger := c.initializeLogger(opts.LogOutput)

	slog.Info("Initializing ports...")

	storage, err := external.NewStorageFactory().CreateStorage(&c.config.Storage)
	if err != nil {
		slog.Error("Failed to create session storage", "error", err)
		return fmt.Errorf("create storage: %w", err)
	}
	if closer, ok := storage.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	slog.Info("Session storage initialized",
		"type", c.config.Storage.Type.String(),
		"backend", storage.Name())

	weatherKitClient, err := external.NewWeatherKitClientAdapter(external.WeatherKitClientParams{
		BaseURL:   c.config.WeatherKit.BaseURL,
		Token:     c.config.WeatherKit.Token,
		Timeout:   c.config.WeatherKit.Timeout(),
		RateLimit: c.config.WeatherKit.RateLimit,
		RateBurst: c.config.WeatherKit.RateBurst,
		Client:    opts.HTTPClient,
		Logger:    appLogger,
	})
	if err != nil {
		return fmt.Errorf("create WeatherKit client: %w", err)
	}
	if !weatherKitClient.HasToken() {
		slog.Warn("WEATHERKIT_TOKEN is empty, weather requests will be rejected")
	}

	authBackendClient, err := external.NewAuthBackendClientAdapter(external.AuthBackendClientParams{
		BaseURL: c.config.Backend.BaseURL,
		Timeout: c.config.Backend.Timeout(),
		Client:  opts.HTTPClient,
		Logger:  appLogger,
	})
	if err != nil {
		return fmt.Errorf("create auth backend client: %w", err)
	}

	var weatherKit ports.WeatherKitClient = weatherKitClient
	if c.config.WeatherKit.EnableLogging {
		weatherKit = external.NewWeatherKitLoggingDecorator(weatherKit, appLogger)
		slog.Info("WeatherKit request logging enabled")
	}

	var authBackend ports.AuthBackend = authBackendClient
	if c.config.Backend.EnableLogging {
		authBackend = external.NewAuthBackendLoggingDecorator(authBackend, appLogger)
		slog.Info("Auth backend request logging enabled")
	}

	c.metrics = infrastructure.NewPrometheusMetricsRecorder()

	c.health = infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		StorageChecker:    infrastructure.NewStorageHealthChecker(storage),
		WeatherKitChecker: infrastructure.NewWeatherKitHealthChecker(weatherKitClient.BaseURL(), weatherKitClient.HasToken()),
		BackendChecker:    infrastructure.NewBackendHealthChecker(authBackendClient.BaseURL()),
	})

	c.ports = &ports.ApplicationPorts{
		Storage:     storage,
		WeatherKit:  weatherKit,
		AuthBackend: authBackend,
		Logger:      appLogger,
		Metrics:     c.metrics,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// initializeLogger installs the process-wide slog logger and, when file
// logging is enabled, tees every entry into the JSON log file as well.
func (c *DependencyContainer) initializeLogger(output io.Writer) ports.Logger {
	if output == nil {
		output = os.Stdout
	}
	base := logger.NewWithWriter(output, logger.ParseLevel(c.config.Logging.Level))
	logger.SetDefault(base)

	var appLogger ports.Logger = infrastructure.NewSlogLoggerAdapter(base)
	if !c.config.Logging.EnableFile {
		return appLogger
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Logging.FilePath, c.config.Logging.Level)
	if err != nil {
		slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		return appLogger
	}
	c.closers = append(c.closers, fileLogger)
	slog.Info("File logging enabled", "path", fileLogger.Path())
	return infrastructure.NewTeeLogger(appLogger, fileLogger)
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// MetricsRecorder returns the Prometheus recorder backing ports.Metrics
func (c *DependencyContainer) MetricsRecorder() *infrastructure.PrometheusMetricsRecorder {
	return c.metrics
}

func (c *DependencyContainer) HealthChecker() *infrastructure.SystemHealthChecker {
	return c.health
}

// Cleanup releases storage connections and log files in reverse order
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			slog.Warn("Error releasing resource", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	c.closers = nil
	return firstErr
}
