package infrastructure

import (
	"context"

	"lighthouse.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	storageChecker    ports.HealthChecker
	weatherKitChecker ports.HealthChecker
	backendChecker    ports.HealthChecker
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	StorageChecker    ports.HealthChecker
	WeatherKitChecker ports.HealthChecker
	BackendChecker    ports.HealthChecker
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		storageChecker:    config.StorageChecker,
		weatherKitChecker: config.WeatherKitChecker,
		backendChecker:    config.BackendChecker,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus)

	if s.storageChecker != nil {
		results["storage"] = s.storageChecker.Check(ctx)
	}

	if s.weatherKitChecker != nil {
		results["weatherkit"] = s.weatherKitChecker.Check(ctx)
	}

	if s.backendChecker != nil {
		results["backend"] = s.backendChecker.Check(ctx)
	}

	return results
}

// Healthy reports whether every component in results is healthy
func Healthy(results map[string]ports.HealthStatus) bool {
	for _, r := range results {
		if r.Status != statusHealthy {
			return false
		}
	}
	return true
}
