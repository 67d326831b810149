package infrastructure

import (
	"context"

	"lighthouse.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// StorageHealthChecker reports on the configured key-value storage. Backends
// holding a connection are pinged; the others only need to exist.
type StorageHealthChecker struct {
	storage ports.KeyValueStorage
}

func NewStorageHealthChecker(storage ports.KeyValueStorage) *StorageHealthChecker {
	return &StorageHealthChecker{storage: storage}
}

func (s *StorageHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "storage",
		Details:   make(map[string]interface{}),
	}

	if s.storage == nil {
		status.Status = statusUnhealthy
		status.Error = "storage is not configured"
		return status
	}
	status.Details["type"] = s.storage.Name()

	if p, ok := s.storage.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			status.Status = statusUnhealthy
			status.Error = err.Error()
			return status
		}
		status.Details["connected"] = true
	}

	status.Status = statusHealthy
	return status
}

// WeatherKitHealthChecker reports the WeatherKit settings without calling the API
type WeatherKitHealthChecker struct {
	baseURL  string
	hasToken bool
}

func NewWeatherKitHealthChecker(baseURL string, hasToken bool) *WeatherKitHealthChecker {
	return &WeatherKitHealthChecker{baseURL: baseURL, hasToken: hasToken}
}

func (w *WeatherKitHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherkit",
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"baseURL":         w.baseURL,
			"tokenConfigured": w.hasToken,
		},
	}

	if w.baseURL == "" {
		status.Status = statusUnhealthy
		status.Error = "weatherkit base URL is not configured"
	} else if !w.hasToken {
		status.Error = "no WeatherKit token configured; requests will be rejected"
	}
	return status
}

// BackendHealthChecker reports the account backend settings
type BackendHealthChecker struct {
	baseURL string
}

func NewBackendHealthChecker(baseURL string) *BackendHealthChecker {
	return &BackendHealthChecker{baseURL: baseURL}
}

func (b *BackendHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "backend",
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"baseURL": b.baseURL,
		},
	}

	if b.baseURL == "" {
		status.Status = statusUnhealthy
		status.Error = "backend base URL is not configured"
	}
	return status
}
