package infrastructure

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"lighthouse.app/internal/adapters/external"
	"lighthouse.app/internal/ports"
)

func TestStorageHealthChecker(t *testing.T) {
	t.Run("MemoryStorage", func(t *testing.T) {
		status := NewStorageHealthChecker(external.NewMemoryStorage()).Check(context.Background())
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "memory", status.Details["type"])
		assert.NotContains(t, status.Details, "connected")
	})

	t.Run("RedisReachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		storage := external.NewRedisStorageFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
		defer storage.Close()

		status := NewStorageHealthChecker(storage).Check(context.Background())
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, true, status.Details["connected"])
	})

	t.Run("RedisDown", func(t *testing.T) {
		mr := miniredis.RunT(t)
		storage := external.NewRedisStorageFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
		defer storage.Close()
		mr.Close()

		status := NewStorageHealthChecker(storage).Check(context.Background())
		assert.Equal(t, "unhealthy", status.Status)
		assert.NotEmpty(t, status.Error)
	})

	t.Run("Missing", func(t *testing.T) {
		status := NewStorageHealthChecker(nil).Check(context.Background())
		assert.Equal(t, "unhealthy", status.Status)
	})
}

func TestWeatherKitHealthChecker(t *testing.T) {
	status := NewWeatherKitHealthChecker("https://weatherkit.apple.com/api/v1", true).Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Empty(t, status.Error)

	status = NewWeatherKitHealthChecker("https://weatherkit.apple.com/api/v1", false).Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, false, status.Details["tokenConfigured"])
	assert.NotEmpty(t, status.Error)

	status = NewWeatherKitHealthChecker("", true).Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		StorageChecker:    NewStorageHealthChecker(external.NewMemoryStorage()),
		WeatherKitChecker: NewWeatherKitHealthChecker("http://localhost:3001", true),
		BackendChecker:    NewBackendHealthChecker("http://localhost:3000"),
	})

	results := checker.CheckAll(context.Background())
	assert.Len(t, results, 3)
	assert.Equal(t, "backend", results["backend"].Component)
	assert.True(t, Healthy(results))

	results["backend"] = ports.HealthStatus{Component: "backend", Status: "unhealthy"}
	assert.False(t, Healthy(results))

	partial := NewSystemHealthChecker(SystemHealthCheckerConfig{
		BackendChecker: NewBackendHealthChecker(""),
	}).CheckAll(context.Background())
	assert.Len(t, partial, 1)
	assert.False(t, Healthy(partial))
}
