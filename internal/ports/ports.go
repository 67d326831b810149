package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Persistence
	Storage KeyValueStorage

	// Upstream services
	WeatherKit  WeatherKitClient
	AuthBackend AuthBackend

	// Infrastructure
	Logger  Logger
	Metrics MetricsRecorder
}
