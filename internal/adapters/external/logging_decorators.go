package external

import (
	"context"
	"time"

	"lighthouse.app/internal/ports"
)

// WeatherKitLoggingDecorator decorates the WeatherKit client with structured logging
type WeatherKitLoggingDecorator struct {
	client ports.WeatherKitClient
	logger ports.Logger
}

// NewWeatherKitLoggingDecorator creates a new logging decorator for the WeatherKit client
func NewWeatherKitLoggingDecorator(client ports.WeatherKitClient, logger ports.Logger) ports.WeatherKitClient {
	return &WeatherKitLoggingDecorator{
		client: client,
		logger: logger,
	}
}

func (d *WeatherKitLoggingDecorator) CurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.CurrentWeatherResponse, error) {
	start := d.logRequest(ports.DatasetCurrentWeather, query)
	resp, err := d.client.CurrentWeather(ctx, query)
	if err != nil {
		d.logFailure(ports.DatasetCurrentWeather, query, start, err)
		return nil, err
	}
	d.logResponse(ports.DatasetCurrentWeather, query, start,
		ports.F("conditionCode", resp.CurrentWeather.ConditionCode),
		ports.F("temperature", resp.CurrentWeather.Temperature))
	return resp, nil
}

func (d *WeatherKitLoggingDecorator) HourlyForecast(ctx context.Context, query ports.WeatherQuery) (*ports.HourlyForecastResponse, error) {
	start := d.logRequest(ports.DatasetForecastHourly, query)
	resp, err := d.client.HourlyForecast(ctx, query)
	if err != nil {
		d.logFailure(ports.DatasetForecastHourly, query, start, err)
		return nil, err
	}
	d.logResponse(ports.DatasetForecastHourly, query, start,
		ports.F("hours", len(resp.ForecastHourly.Hours)))
	return resp, nil
}

func (d *WeatherKitLoggingDecorator) DailyForecast(ctx context.Context, query ports.WeatherQuery) (*ports.DailyForecastResponse, error) {
	start := d.logRequest(ports.DatasetForecastDaily, query)
	resp, err := d.client.DailyForecast(ctx, query)
	if err != nil {
		d.logFailure(ports.DatasetForecastDaily, query, start, err)
		return nil, err
	}
	d.logResponse(ports.DatasetForecastDaily, query, start,
		ports.F("days", len(resp.ForecastDaily.Days)))
	return resp, nil
}

func (d *WeatherKitLoggingDecorator) logRequest(dataset string, query ports.WeatherQuery) time.Time {
	d.logger.Info("WeatherKit request started",
		ports.F("dataset", dataset),
		ports.F("latitude", query.Latitude),
		ports.F("longitude", query.Longitude),
		ports.F("language", query.Language),
		ports.F("event", "request"))
	return time.Now()
}

func (d *WeatherKitLoggingDecorator) logFailure(dataset string, query ports.WeatherQuery, start time.Time, err error) {
	d.logger.Error("WeatherKit request failed",
		ports.F("dataset", dataset),
		ports.F("latitude", query.Latitude),
		ports.F("longitude", query.Longitude),
		ports.F("event", "error"),
		ports.F("duration_ms", time.Since(start).Milliseconds()),
		ports.F("error", err.Error()))
}

func (d *WeatherKitLoggingDecorator) logResponse(dataset string, query ports.WeatherQuery, start time.Time, extra ...ports.Field) {
	fields := []ports.Field{
		ports.F("dataset", dataset),
		ports.F("latitude", query.Latitude),
		ports.F("longitude", query.Longitude),
		ports.F("event", "response"),
		ports.F("duration_ms", time.Since(start).Milliseconds()),
	}
	d.logger.Info("WeatherKit request completed", append(fields, extra...)...)
}

// AuthBackendLoggingDecorator decorates the account backend with structured logging.
// PINs are never logged.
type AuthBackendLoggingDecorator struct {
	backend ports.AuthBackend
	logger  ports.Logger
}

// NewAuthBackendLoggingDecorator creates a new logging decorator for the account backend
func NewAuthBackendLoggingDecorator(backend ports.AuthBackend, logger ports.Logger) ports.AuthBackend {
	return &AuthBackendLoggingDecorator{
		backend: backend,
		logger:  logger,
	}
}

func (d *AuthBackendLoggingDecorator) ValidateUsername(ctx context.Context, username string) (*ports.UsernameCheck, error) {
	d.logger.Info("Username validation started",
		ports.F("username", username),
		ports.F("event", "request"))
	start := time.Now()

	check, err := d.backend.ValidateUsername(ctx, username)
	duration := time.Since(start)
	if err != nil {
		d.logger.Error("Username validation failed",
			ports.F("username", username),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Username validation completed",
		ports.F("username", username),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("success", check.Success))
	return check, nil
}

func (d *AuthBackendLoggingDecorator) Login(ctx context.Context, credentials ports.LoginCredentials) (*ports.LoginResult, error) {
	d.logger.Info("Login request started",
		ports.F("username", credentials.Username),
		ports.F("event", "request"))
	start := time.Now()

	result, err := d.backend.Login(ctx, credentials)
	duration := time.Since(start)
	if err != nil {
		d.logger.Error("Login request failed",
			ports.F("username", credentials.Username),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Login request completed",
		ports.F("username", credentials.Username),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("userId", result.UserID))
	return result, nil
}
