package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lighthouse.app/internal/mocks"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

var parisQuery = ports.WeatherQuery{Latitude: 48.8566, Longitude: 2.3522, Language: "fr"}

func newTestWeatherKit(t *testing.T, handler http.HandlerFunc, rateLimit float64) *WeatherKitClientAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewWeatherKitClientAdapter(WeatherKitClientParams{
		BaseURL:   server.URL,
		Token:     "secret-token",
		Timeout:   2 * time.Second,
		RateLimit: rateLimit,
		RateBurst: 1,
		Logger:    mocks.NewLogger(),
	})
	require.NoError(t, err)
	return client
}

func TestWeatherKitClient_CurrentWeather(t *testing.T) {
	client := newTestWeatherKit(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/weather/fr/48.8566/2.3522", r.URL.Path)
		assert.Equal(t, "currentWeather", r.URL.Query().Get("dataSets"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"currentWeather":{"conditionCode":"Clear","temperature":21.4,"daylight":true}}`))
	}, 0)

	resp, err := client.CurrentWeather(context.Background(), parisQuery)
	require.NoError(t, err)
	assert.Equal(t, "Clear", resp.CurrentWeather.ConditionCode)
	assert.Equal(t, 21.4, resp.CurrentWeather.Temperature)
	assert.True(t, resp.CurrentWeather.Daylight)
}

func TestWeatherKitClient_Forecasts(t *testing.T) {
	client := newTestWeatherKit(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("dataSets") {
		case "forecastHourly":
			_, _ = w.Write([]byte(`{"forecastHourly":{"hours":[{"forecastStart":"2024-05-01T10:00:00Z","temperature":12}]}}`))
		case "forecastDaily":
			_, _ = w.Write([]byte(`{"forecastDaily":{"days":[{"forecastStart":"2024-05-01T00:00:00Z","temperatureMax":18,"temperatureMin":9}]}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}, 0)

	hourly, err := client.HourlyForecast(context.Background(), parisQuery)
	require.NoError(t, err)
	require.Len(t, hourly.ForecastHourly.Hours, 1)
	assert.Equal(t, "2024-05-01T10:00:00Z", hourly.ForecastHourly.Hours[0].ForecastStart)

	daily, err := client.DailyForecast(context.Background(), parisQuery)
	require.NoError(t, err)
	require.Len(t, daily.ForecastDaily.Days, 1)
	assert.Equal(t, 18.0, daily.ForecastDaily.Days[0].TemperatureMax)
}

func TestWeatherKitClient_FailureStatus(t *testing.T) {
	client := newTestWeatherKit(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, 0)

	_, err := client.CurrentWeather(context.Background(), parisQuery)
	require.Error(t, err)
	assert.True(t, errors.IsRejectedResponse(err))
	assert.Equal(t, "503 Service Unavailable", errors.Message(err))
}

func TestWeatherKitClient_InvalidPayload(t *testing.T) {
	client := newTestWeatherKit(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, 0)

	_, err := client.DailyForecast(context.Background(), parisQuery)
	require.Error(t, err)
	assert.True(t, errors.IsRejectedResponse(err))
	assert.Equal(t, "invalid forecastDaily payload", errors.Message(err))
}

func TestWeatherKitClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewWeatherKitClientAdapter(WeatherKitClientParams{BaseURL: url, Logger: mocks.NewLogger()})
	require.NoError(t, err)

	_, err = client.CurrentWeather(context.Background(), parisQuery)
	require.Error(t, err)
	assert.True(t, errors.IsNetworkFailure(err))
}

func TestWeatherKitClient_RateLimiterPacesRequests(t *testing.T) {
	var calls int32
	client := newTestWeatherKit(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"currentWeather":{}}`))
	}, 0.5)

	_, err := client.CurrentWeather(context.Background(), parisQuery)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.CurrentWeather(ctx, parisQuery)
	require.Error(t, err)
	assert.True(t, errors.IsNetworkFailure(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNewWeatherKitClientAdapter_Validation(t *testing.T) {
	_, err := NewWeatherKitClientAdapter(WeatherKitClientParams{})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewWeatherKitClientAdapter(WeatherKitClientParams{BaseURL: "::bad", Logger: mocks.NewLogger()})
	assert.True(t, errors.IsConfigurationError(err))

	client, err := NewWeatherKitClientAdapter(WeatherKitClientParams{Logger: mocks.NewLogger()})
	require.NoError(t, err)
	assert.Equal(t, "https://weatherkit.apple.com/api/v1", client.BaseURL())
	assert.False(t, client.HasToken())
}
