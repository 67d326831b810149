package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"lighthouse.app/internal/ports"
)

// WeatherKitClient is a mock of ports.WeatherKitClient
type WeatherKitClient struct {
	mock.Mock
}

// NewWeatherKitClient creates a mock and registers expectation checks on cleanup
func NewWeatherKitClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *WeatherKitClient {
	m := &WeatherKitClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *WeatherKitClient) CurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.CurrentWeatherResponse, error) {
	args := m.Called(ctx, query)
	var resp *ports.CurrentWeatherResponse
	if v := args.Get(0); v != nil {
		resp = v.(*ports.CurrentWeatherResponse)
	}
	return resp, args.Error(1)
}

func (m *WeatherKitClient) HourlyForecast(ctx context.Context, query ports.WeatherQuery) (*ports.HourlyForecastResponse, error) {
	args := m.Called(ctx, query)
	var resp *ports.HourlyForecastResponse
	if v := args.Get(0); v != nil {
		resp = v.(*ports.HourlyForecastResponse)
	}
	return resp, args.Error(1)
}

func (m *WeatherKitClient) DailyForecast(ctx context.Context, query ports.WeatherQuery) (*ports.DailyForecastResponse, error) {
	args := m.Called(ctx, query)
	var resp *ports.DailyForecastResponse
	if v := args.Get(0); v != nil {
		resp = v.(*ports.DailyForecastResponse)
	}
	return resp, args.Error(1)
}
