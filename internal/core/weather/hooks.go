package weather

import (
	"context"
	"sync"
	"time"

	"lighthouse.app/internal/core/fetch"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

type (
	CurrentWeatherState = fetch.State[Query, ports.CurrentWeatherResponse]
	HourlyForecastState = fetch.State[Query, ports.HourlyForecastResponse]
	DailyForecastState  = fetch.State[Query, ports.DailyForecastResponse]
)

// HookDependencies are shared by the three weather hooks
type HookDependencies struct {
	WeatherKit ports.WeatherKitClient
	Logger     ports.Logger
	Metrics    ports.MetricsRecorder
	// Now is the clock used by the hourly projection; time.Now when nil
	Now func() time.Time
}

func (d HookDependencies) validate() error {
	if d.WeatherKit == nil {
		return errors.NewValidationError("weatherkit client is required")
	}
	if d.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	if d.Metrics == nil {
		return errors.NewValidationError("metrics recorder is required")
	}
	return nil
}

// CurrentWeatherHook fetches the currentWeather dataset
type CurrentWeatherHook struct {
	*fetch.Resource[Query, ports.CurrentWeatherResponse]
}

func NewCurrentWeatherHook(deps HookDependencies) (*CurrentWeatherHook, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	resource, err := fetch.New(fetch.Dependencies[Query, ports.CurrentWeatherResponse]{
		Name: ports.DatasetCurrentWeather,
		Fetch: func(ctx context.Context, q Query) (*ports.CurrentWeatherResponse, error) {
			return deps.WeatherKit.CurrentWeather(ctx, q.toPorts())
		},
		Logger:  deps.Logger,
		Metrics: deps.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &CurrentWeatherHook{Resource: resource}, nil
}

// HourlyForecastHook fetches the forecastHourly dataset and keeps the
// next-24-hours projection of the loaded payload. The projection is computed
// once per payload, at the first read after it arrived.
type HourlyForecastHook struct {
	*fetch.Resource[Query, ports.HourlyForecastResponse]

	now          func() time.Time
	mu           sync.Mutex
	projectedFor *ports.HourlyForecastResponse
	filtered     []ports.HourForecast
}

func NewHourlyForecastHook(deps HookDependencies) (*HourlyForecastHook, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	resource, err := fetch.New(fetch.Dependencies[Query, ports.HourlyForecastResponse]{
		Name: ports.DatasetForecastHourly,
		Fetch: func(ctx context.Context, q Query) (*ports.HourlyForecastResponse, error) {
			return deps.WeatherKit.HourlyForecast(ctx, q.toPorts())
		},
		Logger:  deps.Logger,
		Metrics: deps.Metrics,
	})
	if err != nil {
		return nil, err
	}

	hook := &HourlyForecastHook{Resource: resource, now: deps.Now}
	if hook.now == nil {
		hook.now = time.Now
	}
	return hook, nil
}

// FilteredHours returns the hours of the loaded payload that fall in the
// 24 hours starting at the current local hour
func (h *HourlyForecastHook) FilteredHours() []ports.HourForecast {
	data := h.Snapshot().Data

	h.mu.Lock()
	defer h.mu.Unlock()
	if data == nil {
		return []ports.HourForecast{}
	}
	if data != h.projectedFor {
		h.filtered = FilterNextDay(data.ForecastHourly.Hours, h.now())
		h.projectedFor = data
	}
	out := make([]ports.HourForecast, len(h.filtered))
	copy(out, h.filtered)
	return out
}

// DailyForecastHook fetches the forecastDaily dataset
type DailyForecastHook struct {
	*fetch.Resource[Query, ports.DailyForecastResponse]
}

func NewDailyForecastHook(deps HookDependencies) (*DailyForecastHook, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	resource, err := fetch.New(fetch.Dependencies[Query, ports.DailyForecastResponse]{
		Name: ports.DatasetForecastDaily,
		Fetch: func(ctx context.Context, q Query) (*ports.DailyForecastResponse, error) {
			return deps.WeatherKit.DailyForecast(ctx, q.toPorts())
		},
		Logger:  deps.Logger,
		Metrics: deps.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &DailyForecastHook{Resource: resource}, nil
}

// Days returns the days of the loaded payload, empty when nothing is loaded
func (h *DailyForecastHook) Days() []ports.DayForecast {
	state := h.Snapshot()
	if state.Data == nil {
		return []ports.DayForecast{}
	}
	return state.Data.ForecastDaily.Days
}
