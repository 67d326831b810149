package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

const defaultWeatherKitBaseURL = "https://weatherkit.apple.com/api/v1"

// WeatherKitClientAdapter implements WeatherKitClient port for the WeatherKit REST API
type WeatherKitClientAdapter struct {
	baseURL string
	token   string
	client  HTTPClient
	limiter *rate.Limiter
	logger  ports.Logger
}

// WeatherKitClientParams holds parameters for creating the WeatherKit client
type WeatherKitClientParams struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// RateLimit paces outgoing requests per second; zero disables pacing
	RateLimit float64
	RateBurst int
	Client    HTTPClient
	Logger    ports.Logger
}

// NewWeatherKitClientAdapter creates a new WeatherKit client adapter
func NewWeatherKitClientAdapter(params WeatherKitClientParams) (*WeatherKitClientAdapter, error) {
	if params.Logger == nil {
		return nil, errors.NewConfigurationError("weatherkit logger cannot be nil", nil)
	}

	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultWeatherKitBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errors.NewConfigurationError("invalid weatherkit base URL", err)
	}

	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if params.RateLimit > 0 {
		burst := params.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(params.RateLimit), burst)
	}

	return &WeatherKitClientAdapter{
		baseURL: baseURL,
		token:   params.Token,
		client:  client,
		limiter: limiter,
		logger:  params.Logger,
	}, nil
}

// CurrentWeather retrieves the currentWeather dataset
func (c *WeatherKitClientAdapter) CurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.CurrentWeatherResponse, error) {
	var resp ports.CurrentWeatherResponse
	if err := c.get(ctx, query, ports.DatasetCurrentWeather, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HourlyForecast retrieves the forecastHourly dataset
func (c *WeatherKitClientAdapter) HourlyForecast(ctx context.Context, query ports.WeatherQuery) (*ports.HourlyForecastResponse, error) {
	var resp ports.HourlyForecastResponse
	if err := c.get(ctx, query, ports.DatasetForecastHourly, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DailyForecast retrieves the forecastDaily dataset
func (c *WeatherKitClientAdapter) DailyForecast(ctx context.Context, query ports.WeatherQuery) (*ports.DailyForecastResponse, error) {
	var resp ports.DailyForecastResponse
	if err := c.get(ctx, query, ports.DatasetForecastDaily, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BaseURL returns the API root requests are sent to
func (c *WeatherKitClientAdapter) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether a bearer token is configured
func (c *WeatherKitClientAdapter) HasToken() bool {
	return c.token != ""
}

func (c *WeatherKitClientAdapter) datasetURL(query ports.WeatherQuery, dataset string) string {
	return fmt.Sprintf("%s/weather/%s/%s/%s?dataSets=%s",
		c.baseURL,
		url.PathEscape(query.Language),
		strconv.FormatFloat(query.Latitude, 'f', -1, 64),
		strconv.FormatFloat(query.Longitude, 'f', -1, 64),
		url.QueryEscape(dataset))
}

func (c *WeatherKitClientAdapter) get(ctx context.Context, query ports.WeatherQuery, dataset string, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.NewNetworkFailureError("weatherkit request not sent", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.datasetURL(query, dataset), nil)
	if err != nil {
		return errors.NewValidationError("invalid weatherkit request: " + err.Error())
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return transportError(ctx, "weatherkit", err)
	}
	defer closeBody(resp, c.logger, "weatherkit")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewRejectedResponseError(statusText(resp), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewRejectedResponseError("invalid "+dataset+" payload", err)
	}
	return nil
}
