package ports

import "context"

// Dataset names understood by the WeatherKit REST API
const (
	DatasetCurrentWeather = "currentWeather"
	DatasetForecastHourly = "forecastHourly"
	DatasetForecastDaily  = "forecastDaily"
)

// WeatherQuery identifies one weather request
type WeatherQuery struct {
	Latitude  float64
	Longitude float64
	Language  string
}

// WeatherMetadata is shared by every WeatherKit dataset
type WeatherMetadata struct {
	AttributionURL string  `json:"attributionURL"`
	ExpireTime     string  `json:"expireTime"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	ReadTime       string  `json:"readTime"`
	ReportedTime   string  `json:"reportedTime"`
	Units          string  `json:"units"`
	Version        int     `json:"version"`
	SourceType     string  `json:"sourceType"`
}

// CurrentWeather holds current conditions
type CurrentWeather struct {
	Name                   string          `json:"name"`
	Metadata               WeatherMetadata `json:"metadata"`
	AsOf                   string          `json:"asOf"`
	CloudCover             float64         `json:"cloudCover"`
	CloudCoverLowAltPct    float64         `json:"cloudCoverLowAltPct"`
	CloudCoverMidAltPct    float64         `json:"cloudCoverMidAltPct"`
	CloudCoverHighAltPct   float64         `json:"cloudCoverHighAltPct"`
	ConditionCode          string          `json:"conditionCode"`
	Daylight               bool            `json:"daylight"`
	Humidity               float64         `json:"humidity"`
	PrecipitationIntensity float64         `json:"precipitationIntensity"`
	Pressure               float64         `json:"pressure"`
	PressureTrend          string          `json:"pressureTrend"`
	Temperature            float64         `json:"temperature"`
	TemperatureApparent    float64         `json:"temperatureApparent"`
	TemperatureDewPoint    float64         `json:"temperatureDewPoint"`
	UVIndex                float64         `json:"uvIndex"`
	Visibility             float64         `json:"visibility"`
	WindDirection          float64         `json:"windDirection"`
	WindGust               float64         `json:"windGust"`
	WindSpeed              float64         `json:"windSpeed"`
}

// CurrentWeatherResponse is the currentWeather dataset payload
type CurrentWeatherResponse struct {
	CurrentWeather CurrentWeather `json:"currentWeather"`
}

// HourForecast is one entry of the hourly forecast
type HourForecast struct {
	ForecastStart          string  `json:"forecastStart"`
	CloudCover             float64 `json:"cloudCover"`
	ConditionCode          string  `json:"conditionCode"`
	Daylight               bool    `json:"daylight"`
	Humidity               float64 `json:"humidity"`
	PrecipitationAmount    float64 `json:"precipitationAmount"`
	PrecipitationIntensity float64 `json:"precipitationIntensity"`
	PrecipitationChance    float64 `json:"precipitationChance"`
	PrecipitationType      string  `json:"precipitationType"`
	Pressure               float64 `json:"pressure"`
	PressureTrend          string  `json:"pressureTrend"`
	SnowfallIntensity      float64 `json:"snowfallIntensity"`
	SnowfallAmount         float64 `json:"snowfallAmount"`
	Temperature            float64 `json:"temperature"`
	TemperatureApparent    float64 `json:"temperatureApparent"`
	TemperatureDewPoint    float64 `json:"temperatureDewPoint"`
	UVIndex                float64 `json:"uvIndex"`
	Visibility             float64 `json:"visibility"`
	WindDirection          float64 `json:"windDirection"`
	WindGust               float64 `json:"windGust"`
	WindSpeed              float64 `json:"windSpeed"`
}

// HourlyForecast wraps the hours series
type HourlyForecast struct {
	Name     string          `json:"name"`
	Metadata WeatherMetadata `json:"metadata"`
	Hours    []HourForecast  `json:"hours"`
}

// HourlyForecastResponse is the forecastHourly dataset payload
type HourlyForecastResponse struct {
	ForecastHourly HourlyForecast `json:"forecastHourly"`
}

// ForecastPeriod is a daytime, overnight or rest-of-day slice of a day
type ForecastPeriod struct {
	ForecastStart       string  `json:"forecastStart"`
	ForecastEnd         string  `json:"forecastEnd"`
	CloudCover          float64 `json:"cloudCover"`
	ConditionCode       string  `json:"conditionCode"`
	Humidity            float64 `json:"humidity"`
	PrecipitationAmount float64 `json:"precipitationAmount"`
	PrecipitationChance float64 `json:"precipitationChance"`
	PrecipitationType   string  `json:"precipitationType"`
	SnowfallAmount      float64 `json:"snowfallAmount"`
	TemperatureMax      float64 `json:"temperatureMax"`
	TemperatureMin      float64 `json:"temperatureMin"`
	WindDirection       float64 `json:"windDirection"`
	WindGustSpeedMax    float64 `json:"windGustSpeedMax"`
	WindSpeed           float64 `json:"windSpeed"`
	WindSpeedMax        float64 `json:"windSpeedMax"`
}

// DayForecast is one entry of the daily forecast
type DayForecast struct {
	ForecastStart       string          `json:"forecastStart"`
	ForecastEnd         string          `json:"forecastEnd"`
	ConditionCode       string          `json:"conditionCode"`
	MaxUVIndex          float64         `json:"maxUvIndex"`
	MoonPhase           string          `json:"moonPhase"`
	Moonrise            string          `json:"moonrise"`
	Moonset             string          `json:"moonset"`
	PrecipitationAmount float64         `json:"precipitationAmount"`
	PrecipitationChance float64         `json:"precipitationChance"`
	PrecipitationType   string          `json:"precipitationType"`
	SnowfallAmount      float64         `json:"snowfallAmount"`
	SolarMidnight       string          `json:"solarMidnight"`
	SolarNoon           string          `json:"solarNoon"`
	Sunrise             string          `json:"sunrise"`
	SunriseCivil        string          `json:"sunriseCivil"`
	SunriseNautical     string          `json:"sunriseNautical"`
	SunriseAstronomical string          `json:"sunriseAstronomical"`
	Sunset              string          `json:"sunset"`
	SunsetCivil         string          `json:"sunsetCivil"`
	SunsetNautical      string          `json:"sunsetNautical"`
	SunsetAstronomical  string          `json:"sunsetAstronomical"`
	TemperatureMax      float64         `json:"temperatureMax"`
	TemperatureMin      float64         `json:"temperatureMin"`
	WindGustSpeedMax    float64         `json:"windGustSpeedMax"`
	WindSpeedAvg        float64         `json:"windSpeedAvg"`
	WindSpeedMax        float64         `json:"windSpeedMax"`
	DaytimeForecast     ForecastPeriod  `json:"daytimeForecast"`
	OvernightForecast   ForecastPeriod  `json:"overnightForecast"`
	RestOfDayForecast   *ForecastPeriod `json:"restOfDayForecast,omitempty"`
}

// DailyForecast wraps the days series
type DailyForecast struct {
	Name     string          `json:"name"`
	Metadata WeatherMetadata `json:"metadata"`
	Days     []DayForecast   `json:"days"`
}

// DailyForecastResponse is the forecastDaily dataset payload
type DailyForecastResponse struct {
	ForecastDaily DailyForecast `json:"forecastDaily"`
}

// WeatherKitClient defines the contract for the weather data source.
// A non-success HTTP status is a RejectedResponse error whose message is
// "<code> <status text>"; a request that never completed is a NetworkFailure.
type WeatherKitClient interface {
	CurrentWeather(ctx context.Context, query WeatherQuery) (*CurrentWeatherResponse, error)
	HourlyForecast(ctx context.Context, query WeatherQuery) (*HourlyForecastResponse, error)
	DailyForecast(ctx context.Context, query WeatherQuery) (*DailyForecastResponse, error)
}
