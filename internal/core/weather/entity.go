package weather

import (
	"fmt"
	"math"
	"strings"
	"time"

	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/validation"
)

// Query identifies the location and language weather data is requested for
type Query struct {
	Latitude  float64
	Longitude float64
	Language  string
}

// DefaultQuery is Paris in French, the location the explore screen opens on
var DefaultQuery = Query{Latitude: 48.8566, Longitude: 2.3522, Language: "fr"}

// IsValid validates the query coordinates and language tag
func (q Query) IsValid() error {
	if !validation.IsValidLatitude(q.Latitude) {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if !validation.IsValidLongitude(q.Longitude) {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if !validation.IsNotEmpty(q.Language) {
		return fmt.Errorf("language cannot be empty")
	}
	if !validation.IsValidLanguageTag(q.Language) {
		return fmt.Errorf("invalid language tag %q", q.Language)
	}
	return nil
}

// Normalize trims the language tag
func (q Query) Normalize() Query {
	q.Language = strings.TrimSpace(q.Language)
	return q
}

func (q Query) toPorts() ports.WeatherQuery {
	return ports.WeatherQuery{
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
		Language:  q.Language,
	}
}

// Background is the theme of the explore screen for the current conditions
type Background string

const (
	BackgroundSunny  Background = "sunny"
	BackgroundCloudy Background = "cloudy"
	BackgroundRainy  Background = "rainy"
)

// FilterNextDay keeps the hours starting within [start of now's hour, +24h)
// in input order. Entries with unparsable timestamps are dropped.
func FilterNextDay(hours []ports.HourForecast, now time.Time) []ports.HourForecast {
	start := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	filtered := make([]ports.HourForecast, 0, len(hours))
	for _, hour := range hours {
		ts, err := parseTimestamp(hour.ForecastStart)
		if err != nil {
			continue
		}
		if !ts.Before(start) && ts.Before(end) {
			filtered = append(filtered, hour)
		}
	}
	return filtered
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// IconFor maps a WeatherKit condition code to an SF Symbol name
func IconFor(conditionCode string, daylight bool) string {
	night := !daylight
	switch conditionCode {
	case "BlowingDust", "Dust", "Haze", "Smoky", "Smoke", "Breezy", "Windy":
		return "wind"
	case "Blizzard", "BlowingSnow":
		return "wind.snow"
	case "Clear":
		if night {
			return "moon.stars.fill"
		}
		return "sun.max.fill"
	case "Cloudy":
		return "cloud.fill"
	case "Drizzle", "FreezingDrizzle":
		return "cloud.drizzle.fill"
	case "Flurries", "SnowShowers", "ScatteredSnowShowers":
		return "cloud.snow.fill"
	case "Foggy":
		return "cloud.fog.fill"
	case "FreezingRain", "MixedRainAndSleet", "MixedRainAndSnow", "MixedRainfall", "MixedSnowAndSleet", "Sleet":
		return "cloud.sleet.fill"
	case "Frigid":
		return "thermometer.snowflake"
	case "Hail":
		return "cloud.hail.fill"
	case "HeavyRain":
		return "cloud.heavyrain.fill"
	case "HeavySnow":
		return "snowflake"
	case "Hot":
		return "thermometer.sun.fill"
	case "IsolatedThunderstorms", "ScatteredThunderstorms", "Thunderstorms", "SevereThunderstorm":
		return "cloud.bolt.rain.fill"
	case "MostlyClear", "MostlyCloudy":
		if night {
			return "cloud.moon.fill"
		}
		return "cloud.sun.fill"
	case "PartlyCloudy":
		if night {
			return "cloud.moon"
		}
		return "cloud.sun.fill"
	case "Rain", "Showers", "ScatteredShowers", "SunShowers":
		return "cloud.rain.fill"
	case "Snow":
		return "snow"
	case "StrongStorms":
		return "tornado"
	default:
		return "questionmark.circle"
	}
}

// BackgroundFor picks the screen theme for a condition code. Snow shares the
// cloudy theme; unknown codes fall back to sunny.
func BackgroundFor(conditionCode string) Background {
	switch conditionCode {
	case "Cloudy", "MostlyCloudy", "PartlyCloudy", "Foggy", "Haze", "Smoky", "Smoke",
		"Snow", "HeavySnow", "Flurries", "SnowShowers", "ScatteredSnowShowers",
		"Blizzard", "BlowingSnow", "MixedSnowAndSleet":
		return BackgroundCloudy
	case "Drizzle", "FreezingDrizzle", "Rain", "Showers", "ScatteredShowers", "SunShowers",
		"HeavyRain", "FreezingRain", "MixedRainAndSleet", "MixedRainAndSnow", "MixedRainfall",
		"Sleet", "Hail", "IsolatedThunderstorms", "ScatteredThunderstorms", "Thunderstorms",
		"SevereThunderstorm", "StrongStorms":
		return BackgroundRainy
	default:
		return BackgroundSunny
	}
}

// Round rounds a temperature to whole degrees for display
func Round(v float64) int {
	return int(math.Round(v))
}

// labels holds the fixed words of the forecast rows for one language
type labels struct {
	now      string
	today    string
	weekdays [7]string
}

var labelsByLanguage = map[string]labels{
	"fr": {
		now:      "Maint.",
		today:    "Auj.",
		weekdays: [7]string{"Dim.", "Lun.", "Mar.", "Mer.", "Jeu.", "Ven.", "Sam."},
	},
	"en": {
		now:      "Now",
		today:    "Today",
		weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	},
}

func labelsFor(language string) labels {
	base := strings.ToLower(language)
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	if l, ok := labelsByLanguage[base]; ok {
		return l
	}
	return labelsByLanguage["en"]
}

// HourLabel is the localized "now" word for the first row and the local hour
// ("15h") otherwise
func HourLabel(index int, forecastStart string, loc *time.Location, language string) string {
	if index == 0 {
		return labelsFor(language).now
	}
	ts, err := parseTimestamp(forecastStart)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%dh", ts.In(loc).Hour())
}

// DayLabel is the localized "today" word when the day starts on now's local
// date and the abbreviated weekday otherwise
func DayLabel(forecastStart string, now time.Time, language string) string {
	ts, err := parseTimestamp(forecastStart)
	if err != nil {
		return ""
	}
	local := ts.In(now.Location())
	l := labelsFor(language)
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return l.today
	}
	return l.weekdays[local.Weekday()]
}
