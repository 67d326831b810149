package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"lighthouse.app/internal/ports"
)

func TestQuery_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{"Paris", DefaultQuery, false},
		{"Extremes", Query{Latitude: -90, Longitude: 180, Language: "en-US"}, false},
		{"LatitudeTooHigh", Query{Latitude: 90.1, Longitude: 0, Language: "fr"}, true},
		{"LongitudeTooLow", Query{Latitude: 0, Longitude: -180.5, Language: "fr"}, true},
		{"EmptyLanguage", Query{Latitude: 1, Longitude: 1, Language: "  "}, true},
		{"BadLanguage", Query{Latitude: 1, Longitude: 1, Language: "f"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.IsValid()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func hoursAt(stamps ...string) []ports.HourForecast {
	hours := make([]ports.HourForecast, 0, len(stamps))
	for _, s := range stamps {
		hours = append(hours, ports.HourForecast{ForecastStart: s})
	}
	return hours
}

func starts(hours []ports.HourForecast) []string {
	out := make([]string, 0, len(hours))
	for _, h := range hours {
		out = append(out, h.ForecastStart)
	}
	return out
}

func TestFilterNextDay_KeepsCurrentHourWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 14, 37, 12, 0, time.UTC)

	hours := hoursAt(
		"2024-05-02T13:00:00Z", // last hour inside the window
		"2024-05-01T13:00:00Z", // previous hour
		"2024-05-01T14:00:00Z", // current hour start, inclusive
		"2024-05-02T14:00:00Z", // window end, exclusive
		"not-a-timestamp",
		"2024-05-01T20:00:00Z",
		"2024-05-01T13:59:59Z",
	)

	filtered := FilterNextDay(hours, now)

	assert.Equal(t, []string{
		"2024-05-02T13:00:00Z",
		"2024-05-01T14:00:00Z",
		"2024-05-01T20:00:00Z",
	}, starts(filtered))
}

func TestFilterNextDay_OrderAndCountIndependent(t *testing.T) {
	now := time.Date(2024, 5, 1, 14, 5, 0, 0, time.UTC)
	start := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)

	var stamps []string
	for offset := -30; offset <= 30; offset++ {
		stamps = append(stamps, start.Add(time.Duration(offset)*time.Hour).Format(time.RFC3339))
	}
	// reverse to prove input order is preserved rather than sorted
	for i, j := 0, len(stamps)-1; i < j; i, j = i+1, j-1 {
		stamps[i], stamps[j] = stamps[j], stamps[i]
	}

	filtered := FilterNextDay(hoursAt(stamps...), now)

	assert.Len(t, filtered, 24)
	for _, h := range filtered {
		ts, err := time.Parse(time.RFC3339, h.ForecastStart)
		assert.NoError(t, err)
		assert.False(t, ts.Before(start))
		assert.True(t, ts.Before(start.Add(24*time.Hour)))
	}
	assert.Equal(t, start.Add(23*time.Hour).Format(time.RFC3339), filtered[0].ForecastStart)
	assert.Equal(t, start.Format(time.RFC3339), filtered[23].ForecastStart)
}

func TestFilterNextDay_UsesLocalHour(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2024, 5, 1, 16, 30, 0, 0, paris) // 14:30 UTC

	filtered := FilterNextDay(hoursAt(
		"2024-05-01T13:00:00Z",
		"2024-05-01T14:00:00Z",
		"2024-05-01T16:00:00+02:00",
	), now)

	assert.Equal(t, []string{"2024-05-01T14:00:00Z", "2024-05-01T16:00:00+02:00"}, starts(filtered))
}

func TestFilterNextDay_Empty(t *testing.T) {
	assert.Empty(t, FilterNextDay(nil, time.Now()))
}

func TestIconFor(t *testing.T) {
	tests := []struct {
		code     string
		daylight bool
		expected string
	}{
		{"Clear", true, "sun.max.fill"},
		{"Clear", false, "moon.stars.fill"},
		{"MostlyCloudy", false, "cloud.moon.fill"},
		{"PartlyCloudy", false, "cloud.moon"},
		{"PartlyCloudy", true, "cloud.sun.fill"},
		{"Haze", true, "wind"},
		{"HeavyRain", true, "cloud.heavyrain.fill"},
		{"Thunderstorms", true, "cloud.bolt.rain.fill"},
		{"StrongStorms", true, "tornado"},
		{"Unheard", true, "questionmark.circle"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IconFor(tt.code, tt.daylight), tt.code)
	}
}

func TestBackgroundFor(t *testing.T) {
	assert.Equal(t, BackgroundSunny, BackgroundFor("Clear"))
	assert.Equal(t, BackgroundSunny, BackgroundFor("Hot"))
	assert.Equal(t, BackgroundCloudy, BackgroundFor("Foggy"))
	assert.Equal(t, BackgroundCloudy, BackgroundFor("Blizzard"))
	assert.Equal(t, BackgroundRainy, BackgroundFor("Drizzle"))
	assert.Equal(t, BackgroundRainy, BackgroundFor("StrongStorms"))
	assert.Equal(t, BackgroundSunny, BackgroundFor(""))
}

func TestLabels(t *testing.T) {
	now := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC) // a Wednesday

	assert.Equal(t, "Maint.", HourLabel(0, "2024-05-01T14:00:00Z", time.UTC, "fr"))
	assert.Equal(t, "Now", HourLabel(0, "2024-05-01T14:00:00Z", time.UTC, "en-GB"))
	assert.Equal(t, "15h", HourLabel(1, "2024-05-01T15:00:00Z", time.UTC, "fr"))
	assert.Equal(t, "17h", HourLabel(1, "2024-05-01T15:00:00Z", time.FixedZone("CEST", 7200), "fr"))

	assert.Equal(t, "Auj.", DayLabel("2024-05-01T00:00:00Z", now, "fr"))
	assert.Equal(t, "Jeu.", DayLabel("2024-05-02T00:00:00Z", now, "fr"))
	assert.Equal(t, "Thu", DayLabel("2024-05-02T00:00:00Z", now, "en"))
	assert.Equal(t, "Today", DayLabel("2024-05-01T00:00:00Z", now, "de"))
	assert.Equal(t, "", DayLabel("garbage", now, "fr"))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 21, Round(20.6))
	assert.Equal(t, 20, Round(20.4))
	assert.Equal(t, -3, Round(-2.5))
}
