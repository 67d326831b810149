package weather

import (
	"context"
	"sync"
	"time"

	"lighthouse.app/internal/core/fetch"
	"lighthouse.app/internal/ports"
	"lighthouse.app/pkg/errors"
)

// maxHourlyEntries caps the hourly row of the explore screen
const maxHourlyEntries = 24

type UseCase struct {
	current  *CurrentWeatherHook
	hourly   *HourlyForecastHook
	daily    *DailyForecastHook
	defaults Query
	now      func() time.Time
	logger   ports.Logger
}

type UseCaseDependencies struct {
	WeatherKit ports.WeatherKitClient
	Logger     ports.Logger
	Metrics    ports.MetricsRecorder
	// DefaultQuery is used for fields left zero in an Explore request
	DefaultQuery Query
	// Location is the local time zone for hour and day labels; time.Local when nil
	Location *time.Location
	Now      func() time.Time
}

// LocationView echoes the query the view was built for
type LocationView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Language  string  `json:"language"`
}

// SectionStatus is the independent fetch state of one explore section
type SectionStatus struct {
	Status  fetch.Status `json:"status"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}

type CurrentSection struct {
	SectionStatus
	Temperature         int        `json:"temperature"`
	TemperatureApparent int        `json:"temperatureApparent"`
	TemperatureDewPoint int        `json:"temperatureDewPoint"`
	ConditionCode       string     `json:"conditionCode"`
	Icon                string     `json:"icon"`
	Background          Background `json:"background"`
}

type HourEntry struct {
	Label         string `json:"label"`
	ForecastStart string `json:"forecastStart"`
	Icon          string `json:"icon"`
	Temperature   int    `json:"temperature"`
}

type HourlySection struct {
	SectionStatus
	Hours []HourEntry `json:"hours"`
}

type DayEntry struct {
	Label          string `json:"label"`
	ForecastStart  string `json:"forecastStart"`
	ConditionCode  string `json:"conditionCode"`
	Icon           string `json:"icon"`
	TemperatureMin int    `json:"temperatureMin"`
	TemperatureMax int    `json:"temperatureMax"`
}

type DailySection struct {
	SectionStatus
	Days []DayEntry `json:"days"`
}

// ExploreView merges the three weather hooks into the explore screen model
type ExploreView struct {
	Location LocationView   `json:"location"`
	Current  CurrentSection `json:"current"`
	Hourly   HourlySection  `json:"hourly"`
	Daily    DailySection   `json:"daily"`
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	hookDeps := HookDependencies{
		WeatherKit: deps.WeatherKit,
		Logger:     deps.Logger,
		Metrics:    deps.Metrics,
		Now:        deps.Now,
	}
	if err := hookDeps.validate(); err != nil {
		return nil, err
	}

	defaults := deps.DefaultQuery
	if defaults == (Query{}) {
		defaults = DefaultQuery
	}
	if err := defaults.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid default location: " + err.Error())
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	if deps.Location != nil {
		loc := deps.Location
		base := now
		now = func() time.Time { return base().In(loc) }
	}
	hookDeps.Now = now

	current, err := NewCurrentWeatherHook(hookDeps)
	if err != nil {
		return nil, err
	}
	hourly, err := NewHourlyForecastHook(hookDeps)
	if err != nil {
		return nil, err
	}
	daily, err := NewDailyForecastHook(hookDeps)
	if err != nil {
		return nil, err
	}

	return &UseCase{
		current:  current,
		hourly:   hourly,
		daily:    daily,
		defaults: defaults,
		now:      now,
		logger:   deps.Logger,
	}, nil
}

// DefaultQuery returns the location used when a request names none
func (uc *UseCase) DefaultQuery() Query {
	return uc.defaults
}

// Explore activates the three hooks for query, waits for each to conclude
// or for ctx to end, and renders what they hold. With refresh set the hooks
// re-fetch even when the query did not change. Fetch failures are rendered
// into the sections; only an invalid query is returned as an error.
// A section whose hook has since moved on to another query renders as
// loading, never with that other query's data.
func (uc *UseCase) Explore(ctx context.Context, query Query, refresh bool) (*ExploreView, error) {
	query = uc.withDefaults(query).Normalize()
	if err := query.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid weather query: " + err.Error())
	}

	uc.logger.Debug("Building explore view",
		ports.F("latitude", query.Latitude),
		ports.F("longitude", query.Longitude),
		ports.F("language", query.Language),
		ports.F("refresh", refresh))

	activate(ctx, uc.current.Resource, query, refresh)
	activate(ctx, uc.hourly.Resource, query, refresh)
	activate(ctx, uc.daily.Resource, query, refresh)

	var wg sync.WaitGroup
	var current CurrentWeatherState
	var hourly HourlyForecastState
	var daily DailyForecastState
	wg.Add(3)
	go func() { defer wg.Done(); current, _ = uc.current.Wait(ctx) }()
	go func() { defer wg.Done(); hourly, _ = uc.hourly.Wait(ctx) }()
	go func() { defer wg.Done(); daily, _ = uc.daily.Wait(ctx) }()
	wg.Wait()

	current = forQuery(current, query)
	hourly = forQuery(hourly, query)
	daily = forQuery(daily, query)

	now := uc.now()
	view := &ExploreView{
		Location: LocationView{
			Latitude:  query.Latitude,
			Longitude: query.Longitude,
			Language:  query.Language,
		},
		Current: renderCurrent(current),
		Hourly:  renderHourly(hourly, now, query.Language),
		Daily:   renderDaily(daily, now, query.Language),
	}
	return view, nil
}

// withDefaults fills in the language only; (0, 0) is a real place and
// callers substitute the default coordinates themselves when none were given
func (uc *UseCase) withDefaults(query Query) Query {
	if query.Language == "" {
		query.Language = uc.defaults.Language
	}
	return query
}

func activate[T any](ctx context.Context, r *fetch.Resource[Query, T], query Query, refresh bool) {
	if r.Activate(ctx, query) || !refresh {
		return
	}
	r.Reload(ctx)
}

// forQuery keeps state when it belongs to query and otherwise stands in a
// data-less loading state. Only a loaded state keeps its data: a loading or
// failed one may still carry the payload of an earlier query.
func forQuery[T any](state fetch.State[Query, T], query Query) fetch.State[Query, T] {
	if state.Query != query {
		return fetch.State[Query, T]{Status: fetch.StatusLoading, Query: query}
	}
	if state.Status != fetch.StatusLoaded {
		state.Data = nil
	}
	return state
}

func sectionStatus[T any](state fetch.State[Query, T]) SectionStatus {
	return SectionStatus{
		Status:  state.Status,
		Loading: state.Loading(),
		Error:   state.Error,
	}
}

func renderCurrent(state CurrentWeatherState) CurrentSection {
	section := CurrentSection{
		SectionStatus: sectionStatus(state),
		Background:    BackgroundFor("Clear"),
	}
	if state.Data == nil {
		return section
	}

	cw := state.Data.CurrentWeather
	section.Temperature = Round(cw.Temperature)
	section.TemperatureApparent = Round(cw.TemperatureApparent)
	section.TemperatureDewPoint = Round(cw.TemperatureDewPoint)
	section.ConditionCode = cw.ConditionCode
	section.Icon = IconFor(cw.ConditionCode, cw.Daylight)
	if cw.ConditionCode != "" {
		section.Background = BackgroundFor(cw.ConditionCode)
	}
	return section
}

func renderHourly(state HourlyForecastState, now time.Time, language string) HourlySection {
	section := HourlySection{
		SectionStatus: sectionStatus(state),
		Hours:         []HourEntry{},
	}
	if state.Data == nil {
		return section
	}

	hours := FilterNextDay(state.Data.ForecastHourly.Hours, now)
	if len(hours) > maxHourlyEntries {
		hours = hours[:maxHourlyEntries]
	}
	for i, hour := range hours {
		section.Hours = append(section.Hours, HourEntry{
			Label:         HourLabel(i, hour.ForecastStart, now.Location(), language),
			ForecastStart: hour.ForecastStart,
			Icon:          IconFor(hour.ConditionCode, hour.Daylight),
			Temperature:   Round(hour.Temperature),
		})
	}
	return section
}

func renderDaily(state DailyForecastState, now time.Time, language string) DailySection {
	section := DailySection{
		SectionStatus: sectionStatus(state),
		Days:          []DayEntry{},
	}
	if state.Data == nil {
		return section
	}

	for _, day := range state.Data.ForecastDaily.Days {
		section.Days = append(section.Days, DayEntry{
			Label:          DayLabel(day.ForecastStart, now, language),
			ForecastStart:  day.ForecastStart,
			ConditionCode:  day.ConditionCode,
			Icon:           IconFor(day.ConditionCode, true),
			TemperatureMin: Round(day.TemperatureMin),
			TemperatureMax: Round(day.TemperatureMax),
		})
	}
	return section
}
