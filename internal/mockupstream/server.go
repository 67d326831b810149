// Package mockupstream fakes the account backend and the WeatherKit API for
// local development and end-to-end tests.
package mockupstream

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"lighthouse.app/internal/ports"
)

// Account is a user the fake backend knows about
type Account struct {
	UserID int
	PIN    string
}

// DefaultAccounts are served when Options.Accounts is empty
var DefaultAccounts = map[string]Account{
	"ada":   {UserID: 1, PIN: "123456"},
	"grace": {UserID: 2, PIN: "654321"},
}

// Options configures the fake upstream
type Options struct {
	Accounts map[string]Account
	// Token is the bearer token WeatherKit requests must carry; empty accepts any
	Token string
	Now   func() time.Time
}

// Server keeps the fake state and counts requests per route
type Server struct {
	accounts map[string]Account
	token    string
	now      func() time.Time

	mu     sync.Mutex
	counts map[string]int
}

func New(opts Options) *Server {
	accounts := opts.Accounts
	if len(accounts) == 0 {
		accounts = DefaultAccounts
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		accounts: accounts,
		token:    opts.Token,
		now:      now,
		counts:   make(map[string]int),
	}
}

// Router builds the gin engine serving both upstreams
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/auth/username/:username", s.validateUsername)
	r.POST("/auth/login", s.login)
	r.GET("/weather/:lang/:lat/:lon", s.weather)

	return r
}

// Count returns how many requests hit key ("username", "login" or a dataset name)
func (s *Server) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

func (s *Server) hit(key string) {
	s.mu.Lock()
	s.counts[key]++
	s.mu.Unlock()
}

func (s *Server) validateUsername(c *gin.Context) {
	s.hit("username")
	username := c.Param("username")

	switch username {
	case "servererror":
		c.Status(http.StatusInternalServerError)
		return
	case "timeout":
		c.Header("Connection", "close")
		c.AbortWithStatus(http.StatusRequestTimeout)
		return
	}

	if _, ok := s.accounts[username]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Unknown username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) login(c *gin.Context) {
	s.hit("login")

	var creds ports.LoginCredentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	account, ok := s.accounts[creds.Username]
	if !ok || account.PIN != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid PIN"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userId": account.UserID,
		"jwt":    "mock-jwt-" + uuid.NewString(),
	})
}

func (s *Server) weather(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if !strings.HasPrefix(auth, "Bearer ") || token == "" || (s.token != "" && token != s.token) {
		c.Status(http.StatusUnauthorized)
		return
	}

	lat, latErr := strconv.ParseFloat(c.Param("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Param("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	dataset := c.Query("dataSets")
	s.hit(dataset)
	now := s.now().UTC()
	meta := ports.WeatherMetadata{
		Latitude:   lat,
		Longitude:  lon,
		ReadTime:   now.Format(time.RFC3339),
		Units:      "m",
		Version:    1,
		SourceType: "modeled",
	}

	switch dataset {
	case ports.DatasetCurrentWeather:
		c.JSON(http.StatusOK, ports.CurrentWeatherResponse{CurrentWeather: currentWeather(meta, now, lat)})
	case ports.DatasetForecastHourly:
		c.JSON(http.StatusOK, ports.HourlyForecastResponse{ForecastHourly: ports.HourlyForecast{
			Name:     "HourlyForecast",
			Metadata: meta,
			Hours:    hourlyForecast(now, lat),
		}})
	case ports.DatasetForecastDaily:
		c.JSON(http.StatusOK, ports.DailyForecastResponse{ForecastDaily: ports.DailyForecast{
			Name:     "DailyForecast",
			Metadata: meta,
			Days:     dailyForecast(now, lat),
		}})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"reason": fmt.Sprintf("unknown dataset %q", dataset)})
	}
}

var conditions = []string{"Clear", "MostlyClear", "PartlyCloudy", "Cloudy", "Drizzle", "Rain"}

// baseTemperature makes the fake climate colder towards the poles
func baseTemperature(lat float64) float64 {
	if lat < 0 {
		lat = -lat
	}
	return 28 - lat*0.3
}

func currentWeather(meta ports.WeatherMetadata, now time.Time, lat float64) ports.CurrentWeather {
	base := baseTemperature(lat)
	return ports.CurrentWeather{
		Name:                "CurrentWeather",
		Metadata:            meta,
		AsOf:                now.Format(time.RFC3339),
		ConditionCode:       "PartlyCloudy",
		Daylight:            isDaylight(now),
		Humidity:            0.62,
		Temperature:         base + 0.4,
		TemperatureApparent: base - 0.8,
		TemperatureDewPoint: base - 7.3,
		WindSpeed:           12.5,
	}
}

// hourlyForecast starts one hour in the past so clients have to filter
func hourlyForecast(now time.Time, lat float64) []ports.HourForecast {
	start := now.Truncate(time.Hour).Add(-time.Hour)
	base := baseTemperature(lat)
	hours := make([]ports.HourForecast, 0, 30)
	for i := 0; i < 30; i++ {
		at := start.Add(time.Duration(i) * time.Hour)
		hours = append(hours, ports.HourForecast{
			ForecastStart: at.Format(time.RFC3339),
			ConditionCode: conditions[i%len(conditions)],
			Daylight:      isDaylight(at),
			Temperature:   base + float64(i%6) - 2.5,
			Humidity:      0.6,
		})
	}
	return hours
}

func dailyForecast(now time.Time, lat float64) []ports.DayForecast {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	base := baseTemperature(lat)
	days := make([]ports.DayForecast, 0, 10)
	for i := 0; i < 10; i++ {
		at := start.AddDate(0, 0, i)
		days = append(days, ports.DayForecast{
			ForecastStart:  at.Format(time.RFC3339),
			ForecastEnd:    at.AddDate(0, 0, 1).Format(time.RFC3339),
			ConditionCode:  conditions[(i+2)%len(conditions)],
			TemperatureMin: base - 6 + float64(i%3),
			TemperatureMax: base + 3 + float64(i%4),
		})
	}
	return days
}

func isDaylight(t time.Time) bool {
	h := t.UTC().Hour()
	return h >= 6 && h < 20
}
