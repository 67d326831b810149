package mockupstream

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lighthouse.app/internal/ports"
)

var fixedNow = time.Date(2024, 5, 1, 14, 20, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := New(Options{Token: "secret", Now: func() time.Time { return fixedNow }})
	return s, s.Router()
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUsernameEndpoint(t *testing.T) {
	s, r := newTestServer(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/auth/username/ada", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/auth/username/nobody", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Unknown username"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/auth/username/servererror", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Body.String())

	assert.Equal(t, 3, s.Count("username"))
}

func TestLoginEndpoint(t *testing.T) {
	_, r := newTestServer(t)

	post := func(creds ports.LoginCredentials) *httptest.ResponseRecorder {
		body, _ := json.Marshal(creds)
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return serve(r, req)
	}

	w := post(ports.LoginCredentials{Username: "ada", Password: "123456"})
	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		UserID int    `json:"userId"`
		JWT    string `json:"jwt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.UserID)
	assert.NotEmpty(t, body.JWT)

	w = post(ports.LoginCredentials{Username: "ada", Password: "000000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Invalid PIN"}`, w.Body.String())

	w = post(ports.LoginCredentials{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeatherEndpoint(t *testing.T) {
	s, r := newTestServer(t)

	get := func(dataset, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/weather/fr/48.8566/2.3522?dataSets="+dataset, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return serve(r, req)
	}

	assert.Equal(t, http.StatusUnauthorized, get(ports.DatasetCurrentWeather, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(ports.DatasetCurrentWeather, "wrong").Code)
	assert.Equal(t, http.StatusBadRequest, get("airQuality", "secret").Code)

	w := get(ports.DatasetForecastHourly, "secret")
	require.Equal(t, http.StatusOK, w.Code)
	var hourly ports.HourlyForecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hourly))
	require.Len(t, hourly.ForecastHourly.Hours, 30)
	assert.Equal(t, "2024-05-01T13:00:00Z", hourly.ForecastHourly.Hours[0].ForecastStart)
	assert.Equal(t, 48.8566, hourly.ForecastHourly.Metadata.Latitude)

	w = get(ports.DatasetForecastDaily, "secret")
	require.Equal(t, http.StatusOK, w.Code)
	var daily ports.DailyForecastResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &daily))
	require.Len(t, daily.ForecastDaily.Days, 10)
	assert.Equal(t, "2024-05-01T00:00:00Z", daily.ForecastDaily.Days[0].ForecastStart)

	w = get(ports.DatasetCurrentWeather, "secret")
	require.Equal(t, http.StatusOK, w.Code)
	var current ports.CurrentWeatherResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &current))
	assert.Equal(t, "PartlyCloudy", current.CurrentWeather.ConditionCode)
	assert.True(t, current.CurrentWeather.Daylight)

	assert.Equal(t, 1, s.Count(ports.DatasetForecastHourly))
}
