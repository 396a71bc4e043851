package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/middleware"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, city string, timestamp *time.Time, wantCurrent bool) (float64, error) {
	args := m.Called(ctx, city, timestamp, wantCurrent)
	return args.Get(0).(float64), args.Error(1)
}

func setupWeatherRouter(resolver TemperatureResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	h := NewWeatherHandler(resolver)
	r.GET("/v1/current/", h.CurrentTemperatureHandler)
	r.GET("/v1/forecast/", h.ForecastTemperatureHandler)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCurrentTemperature(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, "Moscow", (*time.Time)(nil), true).Return(5.3, nil)
	r := setupWeatherRouter(resolver)

	w := get(r, "/v1/current/?city=Moscow")

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Moscow", body["city"])
	assert.Equal(t, "celsius", body["unit"])
	assert.Equal(t, 5.3, body["temperature"])
}

func TestCurrentTemperatureMissingCity(t *testing.T) {
	resolver := new(MockResolver)
	r := setupWeatherRouter(resolver)

	w := get(r, "/v1/current/")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resolver.AssertNotCalled(t, "Resolve")
}

func TestForecastTemperature(t *testing.T) {
	resolver := new(MockResolver)
	expected := time.Date(2023, 2, 17, 13, 0, 0, 0, time.UTC)
	resolver.On("Resolve", mock.Anything, "Moscow", &expected, false).Return(-4.5, nil)
	r := setupWeatherRouter(resolver)

	w := get(r, "/v1/forecast/?city=Moscow&dt=2023-02-17T13:00")

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, -4.5, body["temperature"])
}

func TestForecastTemperatureMissingParams(t *testing.T) {
	resolver := new(MockResolver)
	r := setupWeatherRouter(resolver)

	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/forecast/?city=Moscow").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/forecast/?dt=2023-02-17T13:00").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/v1/forecast/?city=Moscow&dt=17.02.2023").Code)
	resolver.AssertNotCalled(t, "Resolve")
}

func TestDataFailuresMapToServerError(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"location not found", apperrors.LocationNotFound("Nowhere")},
		{"provider error", apperrors.ProviderFailure(502, "bad gateway")},
		{"no data", apperrors.NoData("hourly series missing")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := new(MockResolver)
			resolver.On("Resolve", mock.Anything, "Nowhere", (*time.Time)(nil), true).Return(0.0, tc.err)
			r := setupWeatherRouter(resolver)

			w := get(r, "/v1/current/?city=Nowhere")
			assert.Equal(t, http.StatusInternalServerError, w.Code)
		})
	}
}

// fakeCache is a minimal in-memory CacheStore for handler tests.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string]float64
	failSet bool
}

func (f *fakeCache) Get(_ context.Context, key string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeCache) Set(_ context.Context, key string, value float64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return false
	}
	f.data[key] = value
	return true
}

func setupCacheRouter(cache *fakeCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	h := NewCacheHandler(cache)
	r.GET("/v1/redis/", h.GetEntryHandler)
	r.PUT("/v1/redis/", h.SetEntryHandler)
	return r
}

func TestCacheEndpoints(t *testing.T) {
	cache := &fakeCache{data: map[string]float64{"Moscow/2023-02-17T13:00": -4.5}}
	r := setupCacheRouter(cache)

	w := get(r, "/v1/redis/?key=Moscow/2023-02-17T13:00")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "-4.5")

	w = get(r, "/v1/redis/?key=unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)

	body, _ := json.Marshal(map[string]interface{}{"key": "Paris/2023-02-17T09:00", "value": 7.1})
	req, _ := http.NewRequest(http.MethodPut, "/v1/redis/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7.1, cache.data["Paris/2023-02-17T09:00"])
}

func TestCacheSetFailure(t *testing.T) {
	cache := &fakeCache{data: map[string]float64{}, failSet: true}
	r := setupCacheRouter(cache)

	body, _ := json.Marshal(map[string]interface{}{"key": "k", "value": 1.0})
	req, _ := http.NewRequest(http.MethodPut, "/v1/redis/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCacheSetRejectsIncompleteBody(t *testing.T) {
	cache := &fakeCache{data: map[string]float64{}}
	r := setupCacheRouter(cache)

	req, _ := http.NewRequest(http.MethodPut, "/v1/redis/", bytes.NewReader([]byte(`{"key":"k"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
