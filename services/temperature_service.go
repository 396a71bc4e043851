package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/logger"
	"github.com/nomiram/weather-api/store"
	"github.com/nomiram/weather-api/types"
)

// cacheKeyHourFormat truncates the effective instant to the hour, so a
// "current" resolution and a later "forecast" resolution covering the same
// hour share one cache entry.
const cacheKeyHourFormat = "2006-01-02T15:00"

// LocationResolver resolves a city name to coordinates and timezone.
type LocationResolver interface {
	Resolve(ctx context.Context, city string) (types.Location, error)
}

// WeatherProvider fetches raw forecast payloads for a resolved location.
type WeatherProvider interface {
	FetchCurrent(ctx context.Context, loc types.Location) (*types.ForecastPayload, error)
	FetchHourly(ctx context.Context, loc types.Location, day time.Time) (*types.ForecastPayload, error)
}

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weatherapi_cache_hits_total",
		Help: "Resolutions answered from the cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "weatherapi_cache_misses_total",
		Help: "Resolutions that fell through to the weather provider",
	})
	providerLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "weatherapi_provider_duration_seconds",
		Help:    "Time taken by weather provider fetches",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	})
	resolutionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "weatherapi_resolution_errors_total",
		Help: "Failed temperature resolutions by error type",
	}, []string{"error_type"})
)

// TemperatureService orchestrates a temperature resolution: cache lookup,
// location resolution, provider fetch, value extraction and cache
// write-back. No call in the pipeline is retried; every external dependency
// is hit at most once per resolution.
type TemperatureService struct {
	locations LocationResolver
	provider  WeatherProvider
	cache     store.CacheStore
	log       *zap.SugaredLogger

	// now is the clock used for current-mode cache keys; overridable in
	// tests.
	now func() time.Time
}

// NewTemperatureService creates the resolver with its injected
// collaborators. The cache backend was chosen at startup; the resolver only
// sees the Get/Set contract.
func NewTemperatureService(locations LocationResolver, provider WeatherProvider, cache store.CacheStore) *TemperatureService {
	return &TemperatureService{
		locations: locations,
		provider:  provider,
		cache:     cache,
		log:       logger.GetLogger(),
		now:       time.Now,
	}
}

// Resolve returns the temperature in Celsius for city, either at the given
// local timestamp or right now. Exactly one of timestamp and wantCurrent
// must be set.
func (s *TemperatureService) Resolve(ctx context.Context, city string, timestamp *time.Time, wantCurrent bool) (float64, error) {
	if (timestamp == nil && !wantCurrent) || (timestamp != nil && wantCurrent) {
		return 0, recordError(apperrors.ValidationFailed(
			"exactly one of timestamp or current must be requested", ""))
	}

	effective := s.now()
	if timestamp != nil {
		effective = *timestamp
	}
	key := cacheKey(city, effective)

	if value, found := s.cache.Get(ctx, key); found {
		cacheHits.Inc()
		s.log.Debugw("Cache hit", "key", key, "value", value)
		return value, nil
	}
	cacheMisses.Inc()
	s.log.Debugw("Cache miss", "key", key)

	location, err := s.locations.Resolve(ctx, city)
	if err != nil {
		return 0, recordError(err)
	}

	start := time.Now()
	var payload *types.ForecastPayload
	if wantCurrent {
		payload, err = s.provider.FetchCurrent(ctx, location)
	} else {
		payload, err = s.provider.FetchHourly(ctx, location, effective)
	}
	providerLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, recordError(err)
	}

	value, err := extractTemperature(payload, effective, wantCurrent)
	if err != nil {
		return 0, recordError(err)
	}

	// Best-effort write-back; a failed Set already logged at the store
	// boundary and must not fail the resolution.
	s.cache.Set(ctx, key, value)

	return value, nil
}

// cacheKey derives the deterministic cache key for a city and an effective
// instant, truncated to the hour.
func cacheKey(city string, effective time.Time) string {
	return fmt.Sprintf("%s/%s", city, effective.Format(cacheKeyHourFormat))
}

// extractTemperature pulls the single temperature out of a provider payload.
// In hourly mode the series is indexed by the local hour of the originally
// requested timestamp, with an explicit bounds guard: a missing or short
// series is NoData, not an index fault.
func extractTemperature(payload *types.ForecastPayload, effective time.Time, wantCurrent bool) (float64, error) {
	if wantCurrent {
		if payload.CurrentWeather == nil {
			return 0, apperrors.NoData("current_weather section missing from provider response")
		}
		return payload.CurrentWeather.Temperature, nil
	}

	hour := effective.Hour()
	if payload.Hourly == nil {
		return 0, apperrors.NoData("hourly series missing from provider response")
	}
	if len(payload.Hourly.Temperature2m) <= hour {
		return 0, apperrors.NoData(fmt.Sprintf(
			"hourly series has %d values, requested hour %d", len(payload.Hourly.Temperature2m), hour))
	}
	return payload.Hourly.Temperature2m[hour], nil
}

func recordError(err error) error {
	var errType string
	if appErr, ok := err.(*apperrors.AppError); ok {
		errType = string(appErr.Type)
	} else {
		errType = string(apperrors.ServerError)
	}
	resolutionErrors.WithLabelValues(errType).Inc()
	return err
}
