package services

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/logger"
	"github.com/nomiram/weather-api/types"
)

// Geocoder converts a free-text city name to coordinates. found is false
// when the geocoder has no match; err is reserved for transport failures.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (coords types.Coordinates, found bool, err error)
}

// TimezoneLocator derives an IANA timezone identifier from coordinates.
type TimezoneLocator interface {
	TimezoneAt(ctx context.Context, latitude, longitude float64) (string, error)
}

// LocationService resolves a city name to a Location by composing a geocoder
// with a timezone-by-coordinate lookup. A geocoder miss short-circuits the
// pipeline before any provider or cache call. Single attempt, no retry.
type LocationService struct {
	geocoder Geocoder
	timezone TimezoneLocator
	log      *zap.SugaredLogger
}

// NewLocationService creates a LocationService with the given collaborators.
func NewLocationService(geocoder Geocoder, timezone TimezoneLocator) *LocationService {
	return &LocationService{
		geocoder: geocoder,
		timezone: timezone,
		log:      logger.GetLogger(),
	}
}

// Resolve looks up coordinates and timezone for city. Returns a
// LocationNotFound error when the geocoder has no match.
func (s *LocationService) Resolve(ctx context.Context, city string) (types.Location, error) {
	coords, found, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		return types.Location{}, apperrors.Wrap(err, apperrors.ServerError, "geocoding request failed")
	}
	if !found {
		s.log.Infow("Geocoder returned no match", "city", city)
		return types.Location{}, apperrors.LocationNotFound(city)
	}

	tz, err := s.timezone.TimezoneAt(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return types.Location{}, apperrors.Wrap(err, apperrors.ServerError, "timezone lookup failed")
	}

	s.log.Debugw("Location resolved",
		"city", city,
		"lat", coords.Latitude,
		"lon", coords.Longitude,
		"timezone", tz,
	)
	return types.Location{
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
		Timezone:  tz,
	}, nil
}
