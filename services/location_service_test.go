package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/types"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, city string) (types.Coordinates, bool, error) {
	args := m.Called(ctx, city)
	return args.Get(0).(types.Coordinates), args.Bool(1), args.Error(2)
}

type MockTimezoneLocator struct {
	mock.Mock
}

func (m *MockTimezoneLocator) TimezoneAt(ctx context.Context, lat, lon float64) (string, error) {
	args := m.Called(ctx, lat, lon)
	return args.String(0), args.Error(1)
}

func TestLocationServiceResolve(t *testing.T) {
	geocoder := new(MockGeocoder)
	tz := new(MockTimezoneLocator)
	geocoder.On("Geocode", mock.Anything, "Moscow").
		Return(types.Coordinates{Latitude: 55.75, Longitude: 37.62}, true, nil)
	tz.On("TimezoneAt", mock.Anything, 55.75, 37.62).Return("Europe/Moscow", nil)

	svc := NewLocationService(geocoder, tz)
	loc, err := svc.Resolve(context.Background(), "Moscow")

	require.NoError(t, err)
	assert.Equal(t, types.Location{Latitude: 55.75, Longitude: 37.62, Timezone: "Europe/Moscow"}, loc)
}

func TestLocationServiceGeocoderMiss(t *testing.T) {
	geocoder := new(MockGeocoder)
	tz := new(MockTimezoneLocator)
	geocoder.On("Geocode", mock.Anything, "Nowhere").Return(types.Coordinates{}, false, nil)

	svc := NewLocationService(geocoder, tz)
	_, err := svc.Resolve(context.Background(), "Nowhere")

	assert.True(t, apperrors.IsType(err, apperrors.LocationNotFoundErr))
	tz.AssertNotCalled(t, "TimezoneAt")
}

func TestLocationServiceGeocoderTransportFailure(t *testing.T) {
	geocoder := new(MockGeocoder)
	tz := new(MockTimezoneLocator)
	geocoder.On("Geocode", mock.Anything, "Moscow").
		Return(types.Coordinates{}, false, errors.New("dial tcp: connection refused"))

	svc := NewLocationService(geocoder, tz)
	_, err := svc.Resolve(context.Background(), "Moscow")

	require.Error(t, err)
	// Transport failure is not a geocoder miss.
	assert.False(t, apperrors.IsType(err, apperrors.LocationNotFoundErr))
}

func TestOpenMeteoGeocoder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Moscow", r.URL.Query().Get("name"))
		assert.Equal(t, "1", r.URL.Query().Get("count"))
		_, _ = w.Write([]byte(`{"results":[{"latitude":55.75,"longitude":37.62}]}`))
	}))
	defer server.Close()

	geocoder := NewOpenMeteoGeocoder(server.URL, 5*time.Second)
	coords, found, err := geocoder.Geocode(context.Background(), "Moscow")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 55.75, coords.Latitude)
	assert.Equal(t, 37.62, coords.Longitude)
}

func TestOpenMeteoGeocoderNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	geocoder := NewOpenMeteoGeocoder(server.URL, 5*time.Second)
	_, found, err := geocoder.Geocode(context.Background(), "Nowhere")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestTimeAPIClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "55.750000", r.URL.Query().Get("latitude"))
		assert.Equal(t, "37.620000", r.URL.Query().Get("longitude"))
		_, _ = w.Write([]byte(`{"timeZone":"Europe/Moscow"}`))
	}))
	defer server.Close()

	client := NewTimeAPIClient(server.URL, 5*time.Second)
	tz, err := client.TimezoneAt(context.Background(), 55.75, 37.62)

	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", tz)
}

func TestTimeAPIClientEmptyTimezone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewTimeAPIClient(server.URL, 5*time.Second)
	_, err := client.TimezoneAt(context.Background(), 0, 0)

	require.Error(t, err)
}
