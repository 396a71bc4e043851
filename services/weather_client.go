package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/logger"
	"github.com/nomiram/weather-api/types"
)

// maxErrorBodyBytes bounds how much of an upstream error body is kept for
// diagnostics.
const maxErrorBodyBytes = 4 << 10

// WeatherClient fetches forecast data from the Open-Meteo forecast API.
// Every fetch issues a single outbound GET with a fixed timeout; a
// non-success status is a hard ProviderErr failure, never an empty result.
type WeatherClient struct {
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
}

// NewWeatherClient creates a weather provider client for the given endpoint.
func NewWeatherClient(baseURL string, timeout time.Duration) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger.GetLogger(),
	}
}

// FetchCurrent requests current-conditions data for the location.
func (c *WeatherClient) FetchCurrent(ctx context.Context, loc types.Location) (*types.ForecastPayload, error) {
	params := c.baseParams(loc)
	params.Add("current_weather", "true")
	return c.fetch(ctx, params)
}

// FetchHourly requests the hourly temperature series for a single calendar
// day at the location. The day is interpreted in the location's timezone.
func (c *WeatherClient) FetchHourly(ctx context.Context, loc types.Location, day time.Time) (*types.ForecastPayload, error) {
	date := day.Format("2006-01-02")
	params := c.baseParams(loc)
	params.Add("start_date", date)
	params.Add("end_date", date)
	params.Add("hourly", "temperature_2m")
	return c.fetch(ctx, params)
}

func (c *WeatherClient) baseParams(loc types.Location) url.Values {
	params := url.Values{}
	params.Add("timezone", loc.Timezone)
	params.Add("latitude", fmt.Sprintf("%.6f", loc.Latitude))
	params.Add("longitude", fmt.Sprintf("%.6f", loc.Longitude))
	return params
}

func (c *WeatherClient) fetch(ctx context.Context, params url.Values) (*types.ForecastPayload, error) {
	requestURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ServerError, "failed to create weather request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ServerError, "weather request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.log.Errorw("Weather provider returned non-success status",
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil, apperrors.ProviderFailure(resp.StatusCode, string(body))
	}

	var payload types.ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ServerError, "failed to decode weather response")
	}
	return &payload, nil
}
