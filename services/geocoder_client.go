package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nomiram/weather-api/types"
)

// OpenMeteoGeocoder resolves city names against the Open-Meteo geocoding
// API. Only the top match is requested.
type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
}

var _ Geocoder = (*OpenMeteoGeocoder)(nil)

// NewOpenMeteoGeocoder creates a geocoder client for the given endpoint.
func NewOpenMeteoGeocoder(baseURL string, timeout time.Duration) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, city string) (types.Coordinates, bool, error) {
	params := url.Values{}
	params.Add("name", city)
	params.Add("count", "1")

	requestURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return types.Coordinates{}, false, fmt.Errorf("failed to create geocoding request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return types.Coordinates{}, false, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Coordinates{}, false, fmt.Errorf("geocoding API error: %s", resp.Status)
	}

	var geoResp struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		return types.Coordinates{}, false, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(geoResp.Results) == 0 {
		return types.Coordinates{}, false, nil
	}
	return types.Coordinates{
		Latitude:  geoResp.Results[0].Latitude,
		Longitude: geoResp.Results[0].Longitude,
	}, true, nil
}
