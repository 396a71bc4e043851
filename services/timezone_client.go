package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TimeAPIClient derives IANA timezone identifiers from coordinates using the
// timeapi.io coordinate endpoint.
type TimeAPIClient struct {
	baseURL string
	client  *http.Client
}

var _ TimezoneLocator = (*TimeAPIClient)(nil)

// NewTimeAPIClient creates a timezone lookup client for the given endpoint.
func NewTimeAPIClient(baseURL string, timeout time.Duration) *TimeAPIClient {
	return &TimeAPIClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (t *TimeAPIClient) TimezoneAt(ctx context.Context, latitude, longitude float64) (string, error) {
	params := url.Values{}
	params.Add("latitude", fmt.Sprintf("%.6f", latitude))
	params.Add("longitude", fmt.Sprintf("%.6f", longitude))

	requestURL := fmt.Sprintf("%s?%s", t.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create timezone request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("timezone request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timezone API error: %s", resp.Status)
	}

	var tzResp struct {
		TimeZone string `json:"timeZone"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tzResp); err != nil {
		return "", fmt.Errorf("failed to decode timezone response: %w", err)
	}
	if tzResp.TimeZone == "" {
		return "", fmt.Errorf("timezone API returned no timezone for (%f, %f)", latitude, longitude)
	}
	return tzResp.TimeZone, nil
}
