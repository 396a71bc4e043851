// Package types holds the data model shared across services, handlers and
// stores.
package types

// Coordinates is a geographic point returned by the geocoder.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a fully resolved place: coordinates plus the IANA timezone
// identifier used to interpret local hours. Produced once per resolution and
// never persisted.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// ForecastPayload is the decoded response of the weather provider. Exactly
// one of the optional sections is populated depending on the query mode.
type ForecastPayload struct {
	CurrentWeather *CurrentWeather `json:"current_weather,omitempty"`
	Hourly         *HourlySeries   `json:"hourly,omitempty"`
}

// CurrentWeather holds the scalar current-conditions data.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
}

// HourlySeries holds the ordered per-hour temperatures for one calendar day,
// index 0 = hour 00 local time.
type HourlySeries struct {
	Temperature2m []float64 `json:"temperature_2m"`
}

// TemperatureResponse is the JSON body returned by the temperature endpoints.
type TemperatureResponse struct {
	City        string  `json:"city"`
	Unit        string  `json:"unit"`
	Temperature float64 `json:"temperature"`
}
