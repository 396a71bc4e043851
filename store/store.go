// Package store provides the cache-aside key/value store used by the
// temperature resolver. Two backends satisfy the same contract: a single
// Redis endpoint and a Redis cluster. Callers never learn which backend is
// active, and cache unavailability never fails a request: a failed Get is a
// miss, a failed Set is logged and swallowed.
package store

import (
	"context"
	"strconv"
	"strings"
)

// CacheStore is the capability set the resolver depends on. The backend is
// chosen once at process startup and injected; both implementations return
// decoded scalar values from Get.
type CacheStore interface {
	// Get returns the cached temperature for key, or found=false on a miss
	// or any cache failure.
	Get(ctx context.Context, key string) (value float64, found bool)
	// Set writes the temperature for key with no expiry. It reports whether
	// the write succeeded; callers are free to ignore the result.
	Set(ctx context.Context, key string, value float64) bool
}

// decodeTemperature normalizes a raw cached string to a float64. Both
// backends decode through this helper so a value written by one can always
// be read by the other.
func decodeTemperature(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// encodeTemperature is the single wire representation for cached values.
func encodeTemperature(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
