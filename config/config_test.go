package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "5001", cfg.Server.Port)
	assert.False(t, cfg.Redis.Cluster)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 2*time.Second, cfg.Redis.OpTimeout())
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.Weather.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Weather.Timeout())
	assert.Equal(t, "localhost:50051", cfg.Auth.Address)
	assert.Equal(t, 3*time.Second, cfg.Auth.Timeout())
	assert.Equal(t, 60, cfg.RateLimit.RequestsPerMinute)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("REDIS_ADDRESS", "redis.internal:6380")
	t.Setenv("REDIS_PASSWORD", "supersecretpassword")
	t.Setenv("WEATHER_API_URL", "https://weather.example.com/v1/forecast")
	t.Setenv("AUTH_ADDRESS", "auth.internal:50051")
	t.Setenv("AUTH_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Address)
	assert.Equal(t, "supersecretpassword", cfg.Redis.Password)
	assert.Equal(t, "https://weather.example.com/v1/forecast", cfg.Weather.APIURL)
	assert.Equal(t, "auth.internal:50051", cfg.Auth.Address)
	assert.Equal(t, 5*time.Second, cfg.Auth.Timeout())
}

func TestLoadConfigClusterModeRequiresAddresses(t *testing.T) {
	t.Setenv("REDIS_CLUSTER", "true")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster addresses")
}

func TestLoadConfigClusterMode(t *testing.T) {
	t.Setenv("REDIS_CLUSTER", "true")
	t.Setenv("REDIS_CLUSTER_ADDRESSES", "node1:6379,node2:6379,node3:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Redis.Cluster)
	assert.Equal(t, []string{"node1:6379", "node2:6379", "node3:6379"}, cfg.Redis.ClusterAddresses)
}

func TestLoadConfigRejectsBadURL(t *testing.T) {
	t.Setenv("WEATHER_API_URL", "not a url")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather API URL")
}
