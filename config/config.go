// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nomiram/weather-api/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	Version        string      `mapstructure:"VERSION"`
}

// RedisConfig holds cache connection details. The backend is selected once
// at startup: Cluster=false uses a single endpoint, Cluster=true uses the
// multi-node cluster client against ClusterAddresses.
type RedisConfig struct {
	Address          string   `mapstructure:"ADDRESS"`
	ClusterAddresses []string `mapstructure:"CLUSTER_ADDRESSES"`
	Cluster          bool     `mapstructure:"CLUSTER"`
	Password         string   `mapstructure:"PASSWORD"`
	DB               int      `mapstructure:"DB"`
	// OpTimeoutSeconds bounds every Get/Set so a cache outage cannot stall
	// a resolution.
	OpTimeoutSeconds int `mapstructure:"OP_TIMEOUT_SECONDS"`
}

// OpTimeout returns the per-operation cache timeout as a duration.
func (c *RedisConfig) OpTimeout() time.Duration {
	return time.Duration(c.OpTimeoutSeconds) * time.Second
}

// WeatherConfig holds the external data source endpoints.
type WeatherConfig struct {
	APIURL         string `mapstructure:"API_URL"`
	GeocoderURL    string `mapstructure:"GEOCODER_URL"`
	TimezoneAPIURL string `mapstructure:"TIMEZONE_API_URL"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS"`
}

// Timeout returns the provider request timeout as a duration.
func (c *WeatherConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AuthConfig holds the authorization service connection details.
type AuthConfig struct {
	Address        string `mapstructure:"ADDRESS"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS"`
}

// Timeout returns the per-call authorization RPC timeout as a duration.
func (c *AuthConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RateLimitConfig holds configuration for per-client rate limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"REQUESTS_PER_MINUTE"`
	WindowSeconds     int `mapstructure:"WINDOW_SECONDS"`
}

// Window returns the rate limit window as a duration.
func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER"`
	Redis     RedisConfig     `mapstructure:"REDIS"`
	Weather   WeatherConfig   `mapstructure:"WEATHER"`
	Auth      AuthConfig      `mapstructure:"AUTH"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT"`
}

// IsProduction returns true if the application is running in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, unmarshals into the Config struct and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "5001")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.CLUSTER_ADDRESSES", []string{})
	v.SetDefault("REDIS.CLUSTER", false)
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.OP_TIMEOUT_SECONDS", 2)
	v.SetDefault("WEATHER.API_URL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("WEATHER.GEOCODER_URL", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("WEATHER.TIMEZONE_API_URL", "https://timeapi.io/api/TimeZone/coordinate")
	v.SetDefault("WEATHER.TIMEOUT_SECONDS", 10)
	v.SetDefault("AUTH.ADDRESS", "localhost:50051")
	v.SetDefault("AUTH.TIMEOUT_SECONDS", 3)
	v.SetDefault("RATE_LIMIT.REQUESTS_PER_MINUTE", 60)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.CLUSTER_ADDRESSES", "REDIS_CLUSTER_ADDRESSES"},
		{"REDIS.CLUSTER", "REDIS_CLUSTER"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.OP_TIMEOUT_SECONDS", "REDIS_OP_TIMEOUT_SECONDS"},
		{"WEATHER.API_URL", "WEATHER_API_URL"},
		{"WEATHER.GEOCODER_URL", "WEATHER_GEOCODER_URL"},
		{"WEATHER.TIMEZONE_API_URL", "WEATHER_TIMEZONE_API_URL"},
		{"WEATHER.TIMEOUT_SECONDS", "WEATHER_TIMEOUT_SECONDS"},
		{"AUTH.ADDRESS", "AUTH_ADDRESS"},
		{"AUTH.TIMEOUT_SECONDS", "AUTH_TIMEOUT_SECONDS"},
		{"RATE_LIMIT.REQUESTS_PER_MINUTE", "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"redis_cluster", cfg.Redis.Cluster,
		"redis_address", cfg.Redis.Address,
		"redis_password", logger.MaskSensitiveString(cfg.Redis.Password, 2, 2),
		"weather_api_url", cfg.Weather.APIURL,
		"auth_address", cfg.Auth.Address,
	)
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if cfg.Redis.Cluster {
		if len(cfg.Redis.ClusterAddresses) == 0 {
			return fmt.Errorf("redis cluster addresses are required in cluster mode")
		}
	} else if cfg.Redis.Address == "" {
		return fmt.Errorf("redis address is required")
	}
	if cfg.Redis.OpTimeoutSeconds <= 0 {
		return fmt.Errorf("redis op timeout must be positive")
	}

	for name, raw := range map[string]string{
		"weather API URL":  cfg.Weather.APIURL,
		"geocoder URL":     cfg.Weather.GeocoderURL,
		"timezone API URL": cfg.Weather.TimezoneAPIURL,
	} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("invalid %s '%s': %w", name, raw, err)
		}
	}
	if cfg.Weather.TimeoutSeconds <= 0 {
		return fmt.Errorf("weather timeout must be positive")
	}

	if cfg.Auth.Address == "" {
		return fmt.Errorf("auth service address is required")
	}
	if cfg.Auth.TimeoutSeconds <= 0 {
		return fmt.Errorf("auth timeout must be positive")
	}

	if cfg.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate limit requests per minute must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	return nil
}
