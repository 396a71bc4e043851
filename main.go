package main

import (
	"crypto/tls"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nomiram/weather-api/config"
	"github.com/nomiram/weather-api/handlers"
	"github.com/nomiram/weather-api/logger"
	"github.com/nomiram/weather-api/router"
	"github.com/nomiram/weather-api/services"
	"github.com/nomiram/weather-api/store"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Cache backend is fixed at startup: single endpoint or cluster.
	var (
		cache       store.CacheStore
		redisClient redis.UniversalClient
	)
	if cfg.Redis.Cluster {
		clusterClient := redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    cfg.Redis.ClusterAddresses,
			Password: cfg.Redis.Password,
		})
		defer clusterClient.Close()
		cache = store.NewRedisClusterStore(clusterClient, cfg.Redis.OpTimeout())
		redisClient = clusterClient
	} else {
		options := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		if cfg.IsProduction() {
			options.TLSConfig = &tls.Config{
				ServerName: cfg.Redis.Address,
				MinVersion: tls.VersionTLS12,
			}
		}
		client := redis.NewClient(options)
		defer client.Close()
		cache = store.NewRedisStore(client, cfg.Redis.OpTimeout())
		redisClient = client
	}

	// Authorization service connection. Dialing is lazy, so startup does not
	// depend on the auth service being up.
	authConn, err := grpc.NewClient(
		cfg.Auth.Address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatalf("Failed to create auth service client: %v", err)
	}
	defer authConn.Close()

	// External data sources
	geocoder := services.NewOpenMeteoGeocoder(cfg.Weather.GeocoderURL, cfg.Weather.Timeout())
	timezones := services.NewTimeAPIClient(cfg.Weather.TimezoneAPIURL, cfg.Weather.Timeout())
	weather := services.NewWeatherClient(cfg.Weather.APIURL, cfg.Weather.Timeout())

	// Services
	locations := services.NewLocationService(geocoder, timezones)
	temperatures := services.NewTemperatureService(locations, weather, cache)
	authGate := services.NewAuthService(authConn, cfg.Auth.Timeout())
	health := services.NewHealthService(redisClient, cfg.Server.Version)

	// Handlers
	weatherHandler := handlers.NewWeatherHandler(temperatures)
	cacheHandler := handlers.NewCacheHandler(cache)
	healthHandler := handlers.NewHealthHandler(health)

	r := router.SetupRouter(router.Dependencies{
		Config:         cfg,
		AuthGate:       authGate,
		WeatherHandler: weatherHandler,
		CacheHandler:   cacheHandler,
		HealthHandler:  healthHandler,
		RedisClient:    redisClient,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
