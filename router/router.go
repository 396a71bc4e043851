package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nomiram/weather-api/config"
	"github.com/nomiram/weather-api/handlers"
	"github.com/nomiram/weather-api/middleware"
)

// Dependencies holds everything needed to wire the routes.
type Dependencies struct {
	Config         *config.Config
	AuthGate       middleware.AuthGate
	WeatherHandler *handlers.WeatherHandler
	CacheHandler   *handlers.CacheHandler
	HealthHandler  *handlers.HealthHandler
	RedisClient    redis.UniversalClient
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	r.GET("/health", deps.HealthHandler.HealthCheckHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	if deps.RedisClient != nil {
		v1.Use(middleware.RateLimiter(
			deps.RedisClient,
			deps.Config.RateLimit.RequestsPerMinute,
			deps.Config.RateLimit.Window(),
		))
	}
	{
		// Cache inspection endpoints mirror the raw store and stay open.
		v1.GET("/redis/", deps.CacheHandler.GetEntryHandler)
		v1.PUT("/redis/", deps.CacheHandler.SetEntryHandler)

		authRoutes := v1.Group("")
		authRoutes.Use(middleware.AuthMiddleware(deps.AuthGate))
		{
			authRoutes.GET("/current/", deps.WeatherHandler.CurrentTemperatureHandler)
			authRoutes.GET("/forecast/", deps.WeatherHandler.ForecastTemperatureHandler)
		}
	}

	return r
}
