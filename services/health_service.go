package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nomiram/weather-api/logger"
	"github.com/nomiram/weather-api/types"
)

// HealthService reports the state of the service's dependencies. The cache
// is the only stateful dependency; the weather and authorization services
// are checked per request and intentionally not probed here.
type HealthService struct {
	redisClient redis.UniversalClient
	version     string
	startTime   time.Time
	log         *zap.SugaredLogger
}

// NewHealthService creates a HealthService around the active Redis client
// (single-endpoint or cluster).
func NewHealthService(redisClient redis.UniversalClient, version string) *HealthService {
	return &HealthService{
		redisClient: redisClient,
		version:     version,
		startTime:   time.Now(),
		log:         logger.GetLogger(),
	}
}

// CheckHealth pings the cache and assembles the aggregate report. A cache
// outage degrades the service rather than taking it down, because every
// resolution can still fall through to the provider.
func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	redisStatus := h.checkRedis(ctx)
	components["redis"] = redisStatus
	if redisStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDegraded
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}
	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}
