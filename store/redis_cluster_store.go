package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/logger"
)

// RedisClusterStore is the clustered cache backend. Node discovery and key
// routing are handled by the cluster client; the Get/Set semantics are
// identical to the single-endpoint backend, including value decoding.
type RedisClusterStore struct {
	client    *redis.ClusterClient
	opTimeout time.Duration
	log       *zap.SugaredLogger
}

var _ CacheStore = (*RedisClusterStore)(nil)

// NewRedisClusterStore wraps an already configured Redis cluster client.
func NewRedisClusterStore(client *redis.ClusterClient, opTimeout time.Duration) *RedisClusterStore {
	return &RedisClusterStore{
		client:    client,
		opTimeout: opTimeout,
		log:       logger.GetLogger(),
	}
}

func (s *RedisClusterStore) Get(ctx context.Context, key string) (float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		s.log.Warnw("Cluster cache get failed", "key", key, "error", apperrors.CacheUnavailable(err))
		return 0, false
	}

	value, err := decodeTemperature(raw)
	if err != nil {
		s.log.Warnw("Cluster cache entry not decodable, treating as miss", "key", key, "raw", raw, "error", err)
		return 0, false
	}
	return value, true
}

func (s *RedisClusterStore) Set(ctx context.Context, key string, value float64) bool {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, encodeTemperature(value), 0).Err(); err != nil {
		s.log.Warnw("Cluster cache set failed", "key", key, "error", apperrors.CacheUnavailable(err))
		return false
	}
	return true
}
