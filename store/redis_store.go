package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/nomiram/weather-api/errors"
	"github.com/nomiram/weather-api/logger"
)

// RedisStore is the single-endpoint cache backend.
type RedisStore struct {
	client    *redis.Client
	opTimeout time.Duration
	log       *zap.SugaredLogger
}

var _ CacheStore = (*RedisStore)(nil)

// NewRedisStore wraps an already configured single-endpoint Redis client.
func NewRedisStore(client *redis.Client, opTimeout time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		opTimeout: opTimeout,
		log:       logger.GetLogger(),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		// Treated as a miss: the resolver falls through to the provider.
		s.log.Warnw("Cache get failed", "key", key, "error", apperrors.CacheUnavailable(err))
		return 0, false
	}

	value, err := decodeTemperature(raw)
	if err != nil {
		s.log.Warnw("Cache entry not decodable, treating as miss", "key", key, "raw", raw, "error", err)
		return 0, false
	}
	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value float64) bool {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, encodeTemperature(value), 0).Err(); err != nil {
		s.log.Warnw("Cache set failed", "key", key, "error", apperrors.CacheUnavailable(err))
		return false
	}
	return true
}
