package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitStore shares counters between instances. The window starts
// at the first hit of a key and is never extended by later hits.
type RedisRateLimitStore struct {
	client *redis.Client
}

func NewRedisRateLimitStore(ctx context.Context, url string) (*RedisRateLimitStore, error) {
	opts, err := redis.ParseURL(url)

	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisRateLimitStore{client: client}, nil
}

func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	count, err := s.client.Incr(ctx, key).Result()

	if err != nil {
		return 0, time.Time{}, err
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
	}

	ttl, err := s.client.PTTL(ctx, key).Result()

	if err != nil {
		return 0, time.Time{}, err
	}

	// a key left without expiry by an interrupted first hit
	if ttl < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, time.Time{}, err
		}

		ttl = window
	}

	return int(count), time.Now().Add(ttl), nil
}

func (s *RedisRateLimitStore) Close() error {
	return s.client.Close()
}
