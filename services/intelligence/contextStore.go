package ai

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const advisorCachePrefix = "ai:plan:"

// RedisResponseStore keeps advisor replies in Redis with a TTL.
type RedisResponseStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResponseStore(client *redis.Client, ttl time.Duration) *RedisResponseStore {
	return &RedisResponseStore{client: client, ttl: ttl}
}

func (s *RedisResponseStore) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := s.client.Get(ctx, advisorCachePrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

func (s *RedisResponseStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, advisorCachePrefix+key, value, s.ttl).Err()
}

func (s *RedisResponseStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, advisorCachePrefix+key).Err()
}
