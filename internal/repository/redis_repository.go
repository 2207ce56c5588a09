package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis_v9 "github.com/redis/go-redis/v9"
)

// RedisRepo is a JSON struct cache on redis. It satisfies catalog.Cache.
type RedisRepo struct {
	client *redis_v9.Client
}

func NewRedisRepo(client *redis_v9.Client) *RedisRepo {
	return &RedisRepo{client: client}
}

func (r *RedisRepo) Get(ctx context.Context, key string, dst any) (bool, error) {
	coded, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis_v9.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error get struct in cache: %w", err)
	}
	if err := json.Unmarshal(coded, dst); err != nil {
		return false, fmt.Errorf("error decoding cached struct %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisRepo) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error saving struct to cache: %w", err)
	}
	if err := r.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("error saving struct to cache: %w", err)
	}
	return nil
}

func (r *RedisRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("error deleting keys %v: %w", keys, err)
	}
	return nil
}
