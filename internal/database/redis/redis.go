package redis

import (
	"context"
	"log"
	"time"

	"darkops-lab/internal/config"

	"github.com/redis/go-redis/v9"
)

var Redis_Client *redis.Client

// InitRedis returns nil when no address is configured.
func InitRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.Address == "" {
		return nil
	}
	Redis_Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Redis_Client.Ping(ctx).Err(); err != nil {
		log.Printf("Error connect to Redis: %s", err)
	} else {
		log.Printf("Connected to Redis at %s", cfg.Address)
	}
	return Redis_Client
}

func CloseRedis() {
	if Redis_Client == nil {
		return
	}
	if err := Redis_Client.Close(); err != nil {
		log.Printf("Error closing Redis client: %s", err)
	}
}
