package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// InitRedisServer connects the client used for dashboard-statistics caching.
func InitRedisServer(ctx context.Context) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     GetEnvOr("REDIS_ADDRESS", "localhost:6379"),
		Password: "",
		DB:       0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		panic(err)
	}

	return client
}
