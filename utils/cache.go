package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheJSON stores a marshalled value under key with a TTL. Failures are
// returned so callers can decide whether to care; the dashboard does not.
func CacheJSON(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for %s: %w", key, err)
	}
	if err := rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}

// GetCachedJSON loads a cached value into dest. Returns false on miss.
func GetCachedJSON(ctx context.Context, rdb *redis.Client, key string, dest interface{}) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	payload, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache key %s: %w", key, err)
	}
	return true, nil
}

// InvalidateCache deletes all cached keys for the given resource type.
// Uses SCAN instead of KEYS for better behaviour in production.
func InvalidateCache(rdb *redis.Client, resourceType string) error {
	if rdb == nil {
		return nil
	}
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(context.Background(), 0, pattern, 0).Iterator()

	for iter.Next(context.Background()) {
		key := iter.Val()
		if err := rdb.Del(context.Background(), key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}

// InvalidateCacheAsync invalidates the cache for a resource type without
// blocking the write path that triggered it.
func InvalidateCacheAsync(rdb *redis.Client, resourceType string) {
	go func() {
		if err := InvalidateCache(rdb, resourceType); err != nil {
			log.Printf("Cache invalidation failed for resource type '%s': %v", resourceType, err)
		}
	}()
}
