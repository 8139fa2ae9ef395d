package utils

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const maxRetries = 3
const retryDelay = 2 * time.Minute

// CleanupDashboardCache drops every cached dashboard key. TTLs already bound
// staleness; the nightly sweep guards against keys written without one.
func CleanupDashboardCache(redisClient *redis.Client) error {
	return InvalidateCache(redisClient, "dashboard")
}

// RunScheduledCleanup runs the cache sweep daily at 1 AM with retries.
func RunScheduledCleanup(redisClient *redis.Client) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		for retries := 0; retries < maxRetries; retries++ {
			if err := CleanupDashboardCache(redisClient); err == nil {
				log.Println("cleanup successful!")
				return
			} else {
				log.Printf("cleanup attempt %d failed: %v", retries+1, err)
			}
			time.Sleep(retryDelay)
		}
		log.Println("cleanup failed after maximum retries")
	})

	c.Start()
}
