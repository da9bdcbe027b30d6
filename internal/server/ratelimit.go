package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit caps checkout attempts per client IP inside a rolling
// window, counting in Redis so the limit holds across replicas.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "rate_limit:" + c.ClientIP()

		current, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down must not block checkouts.
			log.Printf("rate limit: %v", err)
			c.Next()
			return
		}

		if current == 1 {
			rdb.Expire(ctx, key, window)
		}

		if current > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}

		c.Next()
	}
}
