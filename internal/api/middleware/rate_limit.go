package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KDISCHOOL/Distance-Learning-Committee-6/pkg/redis"
	"github.com/KDISCHOOL/Distance-Learning-Committee-6/pkg/response"
)

// RateLimit throttles requests per client IP and route via Redis. It guards
// the per-record secret endpoints against password guessing. A nil rdb, or
// a Redis error, degrades to letting the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10007, "too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
