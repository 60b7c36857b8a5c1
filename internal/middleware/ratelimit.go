package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// allow reports whether the caller identified by key may proceed under the
// limit for the window. Fail-open: a nil client or a Redis error never
// blocks the request.
func allow(ctx context.Context, rdb *redis.Client, key string, limit int, window time.Duration) bool {
	if rdb == nil {
		return true
	}

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, window)
	}
	return cnt <= int64(limit)
}

// RateLimit returns a middleware enforcing limit requests per window for the
// named resource. Authenticated requests are keyed by user ID, anonymous
// ones by remote IP.
func RateLimit(rdb *redis.Client, resource string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := "ip:" + c.IP()
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		}

		key := fmt.Sprintf("ratelimit:%s:%s", resource, id)
		if !allow(c.UserContext(), rdb, key, limit, window) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		}
		return c.Next()
	}
}
