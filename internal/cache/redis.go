// Package cache provides Redis-backed caching for read-heavy endpoints.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis connects the package-level Redis client. The cache is optional:
// if the ping fails the application continues without caching.
func InitRedis(addr string) {
	client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis connection failed, continuing without cache", "error", err)
		client = nil
	} else {
		slog.Info("redis connected")
	}
}

// GetClient returns the shared Redis client, or nil when the cache is disabled.
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the shared client. Used by tests and by callers that
// manage their own connection.
func SetClient(c *redis.Client) {
	client = c
}

// Close shuts down the shared client if one is connected.
func Close() {
	if client != nil {
		if err := client.Close(); err != nil {
			slog.Error("error closing redis", "error", err)
		}
		client = nil
	}
}
