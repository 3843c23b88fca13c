package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/nurbek/dealer-pos/pkg/logger"
)

// CacheConfig holds response cache configuration
type CacheConfig struct {
	DefaultTTL      time.Duration
	CacheableStatus []int
}

// DefaultCacheConfig returns the default cache configuration.
// The TTL is deliberately short: stock levels change on every sale.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultTTL:      15 * time.Second,
		CacheableStatus: []int{200, 203, 404},
	}
}

// CacheMiddleware caches GET responses in Redis. Any mutating request
// through the gateway flushes the cache so stale stock levels are not
// served after a sale commits.
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Next()
		}

		if c.Method() != fiber.MethodGet {
			err := c.Next()
			if c.Response().StatusCode() < 400 {
				if invErr := invalidateCache(c, redisClient); invErr != nil {
					logger.Logger.Warn().Err(invErr).Msg("Failed to invalidate cache")
				}
			}
			return err
		}

		cacheKey := generateCacheKey(c)

		cachedResponse, err := redisClient.Get(c.UserContext(), cacheKey).Bytes()
		if err == nil && len(cachedResponse) > 0 {
			logger.Logger.Debug().
				Str("path", c.Path()).
				Str("cache_key", cacheKey).
				Msg("Cache hit")

			c.Set("X-Cache", "HIT")
			c.Set("Content-Type", "application/json")
			return c.Send(cachedResponse)
		}

		err = c.Next()

		if isStatusCacheable(c.Response().StatusCode(), config.CacheableStatus) {
			responseBody := c.Response().Body()

			if setErr := redisClient.Set(c.UserContext(), cacheKey, responseBody, config.DefaultTTL).Err(); setErr != nil {
				logger.Logger.Warn().
					Err(setErr).
					Str("cache_key", cacheKey).
					Msg("Failed to cache response")
			}

			c.Set("X-Cache", "MISS")
		}

		return err
	}
}

func invalidateCache(c *fiber.Ctx, redisClient *redis.Client) error {
	ctx := c.UserContext()
	iter := redisClient.Scan(ctx, 0, "cache:*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	if err := redisClient.Del(ctx, keys...).Err(); err != nil {
		return err
	}

	logger.Logger.Debug().
		Int("count", len(keys)).
		Str("path", c.Path()).
		Msg("Cache invalidated after mutation")
	return nil
}

func generateCacheKey(c *fiber.Ctx) string {
	keyComponents := fmt.Sprintf("%s:%s:%s:%s",
		c.Method(),
		c.Path(),
		string(c.Request().URI().QueryString()),
		c.Get("Authorization"),
	)

	hash := sha256.Sum256([]byte(keyComponents))
	return fmt.Sprintf("cache:%s", hex.EncodeToString(hash[:]))
}

func isStatusCacheable(status int, cacheableStatus []int) bool {
	for _, s := range cacheableStatus {
		if s == status {
			return true
		}
	}
	return false
}
