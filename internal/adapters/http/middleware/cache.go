package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

var noStore = [][2]string{
	{fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate"},
	{fiber.HeaderPragma, "no-cache"},
	{fiber.HeaderExpires, "0"},
}

// NoCacheHeaders marks account and payment responses as never cacheable
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, h := range noStore {
			c.Set(h[0], h[1])
		}
		return c.Next()
	}
}

// PrivateCacheHeaders lets the caller's browser keep a successful GET listing
// for maxAge. Shared caches never store it. A handler that sets its own
// Cache-Control wins.
func PrivateCacheHeaders(maxAge time.Duration) fiber.Handler {
	directive := fmt.Sprintf("private, max-age=%d", int64(maxAge/time.Second))

	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		if c.Method() != fiber.MethodGet || c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}
		if len(c.Response().Header.Peek(fiber.HeaderCacheControl)) == 0 {
			c.Set(fiber.HeaderCacheControl, directive)
		}
		return nil
	}
}
