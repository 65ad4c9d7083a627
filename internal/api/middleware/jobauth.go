/**
 * @description
 * Shared-secret middleware for the internal ingestion endpoints. The fetcher
 * jobs authenticate with a static X-Job-Secret header; nothing user-facing
 * goes through this.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 */

package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// JobSecret guards a route group with a constant-time comparison against the
// configured secret. An empty configured secret disables the group entirely
// rather than leaving it open.
func JobSecret(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Ingestion is not configured on this deployment",
			})
		}
		provided := c.Get("X-Job-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid job secret",
			})
		}
		return c.Next()
	}
}
