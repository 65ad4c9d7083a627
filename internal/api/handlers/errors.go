/**
 * @description
 * Shared error-to-response mapping for the handlers. The store's error
 * taxonomy decides the status code; anything unclassified is a 500 and gets
 * logged with the request path.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/store
 */

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/scrimline-project/backend/internal/logger"
	"github.com/scrimline-project/backend/internal/store"
)

func writeError(c *fiber.Ctx, err error) error {
	var vErr *store.ValidationError
	var cErr *store.ConflictError
	var rErr *store.ReferenceError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.As(err, &cErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": cErr.Error()})
	case errors.As(err, &rErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": rErr.Error()})
	default:
		logger.Error("request %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
