/**
 * @description
 * Data source API Handlers.
 * Exposes the provider registry.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scrimline-project/backend/internal/services"
)

type SourceHandler struct {
	Service *services.MatchService
}

func NewSourceHandler(service *services.MatchService) *SourceHandler {
	return &SourceHandler{Service: service}
}

// ListSources returns registered providers
// GET /api/v1/sources?active=true
func (h *SourceHandler) ListSources(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)

	sources, err := h.Service.ListSources(c.Context(), activeOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sources)
}
