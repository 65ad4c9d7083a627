/**
 * @description
 * Analytics API Handlers.
 * Exposes prediction-vs-outcome comparison and value-bet evaluation for a
 * single match.
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

type AnalyticsHandler struct {
	Service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: service}
}

// GetComparison grades the stored prediction against the actual result
// GET /api/v1/matches/:id/comparison
func (h *AnalyticsHandler) GetComparison(c *fiber.Ctx) error {
	comparison, err := h.Service.CompareOutcome(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(comparison)
}

// GetValueBets evaluates every stored quote for the match against the
// prediction-derived probability estimate
// GET /api/v1/matches/:id/value-bets?min_ev=
func (h *AnalyticsHandler) GetValueBets(c *fiber.Ctx) error {
	minEV := c.QueryFloat("min_ev", 0)

	candidates, err := h.Service.EvaluateValueBets(c.Context(), c.Params("id"), minEV)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(candidates)
}
