/**
 * @description
 * Match API Handlers.
 * Exposes the match listing and single-match detail endpoints.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/scrimline-project/backend/internal/services"
	"github.com/scrimline-project/backend/internal/store"
)

type MatchHandler struct {
	Service *services.MatchService
}

func NewMatchHandler(service *services.MatchService) *MatchHandler {
	return &MatchHandler{Service: service}
}

// GetMatches lists matches. With no filters it serves the cached upcoming
// list; any filter falls through to a direct query.
// GET /api/v1/matches?status=&source=&from=&to=&limit=&include=predictions,odds
func (h *MatchHandler) GetMatches(c *fiber.Ctx) error {
	ctx := c.Context()

	status := c.Query("status")
	source := c.Query("source")
	fromParam := c.Query("from")
	toParam := c.Query("to")
	limit := c.QueryInt("limit", 0)
	includePredictions, includeOdds := parseInclude(c.Query("include"))

	useCache := status == "" && source == "" && fromParam == "" && toParam == "" &&
		limit <= 0 && !includePredictions && !includeOdds
	if useCache {
		matches, err := h.Service.GetUpcomingMatches(ctx)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(matches)
	}

	params := services.QueryMatchesParams{
		Status:             status,
		SourceType:         source,
		Limit:              limit,
		IncludePredictions: includePredictions,
		IncludeOdds:        includeOdds,
	}
	if fromParam != "" {
		from, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'from' timestamp, expected RFC 3339"})
		}
		params.StartFrom = &from
	}
	if toParam != "" {
		to, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'to' timestamp, expected RFC 3339"})
		}
		params.StartTo = &to
	}

	matches, err := h.Service.QueryMatches(ctx, params)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(matches)
}

// GetMatch returns one match with its teams and tournament
// GET /api/v1/matches/:id
func (h *MatchHandler) GetMatch(c *fiber.Ctx) error {
	ctx := c.Context()
	includePredictions, includeOdds := parseInclude(c.Query("include"))

	match, err := h.Service.GetMatch(ctx, c.Params("id"), store.MatchInclude{
		Predictions: includePredictions,
		OddsQuotes:  includeOdds,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(match)
}

func parseInclude(raw string) (predictions, odds bool) {
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case "predictions":
			predictions = true
		case "odds":
			odds = true
		}
	}
	return predictions, odds
}
