/**
 * @description
 * Ingestion API Handlers.
 * Internal endpoints the fetcher jobs POST provider payloads to. Guarded by
 * the job-secret middleware at the route level.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 * - backend/internal/provider
 */

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/scrimline-project/backend/internal/provider"
	"github.com/scrimline-project/backend/internal/services"
)

type IngestHandler struct {
	Service *services.IngestService
}

func NewIngestHandler(service *services.IngestService) *IngestHandler {
	return &IngestHandler{Service: service}
}

type ingestMatchRequest struct {
	SourceType string             `json:"source_type"`
	Match      *provider.RawMatch `json:"match"`
}

// IngestMatch accepts one provider match payload and commits its entity graph
// POST /internal/ingest/match
func (h *IngestHandler) IngestMatch(c *fiber.Ctx) error {
	var req ingestMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	matchID, err := h.Service.IngestMatch(c.Context(), req.SourceType, req.Match)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"match_id": matchID})
}
