package handler

import (
	"ai-worker-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MappingHandler struct {
	mappingService service.MappingService
}

func NewMappingHandler(mappingService service.MappingService) *MappingHandler {
	return &MappingHandler{mappingService: mappingService}
}

func mappingOptions(q listQuery) service.MappingListOptions {
	return service.MappingListOptions{Query: q.Query, Role: q.Role, SystemID: q.SystemID, UserID: q.UserID}
}

// GetMappings returns user-system assignments with resolved names
// GET /api/v1/mappings?q=&role=&system=&user=
func (h *MappingHandler) GetMappings(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	mappings, err := h.mappingService.ListMappings(mappingOptions(q))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch mappings"})
	}
	return c.JSON(mappings)
}

// GetGrouped groups assignments by system (default) or by user
// GET /api/v1/mappings/grouped?by=system|user
func (h *MappingHandler) GetGrouped(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	groups, err := h.mappingService.GroupMappings(c.Query("by", service.GroupBySystem), mappingOptions(q), q.Empty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groups)
}

// GET /api/v1/mappings/stats
func (h *MappingHandler) GetMappingStats(c *fiber.Ctx) error {
	stats, err := h.mappingService.GetStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch mapping stats"})
	}
	return c.JSON(stats)
}

// POST /api/v1/mappings
func (h *MappingHandler) CreateMapping(c *fiber.Ctx) error {
	var req service.MappingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	mapping, err := h.mappingService.CreateMapping(&req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Mapping created successfully",
		"data":    mapping,
	})
}

// DELETE /api/v1/mappings/:id
func (h *MappingHandler) DeleteMapping(c *fiber.Ctx) error {
	if err := h.mappingService.DeleteMapping(c.Params("id"), operator(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Mapping deleted successfully"})
}
