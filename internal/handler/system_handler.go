package handler

import (
	"ai-worker-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SystemHandler struct {
	systemService service.SystemService
}

func NewSystemHandler(systemService service.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// GetSystems returns the filtered system list
// GET /api/v1/systems?q=&status=
func (h *SystemHandler) GetSystems(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	systems, err := h.systemService.ListSystems(service.SystemListOptions{Query: q.Query, Status: q.Status})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch systems"})
	}
	return c.JSON(systems)
}

// GetOptions returns id/name pairs for system pickers
// GET /api/v1/systems/options
func (h *SystemHandler) GetOptions(c *fiber.Ctx) error {
	options, err := h.systemService.GetOptions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch systems"})
	}
	return c.JSON(options)
}

// GET /api/v1/systems/stats
func (h *SystemHandler) GetSystemStats(c *fiber.Ctx) error {
	stats, err := h.systemService.GetStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch system stats"})
	}
	return c.JSON(stats)
}

// GET /api/v1/systems/:id
func (h *SystemHandler) GetSystem(c *fiber.Ctx) error {
	system, err := h.systemService.GetSystem(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(system)
}

// POST /api/v1/systems
func (h *SystemHandler) CreateSystem(c *fiber.Ctx) error {
	var req service.SystemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	system, err := h.systemService.CreateSystem(&req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "System created successfully",
		"data":    system,
	})
}

// PUT /api/v1/systems/:id
func (h *SystemHandler) UpdateSystem(c *fiber.Ctx) error {
	var req service.SystemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	system, err := h.systemService.UpdateSystem(c.Params("id"), &req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "System updated successfully",
		"data":    system,
	})
}

// DeleteSystem removes a system along with its user mappings
// DELETE /api/v1/systems/:id
func (h *SystemHandler) DeleteSystem(c *fiber.Ctx) error {
	if err := h.systemService.DeleteSystem(c.Params("id"), operator(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "System deleted successfully"})
}
