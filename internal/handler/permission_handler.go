package handler

import (
	"ai-worker-console/internal/model"
	"ai-worker-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PermissionHandler struct {
	permissionService service.PermissionService
}

func NewPermissionHandler(permissionService service.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// GetMatrix returns every role against every agent and tool
// GET /api/v1/permissions/matrix
func (h *PermissionHandler) GetMatrix(c *fiber.Ctx) error {
	matrix, err := h.permissionService.GetMatrix()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build permission matrix"})
	}
	return c.JSON(matrix)
}

// GetGroups returns all permission groups (roles)
// GET /api/v1/permissions/groups?q=
func (h *PermissionHandler) GetGroups(c *fiber.Ctx) error {
	groups, err := h.permissionService.ListGroups(c.Query("q"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch permission groups"})
	}
	return c.JSON(groups)
}

// GET /api/v1/permissions/groups/:id
func (h *PermissionHandler) GetGroup(c *fiber.Ctx) error {
	group, err := h.permissionService.GetGroup(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}

// POST /api/v1/permissions/groups
func (h *PermissionHandler) CreateGroup(c *fiber.Ctx) error {
	var req service.PermissionGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	group, err := h.permissionService.CreateGroup(&req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Permission group created successfully",
		"data":    group,
	})
}

// DELETE /api/v1/permissions/groups/:id
func (h *PermissionHandler) DeleteGroup(c *fiber.Ctx) error {
	if err := h.permissionService.DeleteGroup(c.Params("id"), operator(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Permission group deleted successfully"})
}

// Toggle flips one cell of the matrix
// PATCH /api/v1/permissions/groups/:id/:kind/:itemId   (kind: agent | tool)
func (h *PermissionHandler) Toggle(c *fiber.Ctx) error {
	kind := model.PermissionKind(c.Params("kind"))
	group, err := h.permissionService.Toggle(c.Params("id"), kind, c.Params("itemId"), operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Permission updated",
		"data":    group,
	})
}

// GET /api/v1/permissions/tools
func (h *PermissionHandler) GetTools(c *fiber.Ctx) error {
	return c.JSON(h.permissionService.GetTools())
}
