package handler

import (
	"ai-worker-console/internal/model"
	"ai-worker-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// GET /api/v1/workspaces
func (h *WorkspaceHandler) GetWorkspaces(c *fiber.Ctx) error {
	return c.JSON(h.workspaceService.ListWorkspaces())
}

// GetWorkspace returns the workspace with its stat tiles. Unknown kinds get the default workspace.
// GET /api/v1/workspaces/:kind
func (h *WorkspaceHandler) GetWorkspace(c *fiber.Ctx) error {
	view, err := h.workspaceService.GetWorkspace(model.AgentKind(c.Params("kind")))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch workspace"})
	}
	return c.JSON(view)
}

// GET /api/v1/workspaces/:kind/items?q=&status=
func (h *WorkspaceHandler) GetItems(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	items, err := h.workspaceService.ListItems(model.AgentKind(c.Params("kind")), service.WorkItemListOptions{Query: q.Query, Status: q.Status})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch work items"})
	}
	return c.JSON(items)
}

// GET /api/v1/workspaces/:kind/messages
func (h *WorkspaceHandler) GetMessages(c *fiber.Ctx) error {
	messages, err := h.workspaceService.ListMessages(model.AgentKind(c.Params("kind")))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}
	return c.JSON(messages)
}

// PostMessage sends an operator message and returns it with the agent's reply
// POST /api/v1/workspaces/:kind/messages
func (h *WorkspaceHandler) PostMessage(c *fiber.Ctx) error {
	var req service.PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	messages, err := h.workspaceService.PostMessage(model.AgentKind(c.Params("kind")), &req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Message sent",
		"data":    messages,
	})
}
