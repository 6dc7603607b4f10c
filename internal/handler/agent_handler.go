package handler

import (
	"ai-worker-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AgentHandler struct {
	agentService service.AgentService
}

func NewAgentHandler(agentService service.AgentService) *AgentHandler {
	return &AgentHandler{agentService: agentService}
}

// GetAgents returns the filtered agent list
// GET /api/v1/agents?q=&status=published|draft|all
func (h *AgentHandler) GetAgents(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	agents, err := h.agentService.ListAgents(service.AgentListOptions{Query: q.Query, Status: q.Status})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch agents"})
	}
	return c.JSON(agents)
}

// GET /api/v1/agents/stats
func (h *AgentHandler) GetAgentStats(c *fiber.Ctx) error {
	stats, err := h.agentService.GetStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch agent stats"})
	}
	return c.JSON(stats)
}

// GET /api/v1/agents/:id
func (h *AgentHandler) GetAgent(c *fiber.Ctx) error {
	agent, err := h.agentService.GetAgent(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(agent)
}

// POST /api/v1/agents
func (h *AgentHandler) CreateAgent(c *fiber.Ctx) error {
	var req service.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	agent, err := h.agentService.CreateAgent(&req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Agent created successfully",
		"data":    agent,
	})
}

// PUT /api/v1/agents/:id
func (h *AgentHandler) UpdateAgent(c *fiber.Ctx) error {
	var req service.AgentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	agent, err := h.agentService.UpdateAgent(c.Params("id"), &req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Agent updated successfully",
		"data":    agent,
	})
}

// DeleteAgent removes an agent and its permission cells
// DELETE /api/v1/agents/:id
func (h *AgentHandler) DeleteAgent(c *fiber.Ctx) error {
	if err := h.agentService.DeleteAgent(c.Params("id"), operator(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Agent deleted successfully"})
}

// PATCH /api/v1/agents/:id/publish
func (h *AgentHandler) TogglePublish(c *fiber.Ctx) error {
	agent, err := h.agentService.TogglePublish(c.Params("id"), operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Agent status updated",
		"data":    agent,
	})
}

// GET /api/v1/agents/:id/versions
func (h *AgentHandler) GetVersions(c *fiber.Ctx) error {
	history, err := h.agentService.GetVersions(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

// POST /api/v1/agents/:id/versions
func (h *AgentHandler) PublishVersion(c *fiber.Ctx) error {
	var req service.PublishVersionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	agent, err := h.agentService.PublishVersion(c.Params("id"), &req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Version published",
		"data":    agent,
	})
}
