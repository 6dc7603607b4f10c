package handler

import (
	"ai-worker-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type KnowledgeHandler struct {
	knowledgeService service.KnowledgeService
}

func NewKnowledgeHandler(knowledgeService service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{knowledgeService: knowledgeService}
}

// GET /api/v1/knowledge?q=&system=&status=
func (h *KnowledgeHandler) GetKnowledgeBases(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	bases, err := h.knowledgeService.ListKnowledge(documentOptions(q))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch knowledge bases"})
	}
	return c.JSON(bases)
}

// GET /api/v1/knowledge/grouped
func (h *KnowledgeHandler) GetGrouped(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	groups, err := h.knowledgeService.GroupKnowledge(documentOptions(q), q.Empty)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to group knowledge bases"})
	}
	return c.JSON(groups)
}

// GET /api/v1/knowledge/stats
func (h *KnowledgeHandler) GetKnowledgeStats(c *fiber.Ctx) error {
	stats, err := h.knowledgeService.GetStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch knowledge stats"})
	}
	return c.JSON(stats)
}

// GET /api/v1/knowledge/:id
func (h *KnowledgeHandler) GetKnowledgeBase(c *fiber.Ctx) error {
	base, err := h.knowledgeService.GetKnowledge(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(base)
}

// POST /api/v1/knowledge
func (h *KnowledgeHandler) CreateKnowledgeBase(c *fiber.Ctx) error {
	var req service.KnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	base, err := h.knowledgeService.CreateKnowledge(&req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Knowledge base created successfully",
		"data":    base,
	})
}

// PUT /api/v1/knowledge/:id
func (h *KnowledgeHandler) UpdateKnowledgeBase(c *fiber.Ctx) error {
	var req service.KnowledgeRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	base, err := h.knowledgeService.UpdateKnowledge(c.Params("id"), &req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Knowledge base updated successfully",
		"data":    base,
	})
}

// DELETE /api/v1/knowledge/:id
func (h *KnowledgeHandler) DeleteKnowledgeBase(c *fiber.Ctx) error {
	if err := h.knowledgeService.DeleteKnowledge(c.Params("id"), operator(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Knowledge base deleted successfully"})
}
