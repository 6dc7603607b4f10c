package handler

import (
	"ai-worker-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InstructionHandler struct {
	instructionService service.InstructionService
}

func NewInstructionHandler(instructionService service.InstructionService) *InstructionHandler {
	return &InstructionHandler{instructionService: instructionService}
}

func documentOptions(q listQuery) service.DocumentListOptions {
	return service.DocumentListOptions{Query: q.Query, SystemID: q.SystemID, Status: q.Status}
}

// GetInstructions returns the filtered instruction list
// GET /api/v1/instructions?q=&system=&status=
func (h *InstructionHandler) GetInstructions(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	instructions, err := h.instructionService.ListInstructions(documentOptions(q))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch instructions"})
	}
	return c.JSON(instructions)
}

// GetGrouped returns the filtered instructions grouped by system
// GET /api/v1/instructions/grouped?include_empty=true
func (h *InstructionHandler) GetGrouped(c *fiber.Ctx) error {
	q, err := parseListQuery(c)
	if err != nil {
		return invalidQuery(c)
	}

	groups, err := h.instructionService.GroupInstructions(documentOptions(q), q.Empty)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to group instructions"})
	}
	return c.JSON(groups)
}

// GET /api/v1/instructions/:id
func (h *InstructionHandler) GetInstruction(c *fiber.Ctx) error {
	instruction, err := h.instructionService.GetInstruction(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(instruction)
}

// POST /api/v1/instructions
func (h *InstructionHandler) CreateInstruction(c *fiber.Ctx) error {
	var req service.InstructionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	instruction, err := h.instructionService.CreateInstruction(&req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Instruction created successfully",
		"data":    instruction,
	})
}

// PUT /api/v1/instructions/:id
func (h *InstructionHandler) UpdateInstruction(c *fiber.Ctx) error {
	var req service.InstructionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	instruction, err := h.instructionService.UpdateInstruction(c.Params("id"), &req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Instruction updated successfully",
		"data":    instruction,
	})
}

// DELETE /api/v1/instructions/:id
func (h *InstructionHandler) DeleteInstruction(c *fiber.Ctx) error {
	if err := h.instructionService.DeleteInstruction(c.Params("id"), operator(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Instruction deleted successfully"})
}

// TogglePublish switches an instruction between published and draft
// PATCH /api/v1/instructions/:id/publish
func (h *InstructionHandler) TogglePublish(c *fiber.Ctx) error {
	instruction, err := h.instructionService.TogglePublish(c.Params("id"), operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Instruction status updated",
		"data":    instruction,
	})
}

// GET /api/v1/instructions/:id/versions
func (h *InstructionHandler) GetVersions(c *fiber.Ctx) error {
	history, err := h.instructionService.GetVersions(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

// PublishVersion records a new current version
// POST /api/v1/instructions/:id/versions
func (h *InstructionHandler) PublishVersion(c *fiber.Ctx) error {
	var req service.PublishVersionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	instruction, err := h.instructionService.PublishVersion(c.Params("id"), &req, operator(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Version published",
		"data":    instruction,
	})
}
