package handler

import (
	"errors"

	"ai-worker-console/internal/middleware"
	"ai-worker-console/internal/repository"
	"ai-worker-console/internal/service"

	"github.com/gofiber/fiber/v2"
)

// listQuery holds the common list filters: q, status, role, system
type listQuery struct {
	Query    string `query:"q"`
	Status   string `query:"status"`
	Role     string `query:"role"`
	SystemID string `query:"system"`
	UserID   string `query:"user"`
	Empty    bool   `query:"include_empty"`
}

func parseListQuery(c *fiber.Ctx) (listQuery, error) {
	var q listQuery
	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	return q, nil
}

// operator returns the name recorded in audit fields
func operator(c *fiber.Ctx) string {
	return middleware.Operator(c)
}

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrRecordNotFound):
		return 404
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrVersionExists),
		errors.Is(err, service.ErrUnknownItem),
		errors.Is(err, service.ErrUnknownKind),
		errors.Is(err, service.ErrInvalidGroup):
		return 400
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		return 401
	}
	return 500
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == 500 {
		return c.Status(status).JSON(fiber.Map{"error": "Internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(400).JSON(fiber.Map{"error": "Invalid query parameters"})
}
