package middleware

import (
	"strings"

	"ai-worker-console/internal/model"
	"ai-worker-console/internal/repository"
	"ai-worker-console/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by IdentifyOperator
const (
	OperatorIDKey    = "operator_id"
	OperatorNameKey  = "operator_name"
	OperatorEmailKey = "operator_email"
)

// IdentifyOperator reads an optional bearer token and records who is acting.
// Requests without a token run as the default operator; no route is gated.
func IdentifyOperator(tokens *jwt.Manager, userRepo repository.Store[model.User]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals(OperatorIDKey, "")
			c.Locals(OperatorNameKey, model.DefaultOperator)
			c.Locals(OperatorEmailKey, "")
			return c.Next()
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		// Validate token
		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The account must still exist and be active
		user, err := userRepo.Get(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive() {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}

		c.Locals(OperatorIDKey, user.ID)
		c.Locals(OperatorNameKey, user.Name)
		c.Locals(OperatorEmailKey, user.Email)

		return c.Next()
	}
}

// Operator returns the acting operator's name for audit fields
func Operator(c *fiber.Ctx) string {
	if name, ok := c.Locals(OperatorNameKey).(string); ok && name != "" {
		return name
	}
	return model.DefaultOperator
}

// OperatorID returns the authenticated user's id, empty for the default operator
func OperatorID(c *fiber.Ctx) string {
	id, _ := c.Locals(OperatorIDKey).(string)
	return id
}
