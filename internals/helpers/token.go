// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken returns the caller's user id stored by the auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user id missing from token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user id is not a valid UUID")
	}
	return id, nil
}

// GetSchoolIDFromToken returns the caller's active school (tenant) id.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("school_id").(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - school id missing from token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - school id is not a valid UUID")
	}
	return id, nil
}

// GetRoleFromToken returns the caller's role, "" when absent.
func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals("userRole").(string)
	return role
}

func IsAdmin(c *fiber.Ctx) bool { return GetRoleFromToken(c) == "admin" }
