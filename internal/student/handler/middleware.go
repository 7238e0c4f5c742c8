package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// StudentIDKey is the request-local under which the middleware stores the
// authenticated student's id.
const StudentIDKey = "studentID"

// RequireAuth guards protected routes. It expects "Authorization: Bearer
// <token>"; a missing token is rejected before verification, and any
// verification failure (bad signature, expired, malformed) gets one uniform
// rejection. The downstream handler never runs on failure.
func (h *StudentHandler) RequireAuth(c *fiber.Ctx) error {
	parts := strings.Split(c.Get(fiber.HeaderAuthorization), " ")
	if len(parts) != 2 || parts[1] == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"message": "Access token required",
		})
	}

	claims, err := h.tokenService.VerifyAccessToken(parts[1])
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Invalid or expired token",
		})
	}

	c.Locals(StudentIDKey, claims.StudentID)

	return c.Next()
}
