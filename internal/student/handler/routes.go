package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *StudentHandler) {
	students := app.Group("/api/students")

	students.Post("/register", h.Register)
	students.Post("/login", h.Login)
	students.Post("/refresh-token", h.Refresh)

	// Protected endpoints
	students.Get("/", h.RequireAuth, h.List)
	students.Put("/profile", h.RequireAuth, h.UpdateProfile)
}
