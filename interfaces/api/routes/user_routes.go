package routes

import (
	"github.com/gofiber/fiber/v2"

	"rental-crm/interfaces/api/handlers"
	"rental-crm/interfaces/api/middleware"
)

// SetupUserRoutes - จัดการบัญชีผู้ใช้ เฉพาะ admin
func SetupUserRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	users := api.Group("/users", protected, middleware.AdminOnly())
	users.Post("/", h.UserHandler.CreateUser)
}
