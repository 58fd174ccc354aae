package routes

import (
	"github.com/gofiber/fiber/v2"

	"rental-crm/interfaces/api/handlers"
)

func SetupLeadRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	leads := api.Group("/leads", protected)
	leads.Get("/", h.LeadHandler.ListLeads)
	leads.Post("/", h.LeadHandler.CreateLead)
	leads.Put("/", h.LeadHandler.UpdateLead)
	leads.Delete("/", h.LeadHandler.DeleteLead)
	leads.Get("/:id", h.LeadHandler.GetLead)
	leads.Put("/:id", h.LeadHandler.UpdateLead)
	leads.Delete("/:id", h.LeadHandler.DeleteLead)
}
