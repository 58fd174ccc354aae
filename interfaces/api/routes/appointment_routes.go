package routes

import (
	"github.com/gofiber/fiber/v2"

	"rental-crm/interfaces/api/handlers"
)

func SetupAppointmentRoutes(api fiber.Router, h *handlers.Handlers, protected fiber.Handler) {
	appointments := api.Group("/appointments", protected)
	appointments.Get("/", h.AppointmentHandler.ListAppointments)
	appointments.Post("/", h.AppointmentHandler.CreateAppointment)
	appointments.Put("/", h.AppointmentHandler.UpdateAppointment)
	appointments.Delete("/", h.AppointmentHandler.DeleteAppointment)
	appointments.Get("/:id", h.AppointmentHandler.GetAppointment)
	appointments.Put("/:id", h.AppointmentHandler.UpdateAppointment)
	appointments.Delete("/:id", h.AppointmentHandler.DeleteAppointment)
}
