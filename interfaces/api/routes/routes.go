package routes

import (
	"github.com/gofiber/fiber/v2"

	"rental-crm/interfaces/api/handlers"
	"rental-crm/interfaces/api/middleware"
	websocketHandler "rental-crm/interfaces/api/websocket"
)

// SetupRoutes - wsHandler เป็น nil ได้ (ไม่เปิด /ws)
func SetupRoutes(app *fiber.App, h *handlers.Handlers, wsHandler *websocketHandler.WebSocketHandler) {
	// Setup health, metrics and root routes
	SetupHealthRoutes(app, h)

	// API version group
	api := app.Group("/api/v1")
	protected := middleware.Protected(h.Authenticator)

	SetupAuthRoutes(api, h, protected)
	SetupUserRoutes(api, h, protected)
	SetupLeadRoutes(api, h, protected)
	SetupAppointmentRoutes(api, h, protected)
	SetupTaskRoutes(api, h, protected)

	// WebSocket อยู่นอก /api/v1
	if wsHandler != nil {
		SetupWebSocketRoutes(app, wsHandler)
	}
}
