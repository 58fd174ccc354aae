package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"rental-crm/pkg/logger"
)

type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Health ตอบ 503 ถ้า ping database ไม่ผ่าน
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	state, database := "ok", "ok"
	status := fiber.StatusOK

	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			logger.WarnContext(ctx, "Health check failed", "error", err)
			state, database = "degraded", "unavailable"
			status = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   state,
		"database": database,
		"service":  "Rental CRM API",
	})
}
