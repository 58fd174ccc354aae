package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rental-crm/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// รับ request ID จาก proxy ได้ไม่เกินความยาวนี้
const maxRequestIDLength = 128

// RequestIDMiddleware ต้องอยู่ก่อน LoggerMiddleware
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDHeader, requestID)
		c.SetUserContext(logger.ContextWithRequestID(c.UserContext(), requestID))

		return c.Next()
	}
}
