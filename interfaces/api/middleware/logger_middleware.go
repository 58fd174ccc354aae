package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"rental-crm/pkg/logger"
)

// health check กับ prometheus scrape ไม่ต้อง log ทุกครั้ง
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// LoggerMiddleware structured logging สำหรับทุก request
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if quietPaths[c.Path()] && status < 400 {
			return err
		}

		logFunc := logger.InfoContext
		if status >= 500 {
			logFunc = logger.ErrorContext
		} else if status >= 400 {
			logFunc = logger.WarnContext
		}

		// UserContext มี user_id แล้วถ้าผ่าน Protected
		logFunc(c.UserContext(), "Request completed",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"bytes", len(c.Response().Body()),
			"ip", c.IP(),
		)

		return err
	}
}
