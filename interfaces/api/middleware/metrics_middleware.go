package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"rental-crm/pkg/metrics"
)

// MetricsMiddleware บันทึก latency ตาม route pattern (ไม่ใช่ path จริง) เพื่อไม่ให้ label บวม
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		metrics.RecordHTTPRequestDuration(c.Method(), route, strconv.Itoa(status), time.Since(start))
		return err
	}
}
