package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID is a Fiber middleware that tags every request with a unique ID so
// log lines and responses can be correlated. An incoming X-Request-ID header
// is honored when present.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals("request_id", id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}
