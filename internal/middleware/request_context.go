package middleware

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// requestIDLocal is the Locals key fiber's requestid middleware writes to.
const requestIDLocal = "requestid"

// RequestContext copies the request id into the user context so storage
// logs written further down carry it. Must run after requestid.New().
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(requestIDLocal).(string); ok && id != "" {
			c.SetUserContext(logging.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
