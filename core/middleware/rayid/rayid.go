package rayid

import (
	"bookmark-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the ray id on requests and responses.
const Header = "X-Ray-ID"

// New returns a middleware that tags every request with a ray id. An id sent
// by the client is reused; otherwise a UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(logger.RayIDKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

// FromContext returns the ray id of the request, if any.
func FromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(logger.RayIDKey).(string)
	return id
}
