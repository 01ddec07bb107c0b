package helper

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError turns an error returned by a service into the standard envelope.
// Anything that is not a *fiber.Error is logged and reported as a generic 500 so
// raw storage errors never reach the caller.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}
