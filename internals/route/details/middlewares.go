package details

import "github.com/gofiber/fiber/v2"

// Middlewares are built once in SetupRoutes and shared by every route group.
type Middlewares struct {
	Protected fiber.Handler
	Optional  fiber.Handler
	AdminOnly fiber.Handler
}
