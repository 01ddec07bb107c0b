package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/features/catalog/cigars/controller"
)

// CigarRoutes mounts /cigars. adminOnly must run after protected.
func CigarRoutes(api fiber.Router, protected, adminOnly fiber.Handler, db *gorm.DB) {
	ctrl := controller.NewCigarController(db)

	cigars := api.Group("/cigars")
	cigars.Get("/", ctrl.List)
	cigars.Get("/:slug", ctrl.GetBySlug)
	cigars.Post("/", protected, ctrl.Create)
	cigars.Delete("/:slug", protected, adminOnly, ctrl.Delete)
}
