package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/features/catalog/humidors/controller"
)

func HumidorRoutes(api fiber.Router, protected fiber.Handler, db *gorm.DB) {
	ctrl := controller.NewHumidorEntryController(db)

	h := api.Group("/humidor", protected)
	h.Get("/", ctrl.List)
	h.Post("/", ctrl.Create)
	h.Put("/:id", ctrl.Update)
	h.Delete("/:id", ctrl.Delete)
}
