package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/features/catalog/sessions/controller"
)

func SmokingSessionRoutes(api fiber.Router, protected fiber.Handler, db *gorm.DB) {
	ctrl := controller.NewSmokingSessionController(db)

	s := api.Group("/sessions", protected)
	s.Get("/", ctrl.List)
	s.Post("/", ctrl.Create)
	s.Put("/:id", ctrl.Update)
	s.Delete("/:id", ctrl.Delete)
}
