package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	"stogie_backend/internals/features/catalog/reviews/controller"
)

func CigarReviewRoutes(api fiber.Router, protected fiber.Handler, db *gorm.DB, pub events.Publisher) {
	ctrl := controller.NewCigarReviewController(db, pub)

	api.Get("/cigars/:slug/reviews", ctrl.ListByCigar)
	api.Post("/cigars/:slug/reviews", protected, ctrl.Create)
	api.Put("/reviews/:id", protected, ctrl.Update)
	api.Delete("/reviews/:id", protected, ctrl.Delete)
}
