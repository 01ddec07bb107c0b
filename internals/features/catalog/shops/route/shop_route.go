package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/features/catalog/shops/controller"
)

func ShopRoutes(api fiber.Router, protected, adminOnly fiber.Handler, db *gorm.DB) {
	ctrl := controller.NewShopController(db)

	shops := api.Group("/shops")
	shops.Get("/", ctrl.List)
	shops.Get("/:slug", ctrl.GetBySlug)
	shops.Post("/", protected, ctrl.Create)
	shops.Delete("/:slug", protected, adminOnly, ctrl.Delete)
}
