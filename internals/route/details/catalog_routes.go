package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	cigarRoute "stogie_backend/internals/features/catalog/cigars/route"
	humidorRoute "stogie_backend/internals/features/catalog/humidors/route"
	reviewRoute "stogie_backend/internals/features/catalog/reviews/route"
	sessionRoute "stogie_backend/internals/features/catalog/sessions/route"
	shopRoute "stogie_backend/internals/features/catalog/shops/route"
)

func CatalogRoutes(api fiber.Router, mw Middlewares, db *gorm.DB, pub events.Publisher) {
	reviewRoute.CigarReviewRoutes(api, mw.Protected, db, pub)
	cigarRoute.CigarRoutes(api, mw.Protected, mw.AdminOnly, db)
	shopRoute.ShopRoutes(api, mw.Protected, mw.AdminOnly, db)
	humidorRoute.HumidorRoutes(api, mw.Protected, db)
	sessionRoute.SmokingSessionRoutes(api, mw.Protected, db)
}
