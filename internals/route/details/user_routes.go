package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	userRoute "stogie_backend/internals/features/users/user/route"
	followRoute "stogie_backend/internals/features/users/user_follows/route"
)

func UserRoutes(api fiber.Router, mw Middlewares, db *gorm.DB, pub events.Publisher) {
	userRoute.ProfileRoutes(api, mw.Protected, db)
	followRoute.UserFollowRoutes(api.Group("/users"), mw.Protected, db, pub)
}
