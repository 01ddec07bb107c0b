package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	commentRoute "stogie_backend/internals/features/social/comments/route"
	postRoute "stogie_backend/internals/features/social/posts/route"
)

func SocialRoutes(api fiber.Router, mw Middlewares, db *gorm.DB, pub events.Publisher) {
	postRoute.PostRoutes(api, mw.Protected, mw.Optional, db, pub)
	commentRoute.PostCommentRoutes(api, mw.Protected, db, pub)
}
