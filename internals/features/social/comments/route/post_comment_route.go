package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	"stogie_backend/internals/features/social/comments/controller"
)

func PostCommentRoutes(api fiber.Router, protected fiber.Handler, db *gorm.DB, pub events.Publisher) {
	ctrl := controller.NewPostCommentController(db, pub)

	api.Get("/posts/:id/comments", ctrl.List)
	api.Post("/posts/:id/comments", protected, ctrl.Create)
	api.Delete("/comments/:id", protected, ctrl.Delete)
}
