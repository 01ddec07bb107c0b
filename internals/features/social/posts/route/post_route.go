package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	"stogie_backend/internals/features/social/posts/controller"
)

// PostRoutes mounts /posts plus /users/:handle/posts. optional carries SecondAuthMiddleware,
// protected carries AuthMiddleware.
func PostRoutes(api fiber.Router, protected, optional fiber.Handler, db *gorm.DB, pub events.Publisher) {
	ctrl := controller.NewPostController(db, pub)

	posts := api.Group("/posts")
	posts.Get("/", optional, ctrl.GetFeed)
	posts.Post("/", protected, ctrl.CreatePost)
	posts.Get("/:id", optional, ctrl.GetPost)
	posts.Delete("/:id", protected, ctrl.DeletePost)
	posts.Post("/:id/like", protected, ctrl.ToggleLike)
	posts.Get("/:id/likes", ctrl.GetLikes)

	api.Get("/users/:handle/posts", optional, ctrl.GetUserPosts)
}
