package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/events"
	"stogie_backend/internals/features/users/user_follows/controller"
)

// UserFollowRoutes mounts follow endpoints on the /users group.
func UserFollowRoutes(users fiber.Router, protected fiber.Handler, db *gorm.DB, pub events.Publisher) {
	ctrl := controller.NewUserFollowController(db, pub)

	users.Post("/:handle/follow", protected, ctrl.Follow)
	users.Delete("/:handle/follow", protected, ctrl.Unfollow)
	users.Get("/:handle/followers", ctrl.Followers)
	users.Get("/:handle/following", ctrl.Following)
}
