package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/features/users/user/controller"
)

func ProfileRoutes(api fiber.Router, protected fiber.Handler, db *gorm.DB) {
	ctrl := controller.NewProfileController(db)

	profiles := api.Group("/profiles")
	profiles.Get("/me", protected, ctrl.GetMine)
	profiles.Put("/me", protected, ctrl.UpdateMine)
	profiles.Get("/:handle", ctrl.GetByHandle)
}
