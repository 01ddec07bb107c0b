package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "stogie_backend/internals/features/users/auth/route"
	authService "stogie_backend/internals/features/users/auth/service"
)

func AuthRoutes(api fiber.Router, mw Middlewares, db *gorm.DB, opt authService.Options) {
	authRoute.AuthRoutes(api, mw.Protected, db, opt)
}
