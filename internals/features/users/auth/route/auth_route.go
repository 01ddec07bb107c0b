package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/features/users/auth/controller"
	"stogie_backend/internals/features/users/auth/service"
	rateLimiter "stogie_backend/internals/middlewares"
)

// AuthRoutes mounts /auth under api. protected must already carry AuthMiddleware.
func AuthRoutes(api fiber.Router, protected fiber.Handler, db *gorm.DB, opt service.Options) {
	authController := controller.NewAuthController(db, opt)

	auth := api.Group("/auth")
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	auth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	auth.Post("/refresh-token", authController.RefreshToken)

	auth.Post("/logout", protected, authController.Logout)
	auth.Post("/change-password", protected, authController.ChangePassword)
	auth.Get("/me", protected, authController.Me)
}
