package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"stogie_backend/internals/configs"
	"stogie_backend/internals/constants"
	"stogie_backend/internals/events"
	authService "stogie_backend/internals/features/users/auth/service"
	helperOSS "stogie_backend/internals/helpers/oss"
	authMiddleware "stogie_backend/internals/middlewares/auth"
	routeDetails "stogie_backend/internals/route/details"
)

var startTime time.Time

// Deps are the process-wide collaborators handlers need besides the DB.
type Deps struct {
	Publisher events.Publisher
	Images    helperOSS.ImageStore
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, deps Deps) {
	startTime = time.Now()
	if deps.Publisher == nil {
		deps.Publisher = events.Noop{}
	}

	BaseRoutes(app, db, cfg)

	mw := routeDetails.Middlewares{
		Protected: authMiddleware.AuthMiddleware(db, cfg.JWTSecret),
		Optional:  authMiddleware.SecondAuthMiddleware(db, cfg.JWTSecret),
		AdminOnly: authMiddleware.OnlyRoles(constants.RoleErrorAdmin("remove catalog entries"), constants.AdminOnly...),
	}
	api := app.Group("/api")

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, mw, db, authService.OptionsFromConfig(cfg))

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(api, mw, db, deps.Publisher)

	log.Println("[INFO] Setting up SocialRoutes...")
	routeDetails.SocialRoutes(api, mw, db, deps.Publisher)

	log.Println("[INFO] Setting up CatalogRoutes...")
	routeDetails.CatalogRoutes(api, mw, db, deps.Publisher)

	if deps.Images != nil {
		log.Println("[INFO] Setting up UtilsRoutes...")
		routeDetails.UtilsRoutes(api, mw, deps.Images)
	}
}
