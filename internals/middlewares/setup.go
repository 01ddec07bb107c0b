package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"stogie_backend/internals/configs"
	"stogie_backend/internals/metrics"
	"stogie_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the global chain in order: recover, request context, access log,
// metrics, cors, rate limit.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(cfg.RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(metrics.HTTPMiddleware())
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(GlobalRateLimiter())
}
