package details

import (
	"github.com/gofiber/fiber/v2"

	uploadRoute "stogie_backend/internals/features/uploads/route"
	helperOSS "stogie_backend/internals/helpers/oss"
)

func UtilsRoutes(api fiber.Router, mw Middlewares, images helperOSS.ImageStore) {
	uploadRoute.UploadRoutes(api, mw.Protected, images)
}
