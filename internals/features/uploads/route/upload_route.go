package route

import (
	"github.com/gofiber/fiber/v2"

	"stogie_backend/internals/features/uploads/controller"
	helperOSS "stogie_backend/internals/helpers/oss"
)

func UploadRoutes(api fiber.Router, protected fiber.Handler, store helperOSS.ImageStore) {
	ctrl := controller.NewUploadController(store)
	api.Post("/uploads/images", protected, ctrl.UploadImage)
}
