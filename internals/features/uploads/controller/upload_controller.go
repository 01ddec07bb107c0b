package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"stogie_backend/internals/constants"
	helper "stogie_backend/internals/helpers"
	helperOSS "stogie_backend/internals/helpers/oss"
)

const MaxUploadBytes = 10 << 20

type UploadController struct {
	Store helperOSS.ImageStore
	Opt   helperOSS.WebPOptions
}

func NewUploadController(store helperOSS.ImageStore) *UploadController {
	return &UploadController{Store: store, Opt: helperOSS.DefaultWebPOptions}
}

// POST /api/uploads/images (multipart field "image")
// Every image is re-encoded to webp before storage; the returned url goes into post_image_url.
func (uc *UploadController) UploadImage(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"image": {"is required"}})
	}
	if fh.Size > MaxUploadBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Image must be 10MB or smaller")
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypeImage {
		return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Only jpg, png, gif or webp images are accepted")
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
	}
	defer f.Close()

	data, err := helperOSS.ConvertToWebP(f, uc.Opt)
	if err != nil {
		if errors.Is(err, helperOSS.ErrUnsupportedImage) {
			return helper.JsonError(c, fiber.StatusUnsupportedMediaType, err.Error())
		}
		return helper.JsonError(c, fiber.StatusBadRequest, "Image could not be decoded")
	}

	key := helperOSS.BuildObjectKey("posts/" + userID.String())
	url, err := uc.Store.Put(c.UserContext(), key, data, "image/webp")
	if err != nil {
		log.Printf("[ERROR] image store put %s: %v", key, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store image")
	}
	return helper.JsonCreated(c, "Image uploaded", fiber.Map{"url": url, "key": key, "size": len(data)})
}
