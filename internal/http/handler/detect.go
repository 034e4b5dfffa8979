package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/service"
)

// DetectFood runs object detection on the multipart field "image".
func DetectFood(svc service.DetectionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("image")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "IMAGE_REQUIRED", "image is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		img, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		dets, err := svc.Detect(c.UserContext(), img, contentTypeOf(fh))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dets)
	}
}
