package handler

import (
	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/service"
)

// ListImages lists image metadata with limit & offset, optionally for ?userId.
func ListImages(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, ok := queryInt(c, "limit", 10)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, ok := queryInt(c, "offset", 0)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), c.Query("userId"), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadImage stores the multipart field "file", with an optional "userId" owner.
func UploadImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		img, err := svc.Upload(c.UserContext(), f, fh.Filename, contentTypeOf(fh), fh.Size, c.FormValue("userId"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"fileId": img.ID.Hex(), "url": img.URL})
	}
}

// GetImage streams the stored bytes with their content type.
func GetImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, img, err := svc.Open(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, img.ContentType)
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, int(img.Size))
	}
}

func DeleteImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
