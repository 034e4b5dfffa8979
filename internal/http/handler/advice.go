package handler

import (
	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/service"
)

type adviceRequest struct {
	Date string `json:"date" validate:"omitempty,day"`
}

// GenerateAdvice builds the day's snapshot and asks the advisor; the body is optional.
func GenerateAdvice(svc service.AdviceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req adviceRequest
		if len(c.Body()) > 0 {
			if err := bind(c, &req); err != nil {
				return writeBindError(c, err)
			}
		}

		res, err := svc.Generate(c.UserContext(), c.Params("id"), req.Date)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"success":   true,
			"user_data": res.Snapshot,
			"ai_advice": res.Advice,
			"date":      res.Date,
			"source":    res.Source,
		})
	}
}
