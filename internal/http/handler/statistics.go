package handler

import (
	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/service"
)

// UserStatistics reports meals and goal progress for ?range=Week|30 Days|60 Days|90 Days.
func UserStatistics(svc service.StatisticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.ForUser(c.UserContext(), c.Params("id"), c.Query("range", "Week"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}
