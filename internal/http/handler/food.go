package handler

import (
	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/service"
)

type foodRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// LookupFood answers 200 from the cache and 201 when the food was fetched and stored.
func LookupFood(svc service.FoodService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req foodRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		food, created, err := svc.Lookup(c.UserContext(), req.Name)
		if err != nil {
			return writeServiceError(c, err)
		}
		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(food)
	}
}
