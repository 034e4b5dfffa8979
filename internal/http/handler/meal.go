package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/model"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/service"
)

type mealEntryRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Time     string  `json:"time"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbo    float64 `json:"carbo" validate:"gte=0"`
	ImageURI string  `json:"imageUri"`
	Items    string  `json:"items"`
}

type addMealsRequest struct {
	UserID    string             `json:"userId" validate:"required,objectid"`
	Date      string             `json:"date" validate:"required,day"`
	MealsList []mealEntryRequest `json:"mealsList" validate:"required,min=1,dive"`
}

type mealDataRequest struct {
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbo    float64 `json:"carbo" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	Items    string  `json:"items"`
}

type updateMealRequest struct {
	MealID   string           `json:"mealId" validate:"required,objectid"`
	MealName string           `json:"mealName" validate:"required"`
	MealData *mealDataRequest `json:"mealData" validate:"required"`
}

type deleteMealRequest struct {
	MealID   string `json:"mealId" validate:"required,objectid"`
	MealName string `json:"mealName" validate:"required"`
}

// AddMeals appends entries to the user's day document, creating it on first use.
func AddMeals(svc service.MealService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req addMealsRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}

		entries := make([]model.MealEntry, 0, len(req.MealsList))
		for _, e := range req.MealsList {
			var at time.Time
			if e.Time != "" {
				t, err := nutrition.ParseTimestamp(e.Time)
				if err != nil {
					return writeError(c, fiber.StatusBadRequest, "INVALID_TIME", "meal time must be an ISO timestamp")
				}
				at = t.UTC()
			}
			entries = append(entries, model.MealEntry{
				Name:     e.Name,
				Time:     at,
				Calories: e.Calories,
				Fat:      e.Fat,
				Protein:  e.Protein,
				Carbo:    e.Carbo,
				ImageURI: e.ImageURI,
				Items:    e.Items,
			})
		}

		meal, err := svc.Add(c.UserContext(), service.AddMealsInput{UserID: req.UserID, Date: req.Date, Entries: entries})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(meal)
	}
}

// ListMeals returns the day documents for ?date=YYYY-MM-DD, today when omitted.
func ListMeals(svc service.MealService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		meals, err := svc.ListByDay(c.UserContext(), c.Params("id"), c.Query("date"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"meals": meals})
	}
}

func UpdateMeal(svc service.MealService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateMealRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		res, err := svc.UpdateEntry(c.UserContext(), c.Params("id"), req.MealID, req.MealName, model.MealUpdate{
			Calories: req.MealData.Calories,
			Protein:  req.MealData.Protein,
			Carbo:    req.MealData.Carbo,
			Fat:      req.MealData.Fat,
			Items:    req.MealData.Items,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":          "Meal updated successfully",
			"updatedMealsList": res.Entries,
			"totals":           res.Totals,
		})
	}
}

// DeleteMeal removes one entry; the remaining entries are renamed "Meal 1".."Meal n".
func DeleteMeal(svc service.MealService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteMealRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		res, err := svc.DeleteEntry(c.UserContext(), c.Params("id"), req.MealID, req.MealName)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message":          "Meal deleted and meal names updated successfully",
			"updatedMealsList": res.Entries,
			"totals":           res.Totals,
		})
	}
}
