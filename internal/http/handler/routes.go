package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"nutritrack/docs"
	"nutritrack/internal/config"
	"nutritrack/internal/http/middleware"
	"nutritrack/internal/service"
)

// Services groups the use cases served over HTTP.
type Services struct {
	Users      service.UserService
	Meals      service.MealService
	Foods      service.FoodService
	Detection  service.DetectionService
	Images     service.ImageService
	Advice     service.AdviceService
	Support    service.SupportService
	Statistics service.StatisticsService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Support administration requires a bearer token of an admin email.
func RegisterRoutes(app *fiber.App, db Pinger, svc Services, authCfg config.AuthConfig) {
	app.Get("/swagger/*", swaggerUI)

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/register", Register(svc.Users))
	app.Post("/login", Login(svc.Users))

	app.Post("/meals", AddMeals(svc.Meals))
	app.Post("/food", LookupFood(svc.Foods))
	app.Post("/detect", DetectFood(svc.Detection))

	app.Get("/upload", ListImages(svc.Images))
	app.Post("/upload", UploadImage(svc.Images))
	app.Get("/upload/:id", GetImage(svc.Images))
	app.Delete("/upload/:id", DeleteImage(svc.Images))

	api := app.Group("/api")

	api.Get("/user/:id", GetUser(svc.Users))
	api.Put("/update_user", UpdateUser(svc.Users))
	api.Post("/update_basic_info", UpdateBasicInfo(svc.Users))
	api.Put("/update_password", UpdatePassword(svc.Users))
	api.Delete("/delete_user", DeleteUser(svc.Users))

	api.Get("/user/:id/meals", ListMeals(svc.Meals))
	api.Put("/user/:id/update_meal", UpdateMeal(svc.Meals))
	api.Delete("/user/:id/delete_meal", DeleteMeal(svc.Meals))

	api.Post("/user/:id/ai-nutrition-advice", GenerateAdvice(svc.Advice))
	api.Get("/statistics/:id", UserStatistics(svc.Statistics))

	api.Post("/support_message", SubmitSupportMessage(svc.Support))

	admin := []fiber.Handler{middleware.JWT(authCfg.JWTSecret), middleware.AdminOnly(authCfg.AdminEmails)}
	api.Get("/support_messages", append(admin, ListSupportMessages(svc.Support))...)
	api.Get("/support_message/:id", append(admin, GetSupportMessage(svc.Support))...)
	api.Put("/support_message/:id/status", append(admin, UpdateSupportStatus(svc.Support))...)
	api.Get("/support_stats", append(admin, SupportStats(svc.Support))...)
}

// swaggerUI serves the docs with host and scheme taken from the request.
func swaggerUI(c *fiber.Ctx) error {
	scheme := c.Protocol()
	if proto := c.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	docs.SwaggerInfo.Host = c.Get("Host")
	docs.SwaggerInfo.Schemes = []string{scheme}

	return swagger.HandlerDefault(c)
}
