package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/ievms-go-api/internal/config"
	"github.com/noah-isme/ievms-go-api/internal/handler"
	"github.com/noah-isme/ievms-go-api/internal/middleware"
	"github.com/noah-isme/ievms-go-api/internal/models"
	"github.com/noah-isme/ievms-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	EvaluationHandler *handler.EvaluationHandler
	JWTMiddleware     fiber.Handler
	AuthRateLimit     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		if deps.AuthRateLimit != nil {
			auth.Use(deps.AuthRateLimit)
		}
		deps.AuthHandler.Register(auth)
	}

	if deps.EvaluationHandler != nil {
		evaluations := api.Group("/evaluations", jwtMiddleware)
		evaluations.Post("/submit", middleware.RequireRole(models.RoleEvaluator), deps.EvaluationHandler.Submit)
		evaluations.Get("/my", middleware.RequireRole(models.RoleEvaluator), deps.EvaluationHandler.ListMine)
		evaluations.Get("/all", middleware.RequireRole(models.RoleAdmin), deps.EvaluationHandler.ListAll)
	}
}
