package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prepstack/interview-coach/internal/config"
	"github.com/prepstack/interview-coach/internal/handler"
	"github.com/prepstack/interview-coach/internal/middleware"
	"github.com/prepstack/interview-coach/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	QuestionHandler *handler.QuestionHandler
	AttemptHandler  *handler.AttemptHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.QuestionHandler != nil {
		deps.QuestionHandler.Register(api.Group("/questions"))
	}

	if deps.AttemptHandler != nil {
		// Evaluation is the expensive path, so attempts get a dedicated limiter.
		attempts := api.Group("/attempts",
			middleware.RateLimit("attempts", cfg.RateLimitMax, cfg.RateLimitWindow))
		deps.AttemptHandler.Register(attempts)
	}
}
