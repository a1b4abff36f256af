package routes

import (
	"timviec/internal/delivery/http/handler"
	v1 "timviec/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	jobs   *handler.JobsHandler
}

func NewRegistry(health *handler.HealthHandler, jobs *handler.JobsHandler) *Registry {
	return &Registry{health: health, jobs: jobs}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.jobs)
}
