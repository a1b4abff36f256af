package v1

import (
	"timviec/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, jobs *handler.JobsHandler) {
	if r == nil || jobs == nil {
		return
	}

	jobs.RegisterRoutes(r.Group("/jobs"))
}
