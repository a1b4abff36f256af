package app

import (
	"fmt"
	"strings"

	"timviec/internal/config"
	"timviec/internal/delivery/http/handler"
	"timviec/internal/delivery/http/middleware"
	"timviec/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container, the fiber app and the background
// refresher, and returns a cleanup for shutdown.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)

	if err := c.Refresher.Start(); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("start snapshot refresher: %w", err)
	}

	return app, c.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	if f == nil {
		return
	}

	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(f *fiber.App, c *Container) {
	if f == nil {
		return
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.Store, c.Cache),
		handler.NewJobsHandler(c.Discovery),
	)
	registry.Register(f)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
