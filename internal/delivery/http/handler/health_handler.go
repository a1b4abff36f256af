package handler

import (
	"context"
	"time"

	"timviec/internal/pkg/response"
	"timviec/internal/snapshot"

	"github.com/gofiber/fiber/v3"
)

type cachePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store *snapshot.Store
	cache cachePinger
}

func NewHealthHandler(store *snapshot.Store, cache cachePinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Check)
}

// Check handles GET /health. The service stays healthy while the cache
// is down because the cache layer degrades to a bypass.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	records, loaded := h.store.Snapshot()

	cacheStatus := "ok"
	if h.cache != nil {
		if err := h.cache.Ping(c.Context()); err != nil {
			cacheStatus = "degraded"
		}
	}

	var refreshedAt *string
	if t := h.store.RefreshedAt(); !t.IsZero() {
		s := t.UTC().Format(time.RFC3339)
		refreshedAt = &s
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"status":           "ok",
		"snapshot_loaded":  loaded,
		"snapshot_records": len(records),
		"refreshed_at":     refreshedAt,
		"cache":            cacheStatus,
	})
}
