package app

import (
	"log"
	"os"
	"time"

	"timviec/internal/client"
	"timviec/internal/config"
	"timviec/internal/enrich"
	"timviec/internal/infrastructure/cache"
	"timviec/internal/snapshot"
	"timviec/internal/usecase"
)

// Container owns every long-lived dependency of the service and wires
// them together in dependency order.
type Container struct {
	Config    config.Config
	Logger    *log.Logger
	Cache     *cache.Redis
	Client    *client.JobPost
	Store     *snapshot.Store
	Refresher *snapshot.Refresher
	Discovery *usecase.Discovery
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, cfg.App.AppName+" | ", log.LstdFlags|log.Lmsgprefix)

	redisCache := cache.NewRedis(cfg.Redis, logger)

	jobClient := client.NewJobPost(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		cfg.Backend.DetailRPS,
		logger,
	)

	store := snapshot.NewStore()
	refresher := snapshot.NewRefresher(store, jobClient, redisCache, cfg.Snapshot.RefreshMinutes, logger)

	detailCache := enrich.NewCache(jobClient.JobDetail, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, logger)
	enricher := enrich.NewEnricher(detailCache, time.Duration(cfg.Backend.EnrichWaitMillis)*time.Millisecond)

	discovery := usecase.NewDiscovery(store, refresher, enricher, redisCache, logger)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Cache:     redisCache,
		Client:    jobClient,
		Store:     store,
		Refresher: refresher,
		Discovery: discovery,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Refresher != nil {
		c.Refresher.Stop()
	}
	return nil
}
