package app

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/grocersmart/backend/config"
	httpDelivery "github.com/grocersmart/backend/internal/delivery/http"
	"github.com/grocersmart/backend/internal/domain"
	"github.com/grocersmart/backend/internal/infrastructure/cache"
	"github.com/grocersmart/backend/internal/infrastructure/groceryscout"
	"github.com/grocersmart/backend/internal/infrastructure/storage/memory"
	"github.com/grocersmart/backend/internal/infrastructure/storage/sqlite"
	"github.com/grocersmart/backend/internal/usecase"
)

// Storage types
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// App holds the wired services shared by the HTTP server and the CLI
type App struct {
	Config   *config.Config
	Search   *usecase.SearchService
	Registry *usecase.StoreRegistry
	Session  *usecase.Session

	cache  *cache.MemoryCache
	closer func() error
}

// New wires infrastructure and usecases from cfg and restores the
// persisted session.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	memoryCache := cache.NewMemoryCache()

	client := groceryscout.NewClient(cfg.Upstream.BaseURL, cfg.RateLimit.Upstream)
	if cfg.Server.Environment == "development" {
		client.SetDebug(true)
		log.Printf("Grocery client debug mode enabled")
	}

	state, closer, err := openStateRepository(cfg.Storage)
	if err != nil {
		memoryCache.Close()
		return nil, err
	}

	registry := usecase.NewStoreRegistry(client, usecase.StoreRegistryConfig{
		Source: cfg.Stores.Source,
		Radius: cfg.Stores.Radius,
	})

	search := usecase.NewSearchService(memoryCache, client, usecase.SearchServiceConfig{
		CacheTTL:        cfg.Cache.TTL,
		SearchTimeout:   cfg.Upstream.SearchTimeout,
		FeaturedTimeout: cfg.Upstream.FeaturedTimeout,
		Debug:           cfg.Server.Environment == "development",
	})

	session := usecase.NewSession(state, registry)
	session.Load(ctx)

	return &App{
		Config:   cfg,
		Search:   search,
		Registry: registry,
		Session:  session,
		cache:    memoryCache,
		closer:   closer,
	}, nil
}

// Router builds the HTTP router over the app's services
func (a *App) Router() *gin.Engine {
	handler := httpDelivery.NewHandler(a.Search, a.Session, a.Registry)
	handler.SetCacheStats(a.cache)
	return httpDelivery.SetupRouter(a.Config, handler)
}

// Close stops the cache sweeper and releases the state store
func (a *App) Close() error {
	a.cache.Close()
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

func openStateRepository(cfg config.StorageConfig) (domain.StateRepository, func() error, error) {
	switch cfg.Type {
	case StorageSQLite:
		store, err := sqlite.NewStateStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open state store: %w", err)
		}
		log.Printf("State store: sqlite (%s)", store.Path())
		return store, store.Close, nil
	case StorageMemory, "":
		log.Printf("State store: memory")
		return memory.NewStateStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
