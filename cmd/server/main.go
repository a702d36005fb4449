package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/buildco/catalog/config"
	httpDelivery "github.com/buildco/catalog/internal/delivery/http"
	"github.com/buildco/catalog/internal/domain"
	"github.com/buildco/catalog/internal/infrastructure/cache"
	"github.com/buildco/catalog/internal/infrastructure/catalogfile"
	"github.com/buildco/catalog/internal/infrastructure/formrelay"
	"github.com/buildco/catalog/internal/infrastructure/logger"
	"github.com/buildco/catalog/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Options{
		Development: !cfg.IsProduction(),
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("Starting catalog backend v1.0.0",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type))

	// Load the generated catalog once; it is immutable afterwards
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	catalog, err := catalogfile.NewFileSource(cfg.Catalog.OutputPath, zlog).Load(loadCtx)
	cancel()
	if err != nil {
		zlog.Fatal("Failed to load catalog", zap.Error(err))
	}
	for _, d := range usecase.DetectBrandDivergence(catalog) {
		zlog.Warn("Brand key diverges from group names",
			zap.String("brand", d.Brand),
			zap.Strings("groups", d.Groups),
			zap.String("reason", d.Reason))
	}

	// Initialize infrastructure dependencies
	var suggestionCache domain.SuggestionCache
	if cfg.Cache.Type == "memory" {
		memoryCache := cache.NewMemoryCache(cfg.Cache.MaxEntries)
		defer memoryCache.Close()
		suggestionCache = memoryCache
		zlog.Info("Suggestion cache enabled",
			zap.Duration("ttl", cfg.Cache.TTL),
			zap.Int("max_entries", cfg.Cache.MaxEntries))
	}

	var relay domain.ContactRelay
	if cfg.Contact.Email != "" {
		relay = formrelay.NewClient(formrelay.Config{
			BaseURL:        cfg.Contact.BaseURL,
			Recipient:      cfg.Contact.Email,
			Subject:        cfg.Contact.Subject,
			NextURL:        cfg.Contact.NextURL,
			RequestsPerMin: cfg.RateLimit.Relay,
			Logger:         zlog,
		})
		zlog.Info("Contact relay configured", zap.String("base_url", cfg.Contact.BaseURL))
	} else {
		zlog.Warn("Contact relay not configured, POST /api/v1/contact will return 501")
	}

	// Initialize usecase layer
	search := usecase.NewCatalogSearch(catalog, suggestionCache, usecase.CatalogSearchConfig{
		CacheTTL:        cfg.Cache.TTL,
		SuggestionLimit: cfg.Catalog.SuggestionLimit,
		Logger:          zlog,
	})

	handler := httpDelivery.NewHandler(search, relay, zlog)
	router := httpDelivery.SetupRouter(cfg, handler, zlog)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("Server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
