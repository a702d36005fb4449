package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/buildco/catalog/config"
	"github.com/buildco/catalog/internal/domain"
	"github.com/buildco/catalog/internal/infrastructure/catalogfile"
	"github.com/buildco/catalog/internal/infrastructure/logger"
	"github.com/buildco/catalog/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Options{
		Development: true,
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Error("Catalog build failed", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	_ = zlog.Sync()
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	in, err := os.Open(cfg.Catalog.RawPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrInputNotFound, cfg.Catalog.RawPath)
	}
	if err != nil {
		return fmt.Errorf("failed to open price list: %w", err)
	}
	defer in.Close()

	builder := usecase.NewCatalogBuilder(usecase.CatalogBuilderConfig{
		SectionTitle: cfg.Catalog.SectionTitle,
		DefaultImage: cfg.Catalog.DefaultImage,
		Logger:       zlog,
	})

	catalog, stats, err := builder.Parse(in)
	if err != nil {
		return err
	}

	if err := catalogfile.Write(cfg.Catalog.OutputPath, catalog); err != nil {
		return err
	}

	zlog.Info("Generated",
		zap.String("path", cfg.Catalog.OutputPath),
		zap.Int("groups", stats.Groups),
		zap.Int("variants", stats.Variants),
		zap.Int("skipped_lines", stats.SkippedLines),
		zap.Float64("min_price", stats.MinPrice),
		zap.Float64("max_price", stats.MaxPrice))

	for _, d := range usecase.DetectBrandDivergence(catalog) {
		zlog.Warn("Group names do not agree with their brand key",
			zap.String("brand", d.Brand),
			zap.Strings("groups", d.Groups),
			zap.String("reason", d.Reason))
	}

	return nil
}
