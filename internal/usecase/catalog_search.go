package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/buildco/catalog/internal/domain"
)

// CatalogSearchConfig holds configuration for the catalog search service
type CatalogSearchConfig struct {
	CacheTTL        time.Duration
	SuggestionLimit int
	Logger          *zap.Logger
}

// CatalogSearch serves brand listing, filtering and suggestions over one
// immutable catalog
type CatalogSearch struct {
	catalog  *domain.Catalog
	index    *BrandIndex
	cache    domain.SuggestionCache
	cacheTTL time.Duration
	limit    int
	logger   *zap.Logger
}

// NewCatalogSearch indexes the catalog. cache may be nil.
func NewCatalogSearch(
	catalog *domain.Catalog,
	cache domain.SuggestionCache,
	config CatalogSearchConfig,
) *CatalogSearch {
	if catalog == nil {
		catalog = &domain.Catalog{Items: []domain.ProductItem{}}
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	limit := config.SuggestionLimit
	if limit <= 0 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogSearch{
		catalog:  catalog,
		index:    NewBrandIndex(catalog, DefaultProductImage),
		cache:    cache,
		cacheTTL: cacheTTL,
		limit:    limit,
		logger:   logger,
	}
}

// Catalog returns the loaded catalog document
func (s *CatalogSearch) Catalog() *domain.Catalog {
	return s.catalog
}

// Index returns the brand index
func (s *CatalogSearch) Index() *BrandIndex {
	return s.index
}

// Brands lists the selectable brand buckets, all-products first
func (s *CatalogSearch) Brands() []domain.BrandSummary {
	return s.index.Summaries()
}

// Products returns a brand bucket narrowed by query
func (s *CatalogSearch) Products(ctx context.Context, brand, query string) (*domain.BrandGroup, error) {
	if brand == "" {
		return nil, domain.ErrInvalidRequest
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	group, err := s.index.Filter(brand, query)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Suggest returns ranked suggestions for query across the whole catalog
func (s *CatalogSearch) Suggest(ctx context.Context, query string) ([]domain.SearchHit, error) {
	q := Normalize(query)
	if q == "" {
		return []domain.SearchHit{}, nil
	}

	cacheKey := s.generateCacheKey(q)
	if hits, err := s.getFromCache(ctx, cacheKey); err == nil {
		return hits, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	hits := s.index.Suggest(q, s.limit)

	if err := s.setInCache(ctx, cacheKey, hits); err != nil {
		s.logger.Warn("Failed to cache suggestions", zap.String("query", q), zap.Error(err))
	}

	s.logger.Debug("Suggestions computed", zap.String("query", q), zap.Int("hits", len(hits)))
	return hits, nil
}

// generateCacheKey creates the cache key for a normalized query.
// Format: "suggest:{limit}:{query}"
func (s *CatalogSearch) generateCacheKey(q string) string {
	return fmt.Sprintf("suggest:%d:%s", s.limit, q)
}

func (s *CatalogSearch) getFromCache(ctx context.Context, key string) ([]domain.SearchHit, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	return s.cache.Get(ctx, key)
}

func (s *CatalogSearch) setInCache(ctx context.Context, key string, hits []domain.SearchHit) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, key, hits, s.cacheTTL)
}
