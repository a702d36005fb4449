package domain

import (
	"context"
	"time"
)

// SuggestionCache stores ranked suggestions keyed by normalized query
type SuggestionCache interface {
	Get(ctx context.Context, key string) ([]SearchHit, error)
	Set(ctx context.Context, key string, hits []SearchHit, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ContactRelay forwards contact form submissions to the hosted form service
type ContactRelay interface {
	Submit(ctx context.Context, msg *ContactMessage) error
}

// CatalogSource loads the generated catalog document
type CatalogSource interface {
	Load(ctx context.Context) (*Catalog, error)
}
