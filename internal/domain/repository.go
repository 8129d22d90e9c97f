package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient defines the interface for fetching match candidates from
// the product catalog backend
type CatalogClient interface {
	SearchCandidates(ctx context.Context, keywords []string, limit int) ([]MatchCandidate, error)
}
