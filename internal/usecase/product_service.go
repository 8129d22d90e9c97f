package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kasichka/backend/internal/domain"
)

// defaultCandidateLimit caps how many catalog candidates a single
// resolution pulls in for scoring.
const defaultCandidateLimit = 25

// ProductService orchestrates the resolution pipeline for a receipt line:
// cache lookup, normalization, catalog candidate search, and matching.
type ProductService struct {
	cache       domain.CacheRepository
	catalog     domain.CatalogClient
	normalizer  *Normalizer
	matcher     *MatchingService
	cacheTTL    time.Duration
	candLimit   int
	enableDebug bool
}

// ProductServiceOptions configures optional behavior of the service.
type ProductServiceOptions struct {
	CacheTTL           time.Duration
	CandidateLimit     int
	EnableDebugLogging bool
}

// NewProductService wires the resolution pipeline. The cache and catalog
// may be nil: a nil cache disables memoization and a nil catalog disables
// matching, leaving normalization fully functional.
func NewProductService(
	cache domain.CacheRepository,
	catalog domain.CatalogClient,
	normalizer *Normalizer,
	matcher *MatchingService,
	opts ProductServiceOptions,
) *ProductService {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	if matcher == nil {
		matcher = NewMatchingService(normalizer, MatchConfig{})
	}
	if opts.CandidateLimit <= 0 {
		opts.CandidateLimit = defaultCandidateLimit
	}
	return &ProductService{
		cache:       cache,
		catalog:     catalog,
		normalizer:  normalizer,
		matcher:     matcher,
		cacheTTL:    opts.CacheTTL,
		candLimit:   opts.CandidateLimit,
		enableDebug: opts.EnableDebugLogging,
	}
}

// Normalize runs the pure normalization pipeline without touching the
// cache or the catalog.
func (s *ProductService) Normalize(raw string) (domain.NormalizedProduct, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.NormalizedProduct{}, fmt.Errorf("%w: product name is empty", domain.ErrInvalidRequest)
	}
	return s.normalizer.Normalize(raw), nil
}

// ResolveProduct runs the full pipeline for one receipt line. A resolution
// is always returned for valid input, even when the catalog is down or no
// candidate matched; those cases surface as NeedsReview instead of errors.
func (s *ProductService) ResolveProduct(ctx context.Context, raw string) (*domain.ProductResolution, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: product name is empty", domain.ErrInvalidRequest)
	}

	cacheKey := "product:" + foldToken(raw)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			if res, ok := cached.(*domain.ProductResolution); ok {
				s.debugf("cache hit for %q", raw)
				out := *res
				out.Source = "cache"
				return &out, nil
			}
		}
	}

	normalized := s.normalizer.Normalize(raw)
	s.debugf("normalized %q -> %q (confidence %.2f)", raw, normalized.NormalizedName, normalized.Confidence)

	resolution := &domain.ProductResolution{
		Normalized: normalized,
		Source:     "live",
	}

	candidates, err := s.searchCandidates(ctx, normalized.Keywords)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		// catalog trouble degrades to an unmatched resolution
		log.Printf("[PRODUCT] candidate search failed for %q: %v", raw, err)
		resolution.NeedsReview = true
		s.storeResolution(ctx, cacheKey, resolution)
		return resolution, nil
	}

	match, err := s.matcher.FindBestMatch(ctx, normalized, candidates)
	switch {
	case err == nil:
		resolution.Match = match
	case errors.Is(err, domain.ErrNoMatch):
		resolution.NeedsReview = true
	default:
		return nil, err
	}

	s.storeResolution(ctx, cacheKey, resolution)
	return resolution, nil
}

func (s *ProductService) searchCandidates(ctx context.Context, keywords []string) ([]domain.MatchCandidate, error) {
	if s.catalog == nil || len(keywords) == 0 {
		return nil, nil
	}
	candidates, err := s.catalog.SearchCandidates(ctx, keywords, s.candLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return candidates, nil
}

func (s *ProductService) storeResolution(ctx context.Context, key string, res *domain.ProductResolution) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, res, s.cacheTTL); err != nil {
		log.Printf("[PRODUCT] failed to cache resolution: %v", err)
	}
}

func (s *ProductService) debugf(format string, args ...interface{}) {
	if s.enableDebug {
		log.Printf("[PRODUCT] "+format, args...)
	}
}
