package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kasichka/backend/internal/domain"
)

// fakeCache is a minimal in-memory CacheRepository for service tests.
type fakeCache struct {
	data map[string]interface{}
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]interface{})}
}

func (f *fakeCache) Get(ctx context.Context, key string) (interface{}, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.data[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

// fakeCatalog returns canned candidates or a canned error.
type fakeCatalog struct {
	candidates []domain.MatchCandidate
	err        error
	calls      int
}

func (f *fakeCatalog) SearchCandidates(ctx context.Context, keywords []string, limit int) ([]domain.MatchCandidate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.candidates, nil
}

func milkCandidate() domain.MatchCandidate {
	return domain.MatchCandidate{
		ID:             "cat-milk-1",
		NormalizedName: "мляко прясно Vereia 3.6% 1л",
		Brand:          "Vereia",
		Size:           floatPtr(1),
		Unit:           "л",
		Keywords:       []string{"мляко", "milk", "vereia", "1л"},
	}
}

func TestProductServiceNormalize(t *testing.T) {
	svc := NewProductService(nil, nil, nil, nil, ProductServiceOptions{})

	t.Run("normalizes a valid name", func(t *testing.T) {
		res, err := svc.Normalize("Прясно мляко Верея 3,6% 1л")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.NormalizedName != "мляко прясно Vereia 3.6% 1л" {
			t.Errorf("NormalizedName = %q", res.NormalizedName)
		}
	})

	t.Run("rejects blank input", func(t *testing.T) {
		_, err := svc.Normalize("   ")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestResolveProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("matches against the catalog", func(t *testing.T) {
		catalog := &fakeCatalog{candidates: []domain.MatchCandidate{milkCandidate()}}
		svc := NewProductService(newFakeCache(), catalog, nil, nil, ProductServiceOptions{})

		res, err := svc.ResolveProduct(ctx, "Прясно мляко Верея 3,6% 1л")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Match == nil {
			t.Fatal("Match = nil, want a catalog match")
		}
		if res.Match.Candidate.ID != "cat-milk-1" {
			t.Errorf("Candidate.ID = %q, want cat-milk-1", res.Match.Candidate.ID)
		}
		if res.NeedsReview {
			t.Error("NeedsReview = true, want false")
		}
		if res.Source != "live" {
			t.Errorf("Source = %q, want live", res.Source)
		}
	})

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		catalog := &fakeCatalog{candidates: []domain.MatchCandidate{milkCandidate()}}
		cache := newFakeCache()
		svc := NewProductService(cache, catalog, nil, nil, ProductServiceOptions{})

		if _, err := svc.ResolveProduct(ctx, "Прясно мляко Верея 3,6% 1л"); err != nil {
			t.Fatalf("first resolve: %v", err)
		}
		res, err := svc.ResolveProduct(ctx, "Прясно мляко Верея 3,6% 1л")
		if err != nil {
			t.Fatalf("second resolve: %v", err)
		}
		if res.Source != "cache" {
			t.Errorf("Source = %q, want cache", res.Source)
		}
		if catalog.calls != 1 {
			t.Errorf("catalog calls = %d, want 1", catalog.calls)
		}
	})

	t.Run("flags unmatched product for review", func(t *testing.T) {
		catalog := &fakeCatalog{candidates: nil}
		svc := NewProductService(newFakeCache(), catalog, nil, nil, ProductServiceOptions{})

		res, err := svc.ResolveProduct(ctx, "мляко Верея 1л")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Match != nil {
			t.Errorf("Match = %+v, want nil", res.Match)
		}
		if !res.NeedsReview {
			t.Error("NeedsReview = false, want true")
		}
	})

	t.Run("degrades gracefully when the catalog is down", func(t *testing.T) {
		catalog := &fakeCatalog{err: errors.New("connection refused")}
		svc := NewProductService(newFakeCache(), catalog, nil, nil, ProductServiceOptions{})

		res, err := svc.ResolveProduct(ctx, "мляко Верея 1л")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.NeedsReview {
			t.Error("NeedsReview = false, want true")
		}
		if res.Normalized.NormalizedName == "" {
			t.Error("normalization should still run when the catalog fails")
		}
	})

	t.Run("works without a catalog", func(t *testing.T) {
		svc := NewProductService(newFakeCache(), nil, nil, nil, ProductServiceOptions{})

		res, err := svc.ResolveProduct(ctx, "мляко Верея 1л")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Match != nil || !res.NeedsReview {
			t.Errorf("resolution = %+v, want unmatched with review flag", res)
		}
	})

	t.Run("rejects blank input", func(t *testing.T) {
		svc := NewProductService(nil, nil, nil, nil, ProductServiceOptions{})
		_, err := svc.ResolveProduct(ctx, "")
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("returns error on cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		catalog := &fakeCatalog{err: context.Canceled}
		svc := NewProductService(nil, catalog, nil, nil, ProductServiceOptions{})

		_, err := svc.ResolveProduct(cancelled, "мляко")
		if err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
