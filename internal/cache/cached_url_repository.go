package cache

import (
	"context"

	"go-shortlink/internal/domain"
	"go-shortlink/internal/shortener"
)

// CachedURLRepository decorates a URL repository with a read-through
// cache. Writes go to the store first; the cache is populated on the way
// out and on lookup hits of the underlying store.
type CachedURLRepository struct {
	repo  shortener.URLRepository
	cache URLCache
}

var _ shortener.URLRepository = (*CachedURLRepository)(nil)

// NewCachedURLRepository wraps repo with the given cache.
func NewCachedURLRepository(repo shortener.URLRepository, c URLCache) *CachedURLRepository {
	return &CachedURLRepository{repo: repo, cache: c}
}

// Save delegates the conditional write, then primes the cache. Records are
// immutable, so a successful write can be cached immediately.
func (r *CachedURLRepository) Save(ctx context.Context, shortCode, originalURL string) (*domain.URL, error) {
	u, err := r.repo.Save(ctx, shortCode, originalURL)
	if err != nil {
		return nil, err
	}
	_ = r.cache.Set(ctx, u)
	return u, nil
}

// FindByShortCode serves from cache when possible, falling back to the
// store and populating the cache on the way back.
func (r *CachedURLRepository) FindByShortCode(ctx context.Context, code string) (*domain.URL, error) {
	if cached, err := r.cache.Get(ctx, code); err == nil && cached != nil {
		return cached, nil
	}

	u, err := r.repo.FindByShortCode(ctx, code)
	if err != nil {
		return nil, err
	}
	_ = r.cache.Set(ctx, u)
	return u, nil
}
