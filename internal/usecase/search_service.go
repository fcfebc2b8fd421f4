package usecase

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grocersmart/backend/internal/domain"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL        time.Duration
	SearchTimeout   time.Duration
	FeaturedTimeout time.Duration
	Debug           bool
}

// SearchService proxies product searches to the grocery provider.
// Provider failures never reach callers: they get deterministic fallback data instead.
type SearchService struct {
	cache           domain.CacheRepository
	client          domain.GroceryClient
	preprocessor    *QueryPreprocessor
	cacheTTL        time.Duration
	searchTimeout   time.Duration
	featuredTimeout time.Duration
}

// NewSearchService creates a new search service with dependencies
func NewSearchService(
	cache domain.CacheRepository,
	client domain.GroceryClient,
	config SearchServiceConfig,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	searchTimeout := config.SearchTimeout
	if searchTimeout == 0 {
		searchTimeout = 10 * time.Second
	}

	featuredTimeout := config.FeaturedTimeout
	if featuredTimeout == 0 {
		featuredTimeout = 5 * time.Second
	}

	return &SearchService{
		cache:           cache,
		client:          client,
		preprocessor:    NewQueryPreprocessor(config.Debug),
		cacheTTL:        cacheTTL,
		searchTimeout:   searchTimeout,
		featuredTimeout: featuredTimeout,
	}
}

// Search returns the provider's raw records for query.
// Flow: validate -> check cache -> search provider -> cache -> return.
// Any provider failure returns the fallback records for the query; only an
// empty query is an error.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.RawProduct, error) {
	cleaned, err := s.preprocessor.Validate(query)
	if err != nil {
		return nil, err
	}

	cacheKey := s.preprocessor.CacheKey(cleaned)
	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		return cached, nil
	}

	searchCtx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	raws, err := s.client.SearchProducts(searchCtx, cleaned)
	if err != nil {
		log.Printf("[SEARCH] Provider search failed for %q, using fallback data: %v", cleaned, err)
		return FallbackProducts(cleaned), nil
	}
	if raws == nil {
		raws = []domain.RawProduct{}
	}

	if err := s.cache.Set(ctx, cacheKey, raws, s.cacheTTL); err != nil {
		log.Printf("[SEARCH] Failed to cache results for %q: %v", cleaned, err)
	}

	return raws, nil
}

// SearchProducts is Search followed by normalization. Records without a
// valid price are dropped.
func (s *SearchService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	raws, err := s.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(raws), nil
}

// Featured returns one record per featured key, in FeaturedKeys order.
// Each key is fetched concurrently under its own timeout and falls back
// to demo data independently of the others.
func (s *SearchService) Featured(ctx context.Context) []domain.RawProduct {
	results := make([]domain.RawProduct, len(FeaturedKeys))

	var g errgroup.Group
	for i, key := range FeaturedKeys {
		g.Go(func() error {
			results[i] = s.featuredOne(ctx, key)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// FeaturedProducts is Featured followed by normalization
func (s *SearchService) FeaturedProducts(ctx context.Context) []domain.Product {
	raws := s.Featured(ctx)
	products := make([]domain.Product, len(raws))
	for i, raw := range raws {
		products[i] = NormalizeWithIndex(raw, i)
	}
	return products
}

func (s *SearchService) featuredOne(ctx context.Context, key string) domain.RawProduct {
	fetchCtx, cancel := context.WithTimeout(ctx, s.featuredTimeout)
	defer cancel()

	raws, err := s.client.SearchProducts(fetchCtx, key)
	if err != nil || len(raws) == 0 {
		log.Printf("[SEARCH] Using fallback data for featured %q: %v", key, err)
		return FallbackFeatured(key)
	}
	return raws[0]
}

// getFromCache retrieves search records from cache
func (s *SearchService) getFromCache(ctx context.Context, key string) ([]domain.RawProduct, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case []domain.RawProduct:
		return v, nil
	case json.RawMessage:
		return decodeCached(v)
	case []byte:
		return decodeCached(v)
	default:
		return nil, domain.ErrCacheMiss
	}
}

func decodeCached(data []byte) ([]domain.RawProduct, error) {
	var raws []domain.RawProduct
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return raws, nil
}
