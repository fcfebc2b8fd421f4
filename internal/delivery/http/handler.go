package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/grocersmart/backend/internal/domain"
	"github.com/grocersmart/backend/internal/infrastructure/cache"
	"github.com/grocersmart/backend/internal/usecase"
)

// CacheStatsReporter exposes search cache counters
type CacheStatsReporter interface {
	Stats() cache.Stats
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService *usecase.SearchService
	session       *usecase.Session
	registry      *usecase.StoreRegistry
	cacheStats    CacheStatsReporter
}

// NewHandler creates a new HTTP handler. A nil search service makes the
// search endpoints answer 503; a nil session does the same for basket
// and location endpoints.
func NewHandler(searchService *usecase.SearchService, session *usecase.Session, registry *usecase.StoreRegistry) *Handler {
	return &Handler{
		searchService: searchService,
		session:       session,
		registry:      registry,
	}
}

// SetCacheStats makes the health check report search cache counters
func (h *Handler) SetCacheStats(reporter CacheStatsReporter) {
	h.cacheStats = reporter
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"service": "grocersmart-backend",
		"version": "1.0.0",
	}
	if h.cacheStats != nil {
		body["cache"] = h.cacheStats.Stats()
	}
	c.JSON(http.StatusOK, body)
}

// SearchProxy handles GET /api/search.
// It always answers 200 with a JSON array of provider records, substituting
// fallback data when the provider fails or the query cleans down to nothing.
// Only a missing query is rejected.
func (h *Handler) SearchProxy(c *gin.Context) {
	if h.searchService == nil {
		respondNotConfigured(c, "search")
		return
	}

	query := c.Query("query")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	raws, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidQuery) {
			log.Printf("[HTTP] Unexpected search error for %q: %v", query, err)
		}
		raws = usecase.FallbackProducts(query)
	}

	c.JSON(http.StatusOK, raws)
}

// FeaturedProducts handles GET /api/featured. Always 200 with four records.
func (h *Handler) FeaturedProducts(c *gin.Context) {
	if h.searchService == nil {
		respondNotConfigured(c, "search")
		return
	}

	c.JSON(http.StatusOK, h.searchService.Featured(c.Request.Context()))
}

// FeaturedCatalog handles GET /api/v1/products/featured and returns the
// featured records normalized
func (h *Handler) FeaturedCatalog(c *gin.Context) {
	if h.searchService == nil {
		respondNotConfigured(c, "search")
		return
	}

	products := h.searchService.FeaturedProducts(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// SearchProducts handles GET /api/v1/products/search and returns normalized products
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.searchService == nil {
		respondNotConfigured(c, "search")
		return
	}

	query := c.Query("query")
	products, err := h.searchService.SearchProducts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    strings.TrimSpace(query),
		"products": products,
		"count":    len(products),
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrNoPrices),
		errors.Is(err, domain.ErrInvalidZipCode),
		errors.Is(err, domain.ErrEmptyBasket),
		errors.Is(err, domain.ErrInvalidDeliveryOption):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrStoreNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTooManyStores):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamFailure),
		errors.Is(err, domain.ErrMalformedPayload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	respondError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
}

func respondNotConfigured(c *gin.Context, what string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error": what + " service not configured",
	})
}
