package groceryscout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/grocersmart/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	userAgent          = "GrocerSmart/1.0"
	defaultMaxAttempts = 3
	baseBackoff        = 500 * time.Millisecond
)

// Client handles communication with the GroceryScout product and store API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	maxAttempts int
	debug       bool
}

// NewClient creates a new GroceryScout API client.
// requestsPerHour bounds the outbound request rate; zero or negative disables limiting.
func NewClient(baseURL string, requestsPerHour int) *Client {
	limit := rate.Inf
	if requestsPerHour > 0 {
		limit = rate.Limit(float64(requestsPerHour) / 3600)
	}

	return &Client{
		httpClient: &http.Client{
			// Callers bound each call with a context deadline; this is a backstop
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(limit, 10),
		maxAttempts: defaultMaxAttempts,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retrying after the given attempt
func exponentialBackoff(attempt int) time.Duration {
	return baseBackoff * time.Duration(1<<(attempt-1))
}

// retryable reports whether a status code is worth retrying
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}

	return resp, nil
}

// getJSON performs a rate limited GET with retries on transport errors,
// 429 and 5xx responses, and returns the response body of the first 200.
func (c *Client) getJSON(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, ctx.Err())
			case <-time.After(exponentialBackoff(attempt - 1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[UPSTREAM] Rate limiter error: %v", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[UPSTREAM] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamFailure, readErr)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if c.debug {
			log.Printf("[UPSTREAM] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
		} else {
			log.Printf("[UPSTREAM] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		lastErr = fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
		if !retryable(resp.StatusCode) {
			return nil, lastErr
		}
	}

	return nil, lastErr
}

// SearchProducts searches the provider for products matching query.
// A payload that is not a JSON array is reported as ErrMalformedPayload.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.RawProduct, error) {
	if c.debug {
		log.Printf("[UPSTREAM] SearchProducts called with query: %q", query)
	}

	params := url.Values{}
	params.Set("query", query)
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	body, err := c.getJSON(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if !isJSONArray(body) {
		return nil, fmt.Errorf("%w: expected array", domain.ErrMalformedPayload)
	}

	var products []domain.RawProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrMalformedPayload, err)
	}

	if c.debug {
		log.Printf("[UPSTREAM] Found %d products for query: %q", len(products), query)
	}
	return products, nil
}

// FindStores looks up supermarkets within radius miles of zipCode
func (c *Client) FindStores(ctx context.Context, zipCode string, radius int) ([]domain.Store, error) {
	params := url.Values{}
	params.Set("zipcode", zipCode)
	params.Set("radius", strconv.Itoa(radius))
	reqURL := fmt.Sprintf("%s/supermarkets?%s", c.baseURL, params.Encode())

	body, err := c.getJSON(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if !isJSONArray(body) {
		return nil, fmt.Errorf("%w: expected array", domain.ErrMalformedPayload)
	}

	var records []storeRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrMalformedPayload, err)
	}

	return mapStores(records), nil
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '['
}
