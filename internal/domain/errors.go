package domain

import "errors"

var (
	// ErrProductNotFound is returned when the upstream provider has no result for a query
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidQuery is returned when a search query is empty after cleaning
	ErrInvalidQuery = errors.New("query parameter is required")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUpstreamFailure is returned when a request to the grocery data provider fails
	ErrUpstreamFailure = errors.New("grocery API request failed")

	// ErrMalformedPayload is returned when the upstream response is not the expected shape
	ErrMalformedPayload = errors.New("grocery API returned malformed payload")

	// ErrStateNotFound is returned when a persisted state key does not exist
	ErrStateNotFound = errors.New("state not found")

	// ErrNoPrices is returned when a product without any valid price is added to the basket
	ErrNoPrices = errors.New("product has no valid prices")

	// ErrItemNotFound is returned when a basket line item does not exist
	ErrItemNotFound = errors.New("basket item not found")

	// ErrEmptyBasket is returned when an operation needs at least one basket line
	ErrEmptyBasket = errors.New("basket is empty")

	// ErrInvalidZipCode is returned when a postal code has fewer than 5 digits
	ErrInvalidZipCode = errors.New("zip code must contain at least 5 digits")

	// ErrStoreNotFound is returned when a store id is not among the available stores
	ErrStoreNotFound = errors.New("store not found")

	// ErrTooManyStores is returned when selecting more than MaxSelectedStores stores
	ErrTooManyStores = errors.New("too many stores selected")

	// ErrInvalidDeliveryOption is returned for an unknown checkout delivery option
	ErrInvalidDeliveryOption = errors.New("invalid delivery option")
)
