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

// GroceryClient defines the interface for the upstream grocery data provider
type GroceryClient interface {
	SearchProducts(ctx context.Context, query string) ([]RawProduct, error)
	FindStores(ctx context.Context, zipCode string, radius int) ([]Store, error)
}

// StateRepository persists small blobs of client state under fixed keys.
// It stands in for browser local storage and is best effort.
type StateRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Persisted state keys
const (
	StateKeyBasket         = "grocersmart-basket"
	StateKeyZipCode        = "grocersmart-zipcode"
	StateKeySelectedStores = "grocersmart-selected-stores"
)
