package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/grocersmart/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string]interface{}
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockGroceryClient is a mock implementation of domain.GroceryClient
type MockGroceryClient struct {
	mu            sync.Mutex
	searchResults map[string][]domain.RawProduct
	searchError   error
	searchDelay   time.Duration
	searchCalls   []string
	stores        []domain.Store
	storesError   error
	storesCalls   int
}

func NewMockGroceryClient() *MockGroceryClient {
	return &MockGroceryClient{
		searchResults: make(map[string][]domain.RawProduct),
	}
}

func (m *MockGroceryClient) SearchProducts(ctx context.Context, query string) ([]domain.RawProduct, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, query)
	delay := m.searchDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResults[query], nil
}

func (m *MockGroceryClient) FindStores(ctx context.Context, zipCode string, radius int) ([]domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storesCalls++
	if m.storesError != nil {
		return nil, m.storesError
	}
	return m.stores, nil
}

func (m *MockGroceryClient) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.searchCalls...)
}

// MockStateRepository is a mock implementation of domain.StateRepository
type MockStateRepository struct {
	mu        sync.Mutex
	values    map[string][]byte
	saveError error
	loadError error
	saves     int
}

func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{
		values: make(map[string][]byte),
	}
}

func (m *MockStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadError != nil {
		return nil, m.loadError
	}
	v, ok := m.values[key]
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MockStateRepository) Save(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveError != nil {
		return m.saveError
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MockStateRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MockStateRepository) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return string(v), ok
}

func testProduct(id string, prices ...domain.StorePrice) domain.Product {
	return domain.Product{
		ID:     id,
		Name:   "Product " + id,
		Image:  placeholderImage,
		Unit:   "each",
		Prices: prices,
		Nutrition: domain.Nutrition{
			Calories: 100,
			Protein:  defaultProtein,
			Fat:      defaultFat,
			Carbs:    defaultCarbs,
		},
	}
}
