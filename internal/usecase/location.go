package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/grocersmart/backend/internal/domain"
)

const (
	zipCodeLength = 5

	// StoreSourceMock serves the built-in store table for every postal code
	StoreSourceMock = "mock"

	// StoreSourceUpstream looks stores up through the grocery provider
	StoreSourceUpstream = "upstream"

	autoSelectCount     = 3
	storeImage          = "/placeholder.svg?height=100&width=100"
	defaultStoreRadius  = 10
	defaultStoreTimeout = 5 * time.Second
)

var mockStores = []domain.Store{
	{ID: 1, Name: "Fresh Market", Address: "123 Main St", Distance: "0.8 miles", Image: storeImage},
	{ID: 2, Name: "Organic Grocers", Address: "456 Oak Ave", Distance: "1.2 miles", Image: storeImage},
	{ID: 3, Name: "Value Supermarket", Address: "789 Pine Rd", Distance: "1.5 miles", Image: storeImage},
	{ID: 4, Name: "Farmers Direct", Address: "101 Cedar Ln", Distance: "2.3 miles", Image: storeImage},
	{ID: 5, Name: "Super Saver", Address: "202 Maple Dr", Distance: "3.1 miles", Image: storeImage},
}

// SanitizeZipCode keeps only digits and truncates to a 5-digit postal code
func SanitizeZipCode(zip string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, zip)
	if len(digits) > zipCodeLength {
		digits = digits[:zipCodeLength]
	}
	return digits
}

// IsLocationSet reports whether zip has at least 5 digits
func IsLocationSet(zip string) bool {
	return len(SanitizeZipCode(zip)) >= zipCodeLength
}

// StoreRegistryConfig holds configuration for the store registry
type StoreRegistryConfig struct {
	Source  string
	Radius  int
	Timeout time.Duration
}

// StoreRegistry resolves a postal code to candidate stores, either from
// the built-in table or from the provider.
type StoreRegistry struct {
	client  domain.GroceryClient
	source  string
	radius  int
	timeout time.Duration
}

// NewStoreRegistry creates a store registry. client may be nil in mock mode.
func NewStoreRegistry(client domain.GroceryClient, config StoreRegistryConfig) *StoreRegistry {
	source := config.Source
	if source == "" || client == nil {
		source = StoreSourceMock
	}

	radius := config.Radius
	if radius <= 0 {
		radius = defaultStoreRadius
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}

	return &StoreRegistry{
		client:  client,
		source:  source,
		radius:  radius,
		timeout: timeout,
	}
}

// ResolveStores returns the candidate stores for zip. Provider failures
// yield an empty list; no stores are invented.
func (r *StoreRegistry) ResolveStores(ctx context.Context, zip string) []domain.Store {
	zip = SanitizeZipCode(zip)
	if len(zip) < zipCodeLength {
		return []domain.Store{}
	}

	if r.source == StoreSourceMock {
		return append([]domain.Store(nil), mockStores...)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	stores, err := r.client.FindStores(ctx, zip, r.radius)
	if err != nil {
		log.Printf("[STORES] Store lookup failed for %s: %v", zip, err)
		return []domain.Store{}
	}
	if stores == nil {
		return []domain.Store{}
	}
	return stores
}

// Location holds the user's postal code, the stores available there and
// the stores selected for comparison.
type Location struct {
	mu        sync.Mutex
	repo      domain.StateRepository
	registry  *StoreRegistry
	zipCode   string
	available []domain.Store
	selected  []domain.Store
}

// NewLocation creates an empty location. Call Load to restore saved state.
func NewLocation(repo domain.StateRepository, registry *StoreRegistry) *Location {
	return &Location{
		repo:      repo,
		registry:  registry,
		available: []domain.Store{},
		selected:  []domain.Store{},
	}
}

// Load restores the saved postal code and selected stores.
// Missing or corrupt data leaves the corresponding field empty.
func (l *Location) Load(ctx context.Context) {
	zip := ""
	if data, err := l.repo.Load(ctx, domain.StateKeyZipCode); err == nil {
		zip = SanitizeZipCode(string(data))
	} else if !errors.Is(err, domain.ErrStateNotFound) {
		log.Printf("[LOCATION] Failed to load zip code: %v", err)
	}

	selected := []domain.Store{}
	if data, err := l.repo.Load(ctx, domain.StateKeySelectedStores); err == nil {
		var stores []domain.Store
		if err := json.Unmarshal(data, &stores); err != nil {
			log.Printf("[LOCATION] Discarding corrupt selected stores: %v", err)
		} else if len(stores) <= domain.MaxSelectedStores {
			selected = append(selected, stores...)
		}
	} else if !errors.Is(err, domain.ErrStateNotFound) {
		log.Printf("[LOCATION] Failed to load selected stores: %v", err)
	}

	available := []domain.Store{}
	if zip != "" {
		available = l.registry.ResolveStores(ctx, zip)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.zipCode = zip
	l.selected = selected
	l.available = available
}

// SetZipCode sets the postal code and loads its stores. When no store is
// selected yet, the first three available stores are selected.
func (l *Location) SetZipCode(ctx context.Context, zip string) (domain.LocationSelection, error) {
	zip = SanitizeZipCode(zip)
	if len(zip) < zipCodeLength {
		return domain.LocationSelection{}, domain.ErrInvalidZipCode
	}

	available := l.registry.ResolveStores(ctx, zip)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.zipCode = zip
	l.available = available
	if len(l.selected) == 0 {
		n := autoSelectCount
		if n > len(available) {
			n = len(available)
		}
		l.selected = append([]domain.Store{}, available[:n]...)
	}

	l.persistZipCode(ctx)
	l.persistSelected(ctx)

	return l.selection(), nil
}

// ToggleStore selects or deselects an available store by id.
// Selecting beyond MaxSelectedStores fails with ErrTooManyStores.
func (l *Location) ToggleStore(ctx context.Context, id int) (domain.LocationSelection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := indexOfStore(l.selected, id); i >= 0 {
		l.selected = append(l.selected[:i], l.selected[i+1:]...)
		l.persistSelected(ctx)
		return l.selection(), nil
	}

	i := indexOfStore(l.available, id)
	if i < 0 {
		return domain.LocationSelection{}, domain.ErrStoreNotFound
	}
	if len(l.selected) >= domain.MaxSelectedStores {
		return domain.LocationSelection{}, domain.ErrTooManyStores
	}

	l.selected = append(l.selected, l.available[i])
	l.persistSelected(ctx)
	return l.selection(), nil
}

// SetSelectedStores replaces the selection with the available stores named by ids
func (l *Location) SetSelectedStores(ctx context.Context, ids []int) (domain.LocationSelection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(ids) > domain.MaxSelectedStores {
		return domain.LocationSelection{}, domain.ErrTooManyStores
	}

	selected := make([]domain.Store, 0, len(ids))
	for _, id := range ids {
		if indexOfStore(selected, id) >= 0 {
			continue
		}
		i := indexOfStore(l.available, id)
		if i < 0 {
			return domain.LocationSelection{}, domain.ErrStoreNotFound
		}
		selected = append(selected, l.available[i])
	}

	l.selected = selected
	l.persistSelected(ctx)
	return l.selection(), nil
}

// Clear forgets the postal code and every store
func (l *Location) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.zipCode = ""
	l.available = []domain.Store{}
	l.selected = []domain.Store{}

	for _, key := range []string{domain.StateKeyZipCode, domain.StateKeySelectedStores} {
		if err := l.repo.Delete(ctx, key); err != nil {
			log.Printf("[LOCATION] Failed to delete %s: %v", key, err)
		}
	}
}

// Selection returns a snapshot of the current location state
func (l *Location) Selection() domain.LocationSelection {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.selection()
}

// SelectedStores returns a copy of the selected stores
func (l *Location) SelectedStores() []domain.Store {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]domain.Store{}, l.selected...)
}

func (l *Location) selection() domain.LocationSelection {
	return domain.LocationSelection{
		ZipCode:         l.zipCode,
		SelectedStores:  append([]domain.Store{}, l.selected...),
		AvailableStores: append([]domain.Store{}, l.available...),
		IsLocationSet:   IsLocationSet(l.zipCode),
	}
}

func (l *Location) persistZipCode(ctx context.Context) {
	if err := l.repo.Save(ctx, domain.StateKeyZipCode, []byte(l.zipCode)); err != nil {
		log.Printf("[LOCATION] Failed to save zip code: %v", err)
	}
}

func (l *Location) persistSelected(ctx context.Context) {
	data, err := json.Marshal(l.selected)
	if err != nil {
		log.Printf("[LOCATION] Failed to encode selected stores: %v", err)
		return
	}
	if err := l.repo.Save(ctx, domain.StateKeySelectedStores, data); err != nil {
		log.Printf("[LOCATION] Failed to save selected stores: %v", err)
	}
}

func indexOfStore(stores []domain.Store, id int) int {
	for i := range stores {
		if stores[i].ID == id {
			return i
		}
	}
	return -1
}
