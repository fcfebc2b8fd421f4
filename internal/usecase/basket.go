package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/grocersmart/backend/internal/domain"
)

// Basket owns the shopping basket line items. Lines are keyed by product
// and store, so one product bought from two stores is two lines.
// Every mutation is persisted; persistence failures are logged and never
// surface to callers.
type Basket struct {
	mu    sync.Mutex
	repo  domain.StateRepository
	items []domain.LineItem
}

// NewBasket creates an empty basket backed by repo. Call Load to restore saved lines.
func NewBasket(repo domain.StateRepository) *Basket {
	return &Basket{
		repo:  repo,
		items: []domain.LineItem{},
	}
}

// Load replaces the in-memory lines with the persisted ones.
// Missing or corrupt data leaves the basket empty.
func (b *Basket) Load(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = []domain.LineItem{}

	data, err := b.repo.Load(ctx, domain.StateKeyBasket)
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			log.Printf("[BASKET] Failed to load basket: %v", err)
		}
		return
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[BASKET] Discarding corrupt basket data: %v", err)
		return
	}

	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		b.items = append(b.items, item)
	}
}

// AddItem adds one unit of product bought at store. Prices that are not
// finite and positive are discarded first. An unknown or empty store
// resolves to the product's cheapest price. Adding a line that
// already exists increments its quantity by one.
func (b *Basket) AddItem(ctx context.Context, product domain.Product, store string) (domain.LineItem, error) {
	product.Prices = SanitizePrices(product.Prices)

	selected, ok := product.PriceAt(store)
	if !ok {
		selected, ok = product.Cheapest()
	}
	if !ok {
		return domain.LineItem{}, domain.ErrNoPrices
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := domain.LineItemID(product.ID, selected.Store)
	if i := b.indexOf(id); i >= 0 {
		b.items[i].Quantity++
		line := copyLine(b.items[i])
		b.persist(ctx)
		return line, nil
	}

	line := domain.LineItem{
		ID:        id,
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		Unit:      product.Unit,
		Quantity:  1,
		Store:     selected.Store,
		Price:     selected.Price,
		Prices:    append([]domain.StorePrice(nil), product.Prices...),
		Nutrition: product.Nutrition,
		Brand:     product.Brand,
	}
	b.items = append(b.items, line)
	b.persist(ctx)

	return copyLine(line), nil
}

// RemoveItem deletes the line with id. Unknown ids are a no-op.
func (b *Basket) RemoveItem(ctx context.Context, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	b.persist(ctx)
}

// UpdateQuantity sets the quantity of the line with id.
// A quantity below 1 removes the line. Unknown ids are a no-op.
func (b *Basket) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		b.RemoveItem(ctx, id)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return
	}
	b.items[i].Quantity = quantity
	b.persist(ctx)
}

// Clear empties the basket
func (b *Basket) Clear(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = []domain.LineItem{}
	b.persist(ctx)
}

// Item returns a copy of the line with id
func (b *Basket) Item(id string) (domain.LineItem, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return domain.LineItem{}, false
	}
	return copyLine(b.items[i]), true
}

// Items returns a copy of the lines in insertion order
func (b *Basket) Items() []domain.LineItem {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]domain.LineItem, len(b.items))
	for i, item := range b.items {
		items[i] = copyLine(item)
	}
	return items
}

// TotalItems is the sum of line quantities
func (b *Basket) TotalItems() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return totalItems(b.items)
}

// TotalPrice is the sum of price × quantity over all lines, rounded to cents
func (b *Basket) TotalPrice() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return subtotal(b.items).InexactFloat64()
}

func (b *Basket) indexOf(id string) int {
	for i := range b.items {
		if b.items[i].ID == id {
			return i
		}
	}
	return -1
}

// persist saves the whole collection. Callers hold b.mu.
func (b *Basket) persist(ctx context.Context) {
	data, err := json.Marshal(b.items)
	if err != nil {
		log.Printf("[BASKET] Failed to encode basket: %v", err)
		return
	}
	if err := b.repo.Save(ctx, domain.StateKeyBasket, data); err != nil {
		log.Printf("[BASKET] Failed to save basket: %v", err)
	}
}

func totalItems(items []domain.LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

func subtotal(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2)
}

func copyLine(line domain.LineItem) domain.LineItem {
	line.Prices = append([]domain.StorePrice(nil), line.Prices...)
	return line
}
