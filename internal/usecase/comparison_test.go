package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocersmart/backend/internal/domain"
)

func storesNamed(names ...string) []domain.Store {
	stores := make([]domain.Store, len(names))
	for i, name := range names {
		stores[i] = domain.Store{ID: i + 1, Name: name}
	}
	return stores
}

func TestCompare_TwoStores(t *testing.T) {
	lines := []domain.LineItem{
		{
			ID:        "p1-A",
			ProductID: "p1",
			Store:     "A",
			Price:     2.00,
			Quantity:  2,
			Prices: []domain.StorePrice{
				{Store: "A", Price: 2.00},
				{Store: "B", Price: 3.00},
			},
		},
	}

	summary := Compare(lines, storesNamed("A", "B"))
	require.NotNil(t, summary)
	require.Len(t, summary.Results, 2)

	a, b := summary.Results[0], summary.Results[1]
	assert.Equal(t, "A", a.Store)
	assert.Equal(t, 4.00, a.TotalCost)
	assert.Equal(t, 1, a.Rank)
	assert.Equal(t, 1, a.AvailableItems)
	assert.Equal(t, 2, a.AvailableUnits)
	assert.True(t, a.HasAllItems)

	assert.Equal(t, "B", b.Store)
	assert.Equal(t, 6.00, b.TotalCost)
	assert.Equal(t, 2, b.Rank)

	assert.Equal(t, "A", summary.BestStore)
	assert.Equal(t, 2, summary.TotalItems)
	require.NotNil(t, summary.Savings)
	assert.Equal(t, 2.00, *summary.Savings)
}

func TestCompare_EmptyInputs(t *testing.T) {
	line := domain.LineItem{ID: "p1-A", Store: "A", Price: 1, Quantity: 1}

	assert.Nil(t, Compare(nil, storesNamed("A", "B")))
	assert.Nil(t, Compare([]domain.LineItem{line}, nil))
}

func TestCompare_SingleStoreHasNoSavings(t *testing.T) {
	lines := []domain.LineItem{{ID: "p1-A", Store: "A", Price: 1.25, Quantity: 3}}

	summary := Compare(lines, storesNamed("A"))
	require.NotNil(t, summary)
	assert.Nil(t, summary.Savings)
	assert.Equal(t, 3.75, summary.Results[0].TotalCost)
}

func TestCompare_UnavailableItemsExcluded(t *testing.T) {
	lines := []domain.LineItem{
		{
			ID: "milk-A", Store: "A", Price: 3.99, Quantity: 1,
			Prices: []domain.StorePrice{{Store: "A", Price: 3.99}, {Store: "B", Price: 4.29}},
		},
		{
			ID: "bread-A", Store: "A", Price: 2.49, Quantity: 2,
			Prices: []domain.StorePrice{{Store: "A", Price: 2.49}, {Store: "B", Price: 0}},
		},
	}

	summary := Compare(lines, storesNamed("A", "B", "C"))
	require.NotNil(t, summary)
	require.Len(t, summary.Results, 3)

	byStore := map[string]domain.StoreComparison{}
	for _, r := range summary.Results {
		byStore[r.Store] = r
	}

	assert.Equal(t, 8.97, byStore["A"].TotalCost)
	assert.True(t, byStore["A"].HasAllItems)

	assert.Equal(t, 4.29, byStore["B"].TotalCost)
	assert.Equal(t, 1, byStore["B"].AvailableItems)
	assert.Equal(t, 1, byStore["B"].MissingItems)
	assert.False(t, byStore["B"].HasAllItems)

	// Nothing is priced at C, yet it still ranks
	assert.Equal(t, 0.0, byStore["C"].TotalCost)
	assert.Equal(t, 0, byStore["C"].AvailableItems)
	assert.False(t, byStore["C"].HasAllItems)
	assert.Equal(t, "C", summary.BestStore)
	assert.Equal(t, 8.97, *summary.Savings)
}

func TestCompare_TiesKeepCandidateOrder(t *testing.T) {
	lines := []domain.LineItem{
		{
			ID: "p1-B", Store: "B", Price: 1.00, Quantity: 1,
			Prices: []domain.StorePrice{{Store: "A", Price: 1.00}, {Store: "B", Price: 1.00}},
		},
	}

	summary := Compare(lines, storesNamed("B", "A"))
	require.NotNil(t, summary)
	assert.Equal(t, "B", summary.Results[0].Store)
	assert.Equal(t, "A", summary.Results[1].Store)
	assert.Equal(t, 0.0, *summary.Savings)
}

func TestCompare_Deterministic(t *testing.T) {
	lines := []domain.LineItem{
		{
			ID: "p1-A", Store: "A", Price: 0.10, Quantity: 3,
			Prices: []domain.StorePrice{{Store: "A", Price: 0.10}, {Store: "B", Price: 0.20}},
		},
		{
			ID: "p2-B", Store: "B", Price: 0.70, Quantity: 1,
			Prices: []domain.StorePrice{{Store: "A", Price: 0.90}, {Store: "B", Price: 0.70}},
		},
	}
	stores := storesNamed("A", "B")

	first := Compare(lines, stores)
	second := Compare(lines, stores)
	assert.Equal(t, first, second)
	assert.Equal(t, 1.20, first.Results[0].TotalCost)
	assert.Equal(t, 1.30, first.Results[1].TotalCost)
}
