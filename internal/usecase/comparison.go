package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/grocersmart/backend/internal/domain"
)

// Compare prices the basket at every candidate store and ranks the stores
// cheapest first. A line with no positive price at a store is unavailable
// there and left out of that store's total and availability counts.
// Returns nil when the basket or the candidate set is empty.
//
// Compare is deterministic: identical inputs give identical totals and ranking.
// A store with nothing available totals 0 and still ranks.
func Compare(lines []domain.LineItem, stores []domain.Store) *domain.ComparisonSummary {
	if len(lines) == 0 || len(stores) == 0 {
		return nil
	}

	totalItems := 0
	for _, line := range lines {
		totalItems += line.Quantity
	}

	totals := make([]decimal.Decimal, len(stores))
	results := make([]domain.StoreComparison, len(stores))
	for i, store := range stores {
		total := decimal.Zero
		available, units := 0, 0

		for j := range lines {
			price, ok := lines[j].PriceAt(store.Name)
			if !ok {
				continue
			}
			qty := decimal.NewFromInt(int64(lines[j].Quantity))
			total = total.Add(decimal.NewFromFloat(price).Mul(qty))
			available++
			units += lines[j].Quantity
		}

		total = total.Round(2)
		totals[i] = total
		results[i] = domain.StoreComparison{
			StoreID:        store.ID,
			Store:          store.Name,
			TotalCost:      total.InexactFloat64(),
			AvailableItems: available,
			AvailableUnits: units,
			MissingItems:   len(lines) - available,
			HasAllItems:    available == len(lines),
		}
	}

	// Sort an index so totals stay paired with results
	order := make([]int, len(stores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return totals[order[a]].LessThan(totals[order[b]])
	})

	ranked := make([]domain.StoreComparison, len(order))
	for rank, idx := range order {
		ranked[rank] = results[idx]
		ranked[rank].Rank = rank + 1
	}

	summary := &domain.ComparisonSummary{
		Results:    ranked,
		BestStore:  ranked[0].Store,
		TotalItems: totalItems,
	}

	if len(order) >= 2 {
		savings := totals[order[len(order)-1]].Sub(totals[order[0]]).InexactFloat64()
		summary.Savings = &savings
	}

	return summary
}
