package usecase

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grocersmart/backend/internal/domain"
)

const (
	exactMatchReason    = "✅ Exact match (demo data)"
	partialMatchReason  = "🟡 Partial match (demo data)"
	featuredMatchReason = "✅ Featured product (demo data)"
	partialMatchBrand   = "Organic Choice"

	exactUPCPrefix   = "123456789012"
	partialUPCPrefix = "123456789013"
)

// fallbackEntry is one demo product served when the provider is unavailable.
// Numbers are kept as provider-style strings.
type fallbackEntry struct {
	key         string
	brand       string
	calories    string
	carbs       string
	protein     string
	fat         string
	prices      [3]string
	description string
	upcDigit    int
}

// Match order matters: the first key that matches a query wins
var fallbackCatalog = []fallbackEntry{
	{
		key: "apples", brand: "Fresh Farm",
		calories: "95", carbs: "25.0", protein: "0.5", fat: "0.3",
		prices:      [3]string{"3.99", "4.29", "3.79"},
		description: "Fresh Farm Apples - Premium Quality",
		upcDigit:    1,
	},
	{
		key: "bananas", brand: "Tropical Best",
		calories: "105", carbs: "27.0", protein: "1.3", fat: "0.4",
		prices:      [3]string{"2.99", "3.29", "2.79"},
		description: "Tropical Best Bananas - Sweet & Fresh",
		upcDigit:    2,
	},
	{
		key: "milk", brand: "Dairy Fresh",
		calories: "150", carbs: "12.0", protein: "8.0", fat: "8.0",
		prices:      [3]string{"3.99", "4.29", "3.79"},
		description: "Dairy Fresh Whole Milk - 1 Gallon",
		upcDigit:    3,
	},
	{
		key: "bread", brand: "Bakery Best",
		calories: "80", carbs: "15.0", protein: "3.0", fat: "0.5",
		prices:      [3]string{"2.49", "2.79", "2.29"},
		description: "Bakery Best Whole Wheat Bread",
		upcDigit:    4,
	},
	{
		key: "crackers", brand: "Nabisco",
		calories: "419", carbs: "77.4", protein: "6.5", fat: "9.7",
		prices:      [3]string{"4.49", "5.39", "5.89"},
		description: "Nabisco Original Graham Crackers, 14.4 OZ BOX",
		upcDigit:    5,
	},
}

// fallbackStore describes how each demo store prices the exact and partial matches
type fallbackStore struct {
	name            string
	unitCost        string
	partialUnitCost string
	partialMarkup   string
}

var fallbackStores = [3]fallbackStore{
	{name: "Fresh Market", unitCost: "$0.50/lb", partialUnitCost: "$0.56/lb", partialMarkup: "0.50"},
	{name: "Organic Grocers", unitCost: "$0.54/lb", partialUnitCost: "$0.62/lb", partialMarkup: "0.70"},
	{name: "Value Supermarket", unitCost: "$0.47/lb", partialUnitCost: "$0.52/lb", partialMarkup: "0.40"},
}

// FeaturedKeys are the queries shown on the landing page, in display order
var FeaturedKeys = []string{"apples", "bananas", "milk", "bread"}

// lookupFallback finds the demo entry whose key is contained in the query,
// or that contains the query. Unmatched queries get apples.
func lookupFallback(query string) fallbackEntry {
	q := strings.ToLower(query)
	for _, entry := range fallbackCatalog {
		if strings.Contains(q, entry.key) || strings.Contains(entry.key, q) {
			return entry
		}
	}
	return fallbackCatalog[0]
}

// lookupFeatured requires an exact key; unknown keys get apples
func lookupFeatured(key string) fallbackEntry {
	for _, entry := range fallbackCatalog {
		if entry.key == key {
			return entry
		}
	}
	return fallbackCatalog[0]
}

// FallbackProducts returns the deterministic demo records for query:
// an exact match and an organic partial match priced slightly higher.
func FallbackProducts(query string) []domain.RawProduct {
	entry := lookupFallback(query)
	return []domain.RawProduct{
		exactRecord(entry, exactMatchReason),
		partialRecord(entry),
	}
}

// FallbackFeatured returns the demo record for one featured key
func FallbackFeatured(key string) domain.RawProduct {
	return exactRecord(lookupFeatured(key), featuredMatchReason)
}

func exactRecord(entry fallbackEntry, reason string) domain.RawProduct {
	prices := make([]domain.RawPrice, len(fallbackStores))
	for i, store := range fallbackStores {
		prices[i] = domain.RawPrice{
			Store:    store.name,
			Price:    entry.prices[i],
			UnitCost: store.unitCost,
		}
	}

	upc := exactUPCPrefix + strconv.Itoa(entry.upcDigit)
	return domain.RawProduct{
		MatchScore:  floatPtr(3),
		MatchReason: reason,
		Prices:      prices,
		Metadata: domain.RawMetadata{
			Brand:         entry.brand,
			UPC:           upc,
			UPCWithCheck:  upc + "0",
			Carbohydrates: entry.carbs,
			EnergyKcal:    entry.calories,
			Fat:           entry.fat,
			ImageSmallURL: placeholderImage,
			Proteins:      entry.protein,
			Sugars:        scaleString(entry.carbs, "0.7", 1),
			Description:   entry.description,
		},
	}
}

func partialRecord(entry fallbackEntry) domain.RawProduct {
	prices := make([]domain.RawPrice, len(fallbackStores))
	for i, store := range fallbackStores {
		prices[i] = domain.RawPrice{
			Store:    store.name,
			Price:    addString(entry.prices[i], store.partialMarkup, 2),
			UnitCost: store.partialUnitCost,
		}
	}

	words := strings.Fields(entry.description)
	description := "Organic"
	if len(words) > 1 {
		description += " " + strings.Join(words[1:], " ")
	}

	upc := partialUPCPrefix + strconv.Itoa(entry.upcDigit)
	return domain.RawProduct{
		MatchScore:  floatPtr(2),
		MatchReason: partialMatchReason,
		Prices:      prices,
		Metadata: domain.RawMetadata{
			Brand:         partialMatchBrand,
			UPC:           upc,
			UPCWithCheck:  upc + "0",
			Carbohydrates: scaleString(entry.carbs, "0.9", 1),
			EnergyKcal:    scaleString(entry.calories, "0.9", 0),
			Fat:           scaleString(entry.fat, "0.8", 1),
			ImageSmallURL: placeholderImage,
			Proteins:      scaleString(entry.protein, "0.9", 1),
			Sugars:        scaleString(entry.carbs, "0.6", 1),
			Description:   description,
		},
	}
}

// scaleString multiplies a decimal string by factor and formats it with places decimals
func scaleString(value, factor string, places int32) string {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}
	return v.Mul(decimal.RequireFromString(factor)).StringFixed(places)
}

// addString adds delta to a decimal string and formats it with places decimals
func addString(value, delta string, places int32) string {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}
	return v.Add(decimal.RequireFromString(delta)).StringFixed(places)
}

func floatPtr(v float64) *float64 {
	return &v
}
