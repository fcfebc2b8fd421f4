package usecase

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/grocersmart/backend/internal/domain"
)

// Defaults applied when provider data is missing, unparseable or zero
const (
	defaultCalories  = 100
	defaultProtein   = "2g"
	defaultFat       = "0.5g"
	defaultCarbs     = "25g"
	defaultSugars    = "14.4g"
	defaultUnit      = "each"
	unknownStore     = "Unknown Store"
	placeholderImage = "/placeholder.svg?height=200&width=200"
)

var (
	// Matches the unit suffix of a unit cost like "$0.31/oz"
	unitSuffixRegex = regexp.MustCompile(`/(\w+)$`)

	// Matches the leading numeric part of a string, the way a lenient float parser reads it
	leadingNumberRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// randomSuffix generates the identity suffix for products that have neither
// a UPC nor a fallback index. Not deterministic.
var randomSuffix = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// Normalize converts an untrusted provider record into a Product.
// It never fails; every missing or malformed field degrades to a default.
// Products without a UPC get a random identity.
func Normalize(raw domain.RawProduct) domain.Product {
	return normalize(raw, 0, false)
}

// NormalizeWithIndex is Normalize with a positional fallback identity
// ("product-<index>") for records that carry no UPC.
func NormalizeWithIndex(raw domain.RawProduct, index int) domain.Product {
	return normalize(raw, index, true)
}

// NormalizeAll normalizes a search result set and drops every record
// that ends up without a valid price.
func NormalizeAll(raws []domain.RawProduct) []domain.Product {
	products := make([]domain.Product, 0, len(raws))
	for i, raw := range raws {
		product := NormalizeWithIndex(raw, i)
		if len(product.Prices) == 0 {
			continue
		}
		products = append(products, product)
	}
	return products
}

func normalize(raw domain.RawProduct, index int, hasIndex bool) domain.Product {
	meta := raw.Metadata

	product := domain.Product{
		ID:          productID(meta.UPC, index, hasIndex),
		Name:        meta.Description,
		Image:       meta.ImageSmallURL,
		Unit:        extractUnit(raw.Prices),
		Prices:      normalizePrices(raw.Prices),
		Nutrition:   normalizeNutrition(meta),
		Brand:       meta.Brand,
		Description: meta.Description,
		UPC:         meta.UPC,
		MatchScore:  raw.MatchScore,
		MatchReason: raw.MatchReason,
	}

	if product.Name == "" {
		if hasIndex {
			product.Name = "Product " + strconv.Itoa(index)
		} else {
			product.Name = "Product"
		}
	}
	if product.Image == "" {
		product.Image = placeholderImage
	}

	return product
}

func productID(upc string, index int, hasIndex bool) string {
	if upc = strings.TrimSpace(upc); upc != "" {
		return upc
	}
	if hasIndex {
		return "product-" + strconv.Itoa(index)
	}
	return "product-" + randomSuffix()
}

// normalizePrices drops unparseable and non-positive prices and sorts the
// rest ascending. Index 0 is always the cheapest store.
func normalizePrices(raw []domain.RawPrice) []domain.StorePrice {
	prices := make([]domain.StorePrice, 0, len(raw))
	for _, rp := range raw {
		price, ok := parseNumber(rp.Price)
		if !ok || price <= 0 {
			continue
		}

		store := strings.TrimSpace(rp.Store)
		if store == "" {
			store = unknownStore
		}

		prices = append(prices, domain.StorePrice{
			Store:    store,
			Price:    price,
			UnitCost: rp.UnitCost,
		})
	}

	sortPrices(prices)
	return prices
}

// SanitizePrices enforces the normalized price invariant on prices that
// did not come from a provider record: finite, positive and ascending.
func SanitizePrices(prices []domain.StorePrice) []domain.StorePrice {
	clean := make([]domain.StorePrice, 0, len(prices))
	for _, sp := range prices {
		if math.IsNaN(sp.Price) || math.IsInf(sp.Price, 0) || sp.Price <= 0 {
			continue
		}
		if sp.Store = strings.TrimSpace(sp.Store); sp.Store == "" {
			sp.Store = unknownStore
		}
		clean = append(clean, sp)
	}

	sortPrices(clean)
	return clean
}

func sortPrices(prices []domain.StorePrice) {
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Price < prices[j].Price
	})
}

// extractUnit reads the unit label off the first listed price's unit cost
func extractUnit(raw []domain.RawPrice) string {
	if len(raw) == 0 {
		return defaultUnit
	}
	m := unitSuffixRegex.FindStringSubmatch(raw[0].UnitCost)
	if m == nil {
		return defaultUnit
	}
	return m[1]
}

func normalizeNutrition(meta domain.RawMetadata) domain.Nutrition {
	nutrition := domain.Nutrition{
		Calories: defaultCalories,
		Protein:  formatGrams(meta.Proteins, defaultProtein),
		Fat:      formatGrams(meta.Fat, defaultFat),
		Carbs:    formatGrams(meta.Carbohydrates, defaultCarbs),
		Sugars:   formatGrams(meta.Sugars, defaultSugars),
	}

	if kcal, ok := parseNumber(meta.EnergyKcal); ok {
		if rounded := int(math.Round(kcal)); rounded > 0 {
			nutrition.Calories = rounded
		}
	}

	return nutrition
}

// formatGrams renders a per-100g amount as "<n.n>g", or def when the
// value is missing, unparseable or not positive.
func formatGrams(s, def string) string {
	v, ok := parseNumber(s)
	if !ok || v <= 0 {
		return def
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "g"
}

// parseNumber leniently parses the leading number of s ("3.99 USD" -> 3.99).
// NaN and infinities are rejected.
func parseNumber(s string) (float64, bool) {
	match := leadingNumberRegex.FindString(strings.TrimSpace(s))
	if match == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
