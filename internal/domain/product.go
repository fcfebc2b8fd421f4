package domain

// RawPrice is a single store price as returned by the grocery data provider.
// Prices are string encoded and may be garbage.
type RawPrice struct {
	Store    string `json:"store"`
	Price    string `json:"price"`
	UnitCost string `json:"unit_cost,omitempty"`
}

// RawMetadata carries the loosely typed product details from the provider
type RawMetadata struct {
	Brand         string `json:"Brand,omitempty"`
	UPC           string `json:"UPC,omitempty"`
	UPCWithCheck  string `json:"UPC_wChkDig,omitempty"`
	Carbohydrates string `json:"carbohydrates_100g,omitempty"`
	EnergyKcal    string `json:"energy-kcal_100g,omitempty"`
	Fat           string `json:"fat_100g,omitempty"`
	ImageSmallURL string `json:"image_small_url,omitempty"`
	Proteins      string `json:"proteins_100g,omitempty"`
	Sugars        string `json:"sugars_100g,omitempty"`
	Description   string `json:"description,omitempty"`
}

// RawProduct is an untrusted product record from the provider's search endpoint
type RawProduct struct {
	MatchScore  *float64    `json:"match_score,omitempty"`
	MatchReason string      `json:"match_reason,omitempty"`
	Prices      []RawPrice  `json:"prices"`
	Metadata    RawMetadata `json:"metadata"`
}

// StorePrice is a validated, positive price at a single store
type StorePrice struct {
	Store    string  `json:"store"`
	Price    float64 `json:"price"`
	UnitCost string  `json:"unitCost,omitempty"`
}

// Nutrition holds display-ready nutrition facts per ~100g serving
type Nutrition struct {
	Calories int    `json:"calories"`
	Protein  string `json:"protein"`
	Fat      string `json:"fat"`
	Carbs    string `json:"carbs"`
	Sugars   string `json:"sugars,omitempty"`
}

// Product is the canonical product representation.
// Prices is sorted ascending by price and never contains a non-positive entry.
type Product struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Image       string       `json:"image"`
	Unit        string       `json:"unit"`
	Prices      []StorePrice `json:"prices"`
	Nutrition   Nutrition    `json:"nutrition"`
	Brand       string       `json:"brand,omitempty"`
	Description string       `json:"description,omitempty"`
	UPC         string       `json:"upc,omitempty"`
	MatchScore  *float64     `json:"matchScore,omitempty"`
	MatchReason string       `json:"matchReason,omitempty"`
}

// Cheapest returns the lowest price entry, or false when the product has no prices
func (p *Product) Cheapest() (StorePrice, bool) {
	if len(p.Prices) == 0 {
		return StorePrice{}, false
	}
	return p.Prices[0], true
}

// PriceAt returns the price entry for the named store
func (p *Product) PriceAt(store string) (StorePrice, bool) {
	return findStorePrice(p.Prices, store)
}

func findStorePrice(prices []StorePrice, store string) (StorePrice, bool) {
	for _, sp := range prices {
		if sp.Store == store {
			return sp, true
		}
	}
	return StorePrice{}, false
}
