package domain

// MaxSelectedStores caps how many stores can be compared at once
const MaxSelectedStores = 5

// Store is a candidate supermarket. Comparison matches stores to basket
// lines by Name.
type Store struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Distance string `json:"distance"`
	Image    string `json:"image,omitempty"`
}

// LocationSelection is the user's postal code and chosen stores
type LocationSelection struct {
	ZipCode         string  `json:"zipCode"`
	SelectedStores  []Store `json:"selectedStores"`
	AvailableStores []Store `json:"availableStores"`
	IsLocationSet   bool    `json:"isLocationSet"`
}

// StoreComparison is the cost of the whole basket at one store
type StoreComparison struct {
	StoreID        int     `json:"storeId"`
	Store          string  `json:"store"`
	TotalCost      float64 `json:"totalCost"`
	AvailableItems int     `json:"availableItems"`
	AvailableUnits int     `json:"availableUnits"`
	MissingItems   int     `json:"missingItems"`
	HasAllItems    bool    `json:"hasAllItems"`
	Rank           int     `json:"rank"`
}

// ComparisonSummary ranks candidate stores by basket total, cheapest first.
// Savings is only set when at least two stores were compared.
type ComparisonSummary struct {
	Results    []StoreComparison `json:"results"`
	BestStore  string            `json:"bestStore"`
	Savings    *float64          `json:"savings,omitempty"`
	TotalItems int               `json:"totalItems"`
}
