package domain

// LineItem is one basket entry, keyed by product id and selected store.
// Prices is a snapshot of every store price at add time so comparison
// never needs to re-fetch the product.
type LineItem struct {
	ID        string       `json:"id"`
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	Unit      string       `json:"unit"`
	Quantity  int          `json:"quantity"`
	Store     string       `json:"store"`
	Price     float64      `json:"price"`
	Prices    []StorePrice `json:"prices"`
	Nutrition Nutrition    `json:"nutrition"`
	Brand     string       `json:"brand,omitempty"`
}

// LineItemID builds the composite basket key for a product at a store
func LineItemID(productID, store string) string {
	return productID + "-" + store
}

// PriceAt returns the line's price at the named store. The line's own
// selected store wins over the snapshot. Only positive prices count.
func (l *LineItem) PriceAt(store string) (float64, bool) {
	if l.Store == store && l.Price > 0 {
		return l.Price, true
	}
	if sp, ok := findStorePrice(l.Prices, store); ok && sp.Price > 0 {
		return sp.Price, true
	}
	return 0, false
}

// CheckoutSummary is the priced total for checking out the basket
type CheckoutSummary struct {
	ItemCount      int     `json:"itemCount"`
	Subtotal       float64 `json:"subtotal"`
	DeliveryOption string  `json:"deliveryOption"`
	DeliveryFee    float64 `json:"deliveryFee"`
	ServiceFee     float64 `json:"serviceFee"`
	Total          float64 `json:"total"`
}
