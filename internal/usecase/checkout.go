package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grocersmart/backend/internal/domain"
)

// Delivery options offered at checkout
const (
	DeliveryStandard  = "standard"
	DeliveryExpress   = "express"
	DeliveryScheduled = "scheduled"
)

var (
	deliveryFees = map[string]decimal.Decimal{
		DeliveryStandard:  decimal.RequireFromString("3.99"),
		DeliveryExpress:   decimal.RequireFromString("5.99"),
		DeliveryScheduled: decimal.RequireFromString("2.99"),
	}

	serviceFee = decimal.RequireFromString("2.99")
)

// PriceCheckout totals the basket lines with the delivery and service fees.
// An empty option means standard delivery.
func PriceCheckout(lines []domain.LineItem, option string) (domain.CheckoutSummary, error) {
	if len(lines) == 0 {
		return domain.CheckoutSummary{}, domain.ErrEmptyBasket
	}

	option = strings.ToLower(strings.TrimSpace(option))
	if option == "" {
		option = DeliveryStandard
	}

	deliveryFee, ok := deliveryFees[option]
	if !ok {
		return domain.CheckoutSummary{}, fmt.Errorf("%w: %q", domain.ErrInvalidDeliveryOption, option)
	}

	sub := subtotal(lines)
	total := sub.Add(deliveryFee).Add(serviceFee).Round(2)

	return domain.CheckoutSummary{
		ItemCount:      totalItems(lines),
		Subtotal:       sub.InexactFloat64(),
		DeliveryOption: option,
		DeliveryFee:    deliveryFee.InexactFloat64(),
		ServiceFee:     serviceFee.InexactFloat64(),
		Total:          total.InexactFloat64(),
	}, nil
}
