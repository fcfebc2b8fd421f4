package usecase

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocersmart/backend/internal/domain"
)

func TestNormalize_CompleteRecord(t *testing.T) {
	raw := domain.RawProduct{
		MatchScore:  floatPtr(3),
		MatchReason: "Exact match",
		Prices: []domain.RawPrice{
			{Store: "Fresh Market", Price: "3.99", UnitCost: "$0.50/lb"},
			{Store: "Organic Grocers", Price: "4.29", UnitCost: "$0.54/oz"},
			{Store: "Value Supermarket", Price: "3.79"},
		},
		Metadata: domain.RawMetadata{
			Brand:         "Dairy Fresh",
			UPC:           "0123456789",
			EnergyKcal:    "149.6",
			Proteins:      "8",
			Fat:           "8.04",
			Carbohydrates: "12",
			Sugars:        "12.3",
			ImageSmallURL: "https://img.example.com/milk.png",
			Description:   "Whole Milk",
		},
	}

	p := Normalize(raw)

	assert.Equal(t, "0123456789", p.ID)
	assert.Equal(t, "Whole Milk", p.Name)
	assert.Equal(t, "Whole Milk", p.Description)
	assert.Equal(t, "https://img.example.com/milk.png", p.Image)
	assert.Equal(t, "lb", p.Unit)
	assert.Equal(t, "Dairy Fresh", p.Brand)
	assert.Equal(t, "0123456789", p.UPC)
	require.NotNil(t, p.MatchScore)
	assert.Equal(t, 3.0, *p.MatchScore)
	assert.Equal(t, "Exact match", p.MatchReason)

	assert.Equal(t, domain.Nutrition{
		Calories: 150,
		Protein:  "8.0g",
		Fat:      "8.0g",
		Carbs:    "12.0g",
		Sugars:   "12.3g",
	}, p.Nutrition)

	require.Len(t, p.Prices, 3)
	assert.Equal(t, "Value Supermarket", p.Prices[0].Store)
	assert.Equal(t, 3.79, p.Prices[0].Price)
	assert.Equal(t, "Fresh Market", p.Prices[1].Store)
	assert.Equal(t, "$0.50/lb", p.Prices[1].UnitCost)
	assert.Equal(t, 4.29, p.Prices[2].Price)
}

func TestNormalize_Defaults(t *testing.T) {
	p := NormalizeWithIndex(domain.RawProduct{}, 7)

	assert.Equal(t, "product-7", p.ID)
	assert.Equal(t, "Product 7", p.Name)
	assert.Equal(t, placeholderImage, p.Image)
	assert.Equal(t, "each", p.Unit)
	assert.Empty(t, p.Prices)
	assert.Nil(t, p.MatchScore)
	assert.Equal(t, domain.Nutrition{
		Calories: 100,
		Protein:  "2g",
		Fat:      "0.5g",
		Carbs:    "25g",
		Sugars:   "14.4g",
	}, p.Nutrition)
}

func TestNormalize_RandomIdentityWithoutIndex(t *testing.T) {
	original := randomSuffix
	defer func() { randomSuffix = original }()
	randomSuffix = func() string { return "abc123xyz" }

	p := Normalize(domain.RawProduct{})
	assert.Equal(t, "product-abc123xyz", p.ID)
	assert.Equal(t, "Product", p.Name)
}

func TestRandomSuffix(t *testing.T) {
	a, b := randomSuffix(), randomSuffix()
	assert.Len(t, a, 9)
	assert.NotEqual(t, a, b)
	assert.False(t, strings.Contains(a, "-"))
}

func TestNormalize_MalformedNumbers(t *testing.T) {
	raw := domain.RawProduct{
		Metadata: domain.RawMetadata{
			EnergyKcal:    "NaN",
			Proteins:      "abc",
			Fat:           "0",
			Carbohydrates: "-3",
			Sugars:        "",
		},
	}

	n := NormalizeWithIndex(raw, 0).Nutrition
	assert.Equal(t, 100, n.Calories)
	assert.Equal(t, "2g", n.Protein)
	assert.Equal(t, "0.5g", n.Fat)
	assert.Equal(t, "25g", n.Carbs)
	assert.Equal(t, "14.4g", n.Sugars)
}

func TestNormalizePrices(t *testing.T) {
	raw := []domain.RawPrice{
		{Store: "A", Price: "abc"},
		{Store: "B", Price: "0"},
		{Store: "C", Price: "-1.50"},
		{Store: "D", Price: "NaN"},
		{Store: "E", Price: "Infinity"},
		{Store: "", Price: "2.50"},
		{Store: "F", Price: "1.25 USD"},
		{Store: "G", Price: "2.50"},
	}

	prices := normalizePrices(raw)
	require.Len(t, prices, 3)
	assert.Equal(t, domain.StorePrice{Store: "F", Price: 1.25}, prices[0])
	assert.Equal(t, domain.StorePrice{Store: unknownStore, Price: 2.50}, prices[1])
	assert.Equal(t, domain.StorePrice{Store: "G", Price: 2.50}, prices[2])

	for _, p := range prices {
		assert.Greater(t, p.Price, 0.0)
	}
}

func TestExtractUnit(t *testing.T) {
	tests := []struct {
		name string
		raw  []domain.RawPrice
		want string
	}{
		{"no prices", nil, "each"},
		{"first unit cost wins", []domain.RawPrice{{UnitCost: "$0.31/oz"}, {UnitCost: "$1/lb"}}, "oz"},
		{"first without unit cost", []domain.RawPrice{{UnitCost: ""}, {UnitCost: "$1/lb"}}, "each"},
		{"no slash", []domain.RawPrice{{UnitCost: "$0.31 per oz"}}, "each"},
		{"trailing space", []domain.RawPrice{{UnitCost: "$0.31/oz "}}, "each"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnit(tt.raw))
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"3.99", 3.99, true},
		{" 42 ", 42, true},
		{"1.5e2", 150, true},
		{".5", 0.5, true},
		{"12g", 12, true},
		{"-2", -2, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	raws := []domain.RawProduct{
		{Prices: []domain.RawPrice{{Store: "A", Price: "1.00"}}},
		{Prices: []domain.RawPrice{{Store: "A", Price: "0"}}},
		{},
		{Prices: []domain.RawPrice{{Store: "B", Price: "2.00"}}, Metadata: domain.RawMetadata{UPC: "999"}},
	}

	products := NormalizeAll(raws)
	require.Len(t, products, 2)
	assert.Equal(t, "product-0", products[0].ID)
	assert.Equal(t, "999", products[1].ID)

	assert.Empty(t, NormalizeAll(nil))
}

func TestSanitizePrices(t *testing.T) {
	got := SanitizePrices([]domain.StorePrice{
		{Store: "B", Price: 3},
		{Store: "", Price: 1},
		{Store: "C", Price: math.NaN()},
		{Store: "D", Price: math.Inf(1)},
		{Store: "E", Price: -2},
		{Store: "F", Price: 3},
	})

	require.Len(t, got, 3)
	assert.Equal(t, unknownStore, got[0].Store)
	assert.Equal(t, "B", got[1].Store)
	assert.Equal(t, "F", got[2].Store)
}
