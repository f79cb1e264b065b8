package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name             string
		items            []Item
		expectedSubtotal string
		expectedShipping string
		expectedTax      string
		expectedTotal    string
		expectedCount    int32
	}{
		{
			name:             "given empty cart should return zero totals",
			items:            nil,
			expectedSubtotal: "0",
			expectedShipping: "5.99",
			expectedTax:      "0",
			expectedTotal:    "5.99",
			expectedCount:    0,
		},
		{
			name: "given subtotal below threshold should charge flat shipping",
			items: []Item{
				{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1},
			},
			expectedSubtotal: "30",
			expectedShipping: "5.99",
			expectedTax:      "2.4",
			expectedTotal:    "38.39",
			expectedCount:    1,
		},
		{
			name: "given subtotal above threshold should ship free",
			items: []Item{
				{ID: "v1", Name: "Hoodie", Price: decimal.NewFromInt(60), Quantity: 1},
			},
			expectedSubtotal: "60",
			expectedShipping: "0",
			expectedTax:      "4.8",
			expectedTotal:    "64.8",
			expectedCount:    1,
		},
		{
			name: "given subtotal exactly at threshold should ship free",
			items: []Item{
				{ID: "v1", Name: "Poster", Price: decimal.NewFromInt(25), Quantity: 2},
			},
			expectedSubtotal: "50",
			expectedShipping: "0",
			expectedTax:      "4",
			expectedTotal:    "54",
			expectedCount:    2,
		},
		{
			name: "given multiple lines should sum quantities and prices",
			items: []Item{
				{ID: "v1", Name: "Classic Tee", Price: decimal.RequireFromString("19.99"), Quantity: 2},
				{ID: "v2", Name: "Mug", Price: decimal.RequireFromString("9.50"), Quantity: 1},
			},
			expectedSubtotal: "49.48",
			expectedShipping: "5.99",
			expectedTax:      "3.96",
			expectedTotal:    "59.43",
			expectedCount:    3,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			totals := CalculateTotals(test.items)

			assert.True(
				t,
				totals.Subtotal.Equal(decimal.RequireFromString(test.expectedSubtotal)),
				"subtotal expected=%s actual=%s",
				test.expectedSubtotal,
				totals.Subtotal.String(),
			)
			assert.True(
				t,
				totals.Shipping.Equal(decimal.RequireFromString(test.expectedShipping)),
				"shipping expected=%s actual=%s",
				test.expectedShipping,
				totals.Shipping.String(),
			)
			assert.True(
				t,
				totals.Tax.Equal(decimal.RequireFromString(test.expectedTax)),
				"tax expected=%s actual=%s",
				test.expectedTax,
				totals.Tax.String(),
			)
			assert.True(
				t,
				totals.Total.Equal(decimal.RequireFromString(test.expectedTotal)),
				"total expected=%s actual=%s",
				test.expectedTotal,
				totals.Total.String(),
			)
			assert.EqualValues(t, test.expectedCount, totals.ItemCount)
		})
	}
}

func TestCalculateTotalsTaxOnSubtotalOnly(t *testing.T) {
	items := []Item{
		{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1},
	}

	totals := CalculateTotals(items)

	taxOnSubtotal := totals.Subtotal.Mul(TaxRate).Round(2)
	assert.True(t, totals.Tax.Equal(taxOnSubtotal))

	taxOnSubtotalAndShipping := totals.Subtotal.Add(totals.Shipping).Mul(TaxRate).Round(2)
	assert.False(t, totals.Tax.Equal(taxOnSubtotalAndShipping))
}
