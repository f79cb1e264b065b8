package cart

import (
	"github.com/shopspring/decimal"
)

var (
	// FreeShippingThreshold is the subtotal at which shipping becomes free.
	FreeShippingThreshold = decimal.NewFromInt(50)
	// FlatShippingFee applies to every order below the free-shipping threshold.
	FlatShippingFee = decimal.RequireFromString("5.99")
	// TaxRate applies to the subtotal only; shipping is not taxed.
	TaxRate = decimal.RequireFromString("0.08")
)

// Totals is a pure function of the current items, recomputed on every read.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int32           `json:"itemCount"`
}

func CalculateTotals(items []Item) Totals {
	subtotal := decimal.Zero
	var itemCount int32
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
		itemCount += item.Quantity
	}

	shipping := FlatShippingFee
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(TaxRate).Round(2)

	return Totals{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Total:     subtotal.Add(shipping).Add(tax),
		ItemCount: itemCount,
	}
}
