package response

import (
	"github.com/0nyxlabs/merchanding/cart"
	"github.com/0nyxlabs/merchanding/internal/format"
)

type Cart struct {
	Items          []cart.Item `json:"items"`
	Totals         cart.Totals `json:"totals"`
	FormattedTotal string      `json:"formattedTotal"`
}

func NewCart(items []cart.Item) Cart {
	totals := cart.CalculateTotals(items)
	return Cart{
		Items:          items,
		Totals:         totals,
		FormattedTotal: format.Currency(totals.Total),
	}
}

type Checkout struct {
	Step         string `json:"step"`
	ClientSecret string `json:"clientSecret,omitempty"`
	OrderId      string `json:"orderId,omitempty"`
}
