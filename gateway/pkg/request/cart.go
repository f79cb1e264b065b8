package request

import (
	"github.com/shopspring/decimal"
)

type AddCartItem struct {
	VariantId string          `validate:"required" json:"variantId"`
	Name      string          `validate:"required" json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

type UpdateCartItem struct {
	Quantity int32 `validate:"required" json:"quantity"`
}
