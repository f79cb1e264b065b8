package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/0nyxlabs/merchanding/cart"
)

// State is the checkout session's current step, modeled as a tagged variant so
// a payment handle can never exist without its order id.
type State interface {
	// Step names the UI step this state renders.
	Step() string
}

// CollectingShipping is the initial step: the shipping address form.
type CollectingShipping struct{}

func (CollectingShipping) Step() string { return "shipping" }

// AwaitingPayment holds the opaque payment handle obtained from the business
// API. The hosted widget may only be rendered from this state.
type AwaitingPayment struct {
	ClientSecret string
	OrderID      string
}

func (AwaitingPayment) Step() string { return "payment" }

// ShippingAddress is the fixed set of postal-address fields collected before
// payment. Everything but line2 and phone is mandatory.
type ShippingAddress struct {
	FullName   string `validate:"required" json:"fullName"`
	Line1      string `validate:"required" json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `validate:"required" json:"city"`
	State      string `validate:"required" json:"state"`
	PostalCode string `validate:"required" json:"postalCode"`
	Country    string `validate:"required" json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Intent is the payment authorization handle issued by the business API,
// scoped to a single order and payment attempt.
type Intent struct {
	ClientSecret string `json:"clientSecret"`
	OrderID      string `json:"orderId"`
}

// IntentRequest carries the cart contents, the locally computed total and the
// shipping address to the payment-intent endpoint.
type IntentRequest struct {
	Items           []cart.Item     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// IntentCreator is the slice of the business API the orchestrator needs.
type IntentCreator interface {
	CreateIntent(c context.Context, req IntentRequest) (Intent, error)
}

const StatusSucceeded = "succeeded"

// PaymentResult is the hosted widget's answer to a confirmation call.
type PaymentResult struct {
	Status  string
	Message string
}

// PaymentConfirmer is the hosted payment widget, treated as an opaque
// capability: it captures card details itself and consumes the client secret.
type PaymentConfirmer interface {
	ConfirmPayment(c context.Context, clientSecret string) (PaymentResult, error)
}
