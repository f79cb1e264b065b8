package checkout

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/0nyxlabs/merchanding/cart"
	inErrors "github.com/0nyxlabs/merchanding/internal/errors"
)

type fakeIntentCreator struct {
	calls   atomic.Int32
	intent  Intent
	err     error
	gate    chan struct{}
	lastReq IntentRequest
	mu      sync.Mutex
}

func (f *fakeIntentCreator) CreateIntent(c context.Context, req IntentRequest) (Intent, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastReq = req
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return Intent{}, f.err
	}
	return f.intent, nil
}

type fakeConfirmer struct {
	calls  atomic.Int32
	result PaymentResult
	err    error
}

func (f *fakeConfirmer) ConfirmPayment(c context.Context, clientSecret string) (PaymentResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return PaymentResult{}, f.err
	}
	return f.result, nil
}

func validAddress() ShippingAddress {
	return ShippingAddress{
		FullName:   "Ada Lovelace",
		Line1:      "12 Analytical Way",
		City:       "London",
		State:      "LDN",
		PostalCode: "EC1A 1BB",
		Country:    "GB",
	}
}

func seededStore(t *testing.T, items ...cart.Item) *cart.Store {
	t.Helper()
	c := context.Background()
	store, err := cart.NewStore(c, nil)
	assert.NoError(t, err)
	for _, item := range items {
		assert.NoError(t, store.AddItem(c, item))
	}
	return store
}

func TestSubmitShippingAdvancesToPayment(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	intents := &fakeIntentCreator{intent: Intent{ClientSecret: "cs_test", OrderID: "ord_123"}}
	orchestrator := NewOrchestrator(store, intents, &fakeConfirmer{})

	assert.IsType(t, CollectingShipping{}, orchestrator.State())

	err := orchestrator.SubmitShipping(c, validAddress())
	assert.NoError(t, err)

	state, ok := orchestrator.State().(AwaitingPayment)
	assert.True(t, ok)
	assert.EqualValues(t, "cs_test", state.ClientSecret)
	assert.EqualValues(t, "ord_123", state.OrderID)
	assert.EqualValues(t, "payment", state.Step())
}

func TestSubmitShippingSendsComputedTotal(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	intents := &fakeIntentCreator{intent: Intent{ClientSecret: "cs_test", OrderID: "ord_123"}}
	orchestrator := NewOrchestrator(store, intents, &fakeConfirmer{})

	err := orchestrator.SubmitShipping(c, validAddress())
	assert.NoError(t, err)

	// subtotal 30 + flat shipping 5.99 + tax 2.40
	assert.True(t, intents.lastReq.Total.Equal(decimal.RequireFromString("38.39")))
	assert.Len(t, intents.lastReq.Items, 1)
	assert.EqualValues(t, validAddress(), intents.lastReq.ShippingAddress)
}

func TestSubmitShippingRejectsInvalidAddress(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	intents := &fakeIntentCreator{}
	orchestrator := NewOrchestrator(store, intents, &fakeConfirmer{})

	address := validAddress()
	address.PostalCode = ""

	err := orchestrator.SubmitShipping(c, address)
	assert.Error(t, err)
	assert.IsType(t, CollectingShipping{}, orchestrator.State())
	assert.EqualValues(t, 0, intents.calls.Load())
}

func TestSubmitShippingFailureKeepsCartAndStep(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	intents := &fakeIntentCreator{err: errors.New("api unavailable")}
	orchestrator := NewOrchestrator(store, intents, &fakeConfirmer{})

	err := orchestrator.SubmitShipping(c, validAddress())
	assert.Error(t, err)
	assert.IsType(t, CollectingShipping{}, orchestrator.State())
	assert.Len(t, store.Items(), 1)
}

func TestSubmitShippingGuardsReentrancy(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	gate := make(chan struct{})
	intents := &fakeIntentCreator{
		intent: Intent{ClientSecret: "cs_test", OrderID: "ord_123"},
		gate:   gate,
	}
	orchestrator := NewOrchestrator(store, intents, &fakeConfirmer{})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- orchestrator.SubmitShipping(c, validAddress())
	}()

	// Wait until the first submission reached the remote call.
	for intents.calls.Load() == 0 {
		runtime.Gosched()
	}

	err := orchestrator.SubmitShipping(c, validAddress())
	assert.ErrorIs(t, err, inErrors.ErrSubmissionInFlight)
	assert.EqualValues(t, 1, intents.calls.Load())

	close(gate)
	assert.NoError(t, <-firstDone)
}

func TestSubmitShippingForwardOnly(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	intents := &fakeIntentCreator{intent: Intent{ClientSecret: "cs_test", OrderID: "ord_123"}}
	orchestrator := NewOrchestrator(store, intents, &fakeConfirmer{})

	assert.NoError(t, orchestrator.SubmitShipping(c, validAddress()))

	err := orchestrator.SubmitShipping(c, validAddress())
	assert.ErrorIs(t, err, inErrors.ErrPaymentPending)
	assert.EqualValues(t, 1, intents.calls.Load())
}

func TestConfirmPaymentBeforeIntent(t *testing.T) {
	c := context.Background()
	store := seededStore(t)
	confirmer := &fakeConfirmer{}
	orchestrator := NewOrchestrator(store, &fakeIntentCreator{}, confirmer)

	redirect, err := orchestrator.ConfirmPayment(c)
	assert.ErrorIs(t, err, inErrors.ErrPaymentNotReady)
	assert.Empty(t, redirect)
	assert.EqualValues(t, 0, confirmer.calls.Load())
}

func TestConfirmPaymentSuccessClearsCartAndRedirects(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	intents := &fakeIntentCreator{intent: Intent{ClientSecret: "cs_test", OrderID: "ord_123"}}
	confirmer := &fakeConfirmer{result: PaymentResult{Status: StatusSucceeded}}
	orchestrator := NewOrchestrator(store, intents, confirmer)

	assert.NoError(t, orchestrator.SubmitShipping(c, validAddress()))

	redirect, err := orchestrator.ConfirmPayment(c)
	assert.NoError(t, err)
	assert.EqualValues(t, "/orders/ord_123/success", redirect)
	assert.Empty(t, store.Items())
}

func TestConfirmPaymentFailureKeepsHandleAndCart(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	intents := &fakeIntentCreator{intent: Intent{ClientSecret: "cs_test", OrderID: "ord_123"}}
	confirmer := &fakeConfirmer{result: PaymentResult{Status: "failed", Message: "card declined"}}
	orchestrator := NewOrchestrator(store, intents, confirmer)

	assert.NoError(t, orchestrator.SubmitShipping(c, validAddress()))

	redirect, err := orchestrator.ConfirmPayment(c)
	assert.ErrorIs(t, err, inErrors.ErrPaymentFailed)
	assert.Contains(t, err.Error(), "card declined")
	assert.Empty(t, redirect)

	// The handle survives so the user can retry the same attempt.
	state, ok := orchestrator.State().(AwaitingPayment)
	assert.True(t, ok)
	assert.EqualValues(t, "cs_test", state.ClientSecret)
	assert.Len(t, store.Items(), 1)
}

func TestConfirmPaymentNetworkErrorKeepsHandle(t *testing.T) {
	c := context.Background()
	store := seededStore(t, cart.Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	intents := &fakeIntentCreator{intent: Intent{ClientSecret: "cs_test", OrderID: "ord_123"}}
	confirmer := &fakeConfirmer{err: errors.New("widget unreachable")}
	orchestrator := NewOrchestrator(store, intents, confirmer)

	assert.NoError(t, orchestrator.SubmitShipping(c, validAddress()))

	_, err := orchestrator.ConfirmPayment(c)
	assert.Error(t, err)
	assert.IsType(t, AwaitingPayment{}, orchestrator.State())
	assert.Len(t, store.Items(), 1)
}
