package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/cart"
	inErrors "github.com/0nyxlabs/merchanding/internal/errors"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
)

// Orchestrator sequences the two remote interactions of a checkout attempt:
// creating a payment intent from the validated shipping address, then
// delegating confirmation to the hosted widget. The session advances forward
// only; failures keep the current step and the cart intact.
type Orchestrator struct {
	store   *cart.Store
	intents IntentCreator
	widget  PaymentConfirmer

	mu       sync.Mutex
	state    State
	inFlight bool
}

func NewOrchestrator(
	store *cart.Store,
	intents IntentCreator,
	widget PaymentConfirmer,
) *Orchestrator {
	return &Orchestrator{
		store:   store,
		intents: intents,
		widget:  widget,
		state:   CollectingShipping{},
	}
}

// State reports the session's current step.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// SubmitShipping validates the address, creates a payment intent for the cart
// as priced at this moment, and advances the session to the payment step. A
// second submission while one is outstanding returns ErrSubmissionInFlight
// without issuing a network call. On failure the session stays in the shipping
// step and the cart is untouched.
func (o *Orchestrator) SubmitShipping(c context.Context, address ShippingAddress) error {
	c, span := otel.Tracer.Start(c, "Orchestrator SubmitShipping")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Orchestrator SubmitShipping").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating shipping address").Logger()
	logger.Info().Msg("validating shipping address")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, address); err != nil {
		err = fmt.Errorf("failed validating shipping address with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("validated shipping address")

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		otel.RecordError(inErrors.ErrSubmissionInFlight, span)
		logger.Warn().Msg(inErrors.ErrSubmissionInFlight.Error())
		return inErrors.ErrSubmissionInFlight
	}
	if _, ok := o.state.(AwaitingPayment); ok {
		o.mu.Unlock()
		otel.RecordError(inErrors.ErrPaymentPending, span)
		logger.Warn().Msg(inErrors.ErrPaymentPending.Error())
		return inErrors.ErrPaymentPending
	}
	o.inFlight = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	logger = logger.With().Str(log.KeyProcess, "calculating totals").Logger()
	logger.Info().Msg("calculating totals")
	items := o.store.Items()
	totals := cart.CalculateTotals(items)
	logger = logger.With().Any(log.KeyTotals, totals).Logger()
	logger.Info().Msg("calculated totals")

	logger = logger.With().Str(log.KeyProcess, "creating payment intent").Logger()
	logger.Info().Msg("creating payment intent")
	intent, err := o.intents.CreateIntent(c, IntentRequest{
		Items:           items,
		Total:           totals.Total.Round(2),
		ShippingAddress: address,
	})
	if err != nil {
		err = fmt.Errorf("failed creating payment intent with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Str(log.KeyOrderID, intent.OrderID).Logger()
	logger.Info().Msg("created payment intent")

	// The session may have been discarded while the call was outstanding; do
	// not apply a stale advance.
	if err := c.Err(); err != nil {
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg("session discarded before intent arrived")
		return err
	}

	o.mu.Lock()
	o.state = AwaitingPayment{ClientSecret: intent.ClientSecret, OrderID: intent.OrderID}
	o.mu.Unlock()
	logger.Info().Str(log.KeyCheckoutStep, o.State().Step()).Msg("advanced to payment step")

	return nil
}

// ConfirmPayment delegates to the hosted widget and, on a confirmed status,
// clears the cart and returns the confirmation path for the order. The payment
// step is unreachable until a payment intent has been obtained. On failure the
// session keeps its payment handle so the user can retry the same attempt.
func (o *Orchestrator) ConfirmPayment(c context.Context) (string, error) {
	c, span := otel.Tracer.Start(c, "Orchestrator ConfirmPayment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Orchestrator ConfirmPayment").
		Logger()

	o.mu.Lock()
	pending, ok := o.state.(AwaitingPayment)
	if !ok {
		o.mu.Unlock()
		otel.RecordError(inErrors.ErrPaymentNotReady, span)
		logger.Error().Msg(inErrors.ErrPaymentNotReady.Error())
		return "", inErrors.ErrPaymentNotReady
	}
	if o.inFlight {
		o.mu.Unlock()
		otel.RecordError(inErrors.ErrSubmissionInFlight, span)
		logger.Warn().Msg(inErrors.ErrSubmissionInFlight.Error())
		return "", inErrors.ErrSubmissionInFlight
	}
	o.inFlight = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	logger = logger.With().
		Str(log.KeyOrderID, pending.OrderID).
		Str(log.KeyProcess, "confirming payment").
		Logger()
	logger.Info().Msg("confirming payment")
	result, err := o.widget.ConfirmPayment(c, pending.ClientSecret)
	if err != nil {
		err = fmt.Errorf("failed confirming payment with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	if result.Status != StatusSucceeded {
		err = inErrors.ErrPaymentFailed
		if result.Message != "" {
			err = fmt.Errorf("%w: %s", inErrors.ErrPaymentFailed, result.Message)
		}
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("confirmed payment")

	if err := c.Err(); err != nil {
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg("session discarded before confirmation arrived")
		return "", err
	}

	logger = logger.With().Str(log.KeyProcess, "clearing cart").Logger()
	logger.Info().Msg("clearing cart")
	err = o.store.Clear(c)
	if err != nil {
		// The order is paid; a persistence failure must not fail the attempt.
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("cleared cart")

	return fmt.Sprintf("/orders/%s/success", pending.OrderID), nil
}
