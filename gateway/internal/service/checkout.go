package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/checkout"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
)

// CheckoutService owns one checkout session per user. A session exists only
// between Begin and Discard; a successful confirmation discards it implicitly.
type CheckoutService struct {
	carts   *CartService
	intents checkout.IntentCreator
	widget  checkout.PaymentConfirmer

	mu       sync.Mutex
	sessions map[uuid.UUID]*checkout.Orchestrator
}

func NewCheckoutService(
	carts *CartService,
	intents checkout.IntentCreator,
	widget checkout.PaymentConfirmer,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		intents:  intents,
		widget:   widget,
		sessions: map[uuid.UUID]*checkout.Orchestrator{},
	}
}

// Begin opens a checkout session over the user's cart. Beginning while a
// session already exists returns the existing one so a reloaded page lands
// back on the step it left.
func (s *CheckoutService) Begin(c context.Context, userId uuid.UUID) (*checkout.Orchestrator, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Begin")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutService Begin").
		Str(log.KeyUserID, userId.String()).
		Logger()

	s.mu.Lock()
	if existing, ok := s.sessions[userId]; ok {
		s.mu.Unlock()
		logger.Info().
			Str(log.KeyCheckoutStep, existing.State().Step()).
			Msg("resuming existing checkout session")
		return existing, nil
	}
	s.mu.Unlock()

	store, err := s.carts.StoreFor(c, userId)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	orchestrator := checkout.NewOrchestrator(store, s.intents, s.widget)

	s.mu.Lock()
	if existing, ok := s.sessions[userId]; ok {
		orchestrator = existing
	} else {
		s.sessions[userId] = orchestrator
	}
	s.mu.Unlock()

	logger.Info().Msg("began checkout session")
	return orchestrator, nil
}

// Current returns the user's open session, or false when none exists.
func (s *CheckoutService) Current(userId uuid.UUID) (*checkout.Orchestrator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orchestrator, ok := s.sessions[userId]
	return orchestrator, ok
}

// Discard drops the user's session. The cart is untouched; abandoning a
// checkout never loses items.
func (s *CheckoutService) Discard(c context.Context, userId uuid.UUID) {
	_, span := otel.Tracer.Start(c, "CheckoutService Discard")
	defer span.End()

	s.mu.Lock()
	delete(s.sessions, userId)
	s.mu.Unlock()

	zerolog.Ctx(c).
		Info().
		Str(log.KeyTag, "CheckoutService Discard").
		Str(log.KeyUserID, userId.String()).
		Msg("discarded checkout session")
}
