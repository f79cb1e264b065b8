package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/0nyxlabs/merchanding/cart"
	"github.com/0nyxlabs/merchanding/internal/constants"
	"github.com/0nyxlabs/merchanding/internal/log"
	"github.com/0nyxlabs/merchanding/internal/otel"
)

// PersisterFactory binds a persistence backend to a namespace key.
type PersisterFactory func(namespace string) cart.Persister

// CartService owns one cart store per user, rehydrated from the configured
// persistence backend on first use.
type CartService struct {
	mu         sync.Mutex
	stores     map[uuid.UUID]*cart.Store
	persisters PersisterFactory
}

func NewCartService(persisters PersisterFactory) *CartService {
	return &CartService{stores: map[uuid.UUID]*cart.Store{}, persisters: persisters}
}

// StoreFor returns the user's cart store, creating and rehydrating it when
// this is the first request of the session.
func (s *CartService) StoreFor(c context.Context, userId uuid.UUID) (*cart.Store, error) {
	c, span := otel.Tracer.Start(c, "CartService StoreFor")
	defer span.End()

	s.mu.Lock()
	store, ok := s.stores[userId]
	s.mu.Unlock()
	if ok {
		return store, nil
	}

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService StoreFor").
		Str(log.KeyUserID, userId.String()).
		Logger()

	namespace := fmt.Sprintf(constants.CartNamespace, userId.String())
	logger = logger.With().
		Str(log.KeyNamespace, namespace).
		Str(log.KeyProcess, "rehydrating cart").
		Logger()
	logger.Info().Msg("rehydrating cart")
	var persister cart.Persister
	if s.persisters != nil {
		persister = s.persisters(namespace)
	}
	store, err := cart.NewStore(c, persister)
	if err != nil {
		err = fmt.Errorf("failed rehydrating cart with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("rehydrated cart")

	s.mu.Lock()
	// Another request may have won the race; keep the first store so every
	// caller mutates the same item table.
	if existing, ok := s.stores[userId]; ok {
		store = existing
	} else {
		s.stores[userId] = store
	}
	s.mu.Unlock()

	return store, nil
}
