package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// Item is one cart line. The ID is the selected product-variant identifier,
// so adding the same variant twice merges into a single line.
type Item struct {
	ID        string          `validate:"required"       json:"id"`
	Name      string          `validate:"required"       json:"name"`
	Price     decimal.Decimal `validate:"required"       json:"price"`
	Quantity  int32           `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	VariantID string          `json:"variantId,omitempty"`
}

// Persister is the sync boundary between the in-memory item table and durable
// storage. Implementations hold the namespace key they read and write.
type Persister interface {
	Load(c context.Context) ([]Item, error)
	Save(c context.Context, items []Item) error
	Delete(c context.Context) error
}

// Store is the sole mutable owner of the cart's line items. All mutation goes
// through its operations; every mutation is written through the Persister and
// published to subscribers. A nil Persister degrades the store to session-only
// state.
type Store struct {
	mu        sync.Mutex
	items     map[string]Item
	order     []string
	persister Persister
	subs      []func(items []Item)
}

// NewStore rehydrates the item table from the persister, if one is given.
func NewStore(c context.Context, persister Persister) (*Store, error) {
	s := &Store{items: map[string]Item{}, persister: persister}
	if persister == nil {
		return s, nil
	}

	items, err := persister.Load(c)
	if err != nil {
		return nil, fmt.Errorf("failed loading persisted cart with error=%w", err)
	}
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
	}
	return s, nil
}

// Subscribe registers fn to receive an item-table snapshot after every
// mutation.
func (s *Store) Subscribe(fn func(items []Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// AddItem inserts a new line or, when the variant is already present,
// increments its quantity. A zero or negative incoming quantity counts as 1.
// The returned error is a persistence failure only; the in-memory mutation
// always succeeds.
func (s *Store) AddItem(c context.Context, item Item) error {
	s.mu.Lock()
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	existing, ok := s.items[item.ID]
	if ok {
		existing.Quantity += item.Quantity
		s.items[item.ID] = existing
	} else {
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	return s.publish(c, snapshot)
}

// RemoveItem deletes the line with the given variant id. Absent keys are a
// no-op, not an error.
func (s *Store) RemoveItem(c context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.items[id]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.items, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	return s.publish(c, snapshot)
}

// UpdateQuantity sets the line's quantity, flooring at 1. Removal is an
// explicit RemoveItem call, never a side effect of a low quantity. Absent keys
// are a no-op.
func (s *Store) UpdateQuantity(c context.Context, id string, quantity int32) error {
	s.mu.Lock()
	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if quantity < 1 {
		quantity = 1
	}
	item.Quantity = quantity
	s.items[id] = item
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	return s.publish(c, snapshot)
}

// Clear empties the item table.
func (s *Store) Clear(c context.Context) error {
	s.mu.Lock()
	s.items = map[string]Item{}
	s.order = nil
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	return s.publish(c, snapshot)
}

// Items returns the lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TotalItems is the sum of quantities, not the distinct line count.
func (s *Store) TotalItems() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int32
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return total
}

func (s *Store) snapshotLocked() []Item {
	snapshot := make([]Item, 0, len(s.order))
	for _, key := range s.order {
		snapshot = append(snapshot, s.items[key])
	}
	return snapshot
}

func (s *Store) publish(c context.Context, snapshot []Item) error {
	s.mu.Lock()
	subs := make([]func([]Item), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}

	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(c, snapshot); err != nil {
		return fmt.Errorf("failed persisting cart with error=%w", err)
	}
	return nil
}
