package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakePersister struct {
	items   []Item
	saves   int
	deletes int
	saveErr error
	loadErr error
}

func (p *fakePersister) Load(c context.Context) ([]Item, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.items, nil
}

func (p *fakePersister) Save(c context.Context, items []Item) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saves++
	p.items = items
	return nil
}

func (p *fakePersister) Delete(c context.Context) error {
	p.deletes++
	p.items = nil
	return nil
}

func TestStoreAddItem(t *testing.T) {
	c := context.Background()
	store, err := NewStore(c, nil)
	assert.NoError(t, err)

	err = store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 2})
	assert.NoError(t, err)
	err = store.AddItem(c, Item{ID: "v2", Name: "Mug", Price: decimal.NewFromInt(10), Quantity: 1})
	assert.NoError(t, err)

	items := store.Items()
	assert.Len(t, items, 2)
	assert.EqualValues(t, "v1", items[0].ID)
	assert.EqualValues(t, "v2", items[1].ID)
	assert.EqualValues(t, 3, store.TotalItems())
}

func TestStoreAddItemMergesSameVariant(t *testing.T) {
	c := context.Background()
	store, err := NewStore(c, nil)
	assert.NoError(t, err)

	err = store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	assert.NoError(t, err)
	err = store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 2})
	assert.NoError(t, err)

	items := store.Items()
	assert.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].Quantity)
}

func TestStoreAddItemDefaultsQuantityToOne(t *testing.T) {
	c := context.Background()
	store, err := NewStore(c, nil)
	assert.NoError(t, err)

	err = store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30)})
	assert.NoError(t, err)

	items := store.Items()
	assert.Len(t, items, 1)
	assert.EqualValues(t, 1, items[0].Quantity)
}

func TestStoreRemoveItem(t *testing.T) {
	c := context.Background()
	store, err := NewStore(c, nil)
	assert.NoError(t, err)

	err = store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	assert.NoError(t, err)

	err = store.RemoveItem(c, "v1")
	assert.NoError(t, err)
	assert.Empty(t, store.Items())

	err = store.RemoveItem(c, "absent")
	assert.NoError(t, err)
}

func TestStoreUpdateQuantityFloorsAtOne(t *testing.T) {
	c := context.Background()
	store, err := NewStore(c, nil)
	assert.NoError(t, err)

	err = store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 5})
	assert.NoError(t, err)

	err = store.UpdateQuantity(c, "v1", 0)
	assert.NoError(t, err)

	items := store.Items()
	assert.Len(t, items, 1)
	assert.EqualValues(t, 1, items[0].Quantity)

	err = store.UpdateQuantity(c, "absent", 3)
	assert.NoError(t, err)
	assert.Len(t, store.Items(), 1)
}

func TestStoreClear(t *testing.T) {
	c := context.Background()
	store, err := NewStore(c, nil)
	assert.NoError(t, err)

	err = store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	assert.NoError(t, err)

	err = store.Clear(c)
	assert.NoError(t, err)
	assert.Empty(t, store.Items())
	assert.EqualValues(t, 0, store.TotalItems())
}

func TestStoreTotalPrice(t *testing.T) {
	c := context.Background()
	store, err := NewStore(c, nil)
	assert.NoError(t, err)

	err = store.AddItem(c, Item{ID: "v1", Price: decimal.RequireFromString("19.99"), Name: "Classic Tee", Quantity: 2})
	assert.NoError(t, err)
	err = store.AddItem(c, Item{ID: "v2", Price: decimal.RequireFromString("9.50"), Name: "Mug", Quantity: 1})
	assert.NoError(t, err)

	assert.True(t, store.TotalPrice().Equal(decimal.RequireFromString("49.48")))
}

func TestStoreRehydratesFromPersister(t *testing.T) {
	c := context.Background()
	persister := &fakePersister{
		items: []Item{
			{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 2},
			{ID: "v2", Name: "Mug", Price: decimal.NewFromInt(10), Quantity: 0},
		},
	}

	store, err := NewStore(c, persister)
	assert.NoError(t, err)

	// Lines persisted with a non-positive quantity are dropped on load.
	items := store.Items()
	assert.Len(t, items, 1)
	assert.EqualValues(t, "v1", items[0].ID)
}

func TestStoreRehydrationFailure(t *testing.T) {
	c := context.Background()
	persister := &fakePersister{loadErr: errors.New("corrupted payload")}

	store, err := NewStore(c, persister)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestStorePersistsEveryMutation(t *testing.T) {
	c := context.Background()
	persister := &fakePersister{}
	store, err := NewStore(c, persister)
	assert.NoError(t, err)

	assert.NoError(t, store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1}))
	assert.NoError(t, store.UpdateQuantity(c, "v1", 4))
	assert.NoError(t, store.RemoveItem(c, "v1"))
	assert.NoError(t, store.Clear(c))

	assert.EqualValues(t, 4, persister.saves)
	assert.Empty(t, persister.items)
}

func TestStoreSurfacesPersistenceError(t *testing.T) {
	c := context.Background()
	persister := &fakePersister{saveErr: errors.New("storage quota exceeded")}
	store, err := NewStore(c, persister)
	assert.NoError(t, err)

	err = store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1})
	assert.Error(t, err)

	// The in-memory mutation still applied.
	assert.Len(t, store.Items(), 1)
}

func TestStoreSubscribe(t *testing.T) {
	c := context.Background()
	store, err := NewStore(c, nil)
	assert.NoError(t, err)

	var observed [][]Item
	store.Subscribe(func(items []Item) {
		observed = append(observed, items)
	})

	assert.NoError(t, store.AddItem(c, Item{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1}))
	assert.NoError(t, store.RemoveItem(c, "v1"))

	assert.Len(t, observed, 2)
	assert.Len(t, observed[0], 1)
	assert.Empty(t, observed[1])
}
