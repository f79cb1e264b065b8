package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/0nyxlabs/merchanding/cart"
)

func TestFilePersisterRoundtrip(t *testing.T) {
	c := context.Background()
	persister := NewFilePersister(t.TempDir(), "merchanding:cart:user-1")

	items := []cart.Item{
		{ID: "v1", Name: "Classic Tee", Price: decimal.RequireFromString("19.99"), Quantity: 2},
		{ID: "v2", Name: "Mug", Price: decimal.RequireFromString("9.50"), Quantity: 1, Image: "mug.png"},
	}

	err := persister.Save(c, items)
	assert.NoError(t, err)

	loaded, err := persister.Load(c)
	assert.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.EqualValues(t, "v1", loaded[0].ID)
	assert.True(t, loaded[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.EqualValues(t, "mug.png", loaded[1].Image)
}

func TestFilePersisterLoadMissingFile(t *testing.T) {
	c := context.Background()
	persister := NewFilePersister(t.TempDir(), "merchanding:cart:user-1")

	loaded, err := persister.Load(c)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFilePersisterLoadCorruptFile(t *testing.T) {
	c := context.Background()
	dir := t.TempDir()
	persister := NewFilePersister(dir, "merchanding:cart:user-1")

	err := os.WriteFile(filepath.Join(dir, "merchanding_cart_user-1.json"), []byte("{not json"), 0o600)
	assert.NoError(t, err)

	_, err = persister.Load(c)
	assert.Error(t, err)
}

func TestFilePersisterDelete(t *testing.T) {
	c := context.Background()
	persister := NewFilePersister(t.TempDir(), "merchanding:cart:user-1")

	err := persister.Save(c, []cart.Item{{ID: "v1", Name: "Classic Tee", Price: decimal.NewFromInt(30), Quantity: 1}})
	assert.NoError(t, err)

	err = persister.Delete(c)
	assert.NoError(t, err)

	loaded, err := persister.Load(c)
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting an absent file is a no-op.
	assert.NoError(t, persister.Delete(c))
}

func TestFilePersisterNamespaceEscaping(t *testing.T) {
	c := context.Background()
	dir := t.TempDir()
	persister := NewFilePersister(dir, "merchanding:cart:user-1")

	err := persister.Save(c, []cart.Item{})
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "merchanding_cart_user-1.json"))
	assert.NoError(t, err)
}
