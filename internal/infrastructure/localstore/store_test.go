package localstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Naveenv26/mobile-bill/internal/domain/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestProductCacheRoundtrip(t *testing.T) {
	store := openTestStore(t)
	cache := store.Products()

	products := []entity.Product{
		{ID: 2, Name: "Sugar", Price: 50, Unit: "kg"},
		{ID: 1, Name: "Tea", Price: 100, TaxRate: 18, Stock: 40},
	}
	require.NoError(t, cache.ReplaceAll(products))

	got, err := cache.List()
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by name regardless of insert order.
	assert.Equal(t, "Sugar", got[0].Name)
	assert.Equal(t, "Tea", got[1].Name)
	assert.EqualValues(t, 18, got[1].TaxRate)
	assert.Equal(t, 40, got[1].Stock)
}

func TestProductCacheReplaceAllSwapsContents(t *testing.T) {
	store := openTestStore(t)
	cache := store.Products()

	require.NoError(t, cache.ReplaceAll([]entity.Product{{ID: 1, Name: "Tea"}}))
	require.NoError(t, cache.ReplaceAll([]entity.Product{{ID: 2, Name: "Coffee"}}))

	got, err := cache.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Coffee", got[0].Name)

	require.NoError(t, cache.Clear())
	got, err = cache.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestShopCacheRoundtrip(t *testing.T) {
	store := openTestStore(t)
	cache := store.Shop()

	// Empty cache returns nil without error.
	shop, err := cache.Get()
	require.NoError(t, err)
	assert.Nil(t, shop)

	in := &entity.Shop{
		ID:    7,
		Name:  "Sri Ganesh Stores",
		GSTIN: "33AAAAA0000A1Z5",
		Config: entity.ShopConfig{
			Invoice: entity.InvoiceConfig{PaperSize: "A4", UPIID: "shop@upi"},
		},
	}
	require.NoError(t, cache.Put(in))

	got, err := cache.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, "A4", got.Config.Invoice.PaperSize)
	assert.Equal(t, "shop@upi", got.Config.Invoice.UPIID)

	require.NoError(t, cache.Clear())
	got, err = cache.Get()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestShopCacheNotifiesSubscribers(t *testing.T) {
	store := openTestStore(t)
	cache := store.Shop()

	ch := cache.Subscribe()
	require.NoError(t, cache.Put(&entity.Shop{ID: 1, Name: "A"}))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after Put")
	}

	// Bursts coalesce into the buffered slot rather than blocking the writer.
	require.NoError(t, cache.Put(&entity.Shop{ID: 1, Name: "B"}))
	require.NoError(t, cache.Put(&entity.Shop{ID: 1, Name: "C"}))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after burst")
	}

	got, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name, "subscriber re-reads the latest snapshot")
}

func TestShopCacheSubscribeAfterClose(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)

	ch := store.Shop().Subscribe()
	require.NoError(t, store.Close())

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "subscription channel must be closed")
	case <-time.After(time.Second):
		t.Fatal("subscription channel not closed")
	}

	// Subscribing after close yields an already-closed channel.
	_, ok := <-store.Shop().Subscribe()
	assert.False(t, ok)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Products().ReplaceAll([]entity.Product{{ID: 1, Name: "Tea", Price: 100}}))
	require.NoError(t, store.Shop().Put(&entity.Shop{ID: 7, Name: "Sri Ganesh Stores"}))
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	products, err := reopened.Products().List()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tea", products[0].Name)

	shop, err := reopened.Shop().Get()
	require.NoError(t, err)
	require.NotNil(t, shop)
	assert.Equal(t, "Sri Ganesh Stores", shop.Name)
}
