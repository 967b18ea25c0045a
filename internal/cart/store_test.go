package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/j-ir11/videojuegos/internal/models"
)

// memorySnapshots implements SnapshotStore for tests.
type memorySnapshots struct {
	items map[primitive.ObjectID][]models.CartItem
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{items: map[primitive.ObjectID][]models.CartItem{}}
}

func (m *memorySnapshots) Get(_ context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	stored := m.items[userID]
	copied := make([]models.CartItem, len(stored))
	copy(copied, stored)
	return copied, nil
}

func (m *memorySnapshots) Set(_ context.Context, userID primitive.ObjectID, items []models.CartItem) error {
	m.items[userID] = items
	return nil
}

func (m *memorySnapshots) Delete(_ context.Context, userID primitive.ObjectID) error {
	delete(m.items, userID)
	return nil
}

// stubStock implements StockReader with a fixed stock table.
type stubStock struct {
	stock map[primitive.ObjectID]int
	err   error
}

func (s *stubStock) StockByIDs(_ context.Context, _ []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	return s.stock, s.err
}

func TestAddItemRejectsBeyondStock(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Halo", Price: 100, Stock: 2}

	snapshots := newMemorySnapshots()
	store := NewStore(snapshots, &stubStock{stock: map[primitive.ObjectID]int{product.ID: 2}})

	err := store.AddItem(context.Background(), userID, product, 3)

	var stockErr InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Empty(t, snapshots.items[userID], "rejected add must leave the snapshot unchanged")
}

func TestAddItemMergesExistingLine(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Halo", Price: 100, Stock: 5}

	snapshots := newMemorySnapshots()
	store := NewStore(snapshots, &stubStock{stock: map[primitive.ObjectID]int{product.ID: 5}})
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, userID, product, 2))
	require.NoError(t, store.AddItem(ctx, userID, product, 2))

	items := snapshots.items[userID]
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	// One more unit would exceed stock 5.
	err := store.AddItem(ctx, userID, product, 2)
	var stockErr InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 4, snapshots.items[userID][0].Quantity)
}

func TestSetQuantityClamped(t *testing.T) {
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	snapshots := newMemorySnapshots()
	snapshots.items[userID] = []models.CartItem{
		{ProductID: productID, Name: "Halo", UnitPrice: 100, Quantity: 1},
	}
	store := NewStore(snapshots, &stubStock{stock: map[primitive.ObjectID]int{productID: 5}})
	ctx := context.Background()

	require.NoError(t, store.SetQuantity(ctx, userID, productID, 0))
	assert.Equal(t, 1, snapshots.items[userID][0].Quantity, "0 is below the minimum")

	require.NoError(t, store.SetQuantity(ctx, userID, productID, 6))
	assert.Equal(t, 1, snapshots.items[userID][0].Quantity, "6 exceeds stock 5")

	require.NoError(t, store.SetQuantity(ctx, userID, productID, 3))
	assert.Equal(t, 3, snapshots.items[userID][0].Quantity)
}

func TestLoadHydratesStockAndFailsSoft(t *testing.T) {
	userID := primitive.NewObjectID()
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	snapshots := newMemorySnapshots()
	snapshots.items[userID] = []models.CartItem{
		{ProductID: first, Quantity: 1},
		{ProductID: second, Quantity: 2},
	}
	stock := &stubStock{stock: map[primitive.ObjectID]int{first: 7}}
	store := NewStore(snapshots, stock)

	items, err := store.Load(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 7, items[0].AvailableStock)
	assert.Equal(t, 0, items[1].AvailableStock, "missing product hydrates as stock 0")
	assert.True(t, HasOutOfStock(items))

	stock.err = errors.New("catalog down")
	items, err = store.Load(context.Background(), userID)
	require.NoError(t, err, "stock lookup failure must not hide the cart")
	require.Len(t, items, 2)
	assert.Equal(t, models.StockUnknown, items[0].AvailableStock)
	assert.Equal(t, models.StockUnknown, items[1].AvailableStock)
	assert.False(t, HasOutOfStock(items), "an outage must not flag lines as sold out")
}

func TestRemoveItemAndClear(t *testing.T) {
	userID := primitive.NewObjectID()
	keep := primitive.NewObjectID()
	drop := primitive.NewObjectID()

	snapshots := newMemorySnapshots()
	snapshots.items[userID] = []models.CartItem{
		{ProductID: keep, Quantity: 1},
		{ProductID: drop, Quantity: 2},
	}
	store := NewStore(snapshots, &stubStock{stock: map[primitive.ObjectID]int{}})
	ctx := context.Background()

	require.NoError(t, store.RemoveItem(ctx, userID, drop))
	require.Len(t, snapshots.items[userID], 1)
	assert.Equal(t, keep, snapshots.items[userID][0].ProductID)

	require.NoError(t, store.Clear(ctx, userID))
	assert.Empty(t, snapshots.items[userID])
}

func TestTotalRecomputed(t *testing.T) {
	items := []models.CartItem{
		{UnitPrice: 100, Quantity: 2},
		{UnitPrice: 59.5, Quantity: 1},
	}
	assert.Equal(t, 259.5, Total(items))

	items[0].Quantity = 3
	assert.Equal(t, 359.5, Total(items), "total must track the current quantities")
}
