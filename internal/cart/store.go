// Package cart owns the persisted cart snapshot. Every screen that touches
// the cart goes through Store; nothing else reads or writes the snapshot key.
package cart

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/j-ir11/videojuegos/internal/models"
)

// SnapshotStore persists the full item list under a single per-user key.
// A missing snapshot decodes as an empty list. Concurrent writers are
// last-write-wins; there is no locking.
type SnapshotStore interface {
	Get(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	Set(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

// StockReader resolves current stock for a batch of product ids.
type StockReader interface {
	StockByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]int, error)
}

// InsufficientStockError rejects a cart mutation that would exceed the
// available stock. The snapshot is left untouched.
type InsufficientStockError struct {
	ProductID primitive.ObjectID
	Available int
	Requested int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID.Hex(), e.Requested, e.Available)
}

type Store struct {
	snapshots SnapshotStore
	stock     StockReader
}

func NewStore(snapshots SnapshotStore, stock StockReader) *Store {
	return &Store{snapshots: snapshots, stock: stock}
}

// Load reads the snapshot and hydrates each item with the current available
// stock. A failing stock lookup is logged and the items are returned as
// loaded; the cart must stay visible even when the catalog is down.
func (s *Store) Load(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	items, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	stock, err := s.stock.StockByIDs(ctx, ids)
	if err != nil {
		// A catalog outage must not flag every line as sold out.
		log.Println("[CART] [WARN] stock lookup failed:", err)
		for i := range items {
			items[i].AvailableStock = models.StockUnknown
		}
		return items, nil
	}

	for i := range items {
		items[i].AvailableStock = stock[items[i].ProductID]
	}
	return items, nil
}

// AddItem merges quantity into an existing line for the product or appends a
// new one. The resulting quantity may never exceed the product's stock; a
// rejected add leaves the snapshot unchanged.
func (s *Store) AddItem(ctx context.Context, userID primitive.ObjectID, product models.Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	items, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return err
	}

	index := -1
	for i, item := range items {
		if item.ProductID == product.ID {
			index = i
			break
		}
	}

	current := 0
	if index >= 0 {
		current = items[index].Quantity
	}
	if current+quantity > product.Stock {
		return InsufficientStockError{
			ProductID: product.ID,
			Available: product.Stock,
			Requested: current + quantity,
		}
	}

	if index >= 0 {
		items[index].Quantity += quantity
	} else {
		items = append(items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  quantity,
		})
	}

	return s.snapshots.Set(ctx, userID, items)
}

// SetQuantity changes the quantity of one line. Values outside
// [1, available stock] are a no-op, mirroring the +/- controls.
func (s *Store) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) error {
	items, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}

	changed := false
	for i, item := range items {
		if item.ProductID != productID {
			continue
		}
		if quantity >= 1 && quantity <= item.AvailableStock {
			items[i].Quantity = quantity
			changed = true
		}
		break
	}

	if !changed {
		return nil
	}
	return s.snapshots.Set(ctx, userID, items)
}

// RemoveItem filters the product out of the snapshot.
func (s *Store) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) error {
	items, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == productID {
			continue
		}
		kept = append(kept, item)
	}

	return s.snapshots.Set(ctx, userID, kept)
}

// Clear empties the persisted list. Called after checkout success.
func (s *Store) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.snapshots.Delete(ctx, userID)
}

// Total is recomputed on every call; there is no cached total to go stale.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

// HasOutOfStock reports whether any hydrated item has no stock left. Such
// carts cannot enter checkout until the user removes the dead lines.
func HasOutOfStock(items []models.CartItem) bool {
	for _, item := range items {
		if item.OutOfStock() {
			return true
		}
	}
	return false
}
