package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// StockUnknown marks an item whose stock could not be hydrated, as opposed to
// an item the catalog resolved to zero stock.
const StockUnknown = -1

// CartItem is one line of the persisted cart snapshot. Name, price and image
// are cached from the product at the time it was added; AvailableStock is
// hydrated from the catalog on every load and never persisted (StockUnknown
// when the lookup failed).
type CartItem struct {
	ProductID      primitive.ObjectID `json:"productId"`
	Name           string             `json:"name"`
	UnitPrice      float64            `json:"unitPrice"`
	ImageURL       string             `json:"imageUrl,omitempty"`
	Quantity       int                `json:"quantity"`
	AvailableStock int                `json:"-"`
}

// Subtotal is unit price times quantity.
func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// OutOfStock reports whether the product has no remaining stock. Such items
// are flagged for the user to remove, never dropped automatically.
func (i CartItem) OutOfStock() bool {
	return i.AvailableStock == 0
}
