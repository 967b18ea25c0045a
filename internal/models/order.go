package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is created once per successful checkout and never mutated afterward.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	AddressID string             `bson:"addressId" json:"addressId"`
	Total     float64            `bson:"total" json:"total"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Ref is the short order reference shown to the user and in emails.
func (o Order) Ref() string {
	hex := o.ID.Hex()
	if len(hex) < 8 {
		return "------"
	}
	return strings.ToUpper(hex[:8])
}

// OrderLine is one purchased cart item, referencing the order it belongs to.
// Unit price is the price at purchase time, not the current product price.
type OrderLine struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID `bson:"orderId" json:"orderId"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
}
