package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a single shipping address embedded in the user document.
type Address struct {
	ID              string `bson:"id" json:"id"`
	StreetAndNumber string `bson:"streetAndNumber" json:"streetAndNumber"`
	Neighborhood    string `bson:"neighborhood" json:"neighborhood"`
	City            string `bson:"city" json:"city"`
	State           string `bson:"state" json:"state"`
	PostalCode      string `bson:"postalCode" json:"postalCode"`
	Phone           string `bson:"phone" json:"phone"`
}

// Summary renders the address the way confirmation emails show it.
func (a Address) Summary() string {
	return a.StreetAndNumber + ", " + a.Neighborhood + ", " + a.City + ", " + a.State
}

// User represents the application user account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Addresses    []Address          `bson:"addresses" json:"addresses"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
