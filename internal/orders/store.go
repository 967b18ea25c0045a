// Package orders persists orders and their lines and reads the purchase
// history back with its joins.
package orders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/j-ir11/videojuegos/internal/models"
)

// ErrUnauthenticated distinguishes "not logged in" from "no orders yet".
var ErrUnauthenticated = errors.New("not authenticated")

const queryTimeout = 5 * time.Second

type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// CreateOrder inserts the order and returns it with its assigned id.
func (s *Store) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	order.CreatedAt = time.Now()
	res, err := s.db.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return order, nil
}

// InsertOrderLines bulk-inserts all lines of one order.
func (s *Store) InsertOrderLines(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(lines))
	for _, line := range lines {
		docs = append(docs, line)
	}

	_, err := s.db.Collection("order_lines").InsertMany(ctx, docs)
	return err
}
