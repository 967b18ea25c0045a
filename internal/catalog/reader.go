// Package catalog reads products and stock from MongoDB and owns the
// stock-decrement procedure used by checkout.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/j-ir11/videojuegos/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

const queryTimeout = 5 * time.Second

// activeFilter excludes soft-deleted and disabled products.
func activeFilter() bson.M {
	return bson.M{
		"isActive":  bson.M{"$ne": false},
		"isDeleted": bson.M{"$ne": true},
	}
}

type Reader struct {
	db *mongo.Database
}

func NewReader(db *mongo.Database) *Reader {
	return &Reader{db: db}
}

func (r *Reader) GetProduct(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := activeFilter()
	filter["_id"] = id

	var product models.Product
	err := r.db.Collection("products").FindOne(ctx, filter).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}

	product.InStock = product.Stock > 0
	return product, nil
}

// StockByIDs resolves current stock for a batch of product ids in one query.
// Ids without a matching product are simply absent from the result.
func (r *Reader) StockByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]int{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := activeFilter()
	filter["_id"] = bson.M{"$in": ids}

	projection := options.Find().SetProjection(bson.M{"stock": 1})
	cursor, err := r.db.Collection("products").Find(ctx, filter, projection)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Stock int                `bson:"stock"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	stock := make(map[primitive.ObjectID]int, len(docs))
	for _, doc := range docs {
		stock[doc.ID] = doc.Stock
	}
	return stock, nil
}

// Search lists active products, optionally filtered by a case-insensitive
// name match, newest first.
func (r *Reader) Search(ctx context.Context, query string) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := activeFilter()
	if query = strings.TrimSpace(query); query != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.db.Collection("products").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for i := range products {
		products[i].InStock = products[i].Stock > 0
	}
	return products, nil
}

// DecrementStock atomically takes quantity units off a product. The filter
// guards against going negative: a product with less stock than requested
// matches nothing and the call fails without mutating anything.
func (r *Reader) DecrementStock(ctx context.Context, productID primitive.ObjectID, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := activeFilter()
	filter["_id"] = productID
	filter["stock"] = bson.M{"$gte": quantity}

	res, err := r.db.Collection("products").UpdateOne(ctx, filter,
		bson.M{"$inc": bson.M{"stock": -quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("stock decrement rejected for product %s", productID.Hex())
	}
	return nil
}
