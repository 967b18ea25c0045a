package orders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/j-ir11/videojuegos/internal/models"
)

// HistoryLine is one order line joined with the product it referenced.
type HistoryLine struct {
	models.OrderLine
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage,omitempty"`
}

// HistoryEntry is one past order with its shipping address and lines.
type HistoryEntry struct {
	models.Order
	Address *models.Address `json:"address,omitempty"`
	Lines   []HistoryLine   `json:"lines"`
}

// ListOrders returns the user's orders newest first, each joined with its
// address and its lines (lines joined with product name and image).
// Read-only: nothing here mutates state.
func (s *Store) ListOrders(ctx context.Context, userID primitive.ObjectID) ([]HistoryEntry, error) {
	if userID.IsZero() {
		return nil, ErrUnauthenticated
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection("orders").Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []HistoryEntry{}, nil
	}

	orderIDs := make([]primitive.ObjectID, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	linesByOrder, productIDs, err := s.linesForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	productsByID, err := s.productsByID(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	addressesByID, err := s.addressesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(orders))
	for _, order := range orders {
		entry := HistoryEntry{Order: order, Lines: []HistoryLine{}}

		if address, ok := addressesByID[order.AddressID]; ok {
			entry.Address = &address
		}

		for _, line := range linesByOrder[order.ID] {
			joined := HistoryLine{OrderLine: line}
			if product, ok := productsByID[line.ProductID]; ok {
				joined.ProductName = product.Name
				joined.ProductImage = product.ImageURL
			}
			entry.Lines = append(entry.Lines, joined)
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Store) linesForOrders(ctx context.Context, orderIDs []primitive.ObjectID) (map[primitive.ObjectID][]models.OrderLine, []primitive.ObjectID, error) {
	cursor, err := s.db.Collection("order_lines").Find(ctx, bson.M{"orderId": bson.M{"$in": orderIDs}})
	if err != nil {
		return nil, nil, err
	}
	defer cursor.Close(ctx)

	var lines []models.OrderLine
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, nil, err
	}

	byOrder := make(map[primitive.ObjectID][]models.OrderLine, len(orderIDs))
	seen := make(map[primitive.ObjectID]bool)
	productIDs := make([]primitive.ObjectID, 0, len(lines))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}
	return byOrder, productIDs, nil
}

func (s *Store) productsByID(ctx context.Context, productIDs []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	if len(productIDs) == 0 {
		return map[primitive.ObjectID]models.Product{}, nil
	}

	// History shows deleted products too; an order line must keep its name.
	cursor, err := s.db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	return byID, nil
}

func (s *Store) addressesForUser(ctx context.Context, userID primitive.ObjectID) (map[string]models.Address, error) {
	var user models.User
	if err := s.db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return map[string]models.Address{}, nil
	}

	byID := make(map[string]models.Address, len(user.Addresses))
	for _, address := range user.Addresses {
		byID[address.ID] = address
	}
	return byID, nil
}
