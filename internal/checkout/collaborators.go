package checkout

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/j-ir11/videojuegos/internal/models"
)

// CartService is the slice of the cart store checkout needs: the snapshot to
// buy and the clear that follows a placed order.
type CartService interface {
	Load(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

// AddressBook lists and creates the user's saved shipping addresses.
type AddressBook interface {
	ListAddresses(ctx context.Context, userID primitive.ObjectID) ([]models.Address, error)
	CreateAddress(ctx context.Context, userID primitive.ObjectID, address models.Address) (models.Address, error)
}

// UserDirectory resolves the authenticated user's account record.
type UserDirectory interface {
	GetUser(ctx context.Context, userID primitive.ObjectID) (models.User, error)
}

// OrderStore persists orders and their lines. CreateOrder returns the order
// with its assigned id; InsertOrderLines bulk-inserts all lines at once.
type OrderStore interface {
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
	InsertOrderLines(ctx context.Context, lines []models.OrderLine) error
}

// StockMutator runs the stock-decrement procedure. Atomic per product at the
// backend; idempotency is not guaranteed by this client.
type StockMutator interface {
	DecrementStock(ctx context.Context, productID primitive.ObjectID, quantity int) error
}

// Notifier sends the confirmation email. Best-effort: a failure downgrades
// to a warning, never to a failed order.
type Notifier interface {
	SendConfirmation(ctx context.Context, params ConfirmationParams) error
}

// ConfirmationParams are the template parameters of the confirmation email.
type ConfirmationParams struct {
	UserName  string `json:"usuario_nombre"`
	UserEmail string `json:"usuario_email"`
	OrderRef  string `json:"pedido_id"`
	Lines     string `json:"productos"`
	Total     string `json:"total"`
	Date      string `json:"fecha"`
	Address   string `json:"direccion"`
}
