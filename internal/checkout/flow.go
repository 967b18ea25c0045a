// Package checkout implements the two-step checkout flow: address selection,
// then payment, then the strictly sequential placement of the order against
// the backend collaborators.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/j-ir11/videojuegos/internal/cart"
	"github.com/j-ir11/videojuegos/internal/models"
	"github.com/j-ir11/videojuegos/internal/validation"
)

// Step is the checkout state. The only silent transition is forward; going
// back from payment to address selection is always an explicit user action.
type Step string

const (
	StepAddress Step = "ADDRESS_SELECTION"
	StepPayment Step = "PAYMENT"
	StepDone    Step = "SUCCESS"
)

func (s Step) IsTerminal() bool {
	return s == StepDone
}

// Deps are the collaborators a Flow runs against.
type Deps struct {
	Cart      CartService
	Addresses AddressBook
	Users     UserDirectory
	Orders    OrderStore
	Stock     StockMutator
	Notifier  Notifier

	// Now is the clock used for card expiry validation. Defaults to
	// time.Now.
	Now func() time.Time
}

// Flow is one user's pass through checkout. It caches the cart snapshot and
// the saved addresses read at Begin and tracks the selected address id.
type Flow struct {
	deps   Deps
	userID primitive.ObjectID

	step              Step
	items             []models.CartItem
	addresses         []models.Address
	selectedAddressID string
}

// Confirmation is the payload handed off after a placed order.
type Confirmation struct {
	Order   models.Order      `json:"order"`
	Address models.Address    `json:"address"`
	Items   []models.CartItem `json:"items"`
	Total   float64           `json:"total"`

	// Warning is set when the order was placed but the confirmation email
	// failed: a partial success, never a failure.
	Warning string `json:"warning,omitempty"`
}

func NewFlow(deps Deps, userID primitive.ObjectID) *Flow {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Flow{deps: deps, userID: userID, step: StepAddress}
}

// Begin loads the cart snapshot and the saved addresses, auto-selecting the
// first address when any exist. A failing address load returns
// ErrAddressesLoadFailed but leaves the flow usable so the cart still shows.
func (f *Flow) Begin(ctx context.Context) error {
	items, err := f.deps.Cart.Load(ctx, f.userID)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	f.items = items

	addresses, err := f.deps.Addresses.ListAddresses(ctx, f.userID)
	if err != nil {
		log.Println("[CHECKOUT] [ERROR] address load failed:", err)
		return ErrAddressesLoadFailed
	}

	f.addresses = addresses
	if len(addresses) > 0 && f.selectedAddressID == "" {
		f.selectedAddressID = addresses[0].ID
	}
	return nil
}

func (f *Flow) Step() Step { return f.step }

func (f *Flow) Items() []models.CartItem { return f.items }

func (f *Flow) Addresses() []models.Address { return f.addresses }

func (f *Flow) SelectedAddressID() string { return f.selectedAddressID }

// Total recomputes the cart total from the snapshot read at Begin.
func (f *Flow) Total() float64 {
	return cart.Total(f.items)
}

// SelectAddress picks one of the cached addresses by id.
func (f *Flow) SelectAddress(id string) error {
	for _, address := range f.addresses {
		if address.ID == id {
			f.selectedAddressID = id
			return nil
		}
	}
	return ErrNoAddressSelected
}

// SaveAddress validates the form, persists the new address and selects it.
// On validation failure the fields map carries the per-field messages and
// nothing is persisted; on collaborator failure local state is untouched.
func (f *Flow) SaveAddress(ctx context.Context, in validation.AddressInput) (models.Address, validation.Fields, error) {
	if fields := in.Validate(); !fields.OK() {
		return models.Address{}, fields, nil
	}

	address := models.Address{
		StreetAndNumber: strings.TrimSpace(in.StreetAndNumber),
		Neighborhood:    strings.TrimSpace(in.Neighborhood),
		City:            strings.TrimSpace(in.City),
		State:           strings.TrimSpace(in.State),
		PostalCode:      in.PostalCode,
		Phone:           in.Phone,
	}

	saved, err := f.deps.Addresses.CreateAddress(ctx, f.userID, address)
	if err != nil {
		return models.Address{}, nil, fmt.Errorf("save address: %w", err)
	}

	f.addresses = append(f.addresses, saved)
	f.selectedAddressID = saved.ID
	return saved, nil, nil
}

// ContinueToPayment moves to the payment step. Rejected while no address is
// selected or while the cart still holds out-of-stock lines.
func (f *Flow) ContinueToPayment() error {
	if f.selectedAddressID == "" {
		return ErrNoAddressSelected
	}
	if cart.HasOutOfStock(f.items) {
		return ErrOutOfStockItems
	}
	f.step = StepPayment
	return nil
}

// BackToAddress is the explicit "change address" action.
func (f *Flow) BackToAddress() {
	if f.step == StepPayment {
		f.step = StepAddress
	}
}

// SubmitPayment validates the card fully before any network effect, then
// runs the placement sequence. The card fields are reduced to an accepted
// flag here and never persisted, logged or forwarded.
func (f *Flow) SubmitPayment(ctx context.Context, card validation.PaymentCard) (*Confirmation, validation.Fields, error) {
	if f.step != StepPayment {
		return nil, nil, ErrWrongStep
	}

	if fields := card.Validate(f.deps.Now()); !fields.OK() {
		return nil, fields, nil
	}
	// Shape validation passed; that is the whole authorization. From here
	// on the card data is not consulted again.

	confirmation, err := f.placeOrder(ctx)
	if err != nil {
		return nil, nil, err
	}

	f.step = StepDone
	return confirmation, nil, nil
}

// placeOrder runs the checkout sequence step by step. The first failure
// aborts and surfaces; earlier steps are not compensated, so a failed
// decrement leaves prior decrements applied.
func (f *Flow) placeOrder(ctx context.Context) (*Confirmation, error) {
	if len(f.items) == 0 {
		return nil, ErrCartEmpty
	}
	if cart.HasOutOfStock(f.items) {
		return nil, ErrOutOfStockItems
	}

	// 1. Resolve the selected address.
	var address *models.Address
	for i := range f.addresses {
		if f.addresses[i].ID == f.selectedAddressID {
			address = &f.addresses[i]
			break
		}
	}
	if address == nil {
		return nil, ErrNoAddressSelected
	}

	// 2. Resolve the authenticated user.
	if f.userID.IsZero() {
		return nil, ErrNotAuthenticated
	}
	user, err := f.deps.Users.GetUser(ctx, f.userID)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	total := cart.Total(f.items)

	// 3. Create the order record.
	order, err := f.deps.Orders.CreateOrder(ctx, models.Order{
		UserID:    f.userID,
		AddressID: address.ID,
		Total:     total,
	})
	if err != nil {
		return nil, StepError{Step: "create order", Err: err}
	}

	// 4. Decrement stock per item, in cart order.
	for _, item := range f.items {
		if err := f.deps.Stock.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, StepError{Step: "decrement stock", Err: err}
		}
	}

	// 5. Bulk-insert the order lines.
	lines := make([]models.OrderLine, 0, len(f.items))
	for _, item := range f.items {
		lines = append(lines, models.OrderLine{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	if err := f.deps.Orders.InsertOrderLines(ctx, lines); err != nil {
		return nil, StepError{Step: "insert order lines", Err: err}
	}

	confirmation := &Confirmation{
		Order:   order,
		Address: *address,
		Items:   f.items,
		Total:   total,
	}

	// 6. Best-effort confirmation email.
	if err := f.deps.Notifier.SendConfirmation(ctx, f.confirmationParams(user, order, *address, total)); err != nil {
		log.Println("[CHECKOUT] [WARN] confirmation email failed:", err)
		confirmation.Warning = "Pedido completado, pero no se pudo enviar el correo de confirmación. Revisa tu bandeja de spam."
	}

	// 7. Clear the cart and hand off.
	if err := f.deps.Cart.Clear(ctx, f.userID); err != nil {
		log.Println("[CHECKOUT] [WARN] cart clear failed:", err)
	}

	return confirmation, nil
}

func (f *Flow) confirmationParams(user models.User, order models.Order, address models.Address, total float64) ConfirmationParams {
	var lines strings.Builder
	for i, item := range f.items {
		if i > 0 {
			lines.WriteString("\n")
		}
		fmt.Fprintf(&lines, "Producto: %s, Cantidad: %d, Precio: $%.2f", item.Name, item.Quantity, item.UnitPrice)
	}

	name := user.Name
	if name == "" {
		name = strings.SplitN(user.Email, "@", 2)[0]
	}

	return ConfirmationParams{
		UserName:  name,
		UserEmail: user.Email,
		OrderRef:  order.Ref(),
		Lines:     lines.String(),
		Total:     fmt.Sprintf("%.2f", total),
		Date:      formatLongDate(f.deps.Now()),
		Address:   address.Summary(),
	}
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// formatLongDate renders the es-MX long date used in confirmation emails,
// e.g. "1 de junio de 2024".
func formatLongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}
