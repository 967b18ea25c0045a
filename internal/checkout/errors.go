package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAddressSelected blocks the transition to payment and step 1 of
	// the placement sequence.
	ErrNoAddressSelected = errors.New("selecciona una dirección de envío")

	// ErrNotAuthenticated aborts placement when no signed-in user can be
	// resolved.
	ErrNotAuthenticated = errors.New("debes iniciar sesión")

	// ErrAddressesLoadFailed is surfaced by Begin when the saved addresses
	// could not be fetched. The cart is still shown.
	ErrAddressesLoadFailed = errors.New("no se pudieron cargar tus direcciones")

	// ErrCartEmpty rejects payment for an empty cart.
	ErrCartEmpty = errors.New("el carrito está vacío")

	// ErrOutOfStockItems blocks checkout while the cart holds items whose
	// product has no stock left; the user removes them first.
	ErrOutOfStockItems = errors.New("elimina los productos sin existencias antes de continuar")

	// ErrWrongStep rejects an operation issued outside its step.
	ErrWrongStep = errors.New("operación fuera de paso")
)

// StepError names the placement step that failed so the caller can tell the
// user (and the operator) how far the sequence got. Steps before the failing
// one are NOT rolled back.
type StepError struct {
	Step string
	Err  error
}

func (e StepError) Error() string {
	return fmt.Sprintf("checkout step %q failed: %v", e.Step, e.Err)
}

func (e StepError) Unwrap() error {
	return e.Err
}
