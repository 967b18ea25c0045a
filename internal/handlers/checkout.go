package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/j-ir11/videojuegos/internal/checkout"
	"github.com/j-ir11/videojuegos/internal/middleware"
	"github.com/j-ir11/videojuegos/internal/validation"
)

type saveAddressRequest struct {
	StreetAndNumber string `json:"streetAndNumber"`
	Neighborhood    string `json:"neighborhood"`
	City            string `json:"city"`
	State           string `json:"state"`
	PostalCode      string `json:"postalCode"`
	Phone           string `json:"phone"`
}

type payRequest struct {
	AddressID  string `json:"addressId" binding:"required"`
	CardNumber string `json:"cardNumber" binding:"required"`
	HolderName string `json:"holderName" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

// beginFlow reconstructs the checkout state for one request. The HTTP surface
// is stateless; the cart snapshot and the saved addresses are re-read on
// every call.
func beginFlow(c *gin.Context, deps checkout.Deps, userID primitive.ObjectID) (*checkout.Flow, error) {
	flow := checkout.NewFlow(deps, userID)
	if err := flow.Begin(c.Request.Context()); err != nil {
		return flow, err
	}
	return flow, nil
}

func BeginCheckout(deps checkout.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /checkout"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		flow, err := beginFlow(c, deps, userID)
		if err != nil && !errors.Is(err, checkout.ErrAddressesLoadFailed) {
			respondWithError(c, http.StatusInternalServerError, route, "checkout load failed")
			return
		}

		resp := gin.H{
			"step":              flow.Step(),
			"items":             flow.Items(),
			"total":             flow.Total(),
			"addresses":         flow.Addresses(),
			"selectedAddressId": flow.SelectedAddressID(),
		}
		if errors.Is(err, checkout.ErrAddressesLoadFailed) {
			resp["warning"] = checkout.ErrAddressesLoadFailed.Error()
		}
		c.JSON(http.StatusOK, resp)
	}
}

func SaveCheckoutAddress(deps checkout.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/address"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req saveAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, route, err)
			return
		}

		flow, err := beginFlow(c, deps, userID)
		if err != nil && !errors.Is(err, checkout.ErrAddressesLoadFailed) {
			respondWithError(c, http.StatusInternalServerError, route, "checkout load failed")
			return
		}

		address, fields, err := flow.SaveAddress(c.Request.Context(), validation.AddressInput{
			StreetAndNumber: req.StreetAndNumber,
			Neighborhood:    req.Neighborhood,
			City:            req.City,
			State:           req.State,
			PostalCode:      req.PostalCode,
			Phone:           req.Phone,
		})
		if fields != nil {
			respondValidationError(c, route, fields)
			return
		}
		if err != nil {
			log.Println("[CHECKOUT] [ERROR] save address failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "no se pudo guardar la dirección")
			return
		}

		c.JSON(http.StatusCreated, address)
	}
}

func Pay(deps checkout.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/pay"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req payRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, route, err)
			return
		}

		flow, err := beginFlow(c, deps, userID)
		if err != nil && !errors.Is(err, checkout.ErrAddressesLoadFailed) {
			respondWithError(c, http.StatusInternalServerError, route, "checkout load failed")
			return
		}

		if err := flow.SelectAddress(req.AddressID); err != nil {
			respondWithError(c, http.StatusBadRequest, route, checkout.ErrNoAddressSelected.Error())
			return
		}
		if err := flow.ContinueToPayment(); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		card := validation.PaymentCard{
			Number:     req.CardNumber,
			HolderName: req.HolderName,
			Expiry:     req.Expiry,
			CVV:        req.CVV,
		}

		confirmation, fields, err := flow.SubmitPayment(c.Request.Context(), card)
		if fields != nil {
			respondValidationError(c, route, fields)
			return
		}
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrCartEmpty):
				respondWithError(c, http.StatusBadRequest, route, checkout.ErrCartEmpty.Error())
			case errors.Is(err, checkout.ErrNoAddressSelected):
				respondWithError(c, http.StatusBadRequest, route, checkout.ErrNoAddressSelected.Error())
			case errors.Is(err, checkout.ErrOutOfStockItems):
				respondWithError(c, http.StatusConflict, route, checkout.ErrOutOfStockItems.Error())
			case errors.Is(err, checkout.ErrNotAuthenticated):
				respondWithError(c, http.StatusUnauthorized, route, checkout.ErrNotAuthenticated.Error())
			default:
				log.Println("[CHECKOUT] [ERROR] order placement failed:", err)
				respondWithError(c, http.StatusInternalServerError, route, "no se pudo completar el pedido")
			}
			return
		}

		c.JSON(http.StatusCreated, confirmation)
	}
}
