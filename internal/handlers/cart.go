package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/j-ir11/videojuegos/internal/cart"
	"github.com/j-ir11/videojuegos/internal/catalog"
	"github.com/j-ir11/videojuegos/internal/middleware"
	"github.com/j-ir11/videojuegos/internal/models"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type cartResponse struct {
	Items      []models.CartItem `json:"items"`
	Total      float64           `json:"total"`
	OutOfStock bool              `json:"outOfStock"`
}

func toCartResponse(items []models.CartItem) cartResponse {
	if items == nil {
		items = []models.CartItem{}
	}
	return cartResponse{
		Items:      items,
		Total:      cart.Total(items),
		OutOfStock: cart.HasOutOfStock(items),
	}
}

func GetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		items, err := store.Load(c.Request.Context(), userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart load failed")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

func AddToCart(store *cart.Store, reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, route, err)
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		product, err := reader.GetProduct(c.Request.Context(), productID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(c, http.StatusNotFound, route, "producto no encontrado")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "product lookup failed")
			return
		}

		err = store.AddItem(c.Request.Context(), userID, product, req.Quantity)
		var stockErr cart.InsufficientStockError
		if errors.As(err, &stockErr) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":     "no hay suficientes piezas disponibles",
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart update failed")
			return
		}

		items, err := store.Load(c.Request.Context(), userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart load failed")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

func UpdateCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart/items/:productId"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, route, err)
			return
		}

		if err := store.SetQuantity(c.Request.Context(), userID, productID, req.Quantity); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart update failed")
			return
		}

		items, err := store.Load(c.Request.Context(), userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart load failed")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

func RemoveCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:productId"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		if err := store.RemoveItem(c.Request.Context(), userID, productID); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart update failed")
			return
		}

		items, err := store.Load(c.Request.Context(), userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart load failed")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(items))
	}
}

func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		if err := store.Clear(c.Request.Context(), userID); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart clear failed")
			return
		}
		c.JSON(http.StatusOK, toCartResponse(nil))
	}
}
