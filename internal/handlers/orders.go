package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j-ir11/videojuegos/internal/middleware"
	"github.com/j-ir11/videojuegos/internal/orders"
)

func GetOrders(store *orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		userID, ok := middleware.UserID(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		entries, err := store.ListOrders(c.Request.Context(), userID)
		if errors.Is(err, orders.ErrUnauthenticated) {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "order lookup failed")
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}
