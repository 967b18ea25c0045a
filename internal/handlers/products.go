package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/j-ir11/videojuegos/internal/catalog"
)

func GetProducts(reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		products, err := reader.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "product lookup failed")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func GetProduct(reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid product id")
			return
		}

		product, err := reader.GetProduct(c.Request.Context(), id)
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(c, http.StatusNotFound, route, "producto no encontrado")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "product lookup failed")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
