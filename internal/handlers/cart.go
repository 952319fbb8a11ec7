package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"modaai/internal/cart"
	"modaai/internal/catalog"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// GetCart returns the session's cart lines, their count and the running
// total.
func GetCart(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		session := sessionUID(c)
		items := carts.Items(session)
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"count": len(items),
			"total": carts.Total(session),
		})
	}
}

// AddCartItem snapshots the referenced product into the session cart. The
// stored line is a full copy; later catalog changes do not reach it.
func AddCartItem(carts *cart.Store, store Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "productId required")
			return
		}

		id, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		product, err := store.Get(c.Request.Context(), id)
		if err == catalog.ErrNotFound {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		session := sessionUID(c)
		carts.Add(session, cart.Snapshot(product))

		items := carts.Items(session)
		c.JSON(http.StatusCreated, gin.H{
			"items": items,
			"count": len(items),
			"total": carts.Total(session),
		})
	}
}

// RemoveCartItem drops the line at the given position.
func RemoveCartItem(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:index"
		defer handlePanic(c, route)

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid index")
			return
		}

		session := sessionUID(c)
		if err := carts.RemoveAt(session, index); err != nil {
			respondWithError(c, http.StatusNotFound, route, "no item at that position")
			return
		}

		items := carts.Items(session)
		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"count": len(items),
			"total": carts.Total(session),
		})
	}
}

func ClearCart(carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		carts.Clear(sessionUID(c))
		c.JSON(http.StatusOK, gin.H{"items": []cart.LineItem{}, "count": 0, "total": 0})
	}
}
