package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"modaai/internal/catalog"
	"modaai/internal/models"
	"modaai/internal/notify"
)

// stripInternal removes admin-only fields before a product leaves through the
// public surface.
func stripInternal(products []models.Product) []models.Product {
	for i := range products {
		products[i].Cost = nil
	}
	return products
}

// GetProducts lists the catalog for customers, newest first.
func GetProducts(store Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		products, err := store.List(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": stripInternal(products)})
	}
}

func GetProduct(store Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
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

		product.Cost = nil
		c.JSON(http.StatusOK, product)
	}
}

// StreamProducts is the live-subscription surface: an SSE stream that pushes
// a full ordered catalog snapshot on connect and after every change. The
// subscription is closed when the client goes away.
func StreamProducts(watcher CatalogWatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/stream"
		defer handlePanic(c, route)

		sub, err := watcher.Watch(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "subscription unavailable")
			return
		}
		defer sub.Close()

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case snapshot, ok := <-sub.Snapshots():
				if !ok {
					return false
				}
				c.SSEvent("snapshot", stripInternal(snapshot))
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}

// StreamNotifications broadcasts every published toast to all connected
// subscribers. Toasts are not stored: whatever is missed while disconnected
// is gone.
func StreamNotifications(hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /notifications/stream"
		defer handlePanic(c, route)

		toasts, cancel := hub.Subscribe()
		defer cancel()

		log.Debug().Str("uid", sessionUID(c)).Msg("notification stream opened")

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Stream(func(w io.Writer) bool {
			select {
			case toast, ok := <-toasts:
				if !ok {
					return false
				}
				c.SSEvent("toast", toast)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
