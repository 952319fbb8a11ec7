package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"modaai/internal/cart"
	"modaai/internal/checkout"
)

// BeginCheckout freezes the cart total into a new checkout in the
// payment-selection state. An empty cart cannot be checked out.
func BeginCheckout(sim *checkout.Simulator, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, route)

		session := sessionUID(c)
		if len(carts.Items(session)) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		co := sim.Begin(session, carts.Total(session))
		c.JSON(http.StatusCreated, co)
	}
}

// PayCheckout starts the simulated payment. The checkout moves to processing
// immediately and reaches success unconditionally after the configured delay;
// reaching success empties the owning session's cart. Checkouts opened by a
// different session are indistinguishable from missing ones.
func PayCheckout(sim *checkout.Simulator, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/:id/pay"
		defer handlePanic(c, route)

		session := sessionUID(c)

		state, err := sim.Pay(c.Param("id"), session, func() {
			carts.Clear(session)
		})
		if err == checkout.ErrNotFound {
			respondWithError(c, http.StatusNotFound, route, "checkout not found")
			return
		}
		if err == checkout.ErrAlreadyStarted {
			respondWithError(c, http.StatusConflict, route, "payment already started")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "checkout error")
			return
		}

		c.JSON(http.StatusOK, state)
	}
}

func GetCheckout(sim *checkout.Simulator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /checkout/:id"
		defer handlePanic(c, route)

		state, err := sim.Get(c.Param("id"), sessionUID(c))
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "checkout not found")
			return
		}
		c.JSON(http.StatusOK, state)
	}
}
