package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"modaai/internal/middleware"
)

// CreateSession issues the anonymous session identity: a fresh uid wrapped in
// a signed token, created once per client load. It is the stand-in for a real
// sign-in flow and grants nothing beyond attribution.
func CreateSession(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /session"
		defer handlePanic(c, route)

		uid := uuid.NewString()

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			middleware.ContextUID: uid,
			"iat":                 time.Now().Unix(),
		})

		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not create session")
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed, "uid": uid})
	}
}
