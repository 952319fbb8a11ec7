package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"modaai/internal/middleware"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Error().Str("route", route).Interface("panic", r).Msg("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Warn().Str("route", route).Int("status", status).Msg(message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// sessionUID returns the anonymous uid injected by the session middleware.
func sessionUID(c *gin.Context) string {
	uid, _ := c.Get(middleware.ContextUID)
	s, _ := uid.(string)
	return s
}
