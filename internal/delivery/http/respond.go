package delivery_http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
)

// respondError maps sentinel errors onto HTTP statuses. Raw backend
// error text stays in the logs; clients only ever see the generic
// message for unexpected failures.
func respondError(c *gin.Context, log *logger.Logger, err error, genericMsg string) {
	switch {
	case errors.Is(err, custom_errors.ErrPostValidation),
		errors.Is(err, custom_errors.ErrInvalidInput),
		errors.Is(err, custom_errors.ErrNoUpdateRows):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required fields are missing or invalid"})
	case errors.Is(err, custom_errors.ErrUnauthenticated),
		errors.Is(err, custom_errors.ErrSessionNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, custom_errors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, custom_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this post"})
	case errors.Is(err, custom_errors.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found or removed"})
	case errors.Is(err, custom_errors.ErrEmailAlreadyUsed):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	default:
		log.Error("Unhandled delivery error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericMsg})
	}
}
