package delivery_http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blogboard/internal/infrastructure/metrics"
	"blogboard/internal/model"
	auth_service "blogboard/internal/service/auth"
)

const identityKey = "identity"

// AuthMiddleware resolves an Authorization bearer token into an
// identity and stores it in the gin context. Requests without a valid
// token pass through anonymously; RequireAuth draws the line.
func AuthMiddleware(auth auth_service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" && strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if identity, err := auth.GetSession(c.Request.Context(), token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentIdentity(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) (*model.Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := val.(*model.Identity)
	if !ok || !identity.LoggedIn {
		return nil, false
	}
	return identity, true
}

// PrometheusMiddleware records request counts and latencies per route
// template, not per raw URL, to keep cardinality bounded.
func PrometheusMiddleware(provider metrics.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		provider.IncrementHTTPRequests(c.Request.Method, path, strconv.Itoa(c.Writer.Status()))
		provider.RecordHTTPRequestDuration(c.Request.Method, path, time.Since(start))
	}
}
