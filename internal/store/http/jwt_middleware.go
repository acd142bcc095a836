package http

import (
	"net/http"
	"strings"

	"github.com/Slassh006/FF1/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
)

const (
	authHeaderName = "Authorization"

	// UserIdContextKey holds the authenticated user id resolved from the token.
	UserIdContextKey = "userId"
)

// NewAuthMiddleware extracts the trusted identity from a Bearer token. It only
// parses and verifies the signature; issuing tokens is another service's job.
func NewAuthMiddleware(secretKey string, tokenParser jwt.TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderName)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "missing authorization header"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid auth header"})
			return
		}

		claims, err := tokenParser.ParseToken([]byte(secretKey), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"errors": "invalid token"})
			return
		}

		c.Set(UserIdContextKey, claims.UserID)
		c.Next()
	}
}
