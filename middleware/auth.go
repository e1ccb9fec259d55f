package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"manufacturer/auth"
	"manufacturer/services"
)

// IdentityKey is the gin context key holding the verified caller email.
const IdentityKey = "authEmail"

func RequireAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := tokens.Verify(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingCredential) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "UnAuthorized access"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden access"})
			return
		}

		c.Set(IdentityKey, ident.Email)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. The caller's role is looked up
// per request so a promotion takes effect without reissuing tokens.
func RequireAdmin(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(IdentityKey)

		err := users.RequireAdmin(c.Request.Context(), email)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, services.ErrUnknownPrincipal),
			errors.Is(err, services.ErrInsufficientRole):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		}
	}
}
