package middleware

import (
	"net/http"
	"strings"

	"github.com/eventpass/eventpass/internal/entity"
	"github.com/eventpass/eventpass/pkg/auth"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is the request-scoped caller, set by Authenticate. Handlers
// read it from the gin context instead of any ambient global state.
type Identity struct {
	UserID int64
	Role   entity.Role
}

func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// token from Authorization: Bearer <jwt>
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": entity.ErrUnauthorized.Error()})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		role := entity.Role(claims.Role)
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, Identity{UserID: claims.UserID, Role: role})
		c.Next()
	}
}

// RequireRole denies before any handler side effect runs.
func RequireRole(required entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": entity.ErrUnauthorized.Error()})
			return
		}

		if !ident.Role.Can(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": entity.ErrAccessDenied.Error()})
			return
		}

		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}
