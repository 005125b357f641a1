package middlewares

import (
	"DentalClinic/models"
	"DentalClinic/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is the authenticated caller.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Ref is the snapshot stored on records the caller creates.
func (i Identity) Ref() models.UserRef {
	return models.UserRef{ID: i.ID, Username: i.Username}
}

// TokenAuthMiddleware validates the access token and attaches the caller's
// identity. The token is read from the Authorization header, the access
// token cookie or the accessToken query parameter, in that order.
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Missing access token"})
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			utils.Logger.Debug().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "Invalid token"})
			return
		}

		c.Set(identityKey, Identity{ID: claims.UserID, Username: claims.Username, Role: claims.Role})
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(utils.AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("accessToken")
}

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{Message: "User role not found in context"})
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, Response{Message: "Forbidden: insufficient privileges"})
	}
}

// GetIdentity returns the caller set by TokenAuthMiddleware.
func GetIdentity(c *gin.Context) (Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// SetIdentity is used by tests that skip token validation.
func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(identityKey, identity)
}
