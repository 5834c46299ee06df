package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"accountapp/internal/adapter/http/helper"
	"accountapp/internal/core/port"
)

const (
	IdentityKey = "x-identity"
	TokenKey    = "x-token"
)

// JwtMiddleware rejects requests without a valid Bearer token and stores
// the verified identity and raw token on the gin context.
func JwtMiddleware(tokens port.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			helper.SendUnauthorizedError(c, "Invalid authorization format")
			c.Abort()
			return
		}

		if !authenticate(c, tokens, bearer) {
			helper.SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalJwtMiddleware attaches the identity when a valid Bearer token is
// present and lets every request through. Handlers decide whether the
// identity is required.
func OptionalJwtMiddleware(tokens port.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearer := c.GetHeader("Authorization"); strings.HasPrefix(bearer, "Bearer ") {
			authenticate(c, tokens, bearer)
		}

		c.Next()
	}
}

func authenticate(c *gin.Context, tokens port.TokenIssuer, bearer string) bool {
	raw := strings.TrimSpace(bearer[len("Bearer "):])

	identity, err := tokens.Verify(raw)

	if err != nil {
		return false
	}

	c.Set(IdentityKey, identity)
	c.Set(TokenKey, raw)

	GetCurrent(c).Set("user_uuid", identity.UserUUID)

	return true
}

func IdentityFrom(c *gin.Context) (port.Identity, string, bool) {
	identity, ok := c.Get(IdentityKey)

	if !ok {
		return port.Identity{}, "", false
	}

	id, ok := identity.(port.Identity)

	if !ok {
		return port.Identity{}, "", false
	}

	return id, c.GetString(TokenKey), true
}
