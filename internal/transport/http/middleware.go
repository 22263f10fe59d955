package http

import (
	"net/http"
	"strings"

	"flagforge/internal/domain"
	"flagforge/internal/token"

	"github.com/gin-gonic/gin"
)

const identityKey = "flagforge.identity"

// Authenticate is the access gate's identity step: it derives the caller's
// identity from the session cookie (or a Bearer header) and stores it in the
// request context. It never rejects a request itself; a missing, expired, or
// unparseable credential simply leaves the caller anonymous.
func Authenticate(tokens *token.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			raw = bearerToken(c.GetHeader("Authorization"))
		}
		if raw != "" {
			if ident, err := tokens.Parse(raw); err == nil {
				c.Set(identityKey, ident)
			}
		}
		c.Next()
	}
}

// RequireUser denies anonymous callers on authenticated routes.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}

// RequireAdmin denies anonymous callers and standard users on admin routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrUnauthorized.Error()})
			return
		}
		if !ident.Admin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": domain.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated caller, if any.
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	ident, ok := v.(domain.Identity)
	return ident, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
