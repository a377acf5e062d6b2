package httpserver

import (
	"strings"

	"grocerystore/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey  = "authUser"
	ctxAdminKey = "authAdmin"
)

// userAuth validates the bearer token and stores the shopper on the
// request context.
func userAuth(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			unauthorized(c)
			c.Abort()
			return
		}
		u, err := svc.LookupUser(c.Request.Context(), token)
		if err != nil {
			unauthorized(c)
			c.Abort()
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// adminAuth validates the bearer token against admin access tokens.
func adminAuth(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			unauthorized(c)
			c.Abort()
			return
		}
		a, err := svc.LookupAdmin(c.Request.Context(), token)
		if err != nil {
			unauthorized(c)
			c.Abort()
			return
		}
		c.Set(ctxAdminKey, a)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
