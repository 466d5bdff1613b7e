package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skylift/skybook/internal/domain"
	"github.com/skylift/skybook/internal/repository"
)

type Blacklist interface {
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}

type Middleware struct {
	tokens    *TokenManager
	users     repository.UserRepository
	blacklist Blacklist
}

func NewMiddleware(tokens *TokenManager, users repository.UserRepository, blacklist Blacklist) *Middleware {
	return &Middleware{tokens: tokens, users: users, blacklist: blacklist}
}

// Authenticate parses the bearer token, rejects revoked tokens and loads the
// user from the database so role changes take effect on the next request.
func (m *Middleware) Authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	claims, err := m.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	revoked, err := m.blacklist.IsTokenBlacklisted(c.Request.Context(), claims.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth check failed"})
		return
	}
	if revoked {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
		return
	}

	uid, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	user, err := m.users.GetByID(c.Request.Context(), uid)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	c.Set("user", user)
	c.Set("claims", claims)
	c.Next()
}

func (m *Middleware) RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("user")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		user := v.(*domain.User)
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
