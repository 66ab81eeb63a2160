package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medtrack/consult-api/internal/model"
	"github.com/medtrack/consult-api/internal/service/auth"
)

const (
	// ContextAccount holds the *model.Account resolved from the bearer token.
	ContextAccount = "account"
	// ContextToken holds the raw bearer token for downstream revocation.
	ContextToken = "token"
)

type AuthMiddleware struct {
	authSvc *auth.Service
}

func NewAuthMiddleware(authSvc *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate requires a valid bearer token and loads the owning account
// into the request context. Every failure mode produces the same response.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Could not validate credentials",
			})
			return
		}

		account, err := m.authSvc.CurrentAccount(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Could not validate credentials",
			})
			return
		}

		c.Set(ContextAccount, account)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// RequirePermission gates a route on the authenticated account's role.
// It must run after Authenticate.
func RequirePermission(perm model.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := AccountFrom(c)
		if account == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Could not validate credentials",
			})
			return
		}
		if !perm.Allows(account.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": "Not enough permissions",
			})
			return
		}
		c.Next()
	}
}

// AccountFrom returns the authenticated account, or nil outside an
// authenticated route.
func AccountFrom(c *gin.Context) *model.Account {
	v, ok := c.Get(ContextAccount)
	if !ok {
		return nil
	}
	account, ok := v.(*model.Account)
	if !ok {
		return nil
	}
	return account
}

func extractBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
