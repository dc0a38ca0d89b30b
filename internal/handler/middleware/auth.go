package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/pkg/cookie"
	"licoreria-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const ctxIdentityKey = "identity"

// Staff ranks strictly above customers; the counter roles escalate from
// stockkeeper to admin.
var roleHierarchy = map[user.Role]int{
	user.RoleCustomer:    1,
	user.RoleStockkeeper: 2,
	user.RoleSupervisor:  3,
	user.RoleAdmin:       4,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxIdentityKey, identity)
		c.Set("jwt_claims", map[string]any{
			"user_id": identity.UserID.String(),
			"role":    string(identity.Role),
		})
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(identity.Role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireCustomer ensures the acting user is linked to a customer record.
func (m *AuthMiddleware) RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || identity.CustomerID == nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Customer account required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

func GetIdentity(c *gin.Context) (usecase.Identity, bool) {
	value, exists := c.Get(ctxIdentityKey)
	if !exists {
		return usecase.Identity{}, false
	}

	identity, ok := value.(usecase.Identity)
	return identity, ok
}
