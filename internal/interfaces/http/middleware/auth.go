// Package middleware holds the gin middleware for the billing API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/servio-inc/servio/internal/infrastructure/auth"
	"github.com/servio-inc/servio/internal/shared/constants"
	"github.com/servio-inc/servio/internal/shared/logger"
	"github.com/servio-inc/servio/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyBusinessID, claims.BusinessID)
		c.Set(constants.ContextKeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole gates a route to the listed roles. RequireAuth must run first.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(constants.ContextKeyRole)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "caller not authenticated")
			c.Abort()
			return
		}

		role, _ := roleValue.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		m.logger.Warnw("role denied", "role", role, "path", c.FullPath())
		utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}

// BusinessID extracts the authenticated business ID from the gin context.
func BusinessID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyBusinessID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id != 0
}

// IsOperator reports whether the caller holds the operator or admin role.
func IsOperator(c *gin.Context) bool {
	roleValue, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return false
	}
	role, _ := roleValue.(string)
	return role == constants.RoleOperator || role == constants.RoleAdmin
}
