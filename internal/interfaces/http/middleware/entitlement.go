package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servio-inc/servio/internal/application/entitlement"
	"github.com/servio-inc/servio/internal/shared/logger"
	"github.com/servio-inc/servio/internal/shared/utils"
)

// EntitlementMiddleware gates feature routes on the caller's module
// entitlement. Operator and admin tokens bypass the check.
type EntitlementMiddleware struct {
	resolver *entitlement.Resolver
	logger   logger.Interface
}

func NewEntitlementMiddleware(resolver *entitlement.Resolver, logger logger.Interface) *EntitlementMiddleware {
	return &EntitlementMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

func (m *EntitlementMiddleware) RequireModule(moduleCode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		bypass := IsOperator(c)

		businessID, ok := BusinessID(c)
		if !ok && !bypass {
			utils.ErrorResponse(c, http.StatusUnauthorized, "caller not authenticated")
			c.Abort()
			return
		}

		entitled, err := m.resolver.HasModule(c.Request.Context(), businessID, moduleCode, bypass)
		if err != nil {
			m.logger.Errorw("entitlement check failed",
				"business_id", businessID,
				"module_code", moduleCode,
				"error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "entitlement check failed")
			c.Abort()
			return
		}

		if !entitled {
			m.logger.Debugw("module not entitled",
				"business_id", businessID,
				"module_code", moduleCode)
			utils.ErrorResponse(c, http.StatusForbidden, fmt.Sprintf("module not available: %s", moduleCode))
			c.Abort()
			return
		}

		c.Next()
	}
}
