package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servio-inc/servio/internal/application/entitlement"
	"github.com/servio-inc/servio/internal/interfaces/http/middleware"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
	"github.com/servio-inc/servio/internal/shared/utils"
)

// EntitlementHandler answers the single question feature gates ask: may
// this business use this module right now.
type EntitlementHandler struct {
	resolver *entitlement.Resolver
	logger   logger.Interface
}

func NewEntitlementHandler(resolver *entitlement.Resolver, logger logger.Interface) *EntitlementHandler {
	return &EntitlementHandler{
		resolver: resolver,
		logger:   logger,
	}
}

type EntitlementResponse struct {
	ModuleCode string `json:"module_code"`
	Entitled   bool   `json:"entitled"`
}

func (h *EntitlementHandler) CheckModule(c *gin.Context) {
	bypass := middleware.IsOperator(c)

	businessID, ok := middleware.BusinessID(c)
	if !ok && !bypass {
		utils.ErrorResponse(c, http.StatusUnauthorized, "caller not authenticated")
		return
	}

	moduleCode := c.Param("module_code")
	if moduleCode == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("module code is required"))
		return
	}

	entitled, err := h.resolver.HasModule(c.Request.Context(), businessID, moduleCode, bypass)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", EntitlementResponse{
		ModuleCode: moduleCode,
		Entitled:   entitled,
	})
}
