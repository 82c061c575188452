package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servio-inc/servio/internal/application/subscription/usecases"
	"github.com/servio-inc/servio/internal/interfaces/dto"
	"github.com/servio-inc/servio/internal/interfaces/http/middleware"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
	"github.com/servio-inc/servio/internal/shared/utils"
)

// AdminSubscriptionHandler holds the operator-only subscription overrides:
// manual renewal, cancellation and direct grant management.
type AdminSubscriptionHandler struct {
	renewUC  *usecases.AdminRenewUseCase
	cancelUC *usecases.CancelSubscriptionUseCase
	statusUC *usecases.GetSubscriptionStatusUseCase
	grantUC  *usecases.GrantModuleUseCase
	revokeUC *usecases.RevokeGrantUseCase
	logger   logger.Interface
}

func NewAdminSubscriptionHandler(
	renewUC *usecases.AdminRenewUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	statusUC *usecases.GetSubscriptionStatusUseCase,
	grantUC *usecases.GrantModuleUseCase,
	revokeUC *usecases.RevokeGrantUseCase,
	logger logger.Interface,
) *AdminSubscriptionHandler {
	return &AdminSubscriptionHandler{
		renewUC:  renewUC,
		cancelUC: cancelUC,
		statusUC: statusUC,
		grantUC:  grantUC,
		revokeUC: revokeUC,
		logger:   logger,
	}
}

func parseBusinessID(c *gin.Context) (uint, error) {
	raw := c.Param("business_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid business ID", raw)
	}
	return uint(id), nil
}

// adminID returns the acting operator's ID. Operator tokens carry it in
// the business_id claim slot.
func adminID(c *gin.Context) uint {
	id, _ := middleware.BusinessID(c)
	return id
}

type AdminRenewRequest struct {
	DurationDays int    `json:"duration_days" binding:"required,min=1"`
	Amount       int64  `json:"amount" binding:"min=0"`
	Reference    string `json:"reference" binding:"required"`
}

// Renew extends a subscription for a fixed duration without gateway
// verification.
func (h *AdminSubscriptionHandler) Renew(c *gin.Context) {
	businessID, err := parseBusinessID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AdminRenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for admin renew", "business_id", businessID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.AdminRenewCommand{
		BusinessID:   businessID,
		DurationDays: req.DurationDays,
		Amount:       req.Amount,
		Reference:    req.Reference,
		AdminID:      adminID(c),
	}

	sub, err := h.renewUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription renewed", dto.NewSubscriptionResponse(sub))
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *AdminSubscriptionHandler) Cancel(c *gin.Context) {
	businessID, err := parseBusinessID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for cancel", "business_id", businessID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CancelSubscriptionCommand{
		BusinessID: businessID,
		Reason:     req.Reason,
		AdminID:    adminID(c),
	}

	sub, err := h.cancelUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled", dto.NewSubscriptionResponse(sub))
}

// GetStatus lets an operator inspect any business's snapshot from
// persisted truth, bypassing the cache.
func (h *AdminSubscriptionHandler) GetStatus(c *gin.Context) {
	businessID, err := parseBusinessID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetSubscriptionStatusQuery{
		BusinessID: businessID,
		SkipCache:  true,
	}

	snapshot, err := h.statusUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", snapshot)
}

type GrantModuleRequest struct {
	ModuleCode string     `json:"module_code" binding:"required"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

func (h *AdminSubscriptionHandler) GrantModule(c *gin.Context) {
	businessID, err := parseBusinessID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GrantModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for grant module", "business_id", businessID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.GrantModuleCommand{
		BusinessID: businessID,
		ModuleCode: req.ModuleCode,
		ExpiryDate: req.ExpiryDate,
		AdminID:    adminID(c),
	}

	grant, err := h.grantUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.NewModuleGrantResponse(grant), "Module granted")
}

func (h *AdminSubscriptionHandler) RevokeModule(c *gin.Context) {
	businessID, err := parseBusinessID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	moduleCode := c.Param("module_code")
	if moduleCode == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("module code is required"))
		return
	}

	cmd := usecases.RevokeGrantCommand{
		BusinessID: businessID,
		ModuleCode: moduleCode,
		Delete:     c.Query("delete") == "true",
		AdminID:    adminID(c),
	}

	if err := h.revokeUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
