package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/servio-inc/servio/internal/application/commission/usecases"
	"github.com/servio-inc/servio/internal/interfaces/dto"
	"github.com/servio-inc/servio/internal/shared/logger"
	"github.com/servio-inc/servio/internal/shared/utils"
)

type CommissionHandler struct {
	getPolicyUC    *usecases.GetPolicyUseCase
	updatePolicyUC *usecases.UpdatePolicyUseCase
	listUC         *usecases.ListCommissionsUseCase
	markPaidUC     *usecases.MarkCommissionsPaidUseCase
	logger         logger.Interface
}

func NewCommissionHandler(
	getPolicyUC *usecases.GetPolicyUseCase,
	updatePolicyUC *usecases.UpdatePolicyUseCase,
	listUC *usecases.ListCommissionsUseCase,
	markPaidUC *usecases.MarkCommissionsPaidUseCase,
	logger logger.Interface,
) *CommissionHandler {
	return &CommissionHandler{
		getPolicyUC:    getPolicyUC,
		updatePolicyUC: updatePolicyUC,
		listUC:         listUC,
		markPaidUC:     markPaidUC,
		logger:         logger,
	}
}

func (h *CommissionHandler) GetPolicy(c *gin.Context) {
	policy, err := h.getPolicyUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.NewCommissionPolicyResponse(policy))
}

type UpdatePolicyRequest struct {
	OnboardingRate          int  `json:"onboarding_rate" binding:"min=0,max=100"`
	RenewalRate             int  `json:"renewal_rate" binding:"min=0,max=100"`
	EnableRenewalCommission bool `json:"enable_renewal_commission"`
	MinRenewalDays          int  `json:"min_renewal_days" binding:"min=0"`
	CommissionDurationDays  int  `json:"commission_duration_days" binding:"min=0"`
}

func (h *CommissionHandler) UpdatePolicy(c *gin.Context) {
	var req UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update policy", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdatePolicyCommand{
		OnboardingRate:          req.OnboardingRate,
		RenewalRate:             req.RenewalRate,
		EnableRenewalCommission: req.EnableRenewalCommission,
		MinRenewalDays:          req.MinRenewalDays,
		CommissionDurationDays:  req.CommissionDurationDays,
		AdminID:                 adminID(c),
	}

	policy, err := h.updatePolicyUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Commission policy updated", dto.NewCommissionPolicyResponse(policy))
}

func (h *CommissionHandler) ListCommissions(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	query := usecases.ListCommissionsQuery{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Offset: pagination.Offset(),
		Limit:  pagination.PageSize,
	}

	if raw := c.Query("installer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid installer_id")
			return
		}
		installerID := uint(id)
		query.InstallerID = &installerID
	}

	if raw := c.Query("business_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid business_id")
			return
		}
		businessID := uint(id)
		query.BusinessID = &businessID
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c,
		dto.NewCommissionRecordResponses(result.Records),
		result.Total,
		pagination.Page,
		pagination.PageSize)
}

type UpdateCommissionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid"`
}

// UpdateStatus settles a single commission record. Paid is the only status
// reachable by request; records never leave pending any other way.
func (h *CommissionHandler) UpdateStatus(c *gin.Context) {
	cid := c.Param("id")
	if cid == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "commission ID is required")
		return
	}

	var req UpdateCommissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update commission status", "cid", cid, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.markPaidUC.Execute(c.Request.Context(), usecases.MarkCommissionsPaidCommand{
		CIDs:    []string{cid},
		AdminID: adminID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Commission marked paid",
		dto.NewCommissionRecordResponse(result.Paid[0]))
}

type MarkPaidRequest struct {
	CommissionIDs []string `json:"commission_ids" binding:"required,min=1"`
}

func (h *CommissionHandler) MarkPaid(c *gin.Context) {
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for mark paid", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.MarkCommissionsPaidCommand{
		CIDs:    req.CommissionIDs,
		AdminID: adminID(c),
	}

	result, err := h.markPaidUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Commissions marked paid",
		dto.NewCommissionRecordResponses(result.Paid))
}
