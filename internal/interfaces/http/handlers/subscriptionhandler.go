package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servio-inc/servio/internal/application/subscription/usecases"
	"github.com/servio-inc/servio/internal/interfaces/dto"
	"github.com/servio-inc/servio/internal/interfaces/http/middleware"
	"github.com/servio-inc/servio/internal/shared/logger"
	"github.com/servio-inc/servio/internal/shared/utils"
)

type SubscriptionHandler struct {
	registerUC  *usecases.RegisterBusinessUseCase
	subscribeUC *usecases.SubscribeUseCase
	statusUC    *usecases.GetSubscriptionStatusUseCase
	logger      logger.Interface
}

func NewSubscriptionHandler(
	registerUC *usecases.RegisterBusinessUseCase,
	subscribeUC *usecases.SubscribeUseCase,
	statusUC *usecases.GetSubscriptionStatusUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		registerUC:  registerUC,
		subscribeUC: subscribeUC,
		statusUC:    statusUC,
		logger:      logger,
	}
}

type RegisterRequest struct {
	PlanTier    string `json:"plan_tier" binding:"required"`
	SkipTrial   bool   `json:"skip_trial"`
	InstallerID *uint  `json:"installer_id"`
}

// Register opens the business's initial subscription, a trial by default.
func (h *SubscriptionHandler) Register(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "caller not authenticated")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.RegisterBusinessCommand{
		BusinessID:  businessID,
		PlanTier:    req.PlanTier,
		SkipTrial:   req.SkipTrial,
		InstallerID: req.InstallerID,
	}

	sub, err := h.registerUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.NewSubscriptionResponse(sub), "Subscription registered")
}

type SubscribeRequest struct {
	PlanTier    string   `json:"plan_tier" binding:"required"`
	Cycle       string   `json:"cycle" binding:"required"`
	ModuleCodes []string `json:"module_codes"`
	BundleCode  string   `json:"bundle_code"`
	PromoCode   string   `json:"promo_code"`
	Reference   string   `json:"reference" binding:"required"`
	InstallerID *uint    `json:"installer_id"`
}

type SubscribeResponse struct {
	Subscription dto.SubscriptionResponse  `json:"subscription"`
	Quote        interface{}               `json:"quote,omitempty"`
	Grants       []dto.ModuleGrantResponse `json:"grants"`
	Idempotent   bool                      `json:"idempotent"`
}

// Subscribe applies a verified payment: activation or renewal, ledger
// append, grant replacement, promo redemption and commission accrual.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	businessID, ok := middleware.BusinessID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "caller not authenticated")
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for subscribe", "business_id", businessID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.SubscribeCommand{
		BusinessID:  businessID,
		PlanTier:    req.PlanTier,
		Cycle:       req.Cycle,
		ModuleCodes: req.ModuleCodes,
		BundleCode:  req.BundleCode,
		PromoCode:   req.PromoCode,
		Reference:   req.Reference,
		InstallerID: req.InstallerID,
	}

	result, err := h.subscribeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resp := SubscribeResponse{
		Subscription: dto.NewSubscriptionResponse(result.Subscription),
		Grants:       dto.NewModuleGrantResponses(result.Grants),
		Idempotent:   result.Idempotent,
	}
	if result.Quote != nil {
		resp.Quote = result.Quote
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// GetStatus returns the current entitlement snapshot for the caller's
// business. Grace period and expiry are evaluated lazily against the clock.
func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	bypass := middleware.IsOperator(c)

	businessID, ok := middleware.BusinessID(c)
	if !ok && !bypass {
		utils.ErrorResponse(c, http.StatusUnauthorized, "caller not authenticated")
		return
	}

	query := usecases.GetSubscriptionStatusQuery{
		BusinessID:     businessID,
		OperatorBypass: bypass,
		SkipCache:      c.Query("fresh") == "true",
	}

	snapshot, err := h.statusUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", snapshot)
}
