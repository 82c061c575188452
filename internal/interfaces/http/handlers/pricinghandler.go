// Package handlers holds the gin HTTP handlers for the billing API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/servio-inc/servio/internal/application/pricing/usecases"
	"github.com/servio-inc/servio/internal/interfaces/dto"
	"github.com/servio-inc/servio/internal/shared/logger"
	"github.com/servio-inc/servio/internal/shared/utils"
)

type PricingHandler struct {
	getPricingUC *usecases.GetPricingUseCase
	quotePriceUC *usecases.QuotePriceUseCase
	logger       logger.Interface
}

func NewPricingHandler(
	getPricingUC *usecases.GetPricingUseCase,
	quotePriceUC *usecases.QuotePriceUseCase,
	logger logger.Interface,
) *PricingHandler {
	return &PricingHandler{
		getPricingUC: getPricingUC,
		quotePriceUC: quotePriceUC,
		logger:       logger,
	}
}

type PricingResponse struct {
	Plans   []dto.PlanResponse   `json:"plans"`
	Modules []dto.ModuleResponse `json:"modules"`
	Bundles []dto.BundleResponse `json:"bundles"`
}

// GetPricing returns the full catalog for the checkout flow.
func (h *PricingHandler) GetPricing(c *gin.Context) {
	result, err := h.getPricingUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", PricingResponse{
		Plans:   dto.NewPlanResponses(result.Plans),
		Modules: dto.NewModuleResponses(result.Modules),
		Bundles: dto.NewBundleResponses(result.Bundles),
	})
}

type QuoteRequest struct {
	PlanTier    string   `json:"plan_tier" binding:"required"`
	Cycle       string   `json:"cycle" binding:"required"`
	ModuleCodes []string `json:"module_codes"`
	BundleCode  string   `json:"bundle_code"`
	PromoCode   string   `json:"promo_code"`
}

// Quote prices a selection without touching any state.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for quote", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.QuotePriceCommand{
		PlanTier:    req.PlanTier,
		Cycle:       req.Cycle,
		ModuleCodes: req.ModuleCodes,
		BundleCode:  req.BundleCode,
		PromoCode:   req.PromoCode,
	}

	quote, err := h.quotePriceUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", quote)
}
